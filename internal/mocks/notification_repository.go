package mocks

import (
	"context"
	"time"

	"github.com/otomarket/auction-services/auctiongateway/internal/model"
	"github.com/stretchr/testify/mock"
)

type NotificationRepository struct {
	mock.Mock
}

func (m *NotificationRepository) Create(ctx context.Context, notification *model.Notification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

func (m *NotificationRepository) GetByID(id int64) (*model.Notification, error) {
	args := m.Called(id)
	return args.Get(0).(*model.Notification), args.Error(1)
}

func (m *NotificationRepository) ListByUser(userID int64, limit, offset int) ([]model.Notification, error) {
	args := m.Called(userID, limit, offset)
	return args.Get(0).([]model.Notification), args.Error(1)
}

func (m *NotificationRepository) MarkRead(ctx context.Context, id int64, readAt time.Time) error {
	args := m.Called(ctx, id, readAt)
	return args.Error(0)
}

func (m *NotificationRepository) FindUnpublished(limit int) ([]model.Notification, error) {
	args := m.Called(limit)
	return args.Get(0).([]model.Notification), args.Error(1)
}

func (m *NotificationRepository) MarkPublished(ctx context.Context, id int64, publishedAt time.Time) error {
	args := m.Called(ctx, id, publishedAt)
	return args.Error(0)
}

func (m *NotificationRepository) SetLastError(ctx context.Context, id int64, lastError string) error {
	args := m.Called(ctx, id, lastError)
	return args.Error(0)
}
