package mocks

import (
	"context"

	"github.com/otomarket/auction-services/auctiongateway/internal/service"
	"github.com/stretchr/testify/mock"
)

type NotificationService struct {
	mock.Mock
}

func (m *NotificationService) RecordOutbid(ctx context.Context, userID, auctionID, newAmount int64) error {
	args := m.Called(ctx, userID, auctionID, newAmount)
	return args.Error(0)
}

func (m *NotificationService) RecordAuctionWon(ctx context.Context, userID, auctionID, amount int64) error {
	args := m.Called(ctx, userID, auctionID, amount)
	return args.Error(0)
}

func (m *NotificationService) ListByUser(ctx context.Context, query service.ListNotificationsQuery) ([]service.NotificationEntry, error) {
	args := m.Called(ctx, query)
	return args.Get(0).([]service.NotificationEntry), args.Error(1)
}

func (m *NotificationService) MarkRead(ctx context.Context, notificationID, userID int64) error {
	args := m.Called(ctx, notificationID, userID)
	return args.Error(0)
}
