package mocks

import (
	"context"
	"time"

	"github.com/otomarket/auction-services/auctiongateway/internal/model"
	"github.com/otomarket/auction-services/auctiongateway/internal/repository"
	"github.com/stretchr/testify/mock"
)

type AuctionRepository struct {
	mock.Mock
}

func (m *AuctionRepository) Create(ctx context.Context, auction *model.Auction) error {
	args := m.Called(ctx, auction)
	return args.Error(0)
}

func (m *AuctionRepository) Update(ctx context.Context, auction *model.Auction) error {
	args := m.Called(ctx, auction)
	return args.Error(0)
}

func (m *AuctionRepository) GetByID(id int64) (*model.Auction, error) {
	args := m.Called(id)
	return args.Get(0).(*model.Auction), args.Error(1)
}

func (m *AuctionRepository) GetByIDForUpdate(ctx context.Context, id int64) (*model.Auction, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*model.Auction), args.Error(1)
}

func (m *AuctionRepository) GetByVehicleID(vehicleID int64) (*model.Auction, error) {
	args := m.Called(vehicleID)
	return args.Get(0).(*model.Auction), args.Error(1)
}

func (m *AuctionRepository) List(query repository.ListAuctionsQuery) ([]model.Auction, error) {
	args := m.Called(query)
	return args.Get(0).([]model.Auction), args.Error(1)
}

func (m *AuctionRepository) FindDueForActivation(now time.Time, limit int) ([]model.Auction, error) {
	args := m.Called(now, limit)
	return args.Get(0).([]model.Auction), args.Error(1)
}

func (m *AuctionRepository) FindExpired(now time.Time, limit int) ([]model.Auction, error) {
	args := m.Called(now, limit)
	return args.Get(0).([]model.Auction), args.Error(1)
}
