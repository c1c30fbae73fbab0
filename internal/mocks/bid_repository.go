package mocks

import (
	"context"

	"github.com/otomarket/auction-services/auctiongateway/internal/model"
	"github.com/stretchr/testify/mock"
)

type BidRepository struct {
	mock.Mock
}

func (m *BidRepository) Create(ctx context.Context, bid *model.Bid) error {
	args := m.Called(ctx, bid)
	return args.Error(0)
}

func (m *BidRepository) GetHighest(auctionID int64) (*model.Bid, error) {
	args := m.Called(auctionID)
	return args.Get(0).(*model.Bid), args.Error(1)
}

func (m *BidRepository) ListRecent(auctionID int64, limit int) ([]model.Bid, error) {
	args := m.Called(auctionID, limit)
	return args.Get(0).([]model.Bid), args.Error(1)
}
