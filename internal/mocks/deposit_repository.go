package mocks

import (
	"context"

	"github.com/otomarket/auction-services/auctiongateway/internal/model"
	"github.com/stretchr/testify/mock"
)

type DepositRepository struct {
	mock.Mock
}

func (m *DepositRepository) Create(ctx context.Context, deposit *model.Deposit) error {
	args := m.Called(ctx, deposit)
	return args.Error(0)
}

func (m *DepositRepository) Update(ctx context.Context, deposit *model.Deposit) error {
	args := m.Called(ctx, deposit)
	return args.Error(0)
}

func (m *DepositRepository) Get(auctionID, userID int64) (*model.Deposit, error) {
	args := m.Called(auctionID, userID)
	return args.Get(0).(*model.Deposit), args.Error(1)
}

func (m *DepositRepository) GetPaid(auctionID, userID int64) (*model.Deposit, error) {
	args := m.Called(auctionID, userID)
	return args.Get(0).(*model.Deposit), args.Error(1)
}

func (m *DepositRepository) GetByPaymentRef(ref string) (*model.Deposit, error) {
	args := m.Called(ref)
	return args.Get(0).(*model.Deposit), args.Error(1)
}

func (m *DepositRepository) ListByAuction(auctionID int64) ([]model.Deposit, error) {
	args := m.Called(auctionID)
	return args.Get(0).([]model.Deposit), args.Error(1)
}
