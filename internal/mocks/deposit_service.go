package mocks

import (
	"context"

	"github.com/otomarket/auction-services/auctiongateway/internal/service"
	"github.com/stretchr/testify/mock"
)

type DepositService struct {
	mock.Mock
}

func (m *DepositService) PayDeposit(ctx context.Context, cmd service.PayDepositCommand) (service.PayDepositResponse, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(service.PayDepositResponse), args.Error(1)
}

func (m *DepositService) ConfirmDeposit(ctx context.Context, cmd service.ConfirmDepositCommand) error {
	args := m.Called(ctx, cmd)
	return args.Error(0)
}

func (m *DepositService) HasPaidDeposit(ctx context.Context, auctionID, userID int64) (bool, error) {
	args := m.Called(ctx, auctionID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *DepositService) RefundAuctionDeposits(ctx context.Context, auctionID int64, winnerID *int64) (int, error) {
	args := m.Called(ctx, auctionID, winnerID)
	return args.Int(0), args.Error(1)
}
