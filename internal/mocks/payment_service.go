package mocks

import (
	"context"

	"github.com/otomarket/auction-services/auctiongateway/internal/service"
	"github.com/stretchr/testify/mock"
)

type PaymentService struct {
	mock.Mock
}

func (m *PaymentService) Charge(ctx context.Context, cmd service.ChargeDepositCommand) (bool, error) {
	args := m.Called(ctx, cmd)
	return args.Bool(0), args.Error(1)
}

func (m *PaymentService) Refund(ctx context.Context, cmd service.RefundDepositCommand) error {
	args := m.Called(ctx, cmd)
	return args.Error(0)
}
