package mocks

import (
	"context"

	"github.com/otomarket/auction-services/auctiongateway/pkg/paymentprovider"
	"github.com/stretchr/testify/mock"
)

type PaymentProvider struct {
	mock.Mock
}

func (m *PaymentProvider) Charge(ctx context.Context, request paymentprovider.ChargeRequest) (paymentprovider.Response, error) {
	args := m.Called(ctx, request)
	return args.Get(0).(paymentprovider.Response), args.Error(1)
}

func (m *PaymentProvider) Refund(ctx context.Context, request paymentprovider.ChargeRequest) (paymentprovider.Response, error) {
	args := m.Called(ctx, request)
	return args.Get(0).(paymentprovider.Response), args.Error(1)
}
