package mocks

import (
	"context"

	"github.com/otomarket/auction-services/auctiongateway/pkg/notifier"
	"github.com/stretchr/testify/mock"
)

type NotifierGateway struct {
	mock.Mock
}

func (m *NotifierGateway) Deliver(ctx context.Context, msg notifier.Message) (notifier.Response, error) {
	args := m.Called(ctx, msg)
	return args.Get(0).(notifier.Response), args.Error(1)
}
