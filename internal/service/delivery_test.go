package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/otomarket/auction-services/auctiongateway/internal/mocks"
	"github.com/otomarket/auction-services/auctiongateway/internal/service"
	"github.com/otomarket/auction-services/auctiongateway/pkg/notifier"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func deliveryConfig() notifier.Config {
	return notifier.Config{
		Enable:   true,
		Timeout:  time.Second,
		MaxRetry: 3,
	}
}

func TestDelivery_DeliverNotification(t *testing.T) {
	logger := zap.NewNop()

	cmd := service.DeliverNotificationCommand{
		NotificationID: 1,
		UserID:         33,
		Kind:           "OUTBID",
		Title:          "You have been outbid",
		Body:           "Another bidder raised the price to 10200000 on auction 5.",
	}

	t.Run("delivers notification successfully", func(t *testing.T) {
		mockNotificationRepo := &mocks.NotificationRepository{}
		mockGateway := &mocks.NotifierGateway{}

		svc := service.NewDeliveryService(mockNotificationRepo, mockGateway, deliveryConfig(), logger)

		mockGateway.On("Deliver", mock.Anything, mock.MatchedBy(func(msg notifier.Message) bool {
			return msg.UserID == 33 && msg.Kind == "OUTBID"
		})).Return(notifier.Response{DeliveryID: "d-1", Status: "sent"}, nil)

		err := svc.DeliverNotification(context.Background(), cmd)

		assert.NoError(t, err)
		mockGateway.AssertExpectations(t)
		mockNotificationRepo.AssertNotCalled(t, "SetLastError")
	})

	t.Run("skips delivery when gateway disabled", func(t *testing.T) {
		mockNotificationRepo := &mocks.NotificationRepository{}
		mockGateway := &mocks.NotifierGateway{}

		cfg := deliveryConfig()
		cfg.Enable = false
		svc := service.NewDeliveryService(mockNotificationRepo, mockGateway, cfg, logger)

		err := svc.DeliverNotification(context.Background(), cmd)

		assert.NoError(t, err)
		mockGateway.AssertNotCalled(t, "Deliver", mock.Anything, mock.Anything)
	})

	t.Run("retries transient failure then succeeds", func(t *testing.T) {
		mockNotificationRepo := &mocks.NotificationRepository{}
		mockGateway := &mocks.NotifierGateway{}

		svc := service.NewDeliveryService(mockNotificationRepo, mockGateway, deliveryConfig(), logger)

		mockGateway.On("Deliver", mock.Anything, mock.Anything).
			Return(notifier.Response{}, errors.New(notifier.ErrorCodeServerError)).Once()
		mockGateway.On("Deliver", mock.Anything, mock.Anything).
			Return(notifier.Response{DeliveryID: "d-1"}, nil).Once()

		err := svc.DeliverNotification(context.Background(), cmd)

		assert.NoError(t, err)
		mockGateway.AssertNumberOfCalls(t, "Deliver", 2)
	})

	t.Run("drops bad payload after recording the error", func(t *testing.T) {
		mockNotificationRepo := &mocks.NotificationRepository{}
		mockGateway := &mocks.NotifierGateway{}

		svc := service.NewDeliveryService(mockNotificationRepo, mockGateway, deliveryConfig(), logger)

		mockGateway.On("Deliver", mock.Anything, mock.Anything).
			Return(notifier.Response{}, errors.New(notifier.ErrorCodeBadPayload)).Once()
		mockNotificationRepo.On("SetLastError", mock.Anything, int64(1), notifier.ErrorCodeBadPayload).Return(nil)

		err := svc.DeliverNotification(context.Background(), cmd)

		assert.NoError(t, err)
		mockGateway.AssertNumberOfCalls(t, "Deliver", 1)
		mockNotificationRepo.AssertExpectations(t)
	})

	t.Run("requeues after exhausting retries on server errors", func(t *testing.T) {
		mockNotificationRepo := &mocks.NotificationRepository{}
		mockGateway := &mocks.NotifierGateway{}

		svc := service.NewDeliveryService(mockNotificationRepo, mockGateway, deliveryConfig(), logger)

		mockGateway.On("Deliver", mock.Anything, mock.Anything).
			Return(notifier.Response{}, errors.New(notifier.ErrorCodeServerError)).Times(3)
		mockNotificationRepo.On("SetLastError", mock.Anything, int64(1), notifier.ErrorCodeServerError).Return(nil)

		err := svc.DeliverNotification(context.Background(), cmd)

		assert.Error(t, err)
		assert.True(t, isTemporaryError(err))
		mockGateway.AssertNumberOfCalls(t, "Deliver", 3)
	})
}

func isTemporaryError(err error) bool {
	type temporary interface {
		Temporary() bool
	}
	te, ok := err.(temporary)
	return ok && te.Temporary()
}
