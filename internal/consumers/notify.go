package consumers

import (
	"context"
	"encoding/json"

	"github.com/otomarket/auction-services/auctiongateway/internal/service"
	"github.com/otomarket/auction-services/auctiongateway/pkg/mq"
	"go.uber.org/zap"
)

type NotifyConsumer interface {
	Consume(ctx context.Context) error
}

type notifyConsumer struct {
	service  service.DeliveryService
	consumer mq.Consumer
	logger   *zap.Logger
}

func NewNotifyConsumer(service service.DeliveryService, consumer mq.Consumer, logger *zap.Logger) NotifyConsumer {
	return &notifyConsumer{
		service:  service,
		consumer: consumer,
		logger:   logger,
	}
}

func (n *notifyConsumer) Consume(ctx context.Context) error {
	return n.consumer.Consume(ctx, 1, "auction.notify", n.handleMessage)
}

func (n *notifyConsumer) handleMessage(ctx context.Context, body []byte) error {
	n.logger.Info("received deliver command", zap.ByteString("body", body))

	var cmd service.DeliverNotificationCommand
	if err := json.Unmarshal(body, &cmd); err != nil {
		n.logger.Warn("invalid deliver command", zap.Error(err))
		return err
	}

	return n.service.DeliverNotification(ctx, cmd)
}
