package publishers

import (
	"context"
	"encoding/json"

	"github.com/otomarket/auction-services/auctiongateway/internal/service"
	"github.com/otomarket/auction-services/auctiongateway/pkg/mq"
	"go.uber.org/zap"
)

type NotifyPublisher interface {
	Publish(ctx context.Context) error
}

type notifyPublisher struct {
	service   service.NotificationQueueService
	publisher mq.Publisher
	batchSize int
	logger    *zap.Logger
}

func NewNotifyPublisher(service service.NotificationQueueService, publisher mq.Publisher,
	batchSize int, logger *zap.Logger) NotifyPublisher {
	return &notifyPublisher{service: service, publisher: publisher, batchSize: batchSize, logger: logger}
}

func (n *notifyPublisher) Publish(ctx context.Context) error {
	notifications, err := n.service.FindNotificationsToQueue(ctx, n.batchSize)
	if err != nil {
		return err
	}

	if len(notifications) == 0 {
		return nil
	}

	n.logger.Info("Publishing notifications", zap.Int("count", len(notifications)))

	successCount := 0
	for _, notification := range notifications {
		body, _ := json.Marshal(notification)
		if err := n.publisher.Publish(ctx, "", "auction.notify", body); err != nil {
			n.logger.Error("Failed to publish notification",
				zap.Error(err),
				zap.Int64("notificationID", notification.NotificationID))
			continue
		}

		if err := n.service.MarkNotificationAsQueued(ctx, notification.NotificationID); err != nil {
			continue
		}

		successCount++
	}

	if successCount > 0 {
		n.logger.Info("Successfully published notifications",
			zap.Int("published", successCount),
			zap.Int("total", len(notifications)))
	}

	return nil
}
