package service

import (
	"context"
	"time"

	"github.com/otomarket/auction-services/auctiongateway/internal/repository"
	"go.uber.org/zap"
)

type NotificationQueueService interface {
	FindNotificationsToQueue(ctx context.Context, limit int) ([]DeliverNotificationCommand, error)
	MarkNotificationAsQueued(ctx context.Context, notificationID int64) error
}

type notificationQueue struct {
	notificationRepo repository.NotificationRepository
	logger           *zap.Logger
}

func NewNotificationQueueService(notificationRepo repository.NotificationRepository,
	logger *zap.Logger) NotificationQueueService {
	return &notificationQueue{notificationRepo: notificationRepo, logger: logger}
}

func (n *notificationQueue) FindNotificationsToQueue(ctx context.Context, limit int) ([]DeliverNotificationCommand, error) {
	n.logger.Debug("Finding notifications to publish", zap.Int("batchSize", limit))

	records, err := n.notificationRepo.FindUnpublished(limit)
	if err != nil {
		n.logger.Error("Failed to find unpublished notifications", zap.Error(err))
		return nil, err
	}

	if len(records) == 0 {
		n.logger.Debug("No notifications found to publish")
		return nil, nil
	}

	commands := make([]DeliverNotificationCommand, 0, len(records))
	for _, record := range records {
		commands = append(commands, DeliverNotificationCommand{
			NotificationID: record.ID,
			UserID:         record.UserID,
			Kind:           string(record.Kind),
			Title:          record.Title,
			Body:           record.Body,
		})
	}

	return commands, nil
}

func (n *notificationQueue) MarkNotificationAsQueued(ctx context.Context, notificationID int64) error {
	if err := n.notificationRepo.MarkPublished(ctx, notificationID, time.Now()); err != nil {
		n.logger.Error("Failed to mark notification as published",
			zap.Error(err),
			zap.Int64("notificationID", notificationID))
		return err
	}

	n.logger.Debug("Successfully marked notification as published",
		zap.Int64("notificationID", notificationID))

	return nil
}
