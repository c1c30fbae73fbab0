package service

import (
	"context"
	"time"

	"github.com/otomarket/auction-services/auctiongateway/internal/repository"
	"github.com/otomarket/auction-services/auctiongateway/pkg/mq"
	"github.com/otomarket/auction-services/auctiongateway/pkg/notifier"
	"go.uber.org/zap"
)

// DeliveryService hands queued notifications to the external gateway.
// Delivery is best-effort: a permanently failed notification records
// its last error and is dropped, never retried forever and never
// surfaced to the bidder.
type DeliveryService interface {
	DeliverNotification(ctx context.Context, cmd DeliverNotificationCommand) error
}

type delivery struct {
	notificationRepo repository.NotificationRepository
	gateway          notifier.Gateway
	cfg              notifier.Config
	logger           *zap.Logger
}

func NewDeliveryService(notificationRepo repository.NotificationRepository, gateway notifier.Gateway,
	cfg notifier.Config, logger *zap.Logger) DeliveryService {
	return &delivery{notificationRepo: notificationRepo, gateway: gateway, cfg: cfg, logger: logger}
}

func (d *delivery) DeliverNotification(ctx context.Context, cmd DeliverNotificationCommand) error {
	if !d.cfg.Enable {
		d.logger.Debug("Notification gateway disabled, skipping delivery",
			zap.Int64("notificationID", cmd.NotificationID))
		return nil
	}

	msg := notifier.Message{
		UserID: cmd.UserID,
		Kind:   cmd.Kind,
		Title:  cmd.Title,
		Body:   cmd.Body,
	}

	response, lastErr := d.sendWithRetry(ctx, msg)
	if lastErr == nil {
		d.logger.Info("Notification delivered",
			zap.Int64("notificationID", cmd.NotificationID),
			zap.String("deliveryID", response.DeliveryID))
		return nil
	}

	if lastErr.Error() == notifier.ErrorCodeBadPayload {
		d.logger.Warn("Notification rejected by gateway, dropping",
			zap.Int64("notificationID", cmd.NotificationID),
			zap.Error(lastErr))

		if err := d.notificationRepo.SetLastError(ctx, cmd.NotificationID, lastErr.Error()); err != nil {
			return mq.Temporary(err)
		}

		return nil
	}

	d.logger.Debug("Temporary delivery failure, will requeue",
		zap.Int64("notificationID", cmd.NotificationID),
		zap.Error(lastErr))

	if err := d.notificationRepo.SetLastError(ctx, cmd.NotificationID, lastErr.Error()); err != nil {
		d.logger.Error("Failed to record delivery error",
			zap.Int64("notificationID", cmd.NotificationID),
			zap.Error(err))
	}

	return mq.Temporary(lastErr)
}

func (d *delivery) sendWithRetry(ctx context.Context, msg notifier.Message) (notifier.Response, error) {
	var lastErr error

	for attempt := 1; attempt <= d.cfg.MaxRetry; attempt++ {
		d.logger.Debug("Attempting to deliver notification",
			zap.Int("attempt", attempt),
			zap.Int64("userID", msg.UserID))

		gatewayCtx, cancel := context.WithTimeout(ctx, d.cfg.Timeout)

		response, err := d.gateway.Deliver(gatewayCtx, msg)
		cancel()

		if err == nil {
			return response, nil
		}

		lastErr = err
		d.logger.Warn("Notification delivery attempt failed",
			zap.Error(err),
			zap.Int("attempt", attempt),
			zap.Int64("userID", msg.UserID))

		if err.Error() == notifier.ErrorCodeBadPayload {
			return notifier.Response{}, err
		}

		if attempt < d.cfg.MaxRetry {
			delay := time.Duration(attempt) * 100 * time.Millisecond

			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return notifier.Response{}, ctx.Err()
			}
		}
	}

	d.logger.Error("All delivery attempts exhausted",
		zap.Error(lastErr),
		zap.Int("maxRetries", d.cfg.MaxRetry),
		zap.Int64("userID", msg.UserID))

	return notifier.Response{}, lastErr
}
