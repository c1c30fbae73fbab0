package main

import (
	"context"
	"time"

	"github.com/otomarket/auction-services/auctiongateway/internal/config"
	"github.com/otomarket/auction-services/auctiongateway/internal/publishers"
	"github.com/otomarket/auction-services/auctiongateway/internal/repository"
	"github.com/otomarket/auction-services/auctiongateway/internal/service"
	"github.com/otomarket/auction-services/auctiongateway/pkg/mq"
	"github.com/otomarket/auction-services/auctiongateway/pkg/mysql"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	fx.New(
		fx.Provide(
			config.Load,
			zap.NewProduction,

			NewConnectionDB,
			NewMQConnection,
			NewMQPublisher,

			repository.NewNotificationRepository,

			service.NewNotificationQueueService,

			NewNotifyPublisher,
		),
		fx.Invoke(runNotifyPublisher),
	).Run()
}

func runNotifyPublisher(cfg *config.Config, publisher publishers.NotifyPublisher, logger *zap.Logger,
	rabbit *mq.RabbitMQ, lc fx.Lifecycle) {
	appCtx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := rabbit.DeclareTopology([]string{"auction.notify"}); err != nil {
				logger.Error("declare topology failed", zap.Error(err))
				return err
			}

			logger.Info("queue declared", zap.String("queue", "auction.notify"))

			go func() {
				ticker := time.NewTicker(cfg.Worker.PollInterval)
				defer ticker.Stop()

				for {
					select {
					case <-ticker.C:
						if err := publisher.Publish(appCtx); err != nil {
							logger.Error("failed to publish notifications", zap.Error(err))
						}
					case <-appCtx.Done():
						logger.Info("publisher context cancelled")
						return
					}
				}
			}()

			logger.Info("notify publisher started")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping notify publisher")
			cancel()
			return rabbit.Close()
		},
	})
}

func NewConnectionDB(cfg *config.Config, logger *zap.Logger) (*gorm.DB, error) {
	ctx := context.Background()
	return mysql.NewConnection(ctx, cfg.Database, logger)
}

func NewMQConnection(cfg *config.Config, logger *zap.Logger) (*mq.RabbitMQ, error) {
	return mq.NewConnection(cfg.RabbitMQ, logger)
}

func NewMQPublisher(rabbitMQ *mq.RabbitMQ) (mq.Publisher, error) {
	return rabbitMQ.CreatePublisher()
}

func NewNotifyPublisher(queue service.NotificationQueueService, publisher mq.Publisher,
	cfg *config.Config, logger *zap.Logger) publishers.NotifyPublisher {
	return publishers.NewNotifyPublisher(queue, publisher, cfg.Worker.BatchSize, logger)
}
