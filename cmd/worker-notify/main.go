package main

import (
	"context"

	"github.com/otomarket/auction-services/auctiongateway/internal/config"
	"github.com/otomarket/auction-services/auctiongateway/internal/consumers"
	"github.com/otomarket/auction-services/auctiongateway/internal/repository"
	"github.com/otomarket/auction-services/auctiongateway/internal/service"
	"github.com/otomarket/auction-services/auctiongateway/pkg/httpclient"
	"github.com/otomarket/auction-services/auctiongateway/pkg/mq"
	"github.com/otomarket/auction-services/auctiongateway/pkg/mysql"
	"github.com/otomarket/auction-services/auctiongateway/pkg/notifier"
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
			NewMQConsumer,

			repository.NewNotificationRepository,
			NewNotifierGateway,
			NewDeliveryService,

			consumers.NewNotifyConsumer,
		),
		fx.Invoke(runNotifyConsumer),
	).Run()
}

func runNotifyConsumer(cfg *config.Config, notifyConsumer consumers.NotifyConsumer, logger *zap.Logger,
	rabbit *mq.RabbitMQ, lc fx.Lifecycle,
) {
	appCtx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := rabbit.DeclareTopology([]string{"auction.notify"}); err != nil {
				logger.Error("declare topology failed", zap.Error(err))
				return err
			}
			logger.Info("queue declared", zap.String("queue", "auction.notify"))

			go func() {
				if err := notifyConsumer.Consume(appCtx); err != nil {
					logger.Error("consumer exited", zap.Error(err))
				}
			}()

			logger.Info("notify consumer started")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping notify consumer")
			cancel()
			return rabbit.Close()
		},
	})
}

func NewConnectionDB(cfg *config.Config, logger *zap.Logger) (*gorm.DB, error) {
	ctx := context.Background()
	return mysql.NewConnection(ctx, cfg.Database, logger)
}

func NewNotifierGateway(cfg *config.Config) notifier.Gateway {
	client := httpclient.NewHTTPClient(cfg.Notifier.Timeout)
	return notifier.NewHTTPGateway(cfg.Notifier, client)
}

func NewDeliveryService(notificationRepo repository.NotificationRepository, gateway notifier.Gateway,
	cfg *config.Config, logger *zap.Logger) service.DeliveryService {
	return service.NewDeliveryService(notificationRepo, gateway, cfg.Notifier, logger)
}

func NewMQConnection(cfg *config.Config, logger *zap.Logger) (*mq.RabbitMQ, error) {
	return mq.NewConnection(cfg.RabbitMQ, logger)
}

func NewMQConsumer(rabbitMQ *mq.RabbitMQ) (mq.Consumer, error) {
	return rabbitMQ.CreateConsumer()
}
