package main

import (
	"context"
	"time"

	"github.com/otomarket/auction-services/auctiongateway/internal/config"
	"github.com/otomarket/auction-services/auctiongateway/internal/repository"
	"github.com/otomarket/auction-services/auctiongateway/internal/service"
	"github.com/otomarket/auction-services/auctiongateway/pkg/httpclient"
	"github.com/otomarket/auction-services/auctiongateway/pkg/mysql"
	"github.com/otomarket/auction-services/auctiongateway/pkg/paymentprovider"
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

			repository.NewVehicleRepository,
			repository.NewAuctionRepository,
			repository.NewDepositRepository,
			repository.NewBidRepository,
			repository.NewNotificationRepository,
			repository.NewTransactionManager,

			NewPaymentProvider,
			service.NewPaymentService,
			service.NewNotificationService,
			service.NewDepositService,
			service.NewAuctionService,
		),
		fx.Invoke(runLifecycleWorker),
	).Run()
}

func runLifecycleWorker(cfg *config.Config, auctions service.AuctionService, logger *zap.Logger,
	lc fx.Lifecycle) {
	appCtx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				ticker := time.NewTicker(cfg.Worker.PollInterval)
				defer ticker.Stop()

				for {
					select {
					case <-ticker.C:
						tick(appCtx, auctions, logger)
					case <-appCtx.Done():
						logger.Info("lifecycle context cancelled")
						return
					}
				}
			}()

			logger.Info("lifecycle worker started")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping lifecycle worker")
			cancel()
			return nil
		},
	})
}

func tick(ctx context.Context, auctions service.AuctionService, logger *zap.Logger) {
	now := time.Now()

	activated, err := auctions.ActivateDue(ctx, now)
	if err != nil {
		logger.Error("failed to activate due auctions", zap.Error(err))
	}

	closed, err := auctions.CloseExpired(ctx, now)
	if err != nil {
		logger.Error("failed to close expired auctions", zap.Error(err))
	}

	if activated > 0 || closed > 0 {
		logger.Info("lifecycle tick",
			zap.Int("activated", activated),
			zap.Int("closed", closed))
	}
}

func NewConnectionDB(cfg *config.Config, logger *zap.Logger) (*gorm.DB, error) {
	ctx := context.Background()
	return mysql.NewConnection(ctx, cfg.Database, logger)
}

func NewPaymentProvider(cfg *config.Config) paymentprovider.PaymentProvider {
	client := httpclient.NewHTTPClient(cfg.PaymentProvider.Timeout)
	return paymentprovider.NewPaymentProvider(cfg.PaymentProvider, client)
}
