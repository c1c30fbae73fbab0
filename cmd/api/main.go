package main

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/otomarket/auction-services/auctiongateway/internal/api"
	"github.com/otomarket/auction-services/auctiongateway/internal/api/middleware"
	v1 "github.com/otomarket/auction-services/auctiongateway/internal/api/v1"
	"github.com/otomarket/auction-services/auctiongateway/internal/apperror"
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
			NewFiberApp,
			NewConnectionDB,

			repository.NewVehicleRepository,
			repository.NewAuctionRepository,
			repository.NewDepositRepository,
			repository.NewBidRepository,
			repository.NewNotificationRepository,
			repository.NewTransactionManager,

			NewPaymentProvider,
			service.NewPaymentService,
			service.NewVehicleService,
			service.NewNotificationService,
			service.NewAuctionService,
			service.NewDepositService,
			service.NewMaskedDirectory,
			service.NewBidService,

			middleware.NewBidRateLimiter,
			v1.NewHandler,
		),
		fx.Invoke(startServer),
	).Run()
}

func startServer(app *fiber.App, handler *v1.Handler, bidLimiter *middleware.BidRateLimiter,
	cfg *config.Config, lc fx.Lifecycle) {
	api.SetupRoutes(app, handler, bidLimiter)
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go app.Listen(cfg.API.Port)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return app.ShutdownWithContext(ctx)
		},
	})
}

func NewFiberApp() *fiber.App {
	return fiber.New(fiber.Config{ErrorHandler: apperror.ErrorHandler()})
}

func NewConnectionDB(cfg *config.Config, logger *zap.Logger) (*gorm.DB, error) {
	ctx := context.Background()
	return mysql.NewConnection(ctx, cfg.Database, logger)
}

func NewPaymentProvider(cfg *config.Config) paymentprovider.PaymentProvider {
	client := httpclient.NewHTTPClient(cfg.PaymentProvider.Timeout)
	return paymentprovider.NewPaymentProvider(cfg.PaymentProvider, client)
}
