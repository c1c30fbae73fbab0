package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/otomarket/auction-services/auctiongateway/internal/api/middleware"
	v1 "github.com/otomarket/auction-services/auctiongateway/internal/api/v1"
)

func SetupRoutes(app *fiber.App, handler *v1.Handler, bidLimiter *middleware.BidRateLimiter) {
	app.Get("/ping", handler.Pong)

	// Provider callback carries no caller identity.
	app.Post("/v1/payments/callback", handler.PaymentCallback)

	authed := app.Group("/v1", middleware.RequireUser())

	authed.Post("/vehicles", handler.CreateVehicle)
	authed.Post("/vehicles/:id/approve", middleware.RequireAdmin(), handler.ApproveVehicle)
	authed.Post("/vehicles/:id/auction", handler.CreateAuction)

	authed.Get("/auctions", handler.ListAuctions)
	authed.Get("/auctions/:id", handler.GetAuction)
	authed.Post("/auctions/:id/deposit", handler.PayDeposit)
	authed.Post("/auctions/:id/bids", bidLimiter.Limit(), handler.PlaceBid)
	authed.Get("/auctions/:id/bids", handler.ListBids)

	authed.Get("/notifications", handler.ListNotifications)
	authed.Post("/notifications/:id/read", handler.MarkNotificationRead)
}
