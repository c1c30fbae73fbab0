package v1

import (
	"github.com/gofiber/fiber/v2"
	"github.com/otomarket/auction-services/auctiongateway/internal/api/middleware"
	"github.com/otomarket/auction-services/auctiongateway/internal/constants"
	"github.com/otomarket/auction-services/auctiongateway/internal/service"
	"github.com/otomarket/auction-services/auctiongateway/pkg/validator"
	"go.uber.org/zap"
)

type Handler struct {
	logger        *zap.Logger
	vehicles      service.VehicleService
	auctions      service.AuctionService
	deposits      service.DepositService
	bids          service.BidService
	notifications service.NotificationService
}

func NewHandler(logger *zap.Logger, vehicles service.VehicleService, auctions service.AuctionService,
	deposits service.DepositService, bids service.BidService, notifications service.NotificationService) *Handler {
	return &Handler{
		logger:        logger,
		vehicles:      vehicles,
		auctions:      auctions,
		deposits:      deposits,
		bids:          bids,
		notifications: notifications,
	}
}

func (h *Handler) Pong(c *fiber.Ctx) error {
	return c.SendString("pong")
}

func (h *Handler) CreateVehicle(c *fiber.Ctx) error {
	var request CreateVehicleRequest
	if err := h.parseAndValidate(c, &request); err != nil {
		return err
	}

	cmd := service.CreateVehicleCommand{
		SellerID:      middleware.UserID(c),
		Category:      request.Category,
		Brand:         request.Brand,
		Model:         request.Model,
		Year:          request.Year,
		Description:   request.Description,
		StartingPrice: request.StartingPrice,
	}

	vehicleID, err := h.vehicles.CreateVehicle(c.UserContext(), cmd)
	if err != nil {
		h.logger.Error("Failed to create vehicle",
			zap.Error(err),
			zap.Int64("sellerID", cmd.SellerID),
			zap.String("brand", cmd.Brand))
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(CreateVehicleResponse{VehicleID: vehicleID, Status: "PENDING"})
}

func (h *Handler) ApproveVehicle(c *fiber.Ctx) error {
	vehicleID, err := c.ParamsInt("id")
	if err != nil {
		return service.NewServiceError(constants.ErrCodeVehicleNotFound, err)
	}

	if err := h.vehicles.ApproveVehicle(c.UserContext(), int64(vehicleID)); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"status": "APPROVED"})
}

func (h *Handler) CreateAuction(c *fiber.Ctx) error {
	vehicleID, err := c.ParamsInt("id")
	if err != nil {
		return service.NewServiceError(constants.ErrCodeVehicleNotFound, err)
	}

	var request CreateAuctionRequest
	if err := h.parseAndValidate(c, &request); err != nil {
		return err
	}

	cmd := service.CreateAuctionCommand{
		VehicleID:     int64(vehicleID),
		SellerID:      middleware.UserID(c),
		StartingPrice: request.StartingPrice,
		ReservePrice:  request.ReservePrice,
		DurationHours: request.DurationHours,
		StartTime:     request.StartTime,
	}

	resp, err := h.auctions.CreateAuction(c.UserContext(), cmd)
	if err != nil {
		h.logger.Error("Failed to create auction",
			zap.Error(err),
			zap.Int64("vehicleID", cmd.VehicleID),
			zap.Int64("sellerID", cmd.SellerID))
		return err
	}

	h.logger.Info("Auction scheduled",
		zap.Int64("auctionID", resp.AuctionID),
		zap.Int64("vehicleID", cmd.VehicleID))

	return c.Status(fiber.StatusCreated).JSON(CreateAuctionResponse{
		AuctionID:     resp.AuctionID,
		DepositAmount: resp.DepositAmount,
		EndTime:       resp.EndTime,
	})
}

func (h *Handler) ListAuctions(c *fiber.Ctx) error {
	query := service.ListAuctionsQuery{
		Status:   c.Query("status"),
		Category: c.Query("category"),
		Limit:    c.QueryInt("limit", 20),
		Offset:   c.QueryInt("offset", 0),
	}

	auctions, err := h.auctions.ListAuctions(c.UserContext(), query)
	if err != nil {
		return err
	}

	return c.JSON(ListAuctionsResponse{Auctions: auctions, Total: len(auctions)})
}

func (h *Handler) GetAuction(c *fiber.Ctx) error {
	auctionID, err := c.ParamsInt("id")
	if err != nil {
		return service.NewServiceError(constants.ErrCodeAuctionNotFound, err)
	}

	detail, err := h.auctions.GetAuction(c.UserContext(), int64(auctionID), middleware.UserID(c))
	if err != nil {
		return err
	}

	return c.JSON(detail)
}

func (h *Handler) PayDeposit(c *fiber.Ctx) error {
	auctionID, err := c.ParamsInt("id")
	if err != nil {
		return service.NewServiceError(constants.ErrCodeAuctionNotFound, err)
	}

	cmd := service.PayDepositCommand{AuctionID: int64(auctionID), UserID: middleware.UserID(c)}

	resp, err := h.deposits.PayDeposit(c.UserContext(), cmd)
	if err != nil {
		h.logger.Error("Failed to pay deposit",
			zap.Error(err),
			zap.Int64("auctionID", cmd.AuctionID),
			zap.Int64("userID", cmd.UserID))
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(PayDepositResponse{
		DepositID:  resp.DepositID,
		Amount:     resp.Amount,
		Status:     resp.Status,
		PaymentRef: resp.PaymentRef,
	})
}

func (h *Handler) PlaceBid(c *fiber.Ctx) error {
	auctionID, err := c.ParamsInt("id")
	if err != nil {
		return service.NewServiceError(constants.ErrCodeAuctionNotFound, err)
	}

	var request PlaceBidRequest
	if err := h.parseAndValidate(c, &request); err != nil {
		return err
	}

	cmd := service.PlaceBidCommand{
		AuctionID: int64(auctionID),
		UserID:    middleware.UserID(c),
		Amount:    request.Amount,
		IPAddress: c.IP(),
		UserAgent: c.Get(fiber.HeaderUserAgent),
	}

	resp, err := h.bids.PlaceBid(c.UserContext(), cmd)
	if err != nil {
		h.logger.Warn("Bid rejected",
			zap.Error(err),
			zap.Int64("auctionID", cmd.AuctionID),
			zap.Int64("userID", cmd.UserID),
			zap.Int64("amount", cmd.Amount))
		return err
	}

	h.logger.Info("Bid accepted",
		zap.Int64("auctionID", cmd.AuctionID),
		zap.Int64("userID", cmd.UserID),
		zap.Int64("amount", cmd.Amount))

	return c.JSON(PlaceBidResponse{
		Success:      true,
		CurrentPrice: resp.CurrentPrice,
		TotalBids:    resp.TotalBids,
		EndTime:      resp.EndTime,
	})
}

func (h *Handler) ListBids(c *fiber.Ctx) error {
	auctionID, err := c.ParamsInt("id")
	if err != nil {
		return service.NewServiceError(constants.ErrCodeAuctionNotFound, err)
	}

	bids, err := h.bids.History(c.UserContext(), int64(auctionID))
	if err != nil {
		return err
	}

	return c.JSON(BidHistoryResponse{Bids: bids, Total: len(bids)})
}

func (h *Handler) ListNotifications(c *fiber.Ctx) error {
	query := service.ListNotificationsQuery{
		UserID: middleware.UserID(c),
		Limit:  c.QueryInt("limit", 20),
		Offset: c.QueryInt("offset", 0),
	}

	notifications, err := h.notifications.ListByUser(c.UserContext(), query)
	if err != nil {
		return err
	}

	return c.JSON(NotificationsResponse{Notifications: notifications, Total: len(notifications)})
}

func (h *Handler) MarkNotificationRead(c *fiber.Ctx) error {
	notificationID, err := c.ParamsInt("id")
	if err != nil {
		return service.NewServiceError(constants.ErrCodeNotifNotFound, err)
	}

	if err := h.notifications.MarkRead(c.UserContext(), int64(notificationID), middleware.UserID(c)); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"status": "read"})
}

// PaymentCallback receives the provider's asynchronous settlement
// result. Failed charges are acknowledged without state change so the
// provider stops retrying; the deposit stays PENDING.
func (h *Handler) PaymentCallback(c *fiber.Ctx) error {
	var request PaymentCallbackRequest
	if err := h.parseAndValidate(c, &request); err != nil {
		return err
	}

	if request.Status != "settled" {
		h.logger.Warn("Payment callback reported failure",
			zap.String("paymentRef", request.PaymentRef),
			zap.Int64("transactionID", request.TransactionID))
		return c.JSON(fiber.Map{"status": "acknowledged"})
	}

	cmd := service.ConfirmDepositCommand{
		PaymentRef:    request.PaymentRef,
		TransactionID: request.TransactionID,
	}

	if err := h.deposits.ConfirmDeposit(c.UserContext(), cmd); err != nil {
		h.logger.Error("Failed to confirm deposit",
			zap.Error(err),
			zap.String("paymentRef", request.PaymentRef))
		return err
	}

	return c.JSON(fiber.Map{"status": "confirmed"})
}

func (h *Handler) parseAndValidate(c *fiber.Ctx, request any) error {
	if err := c.BodyParser(request); err != nil {
		h.logger.Warn("Failed to parse body",
			zap.Error(err),
			zap.String("body", string(c.Body())))
		return service.NewServiceError(constants.ErrCodeInvalidRequestBody, err)
	}

	if err := validator.GetValidator().Struct(request); err != nil {
		h.logger.Warn("Request validation failed", zap.Error(err))
		return service.NewServiceError(constants.ErrCodeValidationFailed, err)
	}

	return nil
}
