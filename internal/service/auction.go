package service

import (
	"context"
	"errors"
	"time"

	"github.com/otomarket/auction-services/auctiongateway/internal/config"
	"github.com/otomarket/auction-services/auctiongateway/internal/constants"
	"github.com/otomarket/auction-services/auctiongateway/internal/model"
	"github.com/otomarket/auction-services/auctiongateway/internal/repository"
	"go.uber.org/zap"
)

type AuctionService interface {
	CreateAuction(ctx context.Context, cmd CreateAuctionCommand) (CreateAuctionResponse, error)
	GetAuction(ctx context.Context, auctionID, userID int64) (AuctionDetail, error)
	ListAuctions(ctx context.Context, query ListAuctionsQuery) ([]AuctionSummary, error)
	ActivateDue(ctx context.Context, now time.Time) (int, error)
	CloseExpired(ctx context.Context, now time.Time) (int, error)
}

// NextEndTime is the auto-extend policy: a bid landing inside the
// trailing window pushes the deadline out by the extension. Pure so the
// policy is reproducible from its inputs alone.
//
// There is no cap on repeat extensions; sustained last-minute bidding
// keeps an auction open indefinitely.
func NextEndTime(endTime, now time.Time, window, extendBy time.Duration) time.Time {
	if endTime.Sub(now) <= window {
		return endTime.Add(extendBy)
	}
	return endTime
}

type auction struct {
	auctionRepo   repository.AuctionRepository
	vehicleRepo   repository.VehicleRepository
	bidRepo       repository.BidRepository
	deposits      DepositService
	txManager     repository.TxManager
	notifications NotificationService
	cfg           config.Auction
	logger        *zap.Logger
}

func NewAuctionService(auctionRepo repository.AuctionRepository, vehicleRepo repository.VehicleRepository,
	bidRepo repository.BidRepository, deposits DepositService, txManager repository.TxManager,
	notifications NotificationService, cfg *config.Config, logger *zap.Logger) AuctionService {
	return &auction{auctionRepo: auctionRepo, vehicleRepo: vehicleRepo, bidRepo: bidRepo,
		deposits: deposits, txManager: txManager, notifications: notifications,
		cfg: cfg.Auction, logger: logger}
}

func (a *auction) CreateAuction(ctx context.Context, cmd CreateAuctionCommand) (CreateAuctionResponse, error) {
	vehicle, err := a.vehicleRepo.GetByID(cmd.VehicleID)
	if err != nil {
		if errors.Is(err, repository.ErrVehicleNotFound) {
			return CreateAuctionResponse{}, NewServiceError(constants.ErrCodeVehicleNotFound, err)
		}

		a.logger.Error("Failed to load vehicle", zap.Int64("vehicleID", cmd.VehicleID), zap.Error(err))
		return CreateAuctionResponse{}, NewServiceError(ErrCodeDatabase, err)
	}

	if vehicle.SellerID != cmd.SellerID {
		return CreateAuctionResponse{}, NewServiceError(constants.ErrCodeAuthorization,
			errors.New("only the seller may open an auction"))
	}

	if !vehicle.IsApproved() {
		return CreateAuctionResponse{}, NewServiceError(constants.ErrCodeVehicleNotApproved,
			errors.New("vehicle is not approved"))
	}

	if cmd.DurationHours == 0 {
		cmd.DurationHours = a.cfg.DefaultDurationHours
	}

	if err := a.validateAuctionParams(cmd); err != nil {
		return CreateAuctionResponse{}, err
	}

	depositAmount := cmd.StartingPrice * int64(a.cfg.DepositPercentage) / 100
	endTime := cmd.StartTime.Add(time.Duration(cmd.DurationHours) * time.Hour)

	auction := model.Auction{
		VehicleID:            cmd.VehicleID,
		StartingPrice:        cmd.StartingPrice,
		CurrentPrice:         cmd.StartingPrice,
		ReservePrice:         cmd.ReservePrice,
		DepositAmount:        depositAmount,
		DepositPercentage:    a.cfg.DepositPercentage,
		StartTime:            cmd.StartTime,
		EndTime:              endTime,
		DurationHours:        cmd.DurationHours,
		PaymentDeadlineHours: a.cfg.PaymentDeadlineHours,
		Status:               model.AuctionStatusScheduled,
		TotalBids:            0,
		CreatedAt:            time.Now(),
		UpdatedAt:            time.Now(),
	}

	err = a.auctionRepo.Create(ctx, &auction)
	if err != nil {
		if errors.Is(err, repository.ErrAuctionDuplicate) {
			a.logger.Warn("Vehicle already has an auction", zap.Int64("vehicleID", cmd.VehicleID))
			return CreateAuctionResponse{}, NewServiceError(constants.ErrCodeAuctionExists, err)
		}

		a.logger.Error("Failed to create auction", zap.Int64("vehicleID", cmd.VehicleID), zap.Error(err))
		return CreateAuctionResponse{}, NewServiceError(ErrCodeDatabase, err)
	}

	a.logger.Info("Auction created",
		zap.Int64("auctionID", auction.ID),
		zap.Int64("vehicleID", cmd.VehicleID),
		zap.Int64("startingPrice", cmd.StartingPrice),
		zap.Time("endTime", endTime))

	return CreateAuctionResponse{
		AuctionID:     auction.ID,
		DepositAmount: depositAmount,
		EndTime:       endTime,
	}, nil
}

func (a *auction) validateAuctionParams(cmd CreateAuctionCommand) error {
	if cmd.StartingPrice < a.cfg.MinStartingPrice {
		return NewServiceError(constants.ErrCodeValidationFailed,
			errors.New("starting price below minimum"))
	}

	if cmd.DurationHours < a.cfg.MinDurationHours || cmd.DurationHours > a.cfg.MaxDurationHours {
		return NewServiceError(constants.ErrCodeValidationFailed,
			errors.New("duration out of range"))
	}

	if !cmd.StartTime.After(time.Now()) {
		return NewServiceError(constants.ErrCodeValidationFailed,
			errors.New("start time must be in the future"))
	}

	if cmd.ReservePrice != nil && *cmd.ReservePrice < 0 {
		return NewServiceError(constants.ErrCodeValidationFailed,
			errors.New("reserve price must not be negative"))
	}

	return nil
}

func (a *auction) GetAuction(ctx context.Context, auctionID, userID int64) (AuctionDetail, error) {
	auc, err := a.auctionRepo.GetByID(auctionID)
	if err != nil {
		if errors.Is(err, repository.ErrAuctionNotFound) {
			return AuctionDetail{}, NewServiceError(constants.ErrCodeAuctionNotFound, err)
		}

		return AuctionDetail{}, NewServiceError(ErrCodeDatabase, err)
	}

	depositPaid := false
	if userID > 0 {
		depositPaid, err = a.deposits.HasPaidDeposit(ctx, auctionID, userID)
		if err != nil {
			return AuctionDetail{}, err
		}
	}

	if err := a.vehicleRepo.IncrementViews(ctx, auc.VehicleID); err != nil {
		a.logger.Warn("Failed to increment vehicle views",
			zap.Int64("vehicleID", auc.VehicleID), zap.Error(err))
	}

	now := time.Now()
	canBid := depositPaid && auc.IsActive(now) && auc.Vehicle.SellerID != userID

	return AuctionDetail{
		AuctionID:     auc.ID,
		VehicleID:     auc.VehicleID,
		Brand:         auc.Vehicle.Brand,
		Model:         auc.Vehicle.Model,
		Year:          auc.Vehicle.Year,
		Category:      auc.Vehicle.Category,
		StartingPrice: auc.StartingPrice,
		CurrentPrice:  auc.CurrentPrice,
		DepositAmount: auc.DepositAmount,
		StartTime:     auc.StartTime,
		EndTime:       auc.EndTime,
		Status:        string(auc.Status),
		TotalBids:     auc.TotalBids,
		WinnerID:      auc.WinnerID,
		DepositPaid:   depositPaid,
		CanBid:        canBid,
	}, nil
}

func (a *auction) ListAuctions(ctx context.Context, query ListAuctionsQuery) ([]AuctionSummary, error) {
	statuses := []model.AuctionStatus{model.AuctionStatusActive, model.AuctionStatusScheduled}
	if query.Status != "" {
		statuses = []model.AuctionStatus{model.AuctionStatus(query.Status)}
	}

	limit := query.Limit
	if limit <= 0 || limit > 100 {
		limit = 12
	}

	auctions, err := a.auctionRepo.List(repository.ListAuctionsQuery{
		Statuses: statuses,
		Category: query.Category,
		Limit:    limit,
		Offset:   query.Offset,
	})
	if err != nil {
		a.logger.Error("Failed to list auctions", zap.Error(err))
		return nil, NewServiceError(ErrCodeDatabase, err)
	}

	summaries := make([]AuctionSummary, 0, len(auctions))
	for _, auc := range auctions {
		summaries = append(summaries, AuctionSummary{
			AuctionID:    auc.ID,
			VehicleID:    auc.VehicleID,
			Brand:        auc.Vehicle.Brand,
			Model:        auc.Vehicle.Model,
			CurrentPrice: auc.CurrentPrice,
			EndTime:      auc.EndTime,
			Status:       string(auc.Status),
			TotalBids:    auc.TotalBids,
		})
	}

	return summaries, nil
}

func (a *auction) ActivateDue(ctx context.Context, now time.Time) (int, error) {
	due, err := a.auctionRepo.FindDueForActivation(now, 100)
	if err != nil {
		return 0, err
	}

	activated := 0
	for _, auc := range due {
		update := model.Auction{
			ID:        auc.ID,
			Status:    model.AuctionStatusActive,
			UpdatedAt: time.Now(),
		}

		if err := a.auctionRepo.Update(ctx, &update); err != nil {
			a.logger.Error("Failed to activate auction", zap.Int64("auctionID", auc.ID), zap.Error(err))
			continue
		}

		a.logger.Info("Auction activated", zap.Int64("auctionID", auc.ID))
		activated++
	}

	return activated, nil
}

// CloseExpired settles every auction whose deadline has passed. The
// highest bid wins only when it meets the reserve price.
func (a *auction) CloseExpired(ctx context.Context, now time.Time) (int, error) {
	expired, err := a.auctionRepo.FindExpired(now, 100)
	if err != nil {
		return 0, err
	}

	closed := 0
	for _, auc := range expired {
		winnerID, winningAmount, settled, err := a.settle(ctx, auc.ID, now)
		if err != nil {
			a.logger.Error("Failed to close auction", zap.Int64("auctionID", auc.ID), zap.Error(err))
			continue
		}

		if !settled {
			continue
		}

		closed++

		if winnerID == nil {
			a.logger.Info("Auction ended without winner", zap.Int64("auctionID", auc.ID))
		} else {
			a.logger.Info("Auction ended",
				zap.Int64("auctionID", auc.ID),
				zap.Int64("winnerID", *winnerID),
				zap.Int64("winningAmount", winningAmount))

			// Best-effort: a failed notification never unwinds settlement.
			if err := a.notifications.RecordAuctionWon(ctx, *winnerID, auc.ID, winningAmount); err != nil {
				a.logger.Warn("Failed to record won notification",
					zap.Int64("auctionID", auc.ID),
					zap.Error(err))
			}
		}

		// Losers get their deposits back; without a winner everyone does.
		refunded, err := a.deposits.RefundAuctionDeposits(ctx, auc.ID, winnerID)
		if err != nil {
			a.logger.Warn("Failed to refund deposits",
				zap.Int64("auctionID", auc.ID),
				zap.Error(err))
		} else if refunded > 0 {
			a.logger.Info("Deposits refunded",
				zap.Int64("auctionID", auc.ID),
				zap.Int("refunded", refunded))
		}
	}

	return closed, nil
}

func (a *auction) settle(ctx context.Context, auctionID int64, now time.Time) (*int64, int64, bool, error) {
	var winnerID *int64
	var winningAmount int64
	settled := false

	err := a.txManager.WithTx(ctx, func(ctx context.Context) error {
		auc, err := a.auctionRepo.GetByIDForUpdate(ctx, auctionID)
		if err != nil {
			return err
		}

		// Another worker may have closed it, or a late bid extended it.
		if auc.Status == model.AuctionStatusEnded || auc.EndTime.After(now) {
			return nil
		}

		highest, err := a.bidRepo.GetHighest(auctionID)
		if err != nil && !errors.Is(err, repository.ErrNoBids) {
			return err
		}

		if highest != nil && (auc.ReservePrice == nil || highest.BidAmount >= *auc.ReservePrice) {
			winnerID = &highest.UserID
			winningAmount = highest.BidAmount
		}

		update := model.Auction{
			ID:        auc.ID,
			Status:    model.AuctionStatusEnded,
			WinnerID:  winnerID,
			UpdatedAt: time.Now(),
		}

		if err := a.auctionRepo.Update(ctx, &update); err != nil {
			return err
		}

		settled = true
		return nil
	})

	return winnerID, winningAmount, settled, err
}
