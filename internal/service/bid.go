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

const bidHistoryLimit = 20

type BidService interface {
	PlaceBid(ctx context.Context, cmd PlaceBidCommand) (PlaceBidResponse, error)
	History(ctx context.Context, auctionID int64) ([]BidHistoryEntry, error)
}

type bid struct {
	auctionRepo   repository.AuctionRepository
	bidRepo       repository.BidRepository
	depositRepo   repository.DepositRepository
	txManager     repository.TxManager
	notifications NotificationService
	directory     UserDirectory
	locks         *auctionLocks
	cfg           config.Auction
	logger        *zap.Logger
}

func NewBidService(auctionRepo repository.AuctionRepository, bidRepo repository.BidRepository,
	depositRepo repository.DepositRepository, txManager repository.TxManager,
	notifications NotificationService, directory UserDirectory, cfg *config.Config,
	logger *zap.Logger) BidService {
	return &bid{auctionRepo: auctionRepo, bidRepo: bidRepo, depositRepo: depositRepo,
		txManager: txManager, notifications: notifications, directory: directory,
		locks: newAuctionLocks(), cfg: cfg.Auction, logger: logger}
}

// PlaceBid admits one bid against the auction. The whole
// check-then-update runs under a per-auction mutex plus a row lock in a
// single transaction, so two racing bids can never both clear the
// price check against a stale current_price.
func (b *bid) PlaceBid(ctx context.Context, cmd PlaceBidCommand) (PlaceBidResponse, error) {
	lock := b.locks.Lock(cmd.AuctionID)
	defer lock.Unlock()

	now := time.Now()

	var resp PlaceBidResponse
	var outbidUserID int64

	err := b.txManager.WithTx(ctx, func(ctx context.Context) error {
		auc, err := b.auctionRepo.GetByIDForUpdate(ctx, cmd.AuctionID)
		if err != nil {
			if errors.Is(err, repository.ErrAuctionNotFound) {
				return NewServiceError(constants.ErrCodeAuctionNotFound, err)
			}

			return NewServiceError(ErrCodeDatabase, err)
		}

		if !auc.IsActive(now) {
			return NewServiceError(constants.ErrCodeAuctionNotActive,
				errors.New("auction is not accepting bids"))
		}

		if _, err := b.depositRepo.GetPaid(cmd.AuctionID, cmd.UserID); err != nil {
			if errors.Is(err, repository.ErrDepositNotFound) {
				return NewServiceError(constants.ErrCodeDepositRequired,
					errors.New("no paid deposit for this auction"))
			}

			return NewServiceError(ErrCodeDatabase, err)
		}

		if auc.Vehicle.SellerID == cmd.UserID {
			return NewServiceError(constants.ErrCodeSelfBid,
				errors.New("seller cannot bid on own vehicle"))
		}

		if cmd.Amount < auc.CurrentPrice+b.cfg.MinBidIncrement {
			return NewServiceError(constants.ErrCodeBidTooLow,
				errors.New("bid must exceed current price by the minimum increment"))
		}

		previous, err := b.bidRepo.GetHighest(cmd.AuctionID)
		if err != nil && !errors.Is(err, repository.ErrNoBids) {
			return NewServiceError(ErrCodeDatabase, err)
		}

		record := model.Bid{
			AuctionID:      cmd.AuctionID,
			UserID:         cmd.UserID,
			BidAmount:      cmd.Amount,
			PreviousAmount: auc.CurrentPrice,
			IPAddress:      cmd.IPAddress,
			UserAgent:      cmd.UserAgent,
			CreatedAt:      now,
		}

		if err := b.bidRepo.Create(ctx, &record); err != nil {
			return NewServiceError(ErrCodeDatabase, err)
		}

		// Auto-extend is evaluated against the same locked row the bid
		// was admitted on.
		newEndTime := NextEndTime(auc.EndTime, now, b.cfg.ExtendWindow, b.cfg.ExtendBy)
		if newEndTime.After(auc.EndTime) {
			b.logger.Info("Auction auto-extended",
				zap.Int64("auctionID", cmd.AuctionID),
				zap.Time("oldEndTime", auc.EndTime),
				zap.Time("newEndTime", newEndTime))
		}

		update := model.Auction{
			ID:           auc.ID,
			CurrentPrice: cmd.Amount,
			TotalBids:    auc.TotalBids + 1,
			EndTime:      newEndTime,
			Status:       model.AuctionStatusActive,
			UpdatedAt:    time.Now(),
		}

		if err := b.auctionRepo.Update(ctx, &update); err != nil {
			return NewServiceError(ErrCodeDatabase, err)
		}

		if previous != nil && previous.UserID != cmd.UserID {
			outbidUserID = previous.UserID
		}

		resp = PlaceBidResponse{
			CurrentPrice: cmd.Amount,
			TotalBids:    auc.TotalBids + 1,
			EndTime:      newEndTime,
		}

		return nil
	})

	if err != nil {
		return PlaceBidResponse{}, err
	}

	b.logger.Info("Bid accepted",
		zap.Int64("auctionID", cmd.AuctionID),
		zap.Int64("userID", cmd.UserID),
		zap.Int64("amount", cmd.Amount),
		zap.Int("totalBids", resp.TotalBids))

	// Outbid alert is best-effort; the accepted bid stands regardless.
	if outbidUserID != 0 {
		if err := b.notifications.RecordOutbid(ctx, outbidUserID, cmd.AuctionID, cmd.Amount); err != nil {
			b.logger.Warn("Failed to record outbid notification",
				zap.Int64("auctionID", cmd.AuctionID),
				zap.Int64("outbidUserID", outbidUserID),
				zap.Error(err))
		}
	}

	return resp, nil
}

func (b *bid) History(ctx context.Context, auctionID int64) ([]BidHistoryEntry, error) {
	if _, err := b.auctionRepo.GetByID(auctionID); err != nil {
		if errors.Is(err, repository.ErrAuctionNotFound) {
			return nil, NewServiceError(constants.ErrCodeAuctionNotFound, err)
		}

		return nil, NewServiceError(ErrCodeDatabase, err)
	}

	bids, err := b.bidRepo.ListRecent(auctionID, bidHistoryLimit)
	if err != nil {
		b.logger.Error("Failed to load bid history", zap.Int64("auctionID", auctionID), zap.Error(err))
		return nil, NewServiceError(ErrCodeDatabase, err)
	}

	entries := make([]BidHistoryEntry, 0, len(bids))
	for _, record := range bids {
		name, err := b.directory.DisplayName(ctx, record.UserID)
		if err != nil {
			name = "Bidder"
		}

		entries = append(entries, BidHistoryEntry{
			BidderName: name,
			Amount:     record.BidAmount,
			CreatedAt:  record.CreatedAt,
		})
	}

	return entries, nil
}
