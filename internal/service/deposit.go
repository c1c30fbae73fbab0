package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/otomarket/auction-services/auctiongateway/internal/constants"
	"github.com/otomarket/auction-services/auctiongateway/internal/model"
	"github.com/otomarket/auction-services/auctiongateway/internal/repository"
	"go.uber.org/zap"
)

type DepositService interface {
	PayDeposit(ctx context.Context, cmd PayDepositCommand) (PayDepositResponse, error)
	ConfirmDeposit(ctx context.Context, cmd ConfirmDepositCommand) error
	HasPaidDeposit(ctx context.Context, auctionID, userID int64) (bool, error)
	RefundAuctionDeposits(ctx context.Context, auctionID int64, winnerID *int64) (int, error)
}

type deposit struct {
	depositRepo repository.DepositRepository
	auctionRepo repository.AuctionRepository
	payment     PaymentService
	logger      *zap.Logger
}

func NewDepositService(depositRepo repository.DepositRepository, auctionRepo repository.AuctionRepository,
	payment PaymentService, logger *zap.Logger) DepositService {
	return &deposit{depositRepo: depositRepo, auctionRepo: auctionRepo, payment: payment, logger: logger}
}

// PayDeposit creates the PENDING record first, so the unique
// (auction, user) index is the idempotency backstop, then charges the
// provider and marks the deposit PAID. In simulate mode the charge
// settles synchronously.
func (d *deposit) PayDeposit(ctx context.Context, cmd PayDepositCommand) (PayDepositResponse, error) {
	auc, err := d.auctionRepo.GetByID(cmd.AuctionID)
	if err != nil {
		if errors.Is(err, repository.ErrAuctionNotFound) {
			return PayDepositResponse{}, NewServiceError(constants.ErrCodeAuctionNotFound, err)
		}

		return PayDepositResponse{}, NewServiceError(ErrCodeDatabase, err)
	}

	existing, err := d.depositRepo.Get(cmd.AuctionID, cmd.UserID)
	if err != nil && !errors.Is(err, repository.ErrDepositNotFound) {
		return PayDepositResponse{}, NewServiceError(ErrCodeDatabase, err)
	}

	if existing != nil && existing.Status == model.DepositStatusPaid {
		d.logger.Info("Deposit already paid",
			zap.Int64("auctionID", cmd.AuctionID),
			zap.Int64("userID", cmd.UserID))
		return PayDepositResponse{}, NewServiceError(constants.ErrCodeDepositAlreadyPaid,
			errors.New("deposit already paid"))
	}

	paymentRef := fmt.Sprintf("dep-%d-%d-%s", cmd.AuctionID, cmd.UserID, uuid.NewString())

	record := existing
	if record == nil {
		record = &model.Deposit{
			AuctionID:  cmd.AuctionID,
			UserID:     cmd.UserID,
			Amount:     auc.DepositAmount,
			Status:     model.DepositStatusPending,
			PaymentRef: paymentRef,
			CreatedAt:  time.Now(),
			UpdatedAt:  time.Now(),
		}

		if err := d.depositRepo.Create(ctx, record); err != nil {
			if errors.Is(err, repository.ErrDepositDuplicate) {
				// Lost a race with a concurrent payment for the same pair.
				return PayDepositResponse{}, NewServiceError(constants.ErrCodeDepositAlreadyPaid, err)
			}

			d.logger.Error("Failed to create deposit",
				zap.Int64("auctionID", cmd.AuctionID),
				zap.Int64("userID", cmd.UserID),
				zap.Error(err))
			return PayDepositResponse{}, NewServiceError(ErrCodeDatabase, err)
		}
	} else {
		record.PaymentRef = paymentRef
		record.UpdatedAt = time.Now()
		if err := d.depositRepo.Update(ctx, record); err != nil {
			return PayDepositResponse{}, NewServiceError(ErrCodeDatabase, err)
		}
	}

	chargeCmd := ChargeDepositCommand{
		UserID:         cmd.UserID,
		Amount:         record.Amount,
		Reference:      paymentRef,
		IdempotencyKey: fmt.Sprintf("charge-%s", paymentRef),
	}

	settled, err := d.payment.Charge(ctx, chargeCmd)
	if err != nil {
		d.logger.Warn("Deposit charge failed",
			zap.Int64("auctionID", cmd.AuctionID),
			zap.Int64("userID", cmd.UserID),
			zap.Error(err))
		return PayDepositResponse{}, err
	}

	if settled {
		if err := d.markPaid(ctx, record); err != nil {
			return PayDepositResponse{}, err
		}
	}

	d.logger.Info("Deposit payment initiated",
		zap.Int64("auctionID", cmd.AuctionID),
		zap.Int64("userID", cmd.UserID),
		zap.Int64("amount", record.Amount),
		zap.String("paymentRef", paymentRef),
		zap.Bool("settled", settled))

	return PayDepositResponse{
		DepositID:  record.ID,
		Amount:     record.Amount,
		Status:     string(record.Status),
		PaymentRef: paymentRef,
	}, nil
}

// ConfirmDeposit handles the provider's asynchronous confirmation
// callback, flipping PENDING to PAID by payment reference.
func (d *deposit) ConfirmDeposit(ctx context.Context, cmd ConfirmDepositCommand) error {
	record, err := d.depositRepo.GetByPaymentRef(cmd.PaymentRef)
	if err != nil {
		if errors.Is(err, repository.ErrDepositNotFound) {
			return NewServiceError(constants.ErrCodeDepositNotFound, err)
		}

		return NewServiceError(ErrCodeDatabase, err)
	}

	if record.Status == model.DepositStatusPaid {
		d.logger.Info("Deposit already confirmed", zap.String("paymentRef", cmd.PaymentRef))
		return nil
	}

	d.logger.Info("Deposit confirmed by provider",
		zap.String("paymentRef", cmd.PaymentRef),
		zap.Int64("transactionID", cmd.TransactionID))

	return d.markPaid(ctx, record)
}

func (d *deposit) markPaid(ctx context.Context, record *model.Deposit) error {
	paidAt := time.Now()
	record.Status = model.DepositStatusPaid
	record.PaidAt = &paidAt
	record.UpdatedAt = paidAt

	if err := d.depositRepo.Update(ctx, record); err != nil {
		d.logger.Error("Failed to mark deposit as paid",
			zap.Int64("depositID", record.ID),
			zap.Error(err))
		return NewServiceError(ErrCodeDatabase, err)
	}

	return nil
}

// RefundAuctionDeposits returns the paid deposits of everyone who lost
// the auction. The winner's deposit stays PAID and rolls into the
// purchase settlement. Individual failures are logged and skipped so
// one stuck refund never blocks the rest.
func (d *deposit) RefundAuctionDeposits(ctx context.Context, auctionID int64, winnerID *int64) (int, error) {
	deposits, err := d.depositRepo.ListByAuction(auctionID)
	if err != nil {
		return 0, NewServiceError(ErrCodeDatabase, err)
	}

	refunded := 0
	for i := range deposits {
		record := &deposits[i]
		if record.Status != model.DepositStatusPaid {
			continue
		}

		if winnerID != nil && record.UserID == *winnerID {
			continue
		}

		refundCmd := RefundDepositCommand{
			UserID:         record.UserID,
			Amount:         record.Amount,
			Reference:      record.PaymentRef,
			IdempotencyKey: fmt.Sprintf("refund-%s", record.PaymentRef),
		}

		if err := d.payment.Refund(ctx, refundCmd); err != nil {
			d.logger.Error("Failed to refund deposit",
				zap.Int64("depositID", record.ID),
				zap.Int64("auctionID", auctionID),
				zap.Int64("userID", record.UserID),
				zap.Error(err))
			continue
		}

		record.Status = model.DepositStatusRefunded
		record.UpdatedAt = time.Now()

		if err := d.depositRepo.Update(ctx, record); err != nil {
			d.logger.Error("Failed to mark deposit as refunded",
				zap.Int64("depositID", record.ID),
				zap.Error(err))
			continue
		}

		refunded++
	}

	return refunded, nil
}

func (d *deposit) HasPaidDeposit(ctx context.Context, auctionID, userID int64) (bool, error) {
	_, err := d.depositRepo.GetPaid(auctionID, userID)
	if err == nil {
		return true, nil
	}

	if errors.Is(err, repository.ErrDepositNotFound) {
		return false, nil
	}

	return false, NewServiceError(ErrCodeDatabase, err)
}
