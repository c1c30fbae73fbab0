package service

import (
	"context"
	"errors"

	"github.com/otomarket/auction-services/auctiongateway/internal/config"
	"github.com/otomarket/auction-services/auctiongateway/internal/constants"
	"github.com/otomarket/auction-services/auctiongateway/pkg/paymentprovider"
	"go.uber.org/zap"
)

// PaymentService wraps the external payment provider with retries.
// Charge reports whether the deposit is already settled: true in
// simulate mode (the provider is skipped entirely), false when a real
// provider will confirm asynchronously via callback.
type PaymentService interface {
	Charge(ctx context.Context, cmd ChargeDepositCommand) (settled bool, err error)
	Refund(ctx context.Context, cmd RefundDepositCommand) error
}

type Payment struct {
	provider paymentprovider.PaymentProvider
	cfg      paymentprovider.Config
	logger   *zap.Logger
}

func NewPaymentService(provider paymentprovider.PaymentProvider, config *config.Config, logger *zap.Logger) PaymentService {
	return &Payment{provider: provider, cfg: config.PaymentProvider, logger: logger}
}

func (p *Payment) Charge(ctx context.Context, cmd ChargeDepositCommand) (bool, error) {
	if !p.cfg.Enable || p.cfg.Simulate {
		p.logger.Info("Payment provider bypassed, deposit charge settled immediately",
			zap.Bool("enabled", p.cfg.Enable),
			zap.Bool("simulate", p.cfg.Simulate),
			zap.Int64("userID", cmd.UserID),
			zap.Int64("amount", cmd.Amount),
			zap.String("reference", cmd.Reference))
		return true, nil
	}

	request := paymentprovider.ChargeRequest{
		UserID:         cmd.UserID,
		Amount:         cmd.Amount,
		Reference:      cmd.Reference,
		IdempotencyKey: cmd.IdempotencyKey,
	}

	var lastErr error
	for attempt := 1; attempt <= p.cfg.MaxRetries; attempt++ {
		resp, err := p.provider.Charge(ctx, request)
		if err == nil {
			p.logger.Info("Deposit charge accepted by provider",
				zap.Int64("userID", cmd.UserID),
				zap.Int("attempt", attempt),
				zap.String("idempotencyKey", cmd.IdempotencyKey),
				zap.Int64("transactionID", resp.Result.TransactionID))

			return false, nil
		}

		if errors.Is(err, paymentprovider.ErrAccountNotFound) ||
			errors.Is(err, paymentprovider.ErrInsufficientFunds) ||
			errors.Is(err, paymentprovider.ErrValidationFailed) {
			p.logger.Warn("Non-retryable error encountered",
				zap.Error(err),
				zap.Int("attempt", attempt),
				zap.Int64("userID", cmd.UserID))
			return false, NewServiceError(constants.ErrCodePaymentFailed, err)
		}

		lastErr = err
	}

	if errors.Is(lastErr, paymentprovider.ErrTimeout) {
		p.logger.Error("Charge attempts timed out",
			zap.Error(lastErr),
			zap.Int("maxRetries", p.cfg.MaxRetries),
			zap.Int64("userID", cmd.UserID))
		return false, NewServiceError(ErrCodePaymentTimeout, lastErr)
	}

	p.logger.Error("Payment provider unavailable after all retries",
		zap.Error(lastErr),
		zap.Int("maxRetries", p.cfg.MaxRetries),
		zap.Int64("userID", cmd.UserID))

	return false, NewServiceError(ErrCodePaymentServiceError, lastErr)
}

func (p *Payment) Refund(ctx context.Context, cmd RefundDepositCommand) error {
	if !p.cfg.Enable || p.cfg.Simulate {
		p.logger.Info("Payment provider bypassed, deposit refund settled immediately",
			zap.Bool("enabled", p.cfg.Enable),
			zap.Bool("simulate", p.cfg.Simulate),
			zap.Int64("userID", cmd.UserID),
			zap.Int64("amount", cmd.Amount),
			zap.String("reference", cmd.Reference))
		return nil
	}

	request := paymentprovider.ChargeRequest{
		UserID:         cmd.UserID,
		Amount:         cmd.Amount,
		Reference:      cmd.Reference,
		IdempotencyKey: cmd.IdempotencyKey,
	}

	var lastErr error
	for attempt := 1; attempt <= p.cfg.MaxRetries; attempt++ {
		resp, err := p.provider.Refund(ctx, request)
		if err == nil {
			p.logger.Info("Deposit refunded",
				zap.Int64("userID", cmd.UserID),
				zap.Int("attempt", attempt),
				zap.Int64("transactionID", resp.Result.TransactionID),
				zap.String("idempotencyKey", cmd.IdempotencyKey))

			return nil
		}

		p.logger.Warn("Refund attempt failed",
			zap.Error(err),
			zap.Int("attempt", attempt),
			zap.Int64("userID", cmd.UserID))

		if errors.Is(err, paymentprovider.ErrAccountNotFound) {
			return NewServiceError(constants.ErrCodePaymentFailed, err)
		}

		lastErr = err
	}

	if errors.Is(lastErr, paymentprovider.ErrTimeout) {
		p.logger.Error("Refund attempts timed out",
			zap.Error(lastErr),
			zap.Int("maxRetries", p.cfg.MaxRetries),
			zap.Int64("userID", cmd.UserID))

		return NewServiceError(ErrCodePaymentTimeout, lastErr)
	}

	p.logger.Error("Payment provider unavailable after all retries",
		zap.Error(lastErr),
		zap.Int("maxRetries", p.cfg.MaxRetries),
		zap.Int64("userID", cmd.UserID))

	return NewServiceError(ErrCodePaymentServiceError, lastErr)
}
