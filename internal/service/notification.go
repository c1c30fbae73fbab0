package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/otomarket/auction-services/auctiongateway/internal/constants"
	"github.com/otomarket/auction-services/auctiongateway/internal/model"
	"github.com/otomarket/auction-services/auctiongateway/internal/repository"
	"go.uber.org/zap"
)

type NotificationService interface {
	RecordOutbid(ctx context.Context, userID, auctionID, newAmount int64) error
	RecordAuctionWon(ctx context.Context, userID, auctionID, amount int64) error
	ListByUser(ctx context.Context, query ListNotificationsQuery) ([]NotificationEntry, error)
	MarkRead(ctx context.Context, notificationID, userID int64) error
}

type notification struct {
	notificationRepo repository.NotificationRepository
	logger           *zap.Logger
}

func NewNotificationService(notificationRepo repository.NotificationRepository, logger *zap.Logger) NotificationService {
	return &notification{notificationRepo: notificationRepo, logger: logger}
}

func (n *notification) RecordOutbid(ctx context.Context, userID, auctionID, newAmount int64) error {
	record := model.Notification{
		UserID:    userID,
		AuctionID: auctionID,
		Kind:      model.NotificationKindOutbid,
		Title:     "You have been outbid",
		Body:      fmt.Sprintf("Another bidder raised the price to %d on auction %d.", newAmount, auctionID),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := n.notificationRepo.Create(ctx, &record); err != nil {
		return err
	}

	n.logger.Debug("Outbid notification recorded",
		zap.Int64("userID", userID),
		zap.Int64("auctionID", auctionID))

	return nil
}

func (n *notification) RecordAuctionWon(ctx context.Context, userID, auctionID, amount int64) error {
	record := model.Notification{
		UserID:    userID,
		AuctionID: auctionID,
		Kind:      model.NotificationKindAuctionWon,
		Title:     "You won the auction",
		Body:      fmt.Sprintf("Your bid of %d won auction %d. Complete the payment within the deadline.", amount, auctionID),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := n.notificationRepo.Create(ctx, &record); err != nil {
		return err
	}

	n.logger.Debug("Won notification recorded",
		zap.Int64("userID", userID),
		zap.Int64("auctionID", auctionID))

	return nil
}

func (n *notification) ListByUser(ctx context.Context, query ListNotificationsQuery) ([]NotificationEntry, error) {
	limit := query.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	records, err := n.notificationRepo.ListByUser(query.UserID, limit, query.Offset)
	if err != nil {
		n.logger.Error("Failed to list notifications", zap.Int64("userID", query.UserID), zap.Error(err))
		return nil, NewServiceError(ErrCodeDatabase, err)
	}

	entries := make([]NotificationEntry, 0, len(records))
	for _, record := range records {
		entries = append(entries, NotificationEntry{
			ID:        record.ID,
			Kind:      string(record.Kind),
			Title:     record.Title,
			Body:      record.Body,
			ReadAt:    record.ReadAt,
			CreatedAt: record.CreatedAt,
		})
	}

	return entries, nil
}

func (n *notification) MarkRead(ctx context.Context, notificationID, userID int64) error {
	record, err := n.notificationRepo.GetByID(notificationID)
	if err != nil {
		if errors.Is(err, repository.ErrNotificationNotFound) {
			return NewServiceError(constants.ErrCodeNotifNotFound, err)
		}

		return NewServiceError(ErrCodeDatabase, err)
	}

	if record.UserID != userID {
		return NewServiceError(constants.ErrCodeAuthorization,
			errors.New("notification belongs to another user"))
	}

	if record.ReadAt != nil {
		return nil
	}

	if err := n.notificationRepo.MarkRead(ctx, notificationID, time.Now()); err != nil {
		return NewServiceError(ErrCodeDatabase, err)
	}

	return nil
}
