package repository

import (
	"context"
	"errors"
	"time"

	"github.com/otomarket/auction-services/auctiongateway/internal/model"
	"gorm.io/gorm"
)

var ErrNotificationNotFound = errors.New("NOTIFICATION_NOT_FOUND")

type NotificationRepository interface {
	Create(ctx context.Context, notification *model.Notification) error
	GetByID(id int64) (*model.Notification, error)
	ListByUser(userID int64, limit, offset int) ([]model.Notification, error)
	MarkRead(ctx context.Context, id int64, readAt time.Time) error
	FindUnpublished(limit int) ([]model.Notification, error)
	MarkPublished(ctx context.Context, id int64, publishedAt time.Time) error
	SetLastError(ctx context.Context, id int64, lastError string) error
}

type Notification struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &Notification{db: db}
}

func (n *Notification) Create(ctx context.Context, notification *model.Notification) error {
	db := GetTx(ctx, n.db)
	return db.Create(notification).Error
}

func (n *Notification) GetByID(id int64) (*model.Notification, error) {
	var notification model.Notification

	err := n.db.Where("id = ?", id).First(&notification).Error
	if err == nil {
		return &notification, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotificationNotFound
	}

	return nil, err
}

func (n *Notification) ListByUser(userID int64, limit, offset int) ([]model.Notification, error) {
	var notifications []model.Notification

	err := n.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&notifications).Error
	if err != nil {
		return nil, err
	}

	return notifications, nil
}

func (n *Notification) MarkRead(ctx context.Context, id int64, readAt time.Time) error {
	db := GetTx(ctx, n.db)
	return db.Model(&model.Notification{}).Where("id = ?", id).
		Update("read_at", readAt).Error
}

func (n *Notification) FindUnpublished(limit int) ([]model.Notification, error) {
	var notifications []model.Notification

	err := n.db.Where("published = ?", false).
		Order("created_at ASC").
		Limit(limit).
		Find(&notifications).Error
	if err != nil {
		return nil, err
	}

	return notifications, nil
}

func (n *Notification) MarkPublished(ctx context.Context, id int64, publishedAt time.Time) error {
	db := GetTx(ctx, n.db)
	return db.Model(&model.Notification{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"published":    true,
			"published_at": publishedAt,
			"updated_at":   time.Now(),
		}).Error
}

func (n *Notification) SetLastError(ctx context.Context, id int64, lastError string) error {
	db := GetTx(ctx, n.db)
	return db.Model(&model.Notification{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"last_error": lastError,
			"updated_at": time.Now(),
		}).Error
}
