package model

import "time"

type NotificationKind string

const (
	NotificationKindOutbid     NotificationKind = "OUTBID"
	NotificationKindAuctionWon NotificationKind = "AUCTION_WON"
)

// Notification is both the user-facing record and the dispatch outbox:
// rows with Published=false are picked up by the publisher worker.
type Notification struct {
	ID          int64            `gorm:"primaryKey;autoIncrement;column:id;<-:create"`
	UserID      int64            `gorm:"column:user_id;index"`
	AuctionID   int64            `gorm:"column:auction_id"`
	Kind        NotificationKind `gorm:"column:kind"`
	Title       string           `gorm:"column:title"`
	Body        string           `gorm:"column:body"`
	ReadAt      *time.Time       `gorm:"column:read_at"`
	Published   bool             `gorm:"column:published;default:false;not null"`
	PublishedAt *time.Time       `gorm:"column:published_at"`
	LastError   *string          `gorm:"column:last_error"`
	CreatedAt   time.Time        `gorm:"column:created_at"`
	UpdatedAt   time.Time        `gorm:"column:updated_at"`
}
