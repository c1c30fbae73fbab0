package model

import "time"

// Bid is append-only. PreviousAmount snapshots the auction price at
// admission time for audit; it is not authoritative.
type Bid struct {
	ID             int64     `gorm:"primaryKey;autoIncrement;column:id;<-:create"`
	AuctionID      int64     `gorm:"column:auction_id;index"`
	UserID         int64     `gorm:"column:user_id;index"`
	BidAmount      int64     `gorm:"column:bid_amount"`
	PreviousAmount int64     `gorm:"column:previous_amount"`
	IPAddress      string    `gorm:"column:ip_address"`
	UserAgent      string    `gorm:"column:user_agent"`
	CreatedAt      time.Time `gorm:"column:created_at"`
}
