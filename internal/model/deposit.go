package model

import "time"

type DepositStatus string

const (
	DepositStatusPending  DepositStatus = "PENDING"
	DepositStatusPaid     DepositStatus = "PAID"
	DepositStatusRefunded DepositStatus = "REFUNDED"
)

// Deposit is the refundable fee gating bid access. The unique index on
// (auction_id, user_id) is what makes payment idempotent.
type Deposit struct {
	ID         int64         `gorm:"primaryKey;autoIncrement;column:id;<-:create"`
	AuctionID  int64         `gorm:"column:auction_id;uniqueIndex:idx_deposit_auction_user"`
	UserID     int64         `gorm:"column:user_id;uniqueIndex:idx_deposit_auction_user"`
	Amount     int64         `gorm:"column:amount"`
	Status     DepositStatus `gorm:"column:status"`
	PaymentRef string        `gorm:"column:payment_ref;index"`
	PaidAt     *time.Time    `gorm:"column:paid_at"`
	CreatedAt  time.Time     `gorm:"column:created_at"`
	UpdatedAt  time.Time     `gorm:"column:updated_at"`
}
