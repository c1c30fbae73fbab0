package model

import "time"

type AuctionStatus string

const (
	AuctionStatusScheduled AuctionStatus = "SCHEDULED"
	AuctionStatusActive    AuctionStatus = "ACTIVE"
	AuctionStatusEnded     AuctionStatus = "ENDED"
	AuctionStatusCancelled AuctionStatus = "CANCELLED"
)

// Auction is the one-to-one sale process for an approved vehicle.
// CurrentPrice never decreases and EndTime only moves forward.
type Auction struct {
	ID                   int64         `gorm:"primaryKey;autoIncrement;column:id;<-:create"`
	VehicleID            int64         `gorm:"column:vehicle_id;uniqueIndex:idx_auction_vehicle"`
	StartingPrice        int64         `gorm:"column:starting_price"`
	CurrentPrice         int64         `gorm:"column:current_price"`
	ReservePrice         *int64        `gorm:"column:reserve_price"`
	DepositAmount        int64         `gorm:"column:deposit_amount"`
	DepositPercentage    int           `gorm:"column:deposit_percentage"`
	StartTime            time.Time     `gorm:"column:start_time"`
	EndTime              time.Time     `gorm:"column:end_time"`
	DurationHours        int           `gorm:"column:duration_hours"`
	PaymentDeadlineHours int           `gorm:"column:payment_deadline_hours"`
	Status               AuctionStatus `gorm:"column:status;index"`
	TotalBids            int           `gorm:"column:total_bids"`
	WinnerID             *int64        `gorm:"column:winner_id"`
	CreatedAt            time.Time     `gorm:"column:created_at"`
	UpdatedAt            time.Time     `gorm:"column:updated_at"`

	Vehicle Vehicle `gorm:"foreignKey:VehicleID"`
}

// IsActive reports whether bids are admissible at now. A SCHEDULED
// auction inside its window counts as active even before the lifecycle
// worker has flipped the status.
func (a *Auction) IsActive(now time.Time) bool {
	if !now.Before(a.EndTime) {
		return false
	}

	switch a.Status {
	case AuctionStatusActive:
		return true
	case AuctionStatusScheduled:
		return !now.Before(a.StartTime)
	default:
		return false
	}
}
