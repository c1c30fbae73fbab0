package service

import "time"

type CreateAuctionCommand struct {
	VehicleID     int64
	SellerID      int64
	StartingPrice int64
	ReservePrice  *int64
	DurationHours int
	StartTime     time.Time
}

type PlaceBidCommand struct {
	AuctionID int64
	UserID    int64
	Amount    int64
	IPAddress string
	UserAgent string
}

type PayDepositCommand struct {
	AuctionID int64
	UserID    int64
}

type ConfirmDepositCommand struct {
	PaymentRef    string
	TransactionID int64
}

type ChargeDepositCommand struct {
	UserID         int64
	Amount         int64
	Reference      string
	IdempotencyKey string
}

type RefundDepositCommand struct {
	UserID         int64
	Amount         int64
	Reference      string
	IdempotencyKey string
}

type ListAuctionsQuery struct {
	Status   string
	Category string
	Limit    int
	Offset   int
}

type ListNotificationsQuery struct {
	UserID int64
	Limit  int
	Offset int
}

// DeliverNotificationCommand is the queue payload between the outbox
// publisher and the delivery consumer.
type DeliverNotificationCommand struct {
	NotificationID int64  `json:"notification_id"`
	UserID         int64  `json:"user_id"`
	Kind           string `json:"kind"`
	Title          string `json:"title"`
	Body           string `json:"body"`
}
