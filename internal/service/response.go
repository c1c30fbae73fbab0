package service

import "time"

type CreateAuctionResponse struct {
	AuctionID     int64     `json:"auction_id"`
	DepositAmount int64     `json:"deposit_amount"`
	EndTime       time.Time `json:"end_time"`
}

type PlaceBidResponse struct {
	CurrentPrice int64     `json:"current_price"`
	TotalBids    int       `json:"total_bids"`
	EndTime      time.Time `json:"end_time"`
}

type PayDepositResponse struct {
	DepositID  int64  `json:"deposit_id"`
	Amount     int64  `json:"amount"`
	Status     string `json:"status"`
	PaymentRef string `json:"payment_ref"`
}

type AuctionDetail struct {
	AuctionID     int64     `json:"auction_id"`
	VehicleID     int64     `json:"vehicle_id"`
	Brand         string    `json:"brand"`
	Model         string    `json:"model"`
	Year          int       `json:"year"`
	Category      string    `json:"category"`
	StartingPrice int64     `json:"starting_price"`
	CurrentPrice  int64     `json:"current_price"`
	DepositAmount int64     `json:"deposit_amount"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	Status        string    `json:"status"`
	TotalBids     int       `json:"total_bids"`
	WinnerID      *int64    `json:"winner_id,omitempty"`
	DepositPaid   bool      `json:"deposit_paid"`
	CanBid        bool      `json:"can_bid"`
}

type AuctionSummary struct {
	AuctionID    int64     `json:"auction_id"`
	VehicleID    int64     `json:"vehicle_id"`
	Brand        string    `json:"brand"`
	Model        string    `json:"model"`
	CurrentPrice int64     `json:"current_price"`
	EndTime      time.Time `json:"end_time"`
	Status       string    `json:"status"`
	TotalBids    int       `json:"total_bids"`
}

type BidHistoryEntry struct {
	BidderName string    `json:"bidder_name"`
	Amount     int64     `json:"amount"`
	CreatedAt  time.Time `json:"created_at"`
}

type NotificationEntry struct {
	ID        int64      `json:"id"`
	Kind      string     `json:"kind"`
	Title     string     `json:"title"`
	Body      string     `json:"body"`
	ReadAt    *time.Time `json:"read_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}
