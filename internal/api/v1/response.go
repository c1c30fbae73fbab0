package v1

import (
	"time"

	"github.com/otomarket/auction-services/auctiongateway/internal/service"
)

type CreateVehicleResponse struct {
	VehicleID int64  `json:"vehicle_id"`
	Status    string `json:"status"`
}

type CreateAuctionResponse struct {
	AuctionID     int64     `json:"auction_id"`
	DepositAmount int64     `json:"deposit_amount"`
	EndTime       time.Time `json:"end_time"`
}

type PlaceBidResponse struct {
	Success      bool      `json:"success"`
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

type ListAuctionsResponse struct {
	Auctions []service.AuctionSummary `json:"auctions"`
	Total    int                      `json:"total"`
}

type BidHistoryResponse struct {
	Bids  []service.BidHistoryEntry `json:"bids"`
	Total int                       `json:"total"`
}

type NotificationsResponse struct {
	Notifications []service.NotificationEntry `json:"notifications"`
	Total         int                         `json:"total"`
}
