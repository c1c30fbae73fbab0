package v1

import "time"

type CreateVehicleRequest struct {
	Category      string `json:"category" validate:"required,oneof=mobil motor"`
	Brand         string `json:"brand" validate:"required,max=64"`
	Model         string `json:"model" validate:"required,max=64"`
	Year          int    `json:"year" validate:"required,min=1950,max=2100"`
	Description   string `json:"description" validate:"max=2000"`
	StartingPrice int64  `json:"starting_price" validate:"required,min=1"`
}

type CreateAuctionRequest struct {
	StartingPrice int64     `json:"starting_price" validate:"required,min=1"`
	ReservePrice  *int64    `json:"reserve_price" validate:"omitempty,min=1"`
	DurationHours int       `json:"duration_hours" validate:"omitempty,min=1"`
	StartTime     time.Time `json:"start_time" validate:"required"`
}

type PlaceBidRequest struct {
	Amount int64 `json:"amount" validate:"required,min=1"`
}

type PaymentCallbackRequest struct {
	PaymentRef    string `json:"payment_ref" validate:"required"`
	TransactionID int64  `json:"transaction_id" validate:"required"`
	Status        string `json:"status" validate:"required,oneof=settled failed"`
}
