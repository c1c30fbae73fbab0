package paymentprovider

type ChargeRequest struct {
	UserID         int64  `json:"user_id"`
	Amount         int64  `json:"amount"`
	Reference      string `json:"reference"`
	IdempotencyKey string `json:"idempotency_key"`
}
