package constants

const (
	ErrCodeValidationFailed   = "VALIDATION_FAILED"
	ErrCodeAuctionNotActive   = "AUCTION_NOT_ACTIVE"
	ErrCodeDepositRequired    = "DEPOSIT_REQUIRED"
	ErrCodeSelfBid            = "SELF_BID"
	ErrCodeBidTooLow          = "BID_TOO_LOW"
	ErrCodeDepositAlreadyPaid = "DEPOSIT_ALREADY_PAID"
	ErrCodeVehicleNotApproved = "VEHICLE_NOT_APPROVED"
	ErrCodeAuctionExists      = "AUCTION_EXISTS"
	ErrCodeAuthorization      = "AUTHORIZATION"
	ErrCodeVehicleNotFound    = "VEHICLE_NOT_FOUND"
	ErrCodeAuctionNotFound    = "AUCTION_NOT_FOUND"
	ErrCodeDepositNotFound    = "DEPOSIT_NOT_FOUND"
	ErrCodeNotifNotFound      = "NOTIFICATION_NOT_FOUND"
	ErrCodePaymentFailed      = "PAYMENT_FAILED"
	ErrCodeRateLimited        = "RATE_LIMITED"
	ErrCodeInternalError      = "INTERNAL_ERROR"
	ErrCodeInvalidRequestBody = "INVALID_REQUEST_BODY"
)

const (
	ErrMsgValidationFailed   = "request validation failed"
	ErrMsgAuctionNotActive   = "auction is not active"
	ErrMsgDepositRequired    = "a paid deposit is required before bidding"
	ErrMsgSelfBid            = "you cannot bid on your own vehicle"
	ErrMsgBidTooLow          = "bid amount is below the minimum increment"
	ErrMsgDepositAlreadyPaid = "deposit already paid for this auction"
	ErrMsgVehicleNotApproved = "vehicle must be approved first"
	ErrMsgAuctionExists      = "vehicle already has an auction"
	ErrMsgAuthorization      = "you are not allowed to perform this action"
	ErrMsgVehicleNotFound    = "vehicle not found"
	ErrMsgAuctionNotFound    = "auction not found"
	ErrMsgDepositNotFound    = "deposit not found"
	ErrMsgNotifNotFound      = "notification not found"
	ErrMsgPaymentFailed      = "deposit payment failed"
	ErrMsgRateLimited        = "too many bid attempts, slow down"
	ErrMsgInternalError      = "Internal server error"
	ErrMsgInvalidRequestBody = "failed to parse request body"
)

var errorMessages = map[string]string{
	ErrCodeValidationFailed:   ErrMsgValidationFailed,
	ErrCodeAuctionNotActive:   ErrMsgAuctionNotActive,
	ErrCodeDepositRequired:    ErrMsgDepositRequired,
	ErrCodeSelfBid:            ErrMsgSelfBid,
	ErrCodeBidTooLow:          ErrMsgBidTooLow,
	ErrCodeDepositAlreadyPaid: ErrMsgDepositAlreadyPaid,
	ErrCodeVehicleNotApproved: ErrMsgVehicleNotApproved,
	ErrCodeAuctionExists:      ErrMsgAuctionExists,
	ErrCodeAuthorization:      ErrMsgAuthorization,
	ErrCodeVehicleNotFound:    ErrMsgVehicleNotFound,
	ErrCodeAuctionNotFound:    ErrMsgAuctionNotFound,
	ErrCodeDepositNotFound:    ErrMsgDepositNotFound,
	ErrCodeNotifNotFound:      ErrMsgNotifNotFound,
	ErrCodePaymentFailed:      ErrMsgPaymentFailed,
	ErrCodeRateLimited:        ErrMsgRateLimited,
	ErrCodeInternalError:      ErrMsgInternalError,
	ErrCodeInvalidRequestBody: ErrMsgInvalidRequestBody,
}

func GetErrorMessage(code string) string {
	if msg, exists := errorMessages[code]; exists {
		return msg
	}
	return ErrMsgInternalError
}

func GetHTTPStatus(code string) int {
	switch code {
	case ErrCodeValidationFailed, ErrCodeInvalidRequestBody,
		ErrCodeAuctionNotActive, ErrCodeDepositRequired,
		ErrCodeSelfBid, ErrCodeBidTooLow, ErrCodeVehicleNotApproved:
		return 400
	case ErrCodeAuthorization:
		return 403
	case ErrCodeVehicleNotFound, ErrCodeAuctionNotFound, ErrCodeDepositNotFound,
		ErrCodeNotifNotFound:
		return 404
	case ErrCodeDepositAlreadyPaid, ErrCodeAuctionExists:
		return 409
	case ErrCodeRateLimited:
		return 429
	case ErrCodePaymentFailed:
		return 502
	case ErrCodeInternalError:
		return 500
	default:
		return 500
	}
}
