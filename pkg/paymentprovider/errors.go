package paymentprovider

import "errors"

const (
	StatusOK                  = 200
	StatusNotFound            = 404
	StatusUnprocessableEntity = 422
	StatusConflict            = 409
)

const (
	ErrCodeValidationFailed  = "VALIDATION_FAILED"
	ErrCodeAccountNotFound   = "ACCOUNT_NOT_FOUND"
	ErrCodeTimeout           = "TIMEOUT"
	ErrCodeServerError       = "SERVER_ERROR"
	ErrCodeInsufficientFunds = "INSUFFICIENT_FUNDS"
)

var (
	ErrValidationFailed  = errors.New(ErrCodeValidationFailed)
	ErrAccountNotFound   = errors.New(ErrCodeAccountNotFound)
	ErrTimeout           = errors.New(ErrCodeTimeout)
	ErrServerError       = errors.New(ErrCodeServerError)
	ErrInsufficientFunds = errors.New(ErrCodeInsufficientFunds)
)

var statusErrorMap = map[int]error{
	StatusNotFound:            ErrAccountNotFound,
	StatusUnprocessableEntity: ErrValidationFailed,
	StatusConflict:            ErrInsufficientFunds,
}

func MapStatusToError(statusCode int) error {
	if err, exists := statusErrorMap[statusCode]; exists {
		return err
	}

	return ErrServerError
}
