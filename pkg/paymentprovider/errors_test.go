package paymentprovider_test

import (
	"testing"

	"github.com/otomarket/auction-services/auctiongateway/pkg/paymentprovider"
	"github.com/stretchr/testify/assert"
)

func TestMapStatusToError(t *testing.T) {
	testCases := []struct {
		name          string
		statusCode    int
		expectedError error
	}{
		{
			name:          "NotFound",
			statusCode:    404,
			expectedError: paymentprovider.ErrAccountNotFound,
		},
		{
			name:          "UnprocessableEntity",
			statusCode:    422,
			expectedError: paymentprovider.ErrValidationFailed,
		},
		{
			name:          "InternalServerError",
			statusCode:    500,
			expectedError: paymentprovider.ErrServerError,
		},
		{
			name:          "BadGateway",
			statusCode:    502,
			expectedError: paymentprovider.ErrServerError,
		},
		{
			name:          "BadRequest",
			statusCode:    400,
			expectedError: paymentprovider.ErrServerError,
		},
		{
			name:          "Conflict",
			statusCode:    409,
			expectedError: paymentprovider.ErrInsufficientFunds,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := paymentprovider.MapStatusToError(tc.statusCode)

			assert.Error(t, err, "Expected an error for status code %d", tc.statusCode)
			assert.Equal(t, tc.expectedError, err)
		})
	}
}
