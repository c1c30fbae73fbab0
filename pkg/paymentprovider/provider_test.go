package paymentprovider_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/otomarket/auction-services/auctiongateway/pkg/mocks"
	"github.com/otomarket/auction-services/auctiongateway/pkg/paymentprovider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func matchChargeBody(request paymentprovider.ChargeRequest) interface{} {
	return mock.MatchedBy(func(body interface{}) bool {
		buf, ok := body.(*bytes.Buffer)
		if !ok {
			return false
		}

		var req paymentprovider.ChargeRequest
		if err := json.NewDecoder(bytes.NewReader(buf.Bytes())).Decode(&req); err != nil {
			return false
		}

		return req.UserID == request.UserID && req.Amount == request.Amount &&
			req.IdempotencyKey == request.IdempotencyKey
	})
}

func TestPaymentProvider_Charge(t *testing.T) {
	cfg := paymentprovider.Config{
		BaseURL: "https://api.payments.test",
		Timeout: 30 * time.Second,
		APIKey:  "test-key",
	}

	chargeURL := "https://api.payments.test/payments/charge"
	headers := map[string]string{"Content-Type": "application/json", "X-Api-Key": "test-key"}

	request := paymentprovider.ChargeRequest{
		UserID:         42,
		Amount:         500000,
		Reference:      "dep-9-42",
		IdempotencyKey: "deposit-9-42-abc123",
	}

	t.Run("successful charge", func(t *testing.T) {
		mockClient := &mocks.HTTPClient{}
		pp := paymentprovider.NewPaymentProvider(cfg, mockClient)

		body := `{
			"code": "success",
			"message": "deposit charged",
			"result": {"transaction_id": 777}
		}`

		successResponse := &http.Response{
			StatusCode: 200,
			Body:       io.NopCloser(strings.NewReader(body)),
		}

		mockClient.On("Post", context.Background(), chargeURL, matchChargeBody(request),
			headers).Return(successResponse, nil)

		response, err := pp.Charge(context.Background(), request)

		assert.NoError(t, err)
		assert.Equal(t, "success", response.Code)
		assert.Equal(t, int64(777), response.Result.TransactionID)
		mockClient.AssertExpectations(t)
	})

	t.Run("timeout error", func(t *testing.T) {
		mockClient := &mocks.HTTPClient{}
		pp := paymentprovider.NewPaymentProvider(cfg, mockClient)

		mockClient.On("Post", context.Background(), chargeURL, matchChargeBody(request),
			headers).Return((*http.Response)(nil), context.DeadlineExceeded)

		response, err := pp.Charge(context.Background(), request)

		assert.Error(t, err)
		assert.Equal(t, paymentprovider.ErrTimeout, err)
		assert.Empty(t, response)
		mockClient.AssertExpectations(t)
	})

	t.Run("network error", func(t *testing.T) {
		mockClient := &mocks.HTTPClient{}
		pp := paymentprovider.NewPaymentProvider(cfg, mockClient)

		networkErr := errors.New("network connection failed")
		resp := &http.Response{}

		mockClient.On("Post", context.Background(), chargeURL, matchChargeBody(request),
			headers).Return(resp, networkErr)

		response, err := pp.Charge(context.Background(), request)

		assert.Error(t, err)
		assert.Equal(t, networkErr, err)
		assert.Empty(t, response)
		mockClient.AssertExpectations(t)
	})

	t.Run("insufficient funds on conflict status", func(t *testing.T) {
		mockClient := &mocks.HTTPClient{}
		pp := paymentprovider.NewPaymentProvider(cfg, mockClient)

		conflictResponse := &http.Response{
			StatusCode: 409,
			Body:       io.NopCloser(strings.NewReader(`{"code":"INSUFFICIENT_FUNDS"}`)),
		}

		mockClient.On("Post", context.Background(), chargeURL, matchChargeBody(request),
			headers).Return(conflictResponse, nil)

		response, err := pp.Charge(context.Background(), request)

		assert.Error(t, err)
		assert.Equal(t, paymentprovider.ErrInsufficientFunds, err)
		assert.Empty(t, response)
		mockClient.AssertExpectations(t)
	})

	t.Run("invalid JSON response", func(t *testing.T) {
		mockClient := &mocks.HTTPClient{}
		pp := paymentprovider.NewPaymentProvider(cfg, mockClient)

		invalidJSON := `{"code": "success", "message":`
		successResponse := &http.Response{
			StatusCode: 200,
			Body:       io.NopCloser(strings.NewReader(invalidJSON)),
		}

		mockClient.On("Post", context.Background(), chargeURL, matchChargeBody(request),
			headers).Return(successResponse, nil)

		response, err := pp.Charge(context.Background(), request)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "decoding error")
		assert.Empty(t, response)
		mockClient.AssertExpectations(t)
	})
}

func TestPaymentProvider_Refund(t *testing.T) {
	cfg := paymentprovider.Config{
		BaseURL: "https://api.payments.test",
		Timeout: 30 * time.Second,
		APIKey:  "test-key",
	}

	refundURL := "https://api.payments.test/payments/refund"
	headers := map[string]string{"Content-Type": "application/json", "X-Api-Key": "test-key"}

	request := paymentprovider.ChargeRequest{
		UserID:         42,
		Amount:         500000,
		Reference:      "dep-9-42",
		IdempotencyKey: "refund-9-42-abc123",
	}

	t.Run("successful refund", func(t *testing.T) {
		mockClient := &mocks.HTTPClient{}
		pp := paymentprovider.NewPaymentProvider(cfg, mockClient)

		body := `{"code": "success", "message": "deposit refunded", "result": {}}`

		successResponse := &http.Response{
			StatusCode: 200,
			Body:       io.NopCloser(strings.NewReader(body)),
		}

		mockClient.On("Post", context.Background(), refundURL, matchChargeBody(request),
			headers).Return(successResponse, nil)

		response, err := pp.Refund(context.Background(), request)

		assert.NoError(t, err)
		assert.Equal(t, "success", response.Code)
		mockClient.AssertExpectations(t)
	})

	t.Run("account not found", func(t *testing.T) {
		mockClient := &mocks.HTTPClient{}
		pp := paymentprovider.NewPaymentProvider(cfg, mockClient)

		notFoundResponse := &http.Response{
			StatusCode: 404,
			Body:       io.NopCloser(strings.NewReader(`{"code":"ACCOUNT_NOT_FOUND"}`)),
		}

		mockClient.On("Post", context.Background(), refundURL, matchChargeBody(request),
			headers).Return(notFoundResponse, nil)

		response, err := pp.Refund(context.Background(), request)

		assert.Error(t, err)
		assert.Equal(t, paymentprovider.ErrAccountNotFound, err)
		assert.Empty(t, response)
		mockClient.AssertExpectations(t)
	})
}
