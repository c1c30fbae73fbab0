package paymentprovider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/otomarket/auction-services/auctiongateway/pkg/httpclient"
)

const (
	ChargeEndpoint = "/payments/charge"
	RefundEndpoint = "/payments/refund"
)

// PaymentProvider is the external payment service that settles auction
// deposits. Deposits are refundable, so both directions exist.
type PaymentProvider interface {
	Charge(ctx context.Context, request ChargeRequest) (Response, error)
	Refund(ctx context.Context, request ChargeRequest) (Response, error)
}

type paymentProvider struct {
	client httpclient.HTTPClient
	config Config
}

func NewPaymentProvider(cfg Config, client httpclient.HTTPClient) PaymentProvider {
	return &paymentProvider{config: cfg, client: client}
}

func (p *paymentProvider) Charge(ctx context.Context, request ChargeRequest) (Response, error) {
	return p.post(ctx, p.config.BaseURL+ChargeEndpoint, request)
}

func (p *paymentProvider) Refund(ctx context.Context, request ChargeRequest) (Response, error) {
	return p.post(ctx, p.config.BaseURL+RefundEndpoint, request)
}

func (p *paymentProvider) post(ctx context.Context, url string, request ChargeRequest) (Response, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(request); err != nil {
		return Response{}, fmt.Errorf("encoding error: %w", err)
	}

	headers := map[string]string{
		"Content-Type": "application/json",
		"X-Api-Key":    p.config.APIKey,
	}

	resp, err := p.client.Post(ctx, url, &buf, headers)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return Response{}, ErrTimeout
		}

		return Response{}, err
	}

	defer resp.Body.Close()

	if resp.StatusCode == StatusOK {
		var response Response
		if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
			return Response{}, fmt.Errorf("decoding error: %w", err)
		}

		return response, nil
	}

	return Response{}, MapStatusToError(resp.StatusCode)
}
