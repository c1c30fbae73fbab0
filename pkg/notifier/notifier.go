package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/otomarket/auction-services/auctiongateway/pkg/httpclient"
)

// Gateway delivers user notifications through the external push/email
// service. Delivery transport is outside this system; the gateway only
// hands the message over.
type Gateway interface {
	Deliver(ctx context.Context, msg Message) (Response, error)
}

type Config struct {
	Enable   bool          `mapstructure:"enable"`
	URL      string        `mapstructure:"url"`
	Timeout  time.Duration `mapstructure:"timeout"`
	MaxRetry int           `mapstructure:"max_retry"`
}

type Message struct {
	UserID int64  `json:"user_id"`
	Kind   string `json:"kind"`
	Title  string `json:"title"`
	Body   string `json:"body"`
}

type Response struct {
	DeliveryID string `json:"delivery_id"`
	Status     string `json:"status"`
}

type HTTPGateway struct {
	cfg    Config
	client httpclient.HTTPClient
}

func NewHTTPGateway(cfg Config, client httpclient.HTTPClient) Gateway {
	return &HTTPGateway{cfg: cfg, client: client}
}

func (g *HTTPGateway) Deliver(ctx context.Context, msg Message) (Response, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(msg); err != nil {
		return Response{}, errors.New(ErrorCodeBadPayload)
	}

	resp, err := g.client.Post(ctx, g.cfg.URL, &buf, map[string]string{"Content-Type": "application/json"})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return Response{}, errors.New(ErrorCodeTimeout)
		}

		return Response{}, errors.New(ErrorCodeNetworkError)
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		switch resp.StatusCode {
		case 400:
			return Response{}, errors.New(ErrorCodeBadPayload)
		case 500, 502, 503, 504:
			return Response{}, errors.New(ErrorCodeServerError)
		default:
			return Response{}, errors.New(ErrorCodeServerError)
		}
	}

	var res Response
	if err = json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return Response{}, errors.New(ErrorCodeServerError)
	}

	return res, nil
}
