// Package gateway pushes order status changes to the API gateway over HTTP.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"orders/internal/core/ports"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker"
)

const (
	// StatusPath is appended to the gateway base URL.
	StatusPath = "/api/gateway/orders/status"

	defaultTimeout = 5 * time.Second
	breakerName    = "gateway"
)

var (
	ErrUnexpectedStatus = errors.New("gateway responded with a non-2xx status")
	ErrCircuitOpen      = errors.New("gateway circuit breaker is open")
)

type Config struct {
	BaseURL string
	// Timeout bounds a single request, including reading the response.
	Timeout time.Duration
	// MaxFailures consecutive failures open the breaker for OpenTimeout.
	MaxFailures uint32
	OpenTimeout time.Duration
}

// statusUpdateRequest is the body the gateway expects.
type statusUpdateRequest struct {
	OrderID   string `json:"orderId"`
	Status    string `json:"status"`
	Message   string `json:"message"`
	UpdatedBy string `json:"updatedBy"`
}

// Notifier implements ports.StatusNotifier on top of resty. Requests pass
// through a circuit breaker so an unavailable gateway fails fast.
type Notifier struct {
	client  *resty.Client
	breaker *gobreaker.CircuitBreaker
}

var _ ports.StatusNotifier = (*Notifier)(nil)

func NewNotifier(cfg Config, logger *slog.Logger) *Notifier {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	logger = logger.With("component", "gateway_notifier")

	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(timeout).
		SetRetryCount(0).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Notifier{
		client:  client,
		breaker: newCircuitBreaker(breakerName, cfg.MaxFailures, cfg.OpenTimeout, logger),
	}
}

func (n *Notifier) NotifyStatusChanged(ctx context.Context, change ports.StatusChange) error {
	body := statusUpdateRequest{
		OrderID:   change.OrderID.String(),
		Status:    change.To.String(),
		Message:   change.Message,
		UpdatedBy: change.UpdatedBy,
	}

	_, err := n.breaker.Execute(func() (interface{}, error) {
		resp, err := n.client.R().
			SetContext(ctx).
			SetBody(body).
			Post(StatusPath)
		if err != nil {
			return nil, err
		}
		if !resp.IsSuccess() {
			return nil, fmt.Errorf("%w: %s", ErrUnexpectedStatus, resp.Status())
		}
		return nil, nil
	})

	switch {
	case err == nil:
		return nil
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return fmt.Errorf("%w: %w", ErrCircuitOpen, err)
	default:
		return fmt.Errorf("notify gateway for order %s: %w", change.OrderID, err)
	}
}
