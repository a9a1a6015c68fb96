package gateway

import (
	"log/slog"
	"time"

	"orders/internal/pkg/metrics"

	"github.com/sony/gobreaker"
)

const (
	defaultMaxFailures = 5
	defaultOpenTimeout = 30 * time.Second
)

// newCircuitBreaker trips after maxFailures consecutive failures and reports
// every state change to the circuit_breaker_state gauge.
func newCircuitBreaker(name string, maxFailures uint32, openTimeout time.Duration, logger *slog.Logger) *gobreaker.CircuitBreaker {
	if maxFailures == 0 {
		maxFailures = defaultMaxFailures
	}
	if openTimeout <= 0 {
		openTimeout = defaultOpenTimeout
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    0,
		Timeout:     openTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		OnStateChange: func(cbName string, from gobreaker.State, to gobreaker.State) {
			metrics.CircuitBreakerState.WithLabelValues(cbName).Set(stateValue(to))
			logger.Info("circuit breaker state changed",
				"circuit", cbName,
				"from", from.String(),
				"to", to.String(),
			)
		},
	})

	metrics.CircuitBreakerState.WithLabelValues(name).Set(stateValue(gobreaker.StateClosed))

	return cb
}

// stateValue maps a breaker state onto the gauge: 0 closed, 1 half-open, 2 open.
func stateValue(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}
