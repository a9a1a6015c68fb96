package ports

import (
	"context"
	"fmt"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
)

// ServiceName tags every status change published by this service.
const ServiceName = "order-service"

// StatusChange is the event emitted after an order status change has been
// committed.
type StatusChange struct {
	OrderID    kernel.UUID
	From       order.Status
	To         order.Status
	Message    string
	UpdatedBy  string
	OccurredAt time.Time
}

// NewStatusChange describes the transition of o away from previous.
func NewStatusChange(o *order.Order, previous order.Status) StatusChange {
	return StatusChange{
		OrderID:    o.ID(),
		From:       previous,
		To:         o.Status(),
		Message:    fmt.Sprintf("Order status updated from %s to %s", previous, o.Status()),
		UpdatedBy:  ServiceName,
		OccurredAt: o.UpdatedAt(),
	}
}

// StatusNotifier delivers status changes to downstream systems. Delivery is
// best effort: callers log a returned error and carry on.
type StatusNotifier interface {
	NotifyStatusChanged(ctx context.Context, change StatusChange) error
}
