package commands

import (
	"context"
	"log/slog"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/core/ports"
)

// AdvanceOrderCommandHandler simulates the next step of an order's progress.
// Delivered and Cancelled orders are rejected with a transition error.
type AdvanceOrderCommandHandler struct {
	transitioner statusTransitioner
}

func NewAdvanceOrderCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ports.StatusNotifier,
	clock kernel.Clock,
	logger *slog.Logger,
) AdvanceOrderCommandHandler {
	return AdvanceOrderCommandHandler{
		transitioner: statusTransitioner{
			uowFactory: uowFactory,
			notifier:   notifier,
			clock:      clock,
			logger:     logger.With("component", "advance_order"),
		},
	}
}

func (h *AdvanceOrderCommandHandler) Handle(ctx context.Context, cmd AdvanceOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.transitioner.transition(ctx, cmd.OrderID(), func(o *order.Order, now time.Time) error {
		return o.Advance(now)
	})
}
