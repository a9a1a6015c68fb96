package commands

import (
	"context"
	"log/slog"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/core/ports"
)

// ChangeOrderStatusCommandHandler applies a single status change.
//
// Example:
//
//	cmd, _ := NewChangeOrderStatusCommand(orderID, order.Confirmed)
//	updated, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrObjectNotFound):
//	    // unknown order
//	case errors.Is(err, errs.ErrTransitionIsInvalid):
//	    // not an edge of the state machine, nothing was written
//	}
type ChangeOrderStatusCommandHandler struct {
	transitioner statusTransitioner
}

func NewChangeOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ports.StatusNotifier,
	clock kernel.Clock,
	logger *slog.Logger,
) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		transitioner: statusTransitioner{
			uowFactory: uowFactory,
			notifier:   notifier,
			clock:      clock,
			logger:     logger.With("component", "change_order_status"),
		},
	}
}

// Handle locks the order, applies the transition, commits and then notifies.
func (h *ChangeOrderStatusCommandHandler) Handle(
	ctx context.Context,
	cmd ChangeOrderStatusCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.transitioner.transition(ctx, cmd.OrderID(), func(o *order.Order, now time.Time) error {
		return o.ChangeStatus(cmd.Status(), now)
	})
}
