package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/core/ports"
	"orders/internal/pkg/metrics"
)

// errOrderMoved marks an order whose status changed between grouping and
// locking. Bulk steps count it as skipped, not failed.
var errOrderMoved = errors.New("order status changed concurrently")

// mutation applies a status change to a locked order.
type mutation func(o *order.Order, now time.Time) error

// statusTransitioner performs one order status change per unit of work and
// notifies after commit. It is shared by the single and bulk handlers.
type statusTransitioner struct {
	uowFactory OrderUoWFactory
	notifier   ports.StatusNotifier
	clock      kernel.Clock
	logger     *slog.Logger
}

// transition locks the order, applies mutate, persists and commits. The
// notification is sent after a successful commit and never changes the result.
func (t statusTransitioner) transition(ctx context.Context, id kernel.UUID, mutate mutation) (*order.Order, error) {
	uow := t.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	o, err := repo.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}

	previous := o.Status()
	if err = mutate(o, t.clock.Now()); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	metrics.StatusTransitionsTotal.WithLabelValues(previous.String(), o.Status().String()).Inc()
	t.logger.InfoContext(ctx, "order status changed",
		"orderId", o.ID().String(),
		"from", previous.String(),
		"to", o.Status().String(),
	)

	t.notify(ctx, ports.NewStatusChange(o, previous))

	return o, nil
}

// transitionStep moves a grouped order along step. A panic raised while
// handling the order is returned as an error so the caller can carry on.
func (t statusTransitioner) transitionStep(ctx context.Context, id kernel.UUID, step order.Transition) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("order %s: panic: %v", id, r)
		}
	}()

	_, err = t.transition(ctx, id, func(o *order.Order, now time.Time) error {
		if o.Status() != step.From || !o.Status().CanTransitionTo(step.To) {
			return errOrderMoved
		}
		return o.ChangeStatus(step.To, now)
	})
	return err
}

// notify delivers change best effort: failures are logged and counted only.
func (t statusTransitioner) notify(ctx context.Context, change ports.StatusChange) {
	if err := t.notifier.NotifyStatusChanged(ctx, change); err != nil {
		metrics.NotificationsTotal.WithLabelValues(metrics.ResultFailed).Inc()
		t.logger.WarnContext(ctx, "status change notification failed",
			"orderId", change.OrderID.String(),
			"status", change.To.String(),
			"error", err,
		)
		return
	}
	metrics.NotificationsTotal.WithLabelValues(metrics.ResultDelivered).Inc()
}
