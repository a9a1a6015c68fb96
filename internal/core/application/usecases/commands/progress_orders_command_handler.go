package commands

import (
	"context"
	"log/slog"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/core/ports"
	"orders/internal/pkg/metrics"
)

const progressionCompletedMessage = "Order status progression processing completed"

// ProgressOrdersCommandHandler runs the progression sweep over
// order.ProgressionSteps.
//
// All groups are read before the first mutation, so an order advanced by an
// earlier step is not picked up again by a later one. Each order is then
// moved in its own unit of work; a crash mid-sweep leaves partial progress.
type ProgressOrdersCommandHandler struct {
	transitioner statusTransitioner
}

func NewProgressOrdersCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ports.StatusNotifier,
	clock kernel.Clock,
	logger *slog.Logger,
) ProgressOrdersCommandHandler {
	return ProgressOrdersCommandHandler{
		transitioner: statusTransitioner{
			uowFactory: uowFactory,
			notifier:   notifier,
			clock:      clock,
			logger:     logger.With("component", "progress_orders"),
		},
	}
}

type statusGroup struct {
	orders []*order.Order
	err    error
}

// Handle always returns a report for a valid command. Per-step and
// per-order failures are recorded inside it.
func (h *ProgressOrdersCommandHandler) Handle(
	ctx context.Context,
	cmd ProgressOrdersCommand,
) (ProgressionReport, error) {
	if err := cmd.Validate(); err != nil {
		return ProgressionReport{}, err
	}

	start := time.Now()
	defer func() {
		metrics.ProgressionSweepDuration.Observe(time.Since(start).Seconds())
	}()

	steps := order.ProgressionSteps()

	repo := h.transitioner.uowFactory.Create().OrderRepository()
	groups := make([]statusGroup, len(steps))
	for i, step := range steps {
		groups[i].orders, groups[i].err = repo.GetAllByStatus(ctx, step.From)
	}

	report := ProgressionReport{
		Success:     true,
		Message:     progressionCompletedMessage,
		StepResults: make(map[string]StepResult, len(steps)),
	}

	for i, step := range steps {
		var result StepResult
		if groups[i].err != nil {
			h.transitioner.logger.ErrorContext(ctx, "failed to list orders for step",
				"step", step.Name(),
				"error", groups[i].err,
			)
			result = groupFailed(step, groups[i].err)
		} else {
			result = h.transitioner.runStep(ctx, step, groups[i].orders)
		}

		report.StepResults[result.Step] = result
		report.TotalOrdersUpdated += result.UpdatedCount
	}

	report.Timestamp = h.transitioner.clock.Now()

	h.transitioner.logger.InfoContext(ctx, "order status progression completed",
		"totalOrdersUpdated", report.TotalOrdersUpdated,
		"stepFailed", report.StepFailed(),
	)

	return report, nil
}
