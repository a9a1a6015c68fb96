package commands

import (
	"context"
	"log/slog"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/ports"
)

// TransitionOrdersCommandHandler applies an operator requested bulk
// transition and reports it as a single step.
type TransitionOrdersCommandHandler struct {
	transitioner statusTransitioner
}

func NewTransitionOrdersCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ports.StatusNotifier,
	clock kernel.Clock,
	logger *slog.Logger,
) TransitionOrdersCommandHandler {
	return TransitionOrdersCommandHandler{
		transitioner: statusTransitioner{
			uowFactory: uowFactory,
			notifier:   notifier,
			clock:      clock,
			logger:     logger.With("component", "transition_orders"),
		},
	}
}

// Handle returns an error only for an unconstructed command. A failed
// listing or failed orders are reported in the StepResult.
func (h *TransitionOrdersCommandHandler) Handle(ctx context.Context, cmd TransitionOrdersCommand) (StepResult, error) {
	if err := cmd.Validate(); err != nil {
		return StepResult{}, err
	}

	step := cmd.Transition()

	group, err := h.transitioner.uowFactory.Create().OrderRepository().GetAllByStatus(ctx, step.From)
	if err != nil {
		h.transitioner.logger.ErrorContext(ctx, "failed to list orders for transition",
			"step", step.Name(),
			"error", err,
		)
		return groupFailed(step, err), nil
	}

	result := h.transitioner.runStep(ctx, step, group)

	h.transitioner.logger.InfoContext(ctx, "bulk status transition completed",
		"step", result.Step,
		"updated", result.UpdatedCount,
		"skipped", result.SkippedCount,
		"failed", result.FailedCount,
	)

	return result, nil
}
