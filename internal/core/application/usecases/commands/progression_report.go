package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/metrics"
)

// StepResult summarizes one bulk transition step.
type StepResult struct {
	Step         string
	Success      bool
	FromStatus   order.Status
	ToStatus     order.Status
	TotalFound   int
	UpdatedCount int
	SkippedCount int
	FailedCount  int
	Message      string
}

// ProgressionReport is the outcome of a full progression sweep. Success only
// states that the sweep ran; per-step failures live in StepResults.
type ProgressionReport struct {
	Success            bool
	Message            string
	Timestamp          time.Time
	TotalOrdersUpdated int
	StepResults        map[string]StepResult
}

// StepFailed reports whether any step of the sweep failed.
func (r ProgressionReport) StepFailed() bool {
	for _, result := range r.StepResults {
		if !result.Success {
			return true
		}
	}
	return false
}

func newStepResult(step order.Transition) StepResult {
	return StepResult{
		Step:       step.Name(),
		Success:    true,
		FromStatus: step.From,
		ToStatus:   step.To,
	}
}

// groupFailed reports a step whose orders could not be listed.
func groupFailed(step order.Transition, err error) StepResult {
	result := newStepResult(step)
	result.Success = false
	result.Message = fmt.Sprintf("%s -> %s failed: %v", step.From, step.To, err)
	return result
}

// runStep moves every grouped order along step, each in its own unit of
// work. A failing order is recorded and does not stop the others.
func (t statusTransitioner) runStep(ctx context.Context, step order.Transition, group []*order.Order) StepResult {
	result := newStepResult(step)
	result.TotalFound = len(group)

	if len(group) == 0 {
		result.Message = fmt.Sprintf("No orders found with status %s", step.From)
		return result
	}

	var firstErr error
	for _, o := range group {
		err := t.transitionStep(ctx, o.ID(), step)
		switch {
		case err == nil:
			result.UpdatedCount++
			metrics.ProgressionOrdersTotal.WithLabelValues(step.Name(), metrics.OutcomeUpdated).Inc()
		case errors.Is(err, errOrderMoved):
			result.SkippedCount++
			metrics.ProgressionOrdersTotal.WithLabelValues(step.Name(), metrics.OutcomeSkipped).Inc()
			t.logger.DebugContext(ctx, "order skipped, status changed concurrently",
				"step", step.Name(),
				"orderId", o.ID().String(),
			)
		default:
			result.FailedCount++
			metrics.ProgressionOrdersTotal.WithLabelValues(step.Name(), metrics.OutcomeFailed).Inc()
			t.logger.ErrorContext(ctx, "failed to progress order",
				"step", step.Name(),
				"orderId", o.ID().String(),
				"error", err,
			)
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	if result.FailedCount > 0 {
		result.Success = false
		result.Message = fmt.Sprintf("%s -> %s failed: %d of %d orders failed: %v",
			step.From, step.To, result.FailedCount, result.TotalFound, firstErr)
		return result
	}

	result.Message = fmt.Sprintf("Successfully updated %d orders from %s to %s",
		result.UpdatedCount, step.From, step.To)
	return result
}
