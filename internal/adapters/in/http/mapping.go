package http

import (
	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/application/usecases/queries"
	"orders/internal/generated/servers"
)

func toOrder(o queries.OrderResponse) servers.Order {
	items := make([]servers.OrderItem, len(o.Items))
	for i, item := range o.Items {
		items[i] = servers.OrderItem{
			ItemId:   item.ItemID,
			ItemName: item.ItemName,
			Quantity: item.Quantity,
			Price:    item.Price,
		}
	}

	return servers.Order{
		OrderId:   o.ID.Bytes(),
		Items:     items,
		Total:     o.Total,
		Status:    servers.OrderStatus(o.Status.String()),
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}

func toStepResult(r commands.StepResult) servers.StepResult {
	return servers.StepResult{
		Success:      r.Success,
		FromStatus:   servers.OrderStatus(r.FromStatus.String()),
		ToStatus:     servers.OrderStatus(r.ToStatus.String()),
		TotalFound:   r.TotalFound,
		UpdatedCount: r.UpdatedCount,
		SkippedCount: r.SkippedCount,
		FailedCount:  r.FailedCount,
		Message:      r.Message,
	}
}

func toProgressionReport(r commands.ProgressionReport) servers.ProgressionReport {
	steps := make(map[string]servers.StepResult, len(r.StepResults))
	for name, result := range r.StepResults {
		steps[name] = toStepResult(result)
	}

	return servers.ProgressionReport{
		Success:            r.Success,
		Message:            r.Message,
		Timestamp:          r.Timestamp,
		TotalOrdersUpdated: r.TotalOrdersUpdated,
		StepResults:        steps,
	}
}
