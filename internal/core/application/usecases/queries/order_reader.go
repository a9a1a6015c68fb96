// Package queries contains read operations over orders. Queries never open a
// transaction and return read models rather than aggregates.
package queries

import (
	"context"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// OrderReader is the read side of the order repository.
type OrderReader interface {
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
	GetAll(ctx context.Context) ([]*order.Order, error)
}

// OrderItemResponse is one line of an order read model.
type OrderItemResponse struct {
	ItemID   string
	ItemName string
	Quantity int
	Price    decimal.Decimal
}

// OrderResponse is the read model shared by the order queries.
type OrderResponse struct {
	ID        kernel.UUID
	Items     []OrderItemResponse
	Total     decimal.Decimal
	Status    order.Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewOrderResponse builds the read model of o.
func NewOrderResponse(o *order.Order) OrderResponse {
	items := o.Items()
	response := OrderResponse{
		ID:        o.ID(),
		Items:     make([]OrderItemResponse, 0, len(items)),
		Total:     o.Total(),
		Status:    o.Status(),
		CreatedAt: o.CreatedAt(),
		UpdatedAt: o.UpdatedAt(),
	}
	for _, item := range items {
		response.Items = append(response.Items, OrderItemResponse{
			ItemID:   item.ItemID(),
			ItemName: item.Name(),
			Quantity: item.Quantity(),
			Price:    item.UnitPrice(),
		})
	}
	return response
}
