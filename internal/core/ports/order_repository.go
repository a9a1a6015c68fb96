// Package ports declares the contracts between the order use cases and the
// infrastructure that stores orders and publishes status changes.
package ports

import (
	"context"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
)

// OrderRepository is the persistence contract for order aggregates.
// Implementations keep items in insertion order and return
// errs.ObjectNotFoundError for unknown identifiers.
type OrderRepository interface {
	// Add persists a new order and assigns its store id.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists the status and updatedAt of an existing order.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by its identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate retrieves an order and locks it until the surrounding unit
	// of work ends, so concurrent transitions of the same order serialize.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllByStatus retrieves every order currently in status, oldest first.
	GetAllByStatus(ctx context.Context, status order.Status) ([]*order.Order, error)

	// GetAll retrieves every order, oldest first.
	GetAll(ctx context.Context) ([]*order.Order, error)
}
