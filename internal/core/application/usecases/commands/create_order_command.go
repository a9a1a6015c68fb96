package commands

import (
	"errors"
	"fmt"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/errs"
	"orders/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// OrderLine is one requested item of a new order.
type OrderLine struct {
	ItemID   string
	ItemName string
	Quantity int
	Price    decimal.Decimal
}

// CreateOrderCommand represents a request to place a new order.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), []OrderLine{
//	    {ItemID: "burger-1", ItemName: "Classic Burger", Quantity: 2, Price: decimal.RequireFromString("12.99")},
//	})
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	created, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	items   []order.Item

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the identifier and every line. Line errors
// are joined so the caller sees all of them.
func NewCreateOrderCommand(orderID kernel.UUID, lines []OrderLine) (CreateOrderCommand, error) {
	command := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setItems(lines),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return command, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Items returns a copy of the validated order lines.
func (c CreateOrderCommand) Items() []order.Item {
	items := make([]order.Item, len(c.items))
	copy(items, c.items)
	return items
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setItems(lines []OrderLine) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	items := make([]order.Item, 0, len(lines))
	var lineErrs []error
	for idx, line := range lines {
		item, err := order.NewItem(line.ItemID, line.ItemName, line.Quantity, line.Price)
		if err != nil {
			lineErrs = append(lineErrs, fmt.Errorf("items[%d]: %w", idx, err))
			continue
		}
		items = append(items, item)
	}
	if len(lineErrs) > 0 {
		return errors.Join(lineErrs...)
	}

	c.items = items
	return nil
}
