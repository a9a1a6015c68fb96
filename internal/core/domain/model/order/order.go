package order

import (
	"errors"
	"fmt"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrStoreIDAlreadyAssigned guards the identifier handed out by the store.
	ErrStoreIDAlreadyAssigned = errors.New("store id is already assigned")
)

// Order is the aggregate root of the service. It owns its items and moves
// through the status state machine.
//
// Invariants:
//   - id is set once and never changes
//   - total is the sum of item subtotals at creation and is never recomputed
//   - every status change is an edge of the state machine
//   - updatedAt never goes below createdAt and grows on every status change
type Order struct {
	// storeID is the surrogate key assigned on first persist, 0 before that
	storeID uint64

	id        kernel.UUID
	items     []Item
	total     decimal.Decimal
	status    Status
	createdAt time.Time
	updatedAt time.Time

	isConstructed bool
}

// NewOrder creates a Pending order stamped with now. At least one item is
// required.
//
//	item, _ := order.NewItem("burger-1", "Classic Burger", 2, decimal.RequireFromString("12.99"))
//	o, err := order.NewOrder(kernel.NewUUID(), []order.Item{item}, clock.Now())
//	// o.Total() == 25.98, o.Status() == order.Pending
func NewOrder(id kernel.UUID, items []Item, now time.Time) (*Order, error) {
	o := &Order{
		status:        Pending,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	o.total = decimal.Zero
	for _, item := range o.items {
		o.total = o.total.Add(item.Subtotal())
	}

	return o, nil
}

// RestoreOrder rebuilds an order read from storage. The total is taken as
// stored, not recomputed.
func RestoreOrder(
	storeID uint64,
	id kernel.UUID,
	items []Item,
	total decimal.Decimal,
	status Status,
	createdAt, updatedAt time.Time,
) (*Order, error) {
	o := &Order{
		storeID:       storeID,
		total:         total,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setItems(items),
		status.Validate(),
	); err != nil {
		return nil, fmt.Errorf("restore order %s: %w", id, err)
	}
	o.status = status

	return o, nil
}

func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) StoreID() uint64 {
	return o.storeID
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

// Items returns a copy of the order lines in insertion order.
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

func (o *Order) Total() decimal.Decimal {
	return o.total
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// AssignStoreID records the surrogate key chosen by the store. It may be
// called only once.
func (o *Order) AssignStoreID(storeID uint64) error {
	if o.storeID != 0 {
		return ErrStoreIDAlreadyAssigned
	}
	if storeID == 0 {
		return errs.NewValueIsRequiredError("storeID")
	}
	o.storeID = storeID
	return nil
}

// ChangeStatus moves the order to target if the state machine allows it and
// refreshes updatedAt. The order is left untouched on error.
func (o *Order) ChangeStatus(target Status, now time.Time) error {
	if err := target.Validate(); err != nil {
		return err
	}
	if !o.status.CanTransitionTo(target) {
		return errs.NewTransitionIsInvalidError(o.status.String(), target.String())
	}

	o.status = target
	o.touch(now)
	return nil
}

// Advance moves the order one step along the happy path.
func (o *Order) Advance(now time.Time) error {
	next, err := o.status.Next()
	if err != nil {
		return err
	}
	return o.ChangeStatus(next, now)
}

// touch keeps updatedAt strictly increasing even when the clock stalls or
// steps backwards.
func (o *Order) touch(now time.Time) {
	if !now.After(o.updatedAt) {
		now = o.updatedAt.Add(kernel.Precision)
	}
	o.updatedAt = now
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for idx, item := range items {
		if err := item.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("items[%d]", idx), err)
		}
	}
	o.items = make([]Item, len(items))
	copy(o.items, items)
	return nil
}
