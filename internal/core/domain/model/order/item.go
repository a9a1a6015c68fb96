package order

import (
	"errors"
	"fmt"
	"strings"

	"orders/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrItemIsNotConstructed is returned by Item.Validate for zero values.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// Item is a line of an order. It is immutable once built.
type Item struct {
	itemID    string
	name      string
	quantity  int
	unitPrice decimal.Decimal

	isConstructed bool
}

// NewItem validates every field and reports all failures at once.
func NewItem(itemID, name string, quantity int, unitPrice decimal.Decimal) (Item, error) {
	item := Item{isConstructed: true}

	if err := errors.Join(
		item.setItemID(itemID),
		item.setName(name),
		item.setQuantity(quantity),
		item.setUnitPrice(unitPrice),
	); err != nil {
		return Item{}, err
	}

	return item, nil
}

func (i Item) Validate() error {
	if !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

func (i Item) ItemID() string {
	return i.itemID
}

func (i Item) Name() string {
	return i.name
}

func (i Item) Quantity() int {
	return i.quantity
}

func (i Item) UnitPrice() decimal.Decimal {
	return i.unitPrice
}

// Subtotal is unitPrice multiplied by quantity, computed exactly.
func (i Item) Subtotal() decimal.Decimal {
	return i.unitPrice.Mul(decimal.NewFromInt(int64(i.quantity)))
}

func (i *Item) setItemID(itemID string) error {
	if strings.TrimSpace(itemID) == "" {
		return errs.NewValueIsRequiredError("itemId")
	}
	i.itemID = itemID
	return nil
}

func (i *Item) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errs.NewValueIsRequiredError("itemName")
	}
	i.name = name
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	i.quantity = quantity
	return nil
}

func (i *Item) setUnitPrice(unitPrice decimal.Decimal) error {
	if unitPrice.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("price", fmt.Errorf("%s is negative", unitPrice))
	}
	i.unitPrice = unitPrice
	return nil
}
