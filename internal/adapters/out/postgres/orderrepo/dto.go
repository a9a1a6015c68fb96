// Package orderrepo persists order aggregates with GORM. An order maps to a
// row of the orders table plus one order_items row per line.
package orderrepo

import (
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is the orders table. ID is the store id handed back to the
// aggregate; OrderID is the public identifier.
type OrderDTO struct {
	ID        uint64          `gorm:"primaryKey;autoIncrement"`
	OrderID   uuid.UUID       `gorm:"type:uuid;uniqueIndex;not null"`
	Total     decimal.Decimal `gorm:"type:numeric;not null"`
	Status    string          `gorm:"type:varchar(32);index;not null"`
	CreatedAt time.Time       `gorm:"autoCreateTime:false;not null"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime:false;not null"`
	Items     []OrderItemDTO  `gorm:"foreignKey:OrderRefID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO is one order line. Position keeps the insertion order.
type OrderItemDTO struct {
	ID         uint64          `gorm:"primaryKey;autoIncrement"`
	OrderRefID uint64          `gorm:"index;not null"`
	Position   int             `gorm:"not null"`
	ItemID     string          `gorm:"type:varchar(255);not null"`
	ItemName   string          `gorm:"type:varchar(255);not null"`
	Quantity   int             `gorm:"not null"`
	Price      decimal.Decimal `gorm:"type:numeric;not null"`
}

func (OrderItemDTO) TableName() string {
	return "order_items"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	items := aggregate.Items()
	dtoItems := make([]OrderItemDTO, len(items))
	for i, item := range items {
		dtoItems[i] = OrderItemDTO{
			OrderRefID: aggregate.StoreID(),
			Position:   i,
			ItemID:     item.ItemID(),
			ItemName:   item.Name(),
			Quantity:   item.Quantity(),
			Price:      item.UnitPrice(),
		}
	}

	return OrderDTO{
		ID:        aggregate.StoreID(),
		OrderID:   aggregate.ID().Bytes(),
		Total:     aggregate.Total(),
		Status:    aggregate.Status().String(),
		CreatedAt: aggregate.CreatedAt(),
		UpdatedAt: aggregate.UpdatedAt(),
		Items:     dtoItems,
	}
}

// toDomain expects Items preloaded in position order.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromString(dto.OrderID.String())
	if err != nil {
		return nil, err
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := order.NewItem(itemDTO.ItemID, itemDTO.ItemName, itemDTO.Quantity, itemDTO.Price)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(
		dto.ID,
		id,
		items,
		dto.Total,
		status,
		dto.CreatedAt.UTC(),
		dto.UpdatedAt.UTC(),
	)
}

func toDomainList(dtos []OrderDTO) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}
