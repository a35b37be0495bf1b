// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. The order aggregate and its line items are written and
// read as one unit; line items never change after the order is created.
package orderrepo

import (
	"time"

	"ecommerce/internal/core/domain/model/kernel"
	"ecommerce/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order
// aggregates. The total is stored for read-model queries; the domain
// re-derives it from the items on load.
type OrderDTO struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID            uuid.UUID       `gorm:"type:uuid;index"`
	Status            int             `gorm:"index"`
	Total             decimal.Decimal `gorm:"type:decimal(12,2)"`
	ShippingAddressID *uuid.UUID      `gorm:"type:uuid"`
	CreatedAt         time.Time       `gorm:"index"`

	Items []OrderItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName overrides GORM's default naming to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO represents one persisted line item with its price and name
// snapshots.
type OrderItemDTO struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID       `gorm:"type:uuid;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid"`
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal `gorm:"type:decimal(12,2)"`
	Subtotal    decimal.Decimal `gorm:"type:decimal(12,2)"`
}

// TableName overrides GORM's default naming to use "order_items".
func (OrderItemDTO) TableName() string {
	return "order_items"
}

// fromDomain converts an order domain aggregate to its database
// representation, items included.
func fromDomain(aggregate *order.Order) OrderDTO {
	var addressID *uuid.UUID
	if id := aggregate.ShippingAddressID(); id != nil {
		raw := id.Bytes()
		addressID = &raw
	}

	items := aggregate.Items()
	itemDTOs := make([]OrderItemDTO, 0, len(items))
	for _, item := range items {
		itemDTOs = append(itemDTOs, OrderItemDTO{
			ID:          item.ID().Bytes(),
			OrderID:     aggregate.ID().Bytes(),
			ProductID:   item.ProductID().Bytes(),
			ProductName: item.ProductName(),
			Quantity:    item.Quantity(),
			UnitPrice:   item.UnitPrice().Decimal(),
			Subtotal:    item.Subtotal().Decimal(),
		})
	}

	return OrderDTO{
		ID:                aggregate.ID().Bytes(),
		UserID:            aggregate.UserID().Bytes(),
		Status:            int(aggregate.Status()),
		Total:             aggregate.Total().Decimal(),
		ShippingAddressID: addressID,
		CreatedAt:         aggregate.CreatedAt(),
		Items:             itemDTOs,
	}
}

// toDomain converts a database DTO to an order domain aggregate using
// RestoreOrder, which re-checks the total and subtotal invariants.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}

	var addressID *kernel.UUID
	if dto.ShippingAddressID != nil {
		aID, addrErr := kernel.UUIDFromBytes((*dto.ShippingAddressID)[:])
		if addrErr != nil {
			return nil, addrErr
		}
		addressID = &aID
	}

	items := make([]order.LineItem, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(id, userID, dto.CreatedAt, order.Status(dto.Status), items, addressID)
}

func itemToDomain(dto OrderItemDTO) (order.LineItem, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return order.LineItem{}, err
	}

	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return order.LineItem{}, err
	}

	unitPrice, err := kernel.NewMoney(dto.UnitPrice)
	if err != nil {
		return order.LineItem{}, err
	}

	subtotal, err := kernel.NewMoney(dto.Subtotal)
	if err != nil {
		return order.LineItem{}, err
	}

	return order.RestoreLineItem(id, productID, dto.Quantity, unitPrice, dto.ProductName, subtotal)
}
