// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Order-level totals are stored denormalized for the read side; the domain
// recomputes them from the items on rehydration.
type OrderDTO struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderNumber      string          `gorm:"type:varchar(16);not null;uniqueIndex"`
	ShopID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	Status           int             `gorm:"type:int;not null;index"`
	CreatedAt        time.Time       `gorm:"not null"`
	DeliveryDate     *time.Time      `gorm:"type:date;index"`
	AggregatedAt     *time.Time
	SupplierOrderID  *uuid.UUID      `gorm:"type:uuid;index"`
	RecurringOrderID *uuid.UUID      `gorm:"type:uuid;index"`
	TotalHT          decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	TotalTVA         decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	TotalTTC         decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Items            []OrderItemDTO  `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO represents the database structure for persisting order lines.
// Lines snapshot the product name, price and TVA rate at order time and
// never change after creation.
type OrderItemDTO struct {
	ID          uint            `gorm:"primaryKey;autoIncrement"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null"`
	ProductName string          `gorm:"type:varchar(255);not null"`
	Quantity    decimal.Decimal `gorm:"type:numeric(12,3);not null"`
	PriceHT     decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	TVARate     decimal.Decimal `gorm:"type:numeric(5,2);not null"`
}

// TableName specifies the database table name for order line entities.
func (OrderItemDTO) TableName() string {
	return "order_items"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	items := make([]OrderItemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, OrderItemDTO{
			OrderID:     aggregate.ID().Bytes(),
			ProductID:   item.ProductID().Bytes(),
			ProductName: item.ProductName(),
			Quantity:    item.Quantity(),
			PriceHT:     item.PriceHT(),
			TVARate:     item.TVARate(),
		})
	}

	return OrderDTO{
		ID:               aggregate.ID().Bytes(),
		OrderNumber:      aggregate.OrderNumber(),
		ShopID:           aggregate.ShopID().Bytes(),
		Status:           int(aggregate.Status()),
		CreatedAt:        aggregate.CreatedAt(),
		DeliveryDate:     aggregate.DeliveryDate(),
		AggregatedAt:     aggregate.AggregatedAt(),
		SupplierOrderID:  uuidPtr(aggregate.SupplierOrderID()),
		RecurringOrderID: uuidPtr(aggregate.RecurringOrderID()),
		TotalHT:          aggregate.Totals().HT(),
		TotalTVA:         aggregate.Totals().TVA(),
		TotalTTC:         aggregate.Totals().TTC(),
		Items:            items,
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including lines using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	shopID, err := kernel.UUIDFromBytes(dto.ShopID[:])
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		productID, productErr := kernel.UUIDFromBytes(itemDTO.ProductID[:])
		if productErr != nil {
			return nil, productErr
		}

		item, itemErr := order.NewItem(productID, itemDTO.ProductName,
			itemDTO.Quantity, itemDTO.PriceHT, itemDTO.TVARate)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	supplierOrderID, err := kernelPtr(dto.SupplierOrderID)
	if err != nil {
		return nil, err
	}
	recurringOrderID, err := kernelPtr(dto.RecurringOrderID)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(id, dto.OrderNumber, shopID, order.Status(dto.Status),
		items, dto.CreatedAt, dto.DeliveryDate, dto.AggregatedAt, supplierOrderID, recurringOrderID)
}

func uuidPtr(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func kernelPtr(id *uuid.UUID) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil
	}
	converted, err := kernel.UUIDFromBytes((*id)[:])
	if err != nil {
		return nil, err
	}
	return &converted, nil
}
