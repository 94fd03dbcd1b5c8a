// Package recurringrepo provides data transfer objects and mapping functions for
// recurring order template persistence. This package implements the repository
// pattern for the recurring domain aggregate, handling the conversion between
// domain entities and database representations.
package recurringrepo

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/recurring"
)

// RecurringOrderDTO represents the database structure for persisting
// recurring order templates.
type RecurringOrderDTO struct {
	ID         uuid.UUID               `gorm:"type:uuid;primaryKey"`
	ShopID     uuid.UUID               `gorm:"type:uuid;not null;index"`
	Name       string                  `gorm:"type:varchar(255);not null"`
	Frequency  int                     `gorm:"type:int;not null"`
	DayOfWeek  *int                    `gorm:"type:int"`
	DayOfMonth *int                    `gorm:"type:int"`
	IsActive   bool                    `gorm:"not null;default:true"`
	NextRun    time.Time               `gorm:"not null;index"`
	LastRun    *time.Time
	Items      []RecurringOrderItemDTO `gorm:"foreignKey:RecurringOrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for recurring order templates.
func (RecurringOrderDTO) TableName() string {
	return "recurring_orders"
}

// RecurringOrderItemDTO represents a single line of a recurring order template.
type RecurringOrderItemDTO struct {
	ID               uint            `gorm:"primaryKey;autoIncrement"`
	RecurringOrderID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID        uuid.UUID       `gorm:"type:uuid;not null"`
	Quantity         decimal.Decimal `gorm:"type:numeric(12,3);not null"`
}

// TableName specifies the database table name for recurring order template lines.
func (RecurringOrderItemDTO) TableName() string {
	return "recurring_order_items"
}

// fromDomain converts a recurring template domain aggregate to its database representation.
func fromDomain(aggregate *recurring.Template) RecurringOrderDTO {
	items := make([]RecurringOrderItemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, RecurringOrderItemDTO{
			RecurringOrderID: aggregate.ID().Bytes(),
			ProductID:        item.ProductID().Bytes(),
			Quantity:         item.Quantity(),
		})
	}

	var dayOfWeek *int
	if aggregate.DayOfWeek() != nil {
		weekday := int(*aggregate.DayOfWeek())
		dayOfWeek = &weekday
	}

	return RecurringOrderDTO{
		ID:         aggregate.ID().Bytes(),
		ShopID:     aggregate.ShopID().Bytes(),
		Name:       aggregate.Name(),
		Frequency:  int(aggregate.Frequency()),
		DayOfWeek:  dayOfWeek,
		DayOfMonth: aggregate.DayOfMonth(),
		IsActive:   aggregate.IsActive(),
		NextRun:    aggregate.NextRun(),
		LastRun:    aggregate.LastRun(),
		Items:      items,
	}
}

// toDomain converts a database DTO to a recurring template domain aggregate.
func toDomain(dto RecurringOrderDTO) (*recurring.Template, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	shopID, err := kernel.UUIDFromBytes(dto.ShopID[:])
	if err != nil {
		return nil, err
	}

	items := make([]recurring.TemplateItem, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		productID, productErr := kernel.UUIDFromBytes(itemDTO.ProductID[:])
		if productErr != nil {
			return nil, productErr
		}

		item, itemErr := recurring.NewTemplateItem(productID, itemDTO.Quantity)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	var dayOfWeek *time.Weekday
	if dto.DayOfWeek != nil {
		weekday := time.Weekday(*dto.DayOfWeek)
		dayOfWeek = &weekday
	}

	return recurring.RestoreTemplate(id, shopID, dto.Name, recurring.Frequency(dto.Frequency),
		dayOfWeek, dto.DayOfMonth, dto.IsActive, dto.NextRun, dto.LastRun, items)
}
