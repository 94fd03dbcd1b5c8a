// Package supplierorderrepo provides data transfer objects and mapping functions
// for supplier purchase order persistence. This package implements the repository
// pattern for the supplierorder domain aggregate, handling the conversion between
// domain entities and database representations.
package supplierorderrepo

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/supplierorder"
)

// SupplierOrderDTO represents the database structure for persisting supplier
// purchase orders. The unique index on order_number backs the conflict
// detection used when generating document numbers.
type SupplierOrderDTO struct {
	ID           uuid.UUID              `gorm:"type:uuid;primaryKey"`
	OrderNumber  string                 `gorm:"type:varchar(16);not null;uniqueIndex"`
	SupplierID   uuid.UUID              `gorm:"type:uuid;not null;index"`
	Status       int                    `gorm:"type:int;not null;index"`
	DeliveryDate time.Time              `gorm:"type:date;not null;index"`
	CreatedBy    uuid.UUID              `gorm:"type:uuid;not null"`
	CreatedAt    time.Time              `gorm:"not null"`
	TotalHT      decimal.Decimal        `gorm:"type:numeric(12,2);not null"`
	TotalTVA     decimal.Decimal        `gorm:"type:numeric(12,2);not null"`
	TotalTTC     decimal.Decimal        `gorm:"type:numeric(12,2);not null"`
	Lines        []SupplierOrderLineDTO `gorm:"foreignKey:SupplierOrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for supplier purchase orders.
func (SupplierOrderDTO) TableName() string {
	return "supplier_orders"
}

// SupplierOrderLineDTO represents a single line of a supplier purchase order.
// Lines snapshot the product name, reference, unit and resolved unit price
// at materialization time.
type SupplierOrderLineDTO struct {
	ID              uint            `gorm:"primaryKey;autoIncrement"`
	SupplierOrderID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID       uuid.UUID       `gorm:"type:uuid;not null"`
	ProductName     string          `gorm:"type:varchar(255);not null"`
	Reference       string          `gorm:"type:varchar(64)"`
	Quantity        decimal.Decimal `gorm:"type:numeric(12,3);not null"`
	Unit            string          `gorm:"type:varchar(32)"`
	UnitPrice       decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	TVARate         decimal.Decimal `gorm:"type:numeric(5,2);not null"`
}

// TableName specifies the database table name for supplier purchase order lines.
func (SupplierOrderLineDTO) TableName() string {
	return "supplier_order_lines"
}

// fromDomain converts a supplier order domain aggregate to its database representation.
func fromDomain(aggregate *supplierorder.SupplierOrder) SupplierOrderDTO {
	lines := make([]SupplierOrderLineDTO, 0, len(aggregate.Lines()))
	for _, line := range aggregate.Lines() {
		lines = append(lines, SupplierOrderLineDTO{
			SupplierOrderID: aggregate.ID().Bytes(),
			ProductID:       line.ProductID().Bytes(),
			ProductName:     line.ProductName(),
			Reference:       line.Reference(),
			Quantity:        line.Quantity(),
			Unit:            line.Unit(),
			UnitPrice:       line.UnitPrice(),
			TVARate:         line.TVARate(),
		})
	}

	return SupplierOrderDTO{
		ID:           aggregate.ID().Bytes(),
		OrderNumber:  aggregate.OrderNumber(),
		SupplierID:   aggregate.SupplierID().Bytes(),
		Status:       int(aggregate.Status()),
		DeliveryDate: aggregate.DeliveryDate(),
		CreatedBy:    aggregate.CreatedBy().Bytes(),
		CreatedAt:    aggregate.CreatedAt(),
		TotalHT:      aggregate.Totals().HT(),
		TotalTVA:     aggregate.Totals().TVA(),
		TotalTTC:     aggregate.Totals().TTC(),
		Lines:        lines,
	}
}

// toDomain converts a database DTO to a supplier order domain aggregate.
func toDomain(dto SupplierOrderDTO) (*supplierorder.SupplierOrder, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	supplierID, err := kernel.UUIDFromBytes(dto.SupplierID[:])
	if err != nil {
		return nil, err
	}

	createdBy, err := kernel.UUIDFromBytes(dto.CreatedBy[:])
	if err != nil {
		return nil, err
	}

	lines := make([]supplierorder.Line, 0, len(dto.Lines))
	for _, lineDTO := range dto.Lines {
		productID, productErr := kernel.UUIDFromBytes(lineDTO.ProductID[:])
		if productErr != nil {
			return nil, productErr
		}

		line, lineErr := supplierorder.NewLine(productID, lineDTO.ProductName, lineDTO.Reference,
			lineDTO.Quantity, lineDTO.Unit, lineDTO.UnitPrice, lineDTO.TVARate)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
	}

	return supplierorder.RestoreSupplierOrder(id, dto.OrderNumber, supplierID,
		supplierorder.Status(dto.Status), lines, dto.DeliveryDate, createdBy, dto.CreatedAt)
}
