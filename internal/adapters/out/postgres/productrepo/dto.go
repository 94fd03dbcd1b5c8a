// Package productrepo provides data transfer objects and mapping functions for catalog persistence.
// This package implements the repository pattern for the product domain aggregate, handling
// the conversion between domain entities and database representations.
package productrepo

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/product"
)

// ProductDTO represents the database structure for persisting catalog products.
type ProductDTO struct {
	ID        uuid.UUID            `gorm:"type:uuid;primaryKey"`
	Name      string               `gorm:"type:varchar(255);not null"`
	Reference string               `gorm:"type:varchar(64)"`
	Unit      string               `gorm:"type:varchar(32)"`
	PriceHT   decimal.Decimal      `gorm:"type:numeric(12,2);not null"`
	TVARate   decimal.Decimal      `gorm:"type:numeric(5,2);not null"`
	IsActive  bool                 `gorm:"not null;default:true"`
	IsHidden  bool                 `gorm:"not null;default:false"`
	Suppliers []ProductSupplierDTO `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for product entities.
func (ProductDTO) TableName() string {
	return "products"
}

// ProductSupplierDTO represents a product-to-supplier link row.
// Position preserves the link order: the first link is the primary supplier.
type ProductSupplierDTO struct {
	ID         uint             `gorm:"primaryKey;autoIncrement"`
	ProductID  uuid.UUID        `gorm:"type:uuid;not null;index"`
	SupplierID uuid.UUID        `gorm:"type:uuid;not null;index"`
	UnitPrice  *decimal.Decimal `gorm:"type:numeric(12,2)"`
	Position   int              `gorm:"not null"`
}

// TableName specifies the database table name for product supplier links.
func (ProductSupplierDTO) TableName() string {
	return "product_suppliers"
}

// fromDomain converts a product domain aggregate to its database representation.
func fromDomain(aggregate *product.Product) ProductDTO {
	suppliers := make([]ProductSupplierDTO, 0, len(aggregate.Suppliers()))
	for position, link := range aggregate.Suppliers() {
		suppliers = append(suppliers, ProductSupplierDTO{
			ProductID:  aggregate.ID().Bytes(),
			SupplierID: link.SupplierID().Bytes(),
			UnitPrice:  link.UnitPrice(),
			Position:   position,
		})
	}

	return ProductDTO{
		ID:        aggregate.ID().Bytes(),
		Name:      aggregate.Name(),
		Reference: aggregate.Reference(),
		Unit:      aggregate.Unit(),
		PriceHT:   aggregate.PriceHT(),
		TVARate:   aggregate.TVARate(),
		IsActive:  aggregate.IsActive(),
		IsHidden:  aggregate.IsHidden(),
		Suppliers: suppliers,
	}
}

// toDomain converts a database DTO to a product domain aggregate.
func toDomain(dto ProductDTO) (*product.Product, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	sort.Slice(dto.Suppliers, func(i, j int) bool {
		return dto.Suppliers[i].Position < dto.Suppliers[j].Position
	})

	suppliers := make([]product.SupplierLink, 0, len(dto.Suppliers))
	for _, linkDTO := range dto.Suppliers {
		supplierID, supplierErr := kernel.UUIDFromBytes(linkDTO.SupplierID[:])
		if supplierErr != nil {
			return nil, supplierErr
		}

		link, linkErr := product.NewSupplierLink(supplierID, linkDTO.UnitPrice)
		if linkErr != nil {
			return nil, linkErr
		}
		suppliers = append(suppliers, link)
	}

	return product.RestoreProduct(id, dto.Name, dto.Reference, dto.Unit,
		dto.PriceHT, dto.TVARate, dto.IsActive, dto.IsHidden, suppliers)
}
