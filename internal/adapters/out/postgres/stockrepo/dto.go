// Package stockrepo provides data transfer objects and mapping functions for
// shop stock persistence. Stock rows are keyed by shop and product and are
// written with an upsert, so delivery confirmations merge quantities without
// a prior read.
package stockrepo

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/stock"
)

// ShopStockDTO represents the database structure for persisting shop stock levels.
type ShopStockDTO struct {
	ShopID    uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ProductID uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Quantity  decimal.Decimal `gorm:"type:numeric(12,3);not null"`
}

// TableName specifies the database table name for shop stock levels.
func (ShopStockDTO) TableName() string {
	return "shop_stocks"
}

// fromDomain converts a shop stock domain entity to its database representation.
func fromDomain(entity *stock.ShopStock) ShopStockDTO {
	return ShopStockDTO{
		ShopID:    entity.ShopID().Bytes(),
		ProductID: entity.ProductID().Bytes(),
		Quantity:  entity.Quantity(),
	}
}

// toDomain converts a database DTO to a shop stock domain entity.
func toDomain(dto ShopStockDTO) (*stock.ShopStock, error) {
	shopID, err := kernel.UUIDFromBytes(dto.ShopID[:])
	if err != nil {
		return nil, err
	}

	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return nil, err
	}

	return stock.RestoreShopStock(shopID, productID, dto.Quantity)
}
