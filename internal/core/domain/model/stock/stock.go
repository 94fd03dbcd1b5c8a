// Package stock provides the shop stock projection updated when orders
// leave for delivery. Stock rows are keyed by shop and product and only
// ever accumulate delivered quantities.
package stock

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/pkg/errs"
)

// ErrShopStockIsNotConstructed is returned when a ShopStock instance was
// not created through NewShopStock or RestoreShopStock.
var ErrShopStockIsNotConstructed = errors.New(
	"ShopStock must be created via NewShopStock constructor")

// ShopStock tracks the on-hand quantity of one product in one shop.
type ShopStock struct {
	shopID    kernel.UUID
	productID kernel.UUID
	quantity  decimal.Decimal

	isConstructed bool
}

// NewShopStock creates a stock row with zero quantity.
func NewShopStock(shopID, productID kernel.UUID) (*ShopStock, error) {
	if err := errors.Join(
		shopID.Validate(),
		productID.Validate(),
	); err != nil {
		return nil, err
	}

	return &ShopStock{
		shopID:        shopID,
		productID:     productID,
		quantity:      decimal.Zero,
		isConstructed: true,
	}, nil
}

// RestoreShopStock reconstructs a stock row from persistence.
func RestoreShopStock(shopID, productID kernel.UUID, quantity decimal.Decimal) (*ShopStock, error) {
	restored, err := NewShopStock(shopID, productID)
	if err != nil {
		return nil, err
	}

	if quantity.IsNegative() {
		return nil, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%s is negative", quantity.String()))
	}

	restored.quantity = quantity
	return restored, nil
}

// Validate ensures the ShopStock instance was properly constructed.
func (s *ShopStock) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrShopStockIsNotConstructed
	}
	return nil
}

// ShopID returns the shop the stock row belongs to.
func (s *ShopStock) ShopID() kernel.UUID {
	return s.shopID
}

// ProductID returns the product the stock row tracks.
func (s *ShopStock) ProductID() kernel.UUID {
	return s.productID
}

// Quantity returns the on-hand quantity.
func (s *ShopStock) Quantity() decimal.Decimal {
	return s.quantity
}

// Add accumulates a delivered quantity into the stock row.
// The quantity must be strictly positive.
func (s *ShopStock) Add(quantity decimal.Decimal) error {
	if !quantity.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%s is not greater than 0", quantity.String()))
	}

	s.quantity = s.quantity.Add(quantity)
	return nil
}
