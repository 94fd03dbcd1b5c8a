package order

import (
	"fmt"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Item is one line of an Order. It is owned exclusively by its order and
// snapshots the product name, unit price and TVA rate at order time, so
// later catalog price changes never retroactively alter historical orders.
// Line totals are always recomputed from quantity and the snapshot values,
// never trusted from client input.
type Item struct {
	productID   kernel.UUID
	productName string
	quantity    decimal.Decimal
	priceHT     decimal.Decimal
	tvaRate     decimal.Decimal
	totals      kernel.Totals

	isConstructed bool
}

// NewItem creates an order line with computed totals.
// Quantity must be strictly positive; priceHT and tvaRate must be
// non-negative.
func NewItem(
	productID kernel.UUID,
	productName string,
	quantity, priceHT, tvaRate decimal.Decimal,
) (Item, error) {
	if err := productID.Validate(); err != nil {
		return Item{}, err
	}

	if !quantity.IsPositive() {
		return Item{}, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%s is not greater than 0", quantity.String()))
	}

	totals, err := kernel.LineTotals(quantity, priceHT, tvaRate)
	if err != nil {
		return Item{}, err
	}

	return Item{
		productID:     productID,
		productName:   productName,
		quantity:      quantity,
		priceHT:       priceHT,
		tvaRate:       tvaRate,
		totals:        totals,
		isConstructed: true,
	}, nil
}

// Validate ensures the Item was created via NewItem.
func (i Item) Validate() error {
	if !i.isConstructed {
		return errs.NewValueIsRequiredError("Item must be created via NewItem constructor")
	}
	return nil
}

// ProductID returns the product this line orders.
func (i Item) ProductID() kernel.UUID {
	return i.productID
}

// ProductName returns the product name snapshot taken at order time.
func (i Item) ProductName() string {
	return i.productName
}

// Quantity returns the ordered quantity.
func (i Item) Quantity() decimal.Decimal {
	return i.quantity
}

// PriceHT returns the unit price snapshot taken at order time.
func (i Item) PriceHT() decimal.Decimal {
	return i.priceHT
}

// TVARate returns the TVA rate percent snapshot taken at order time.
func (i Item) TVARate() decimal.Decimal {
	return i.tvaRate
}

// Totals returns the computed line totals.
func (i Item) Totals() kernel.Totals {
	return i.totals
}
