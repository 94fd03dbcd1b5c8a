package supplierorder

import (
	"fmt"

	"github.com/shopspring/decimal"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/pkg/errs"
)

// Line is an immutable snapshot of an aggregated demand for a single
// product, denormalized into the purchase order. Product name, reference
// and pricing are copied at materialization time so the document stays
// stable even when the catalog changes afterwards.
type Line struct {
	productID   kernel.UUID
	productName string
	reference   string
	quantity    decimal.Decimal
	unit        string
	unitPrice   decimal.Decimal
	tvaRate     decimal.Decimal
	totals      kernel.Totals

	isConstructed bool
}

// NewLine creates a purchase order line with computed totals.
// Quantity must be strictly positive; unitPrice and tvaRate must be
// non-negative.
func NewLine(
	productID kernel.UUID,
	productName string,
	reference string,
	quantity decimal.Decimal,
	unit string,
	unitPrice decimal.Decimal,
	tvaRate decimal.Decimal,
) (Line, error) {
	if err := productID.Validate(); err != nil {
		return Line{}, err
	}

	if productName == "" {
		return Line{}, errs.NewValueIsRequiredError("productName")
	}

	if !quantity.IsPositive() {
		return Line{}, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%s is not greater than 0", quantity.String()))
	}

	totals, err := kernel.LineTotals(quantity, unitPrice, tvaRate)
	if err != nil {
		return Line{}, err
	}

	return Line{
		productID:     productID,
		productName:   productName,
		reference:     reference,
		quantity:      quantity,
		unit:          unit,
		unitPrice:     unitPrice,
		tvaRate:       tvaRate,
		totals:        totals,
		isConstructed: true,
	}, nil
}

// Validate ensures the Line was created via NewLine.
func (l Line) Validate() error {
	if !l.isConstructed {
		return errs.NewValueIsRequiredError("Line must be created via NewLine constructor")
	}
	return nil
}

// ProductID returns the product this line purchases.
func (l Line) ProductID() kernel.UUID {
	return l.productID
}

// ProductName returns the product name snapshot.
func (l Line) ProductName() string {
	return l.productName
}

// Reference returns the supplier catalog reference snapshot.
func (l Line) Reference() string {
	return l.reference
}

// Quantity returns the aggregated quantity to purchase.
func (l Line) Quantity() decimal.Decimal {
	return l.quantity
}

// Unit returns the sales unit snapshot, such as "kg" or "piece".
func (l Line) Unit() string {
	return l.unit
}

// UnitPrice returns the negotiated or catalog unit price snapshot.
func (l Line) UnitPrice() decimal.Decimal {
	return l.unitPrice
}

// TVARate returns the TVA rate percent snapshot.
func (l Line) TVARate() decimal.Decimal {
	return l.tvaRate
}

// Totals returns the computed line totals.
func (l Line) Totals() kernel.Totals {
	return l.totals
}

// TotalHT returns the line total before tax.
func (l Line) TotalHT() decimal.Decimal {
	return l.totals.HT()
}

// TotalTTC returns the line total including tax.
func (l Line) TotalTTC() decimal.Decimal {
	return l.totals.TTC()
}
