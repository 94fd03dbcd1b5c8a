package kernel

import (
	"fmt"

	"procurement/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Totals is an immutable value object carrying the three money amounts of a
// line or an order: the tax-exclusive total (HT), the value-added tax amount
// (TVA), and the tax-inclusive total (TTC). All amounts are stored rounded
// to the cent.
//
// Totals does not enforce TTC == HT + TVA at construction: order-level
// totals are sums of already rounded line values and reconcile against
// displayed line totals rather than against a re-derivation.
type Totals struct {
	ht  decimal.Decimal
	tva decimal.Decimal
	ttc decimal.Decimal
}

// NewTotals creates a Totals value from the given amounts.
// Each amount must be non-negative; amounts are rounded to the cent.
func NewTotals(ht, tva, ttc decimal.Decimal) (Totals, error) {
	for name, v := range map[string]decimal.Decimal{"totalHT": ht, "totalTVA": tva, "totalTTC": ttc} {
		if v.IsNegative() {
			return Totals{}, errs.NewValueIsInvalidErrorWithCause(name,
				fmt.Errorf("%s is negative", v.String()))
		}
	}

	return Totals{
		ht:  RoundCents(ht),
		tva: RoundCents(tva),
		ttc: RoundCents(ttc),
	}, nil
}

// ZeroTotals returns an all-zero Totals value.
func ZeroTotals() Totals {
	return Totals{
		ht:  decimal.Zero,
		tva: decimal.Zero,
		ttc: decimal.Zero,
	}
}

// HT returns the tax-exclusive total.
func (t Totals) HT() decimal.Decimal {
	return t.ht
}

// TVA returns the value-added tax amount.
func (t Totals) TVA() decimal.Decimal {
	return t.tva
}

// TTC returns the tax-inclusive total.
func (t Totals) TTC() decimal.Decimal {
	return t.ttc
}

// Add returns a new Totals with each field summed. Since both operands are
// cent-rounded, the result is exact.
func (t Totals) Add(other Totals) Totals {
	return Totals{
		ht:  t.ht.Add(other.ht),
		tva: t.tva.Add(other.tva),
		ttc: t.ttc.Add(other.ttc),
	}
}

// IsEqual compares two Totals by value.
func (t Totals) IsEqual(other Totals) bool {
	return t.ht.Equal(other.ht) && t.tva.Equal(other.tva) && t.ttc.Equal(other.ttc)
}

// RoundCents rounds a non-negative amount to 2 decimals using round-half-up
// at the cent.
func RoundCents(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
