package kernel

import (
	"fmt"

	"procurement/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// LineTotals converts a quantity, a unit price and a TVA rate into the
// three money amounts of one order line, each rounded to the cent:
//
//	totalHT  = quantity × priceHT
//	totalTVA = totalHT × tvaRatePercent / 100
//	totalTTC = totalHT + totalTVA
//
// Inputs must be non-negative; validation of business ranges happens
// upstream. Pure, no I/O.
func LineTotals(quantity, priceHT, tvaRatePercent decimal.Decimal) (Totals, error) {
	for name, v := range map[string]decimal.Decimal{
		"quantity": quantity,
		"priceHT":  priceHT,
		"tvaRate":  tvaRatePercent,
	} {
		if v.IsNegative() {
			return Totals{}, errs.NewValueIsInvalidErrorWithCause(name,
				fmt.Errorf("%s is negative", v.String()))
		}
	}

	ht := RoundCents(quantity.Mul(priceHT))
	tva := RoundCents(ht.Mul(tvaRatePercent).Div(decimal.NewFromInt(100)))
	ttc := RoundCents(ht.Add(tva))

	return Totals{ht: ht, tva: tva, ttc: ttc}, nil
}

// OrderTotals sums already-rounded line totals into order totals, rounding
// the sums to the cent. Summing the pre-rounded line values, rather than
// re-deriving from raw amounts, matches how invoices reconcile against the
// displayed line totals. An empty line list yields all-zero totals.
func OrderTotals(lines []Totals) Totals {
	sum := ZeroTotals()
	for _, line := range lines {
		sum = sum.Add(line)
	}

	return Totals{
		ht:  RoundCents(sum.ht),
		tva: RoundCents(sum.tva),
		ttc: RoundCents(sum.ttc),
	}
}
