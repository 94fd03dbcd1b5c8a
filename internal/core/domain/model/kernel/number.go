package kernel

import (
	"fmt"
	"math/rand/v2"
	"regexp"
	"time"

	"procurement/internal/pkg/errs"
)

// Wire-compatible document number prefixes. Shop orders carry CMD numbers,
// supplier purchase orders carry SO numbers.
const (
	OrderNumberPrefix         = "CMD"
	SupplierOrderNumberPrefix = "SO"
)

var numberPattern = regexp.MustCompile(`^(CMD|SO)-\d{6}-\d{4}$`)

// NewOrderNumber generates a shop order number in the CMD-YYYYMM-NNNN
// format: year, zero-padded month, zero-padded random 4-digit suffix.
func NewOrderNumber(now time.Time) string {
	return formatNumber(OrderNumberPrefix, now, rand.IntN(10000))
}

// NewSupplierOrderNumber generates a supplier purchase order number in the
// SO-YYYYMM-NNNN format. Uniqueness is enforced at the storage layer;
// callers retry on conflict.
func NewSupplierOrderNumber(now time.Time) string {
	return formatNumber(SupplierOrderNumberPrefix, now, rand.IntN(10000))
}

func formatNumber(prefix string, now time.Time, suffix int) string {
	return fmt.Sprintf("%s-%04d%02d-%04d", prefix, now.Year(), int(now.Month()), suffix)
}

// ValidateDocumentNumber checks that a number matches the CMD-YYYYMM-NNNN
// or SO-YYYYMM-NNNN wire format.
func ValidateDocumentNumber(number string) error {
	if number == "" {
		return errs.NewValueIsRequiredError("orderNumber")
	}
	if !numberPattern.MatchString(number) {
		return errs.NewValueIsInvalidErrorWithCause("orderNumber",
			fmt.Errorf("%s does not match the document number format", number))
	}
	return nil
}
