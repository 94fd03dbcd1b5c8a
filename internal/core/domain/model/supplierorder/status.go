package supplierorder

import (
	"fmt"

	"procurement/internal/pkg/errs"
)

// Status represents the lifecycle state of a supplier purchase order.
// Purchase orders start as drafts and are either confirmed toward the
// supplier or cancelled.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// Draft is the initial status of a freshly materialized purchase order.
	Draft

	// Confirmed indicates the purchase order was sent to the supplier.
	Confirmed

	// Cancelled indicates the purchase order was withdrawn. Terminal.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown: "UNKNOWN",
		Draft:         "DRAFT",
		Confirmed:     "CONFIRMED",
		Cancelled:     "CANCELLED",
	}
}

// Validate checks if the Status value is valid.
func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok || s == StatusUnknown {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%d is not a valid supplier order status", s))
	}
	return nil
}

// String returns the wire name of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}
