package order

import (
	"fmt"

	"procurement/internal/pkg/errs"
)

// Status represents the lifecycle state of a shop order.
// It implements a state machine with defined transitions to ensure
// orders follow the fulfillment workflow.
//
// State transitions:
//
//	New ──> Aggregated ──> SupplierOrdered ──> Preparation ──> Livraison ──> Livree
//	 │          │                │                  │              │
//	 └──────────┴────────────────┴──────────────────┴──────────────┴──> Annulee
//
// Livree and Annulee are terminal: no transition is defined out of them.
// The edge set and the roles permitted on each edge live in the transition
// table (see CanTransition).
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// New is the initial status of a freshly placed or freshly generated order.
	New

	// Aggregated indicates the order was consumed by an aggregation run
	// for its delivery date.
	Aggregated

	// SupplierOrdered indicates the order's demand is covered by a
	// materialized supplier purchase order.
	SupplierOrdered

	// Preparation indicates the goods are being prepared for the shop.
	Preparation

	// Livraison indicates the order is out for delivery.
	Livraison

	// Livree indicates the order was delivered. Terminal.
	Livree

	// Annulee indicates the order was cancelled. Terminal.
	Annulee
)

// getStatusStrings returns a map of Status values to their wire names.
// The names are part of the persisted format and must not change.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:         "UNKNOWN",
		New:             "NEW",
		Aggregated:      "AGGREGATED",
		SupplierOrdered: "SUPPLIER_ORDERED",
		Preparation:     "PREPARATION",
		Livraison:       "LIVRAISON",
		Livree:          "LIVREE",
		Annulee:         "ANNULEE",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		New:             "NEW",
		Aggregated:      "AGGREGATED",
		SupplierOrdered: "SUPPLIER_ORDERED",
		Preparation:     "PREPARATION",
		Livraison:       "LIVRAISON",
		Livree:          "LIVREE",
		Annulee:         "ANNULEE",
	}
}

// StatusFromString parses a wire status name ("NEW", "LIVRAISON", ...).
// Returns an error for unknown names.
func StatusFromString(s string) (Status, error) {
	for status, name := range getValidStatusStrings() {
		if name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%s is not a valid status", s))
}

// Validate checks if the Status value is valid.
// Unknown (0) and any out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status.
// Implements fmt.Stringer; safe to call on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether the status permits no further transitions.
// Terminal orders are immutable except for the delivery-triggered stock
// side effect that happens on the edge into Livree itself.
func (s Status) IsTerminal() bool {
	return s == Livree || s == Annulee
}
