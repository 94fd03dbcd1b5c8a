package supplierorder

import (
	"errors"
	"time"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/pkg/errs"
)

var (
	// ErrSupplierOrderIsNotConstructed is returned when a SupplierOrder was
	// not created through NewSupplierOrder or RestoreSupplierOrder.
	ErrSupplierOrderIsNotConstructed = errors.New(
		"SupplierOrder must be created via NewSupplierOrder constructor")

	// ErrSupplierOrderHasNoLines is returned when a purchase order is
	// materialized without any line.
	ErrSupplierOrderHasNoLines = errors.New("supplier order must contain at least one line")
)

// SupplierOrder is the purchase order sent to a single supplier. It is
// materialized from aggregated shop demand for one delivery date and
// carries denormalized line snapshots so the document never drifts when
// the catalog changes.
//
// Invariants:
//   - totals always equal the sum of the line totals, recomputed at
//     construction and never trusted from outside
//   - lines are immutable once the order is materialized
type SupplierOrder struct {
	id           kernel.UUID
	orderNumber  string
	supplierID   kernel.UUID
	status       Status
	lines        []Line
	totals       kernel.Totals
	deliveryDate time.Time
	createdBy    kernel.UUID
	createdAt    time.Time

	isConstructed bool
}

// NewSupplierOrder materializes a new purchase order in status Draft with
// recomputed totals. createdBy identifies the actor who triggered the
// materialization.
func NewSupplierOrder(
	id kernel.UUID,
	orderNumber string,
	supplierID kernel.UUID,
	lines []Line,
	deliveryDate time.Time,
	createdBy kernel.UUID,
	createdAt time.Time,
) (*SupplierOrder, error) {
	if err := errors.Join(
		id.Validate(),
		kernel.ValidateDocumentNumber(orderNumber),
		supplierID.Validate(),
		createdBy.Validate(),
	); err != nil {
		return nil, err
	}

	if len(lines) == 0 {
		return nil, ErrSupplierOrderHasNoLines
	}

	lineTotals := make([]kernel.Totals, 0, len(lines))
	for _, line := range lines {
		if err := line.Validate(); err != nil {
			return nil, err
		}
		lineTotals = append(lineTotals, line.Totals())
	}

	return &SupplierOrder{
		id:            id,
		orderNumber:   orderNumber,
		supplierID:    supplierID,
		status:        Draft,
		lines:         lines,
		totals:        kernel.OrderTotals(lineTotals),
		deliveryDate:  deliveryDate,
		createdBy:     createdBy,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

// RestoreSupplierOrder reconstructs a SupplierOrder from persistence.
// The stored status is taken as-is; totals are recomputed from the lines.
func RestoreSupplierOrder(
	id kernel.UUID,
	orderNumber string,
	supplierID kernel.UUID,
	status Status,
	lines []Line,
	deliveryDate time.Time,
	createdBy kernel.UUID,
	createdAt time.Time,
) (*SupplierOrder, error) {
	restored, err := NewSupplierOrder(id, orderNumber, supplierID, lines, deliveryDate, createdBy, createdAt)
	if err != nil {
		return nil, err
	}

	if err = status.Validate(); err != nil {
		return nil, err
	}

	restored.status = status
	return restored, nil
}

// Validate ensures the SupplierOrder instance was properly constructed.
func (s *SupplierOrder) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrSupplierOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two supplier orders by their unique identifiers.
func (s *SupplierOrder) IsEqual(other *SupplierOrder) bool {
	return other != nil && s.id.IsEqual(other.id)
}

// ID returns the supplier order's unique identifier.
func (s *SupplierOrder) ID() kernel.UUID {
	return s.id
}

// OrderNumber returns the SO-YYYYMM-NNNN document number.
func (s *SupplierOrder) OrderNumber() string {
	return s.orderNumber
}

// SupplierID returns the supplier this purchase order targets.
func (s *SupplierOrder) SupplierID() kernel.UUID {
	return s.supplierID
}

// Status returns the current status of the purchase order.
func (s *SupplierOrder) Status() Status {
	return s.status
}

// Lines returns the purchase order lines.
func (s *SupplierOrder) Lines() []Line {
	return s.lines
}

// Totals returns the purchase order totals.
func (s *SupplierOrder) Totals() kernel.Totals {
	return s.totals
}

// DeliveryDate returns the delivery date this purchase order covers.
func (s *SupplierOrder) DeliveryDate() time.Time {
	return s.deliveryDate
}

// CreatedBy returns the actor who materialized the purchase order.
func (s *SupplierOrder) CreatedBy() kernel.UUID {
	return s.createdBy
}

// CreatedAt returns the materialization time.
func (s *SupplierOrder) CreatedAt() time.Time {
	return s.createdAt
}

// Confirm marks the draft purchase order as sent to the supplier.
func (s *SupplierOrder) Confirm() error {
	if s.status != Draft {
		return errs.NewStateTransitionError(s.status.String(), Confirmed.String(),
			"only draft supplier orders can be confirmed")
	}

	s.status = Confirmed
	return nil
}

// Cancel withdraws the purchase order. Cancelled orders are terminal.
func (s *SupplierOrder) Cancel() error {
	if s.status == Cancelled {
		return errs.NewStateTransitionError(s.status.String(), Cancelled.String(),
			"supplier order is already cancelled")
	}

	s.status = Cancelled
	return nil
}
