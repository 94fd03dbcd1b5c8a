package order

import (
	"errors"
	"time"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrOrderHasNoItems is returned when an order is created without lines.
	ErrOrderHasNoItems = errors.New("order must contain at least one item")
)

// Order represents one shop's purchase request. It is the aggregate root
// that manages the order lifecycle from creation through aggregation,
// supplier ordering, preparation and delivery.
//
// Invariants:
//   - totals always equal the sum of the item totals, recomputed at
//     construction and never trusted from outside
//   - status transitions go through the transition table only
//   - once terminal (Livree, Annulee) the order is immutable
type Order struct {
	id               kernel.UUID
	orderNumber      string
	shopID           kernel.UUID
	status           Status
	items            []Item
	totals           kernel.Totals
	createdAt        time.Time
	deliveryDate     *time.Time
	aggregatedAt     *time.Time
	supplierOrderID  *kernel.UUID
	recurringOrderID *kernel.UUID

	isConstructed bool
}

// NewOrder creates a new Order in status New with recomputed totals.
// deliveryDate is optional at creation but required before aggregation;
// recurringOrderID is set when the order was generated from a standing
// template.
func NewOrder(
	id kernel.UUID,
	orderNumber string,
	shopID kernel.UUID,
	items []Item,
	createdAt time.Time,
	deliveryDate *time.Time,
	recurringOrderID *kernel.UUID,
) (*Order, error) {
	if err := errors.Join(
		id.Validate(),
		kernel.ValidateDocumentNumber(orderNumber),
		shopID.Validate(),
	); err != nil {
		return nil, err
	}

	if len(items) == 0 {
		return nil, ErrOrderHasNoItems
	}

	lineTotals := make([]kernel.Totals, 0, len(items))
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return nil, err
		}
		lineTotals = append(lineTotals, item.Totals())
	}

	return &Order{
		id:               id,
		orderNumber:      orderNumber,
		shopID:           shopID,
		status:           New,
		items:            items,
		totals:           kernel.OrderTotals(lineTotals),
		createdAt:        createdAt,
		deliveryDate:     deliveryDate,
		recurringOrderID: recurringOrderID,
		isConstructed:    true,
	}, nil
}

// RestoreOrder reconstructs an Order from persistence. The stored status
// and stamps are taken as-is; totals are recomputed from the items to
// uphold the totals invariant on rehydration.
func RestoreOrder(
	id kernel.UUID,
	orderNumber string,
	shopID kernel.UUID,
	status Status,
	items []Item,
	createdAt time.Time,
	deliveryDate *time.Time,
	aggregatedAt *time.Time,
	supplierOrderID *kernel.UUID,
	recurringOrderID *kernel.UUID,
) (*Order, error) {
	restored, err := NewOrder(id, orderNumber, shopID, items, createdAt, deliveryDate, recurringOrderID)
	if err != nil {
		return nil, err
	}

	if err = status.Validate(); err != nil {
		return nil, err
	}

	restored.status = status
	restored.aggregatedAt = aggregatedAt
	restored.supplierOrderID = supplierOrderID
	return restored, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// OrderNumber returns the CMD-YYYYMM-NNNN document number.
func (o *Order) OrderNumber() string {
	return o.orderNumber
}

// ShopID returns the ordering shop's identifier.
func (o *Order) ShopID() kernel.UUID {
	return o.shopID
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// Items returns the order lines.
func (o *Order) Items() []Item {
	return o.items
}

// Totals returns the order totals.
func (o *Order) Totals() kernel.Totals {
	return o.totals
}

// CreatedAt returns the creation time.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// DeliveryDate returns the requested delivery date, nil if not set.
func (o *Order) DeliveryDate() *time.Time {
	return o.deliveryDate
}

// AggregatedAt returns when the order was consumed by an aggregation run,
// nil if it never was.
func (o *Order) AggregatedAt() *time.Time {
	return o.aggregatedAt
}

// SupplierOrderID returns the covering supplier order, nil if none.
func (o *Order) SupplierOrderID() *kernel.UUID {
	return o.supplierOrderID
}

// RecurringOrderID returns the originating recurring template, nil for
// direct client orders.
func (o *Order) RecurringOrderID() *kernel.UUID {
	return o.recurringOrderID
}

// CanTransitionBy checks, without side effects, whether the given role may
// move this order to the target status.
func (o *Order) CanTransitionBy(target Status, role Role) TransitionResult {
	return CanTransition(o.status, target, role)
}

// TransitionBy moves the order to the target status if the transition
// table allows it for the given role. On refusal a StateTransitionError
// carrying the reason is returned and the order is left untouched.
func (o *Order) TransitionBy(target Status, role Role) error {
	result := CanTransition(o.status, target, role)
	if !result.Allowed {
		return errs.NewStateTransitionError(o.status.String(), target.String(), result.Reason)
	}

	o.status = target
	return nil
}

// MarkAggregated transitions the order to Aggregated and stamps the
// aggregation time.
func (o *Order) MarkAggregated(at time.Time, role Role) error {
	if err := o.TransitionBy(Aggregated, role); err != nil {
		return err
	}

	o.aggregatedAt = &at
	return nil
}

// MarkSupplierOrdered transitions the order to SupplierOrdered and stamps
// the covering supplier order's id.
func (o *Order) MarkSupplierOrdered(supplierOrderID kernel.UUID, role Role) error {
	if err := supplierOrderID.Validate(); err != nil {
		return err
	}

	if err := o.TransitionBy(SupplierOrdered, role); err != nil {
		return err
	}

	o.supplierOrderID = &supplierOrderID
	return nil
}
