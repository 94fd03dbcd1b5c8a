// Package queries contains read-only operations for the procurement system.
// Implements the Query side of the CQRS architecture: handlers read optimized
// projections straight from the database, bypassing the domain aggregates.
package queries

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/pkg/guard"
)

var ErrGetOrdersByDeliveryDateQueryIsNotConstructed = errors.New(
	"GetOrdersByDeliveryDateQuery must be created via NewGetOrdersByDeliveryDateQuery constructor",
)

// GetOrdersByDeliveryDateQuery retrieves the shop orders of one delivery
// day, optionally narrowed to a single status.
//
// Example:
//
//	query, err := queries.NewGetOrdersByDeliveryDateQuery(deliveryDate, nil)
//	if err != nil {
//	    return err
//	}
//
//	handler := queries.NewGetOrdersByDeliveryDateQueryHandler(db)
//	orders, err := handler.Handle(ctx, query)
type GetOrdersByDeliveryDateQuery struct {
	deliveryDate time.Time
	status       *order.Status

	guard guard.ConstructorGuard
}

// NewGetOrdersByDeliveryDateQuery creates a query for one delivery day.
// status is optional; nil returns orders in every status.
func NewGetOrdersByDeliveryDateQuery(
	deliveryDate time.Time,
	status *order.Status,
) (GetOrdersByDeliveryDateQuery, error) {
	if deliveryDate.IsZero() {
		return GetOrdersByDeliveryDateQuery{}, errors.New("delivery date is required")
	}

	if status != nil {
		if err := status.Validate(); err != nil {
			return GetOrdersByDeliveryDateQuery{}, err
		}
	}

	return GetOrdersByDeliveryDateQuery{
		deliveryDate: deliveryDate,
		status:       status,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrdersByDeliveryDateQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersByDeliveryDateQueryIsNotConstructed)
}

// DeliveryDate returns the delivery day to read.
func (q GetOrdersByDeliveryDateQuery) DeliveryDate() time.Time {
	return q.deliveryDate
}

// Status returns the optional status filter, nil for all statuses.
func (q GetOrdersByDeliveryDateQuery) Status() *order.Status {
	return q.status
}

// GetOrdersByDeliveryDateQueryResponse is one shop order row of the read
// model, carrying the stored totals without rebuilding the aggregate.
type GetOrdersByDeliveryDateQueryResponse struct {
	ID           kernel.UUID
	OrderNumber  string
	ShopID       kernel.UUID
	Status       string
	DeliveryDate time.Time
	TotalHT      decimal.Decimal
	TotalTVA     decimal.Decimal
	TotalTTC     decimal.Decimal
}
