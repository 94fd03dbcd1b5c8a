package queries

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/pkg/guard"
)

var ErrGetSupplierOrdersQueryIsNotConstructed = errors.New(
	"GetSupplierOrdersQuery must be created via NewGetSupplierOrdersQuery constructor",
)

// GetSupplierOrdersQuery retrieves supplier purchase orders, optionally
// narrowed to one delivery day.
//
// Example:
//
//	query := queries.NewGetSupplierOrdersQuery(&deliveryDate)
//	handler := queries.NewGetSupplierOrdersQueryHandler(db)
//	supplierOrders, err := handler.Handle(ctx, query)
type GetSupplierOrdersQuery struct {
	deliveryDate *time.Time

	guard guard.ConstructorGuard
}

// NewGetSupplierOrdersQuery creates a query for supplier purchase orders.
// deliveryDate is optional; nil returns all purchase orders.
func NewGetSupplierOrdersQuery(deliveryDate *time.Time) GetSupplierOrdersQuery {
	return GetSupplierOrdersQuery{
		deliveryDate: deliveryDate,
		guard:        guard.NewConstructorGuard(),
	}
}

// Validate ensures the query was created through the constructor.
func (q GetSupplierOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetSupplierOrdersQueryIsNotConstructed)
}

// DeliveryDate returns the optional delivery day filter.
func (q GetSupplierOrdersQuery) DeliveryDate() *time.Time {
	return q.deliveryDate
}

// GetSupplierOrdersQueryResponse is one purchase order row of the read
// model, with the number of lines it carries.
type GetSupplierOrdersQueryResponse struct {
	ID           kernel.UUID
	OrderNumber  string
	SupplierID   kernel.UUID
	Status       string
	DeliveryDate time.Time
	LineCount    int
	TotalHT      decimal.Decimal
	TotalTTC     decimal.Decimal
}
