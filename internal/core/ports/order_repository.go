// Package ports defines repository and gateway interfaces for the
// procurement domain. These interfaces establish contracts between the
// domain layer and infrastructure, enabling dependency inversion and
// testability.
package ports

import (
	"context"
	"time"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for shop order aggregates.
// Provides methods for storing, retrieving, and querying order entities
// based on their status and delivery date.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// The order must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns the complete order with all lines and recomputed totals.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByDeliveryDateInStatus retrieves all orders for the given delivery
	// day that currently sit in the given status. The timestamp is compared
	// by calendar day. Used by the aggregation run to collect NEW orders
	// and by materialization to collect AGGREGATED ones.
	GetByDeliveryDateInStatus(ctx context.Context, deliveryDate time.Time, status order.Status) ([]*order.Order, error)
}
