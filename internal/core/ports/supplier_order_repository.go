package ports

import (
	"context"
	"errors"
	"time"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/supplierorder"
)

// ErrOrderNumberConflict is returned by Add when the generated SO document
// number already exists. Callers regenerate the number and retry.
var ErrOrderNumberConflict = errors.New("supplier order number already exists")

// SupplierOrderRepository defines the persistence contract for supplier
// purchase orders.
type SupplierOrderRepository interface {
	// Add persists a new supplier order aggregate to storage.
	// The SO document number carries a uniqueness constraint; adding a
	// duplicate number fails and callers retry with a fresh number.
	Add(ctx context.Context, aggregate *supplierorder.SupplierOrder) error

	// Update persists changes to an existing supplier order aggregate.
	Update(ctx context.Context, aggregate *supplierorder.SupplierOrder) error

	// Get retrieves a supplier order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*supplierorder.SupplierOrder, error)

	// GetByDeliveryDate retrieves all supplier orders covering the given
	// delivery day.
	GetByDeliveryDate(ctx context.Context, deliveryDate time.Time) ([]*supplierorder.SupplierOrder, error)
}
