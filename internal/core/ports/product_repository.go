package ports

import (
	"context"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/product"
)

// ProductRepository defines the persistence contract for catalog products.
type ProductRepository interface {
	// Add persists a new product aggregate to storage.
	Add(ctx context.Context, aggregate *product.Product) error

	// Update persists changes to an existing product aggregate.
	Update(ctx context.Context, aggregate *product.Product) error

	// Get retrieves a product aggregate by its unique identifier,
	// including its supplier links in their persisted order.
	Get(ctx context.Context, id kernel.UUID) (*product.Product, error)

	// GetByIDs retrieves the products for the given identifiers as a map.
	// Missing identifiers are simply absent from the result, never an error;
	// callers decide how to treat unknown products.
	GetByIDs(ctx context.Context, ids []kernel.UUID) (map[kernel.UUID]*product.Product, error)
}
