package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/stock"
)

// StockRepository defines the persistence contract for shop stock rows.
type StockRepository interface {
	// Get retrieves the stock row for one shop and product.
	Get(ctx context.Context, shopID, productID kernel.UUID) (*stock.ShopStock, error)

	// AddQuantity atomically accumulates a delivered quantity into the
	// stock row for one shop and product, creating the row when it does
	// not exist yet. Implemented as an upsert so concurrent deliveries
	// never lose increments.
	AddQuantity(ctx context.Context, shopID, productID kernel.UUID, quantity decimal.Decimal) error
}
