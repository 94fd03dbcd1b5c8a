package stockrepo

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/stock"
	"procurement/internal/pkg/errs"
)

// GormStockRepository implements StockRepository using GORM.
type GormStockRepository struct {
	db *gorm.DB
}

// NewGormStockRepository creates a new GORM stock repository.
func NewGormStockRepository(db *gorm.DB) *GormStockRepository {
	return &GormStockRepository{db: db}
}

// Get retrieves the stock level for a shop and product.
func (r *GormStockRepository) Get(ctx context.Context, shopID, productID kernel.UUID) (*stock.ShopStock, error) {
	if err := errors.Join(shopID.Validate(), productID.Validate()); err != nil {
		return nil, err
	}

	var dto ShopStockDTO
	err := r.db.WithContext(ctx).
		First(&dto, "shop_id = ? AND product_id = ?", shopID.Bytes(), productID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("shop stock", shopID.String()+"/"+productID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// AddQuantity merges the given quantity into a shop's stock for a product.
// Inserts the row when the pair is unseen, otherwise increments the existing
// quantity atomically in a single statement.
func (r *GormStockRepository) AddQuantity(
	ctx context.Context, shopID, productID kernel.UUID, quantity decimal.Decimal,
) error {
	if err := errors.Join(shopID.Validate(), productID.Validate()); err != nil {
		return err
	}

	if !quantity.IsPositive() {
		return errs.NewValueIsInvalidError("quantity must be positive")
	}

	dto := ShopStockDTO{
		ShopID:    shopID.Bytes(),
		ProductID: productID.Bytes(),
		Quantity:  quantity,
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "shop_id"}, {Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity": gorm.Expr("shop_stocks.quantity + ?", quantity),
		}),
	}).Create(&dto).Error
}
