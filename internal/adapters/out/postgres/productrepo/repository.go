package productrepo

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/product"
	"procurement/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormProductRepository implements ProductRepository using GORM.
type GormProductRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormProductRepository creates a new GORM product repository.
func NewGormProductRepository(db *gorm.DB, tracker aggregateTracker) *GormProductRepository {
	return &GormProductRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new product with its supplier links to the database.
func (r *GormProductRepository) Add(ctx context.Context, aggregate *product.Product) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing product to the database.
// Supplier links are replaced wholesale so reordering and removals stick.
func (r *GormProductRepository) Update(ctx context.Context, aggregate *product.Product) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&ProductDTO{}).
			Where("id = ?", dto.ID).
			Omit("Suppliers").
			Select("name", "reference", "unit", "price_ht", "tva_rate", "is_active", "is_hidden").
			Updates(&dto)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		if err := tx.Where("product_id = ?", dto.ID).Delete(&ProductSupplierDTO{}).Error; err != nil {
			return err
		}
		if len(dto.Suppliers) == 0 {
			return nil
		}
		return tx.Create(&dto.Suppliers).Error
	})
	if err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a product by ID.
func (r *GormProductRepository) Get(ctx context.Context, id kernel.UUID) (*product.Product, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ProductDTO
	if err := r.db.WithContext(ctx).Preload("Suppliers").First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("product", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByIDs retrieves products by their IDs. Missing products are simply
// absent from the result map; callers decide whether that is an error.
func (r *GormProductRepository) GetByIDs(ctx context.Context, ids []kernel.UUID) (map[kernel.UUID]*product.Product, error) {
	if len(ids) == 0 {
		return map[kernel.UUID]*product.Product{}, nil
	}

	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		raw = append(raw, id.Bytes())
	}

	var dtos []ProductDTO
	if err := r.db.WithContext(ctx).Preload("Suppliers").Find(&dtos, "id IN ?", raw).Error; err != nil {
		return nil, err
	}

	products := make(map[kernel.UUID]*product.Product, len(dtos))
	for _, dto := range dtos {
		p, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		products[p.ID()] = p
	}

	return products, nil
}
