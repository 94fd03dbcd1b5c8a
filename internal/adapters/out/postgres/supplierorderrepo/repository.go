package supplierorderrepo

import (
	"context"
	"errors"
	"time"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/supplierorder"
	"procurement/internal/core/ports"
	"procurement/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormSupplierOrderRepository implements SupplierOrderRepository using GORM.
type GormSupplierOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormSupplierOrderRepository creates a new GORM supplier order repository.
func NewGormSupplierOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormSupplierOrderRepository {
	return &GormSupplierOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new supplier order with its lines to the database.
// A duplicate order number surfaces as ports.ErrOrderNumberConflict so the
// caller can regenerate the number and retry. Requires the gorm connection
// to be opened with TranslateError enabled.
func (r *GormSupplierOrderRepository) Add(ctx context.Context, aggregate *supplierorder.SupplierOrder) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ports.ErrOrderNumberConflict
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing supplier order to the database.
// Lines are immutable after materialization, so only the parent row is written.
func (r *GormSupplierOrderRepository) Update(ctx context.Context, aggregate *supplierorder.SupplierOrder) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&SupplierOrderDTO{}).Where("id = ?", dto.ID).Omit("Lines").Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a supplier order by ID.
func (r *GormSupplierOrderRepository) Get(ctx context.Context, id kernel.UUID) (*supplierorder.SupplierOrder, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto SupplierOrderDTO
	if err := r.db.WithContext(ctx).Preload("Lines").First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("supplier order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByDeliveryDate retrieves all supplier orders for a delivery date.
func (r *GormSupplierOrderRepository) GetByDeliveryDate(
	ctx context.Context, deliveryDate time.Time,
) ([]*supplierorder.SupplierOrder, error) {
	var dtos []SupplierOrderDTO
	err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("delivery_date = ?", deliveryDate.Format(time.DateOnly)).
		Order("order_number").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	orders := make([]*supplierorder.SupplierOrder, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}
