package recurringrepo

import (
	"context"
	"errors"
	"time"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/recurring"
	"procurement/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormRecurringOrderRepository implements RecurringOrderRepository using GORM.
type GormRecurringOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormRecurringOrderRepository creates a new GORM recurring order repository.
func NewGormRecurringOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormRecurringOrderRepository {
	return &GormRecurringOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new recurring order template with its lines to the database.
func (r *GormRecurringOrderRepository) Add(ctx context.Context, aggregate *recurring.Template) error {
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

// Update saves an existing recurring order template to the database.
// Template lines only change through the admin surface, which replaces
// them wholesale along with the parent row.
func (r *GormRecurringOrderRepository) Update(ctx context.Context, aggregate *recurring.Template) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&RecurringOrderDTO{}).
			Where("id = ?", dto.ID).
			Omit("Items").
			Select("shop_id", "name", "frequency", "day_of_week", "day_of_month",
				"is_active", "next_run", "last_run").
			Updates(&dto)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		if err := tx.Where("recurring_order_id = ?", dto.ID).Delete(&RecurringOrderItemDTO{}).Error; err != nil {
			return err
		}
		return tx.Create(&dto.Items).Error
	})
	if err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a recurring order template by ID.
func (r *GormRecurringOrderRepository) Get(ctx context.Context, id kernel.UUID) (*recurring.Template, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto RecurringOrderDTO
	if err := r.db.WithContext(ctx).Preload("Items").First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("recurring order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllDue retrieves all active templates whose next run is at or before now.
func (r *GormRecurringOrderRepository) GetAllDue(ctx context.Context, now time.Time) ([]*recurring.Template, error) {
	var dtos []RecurringOrderDTO
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("is_active = ? AND next_run <= ?", true, now).
		Order("next_run").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	templates := make([]*recurring.Template, 0, len(dtos))
	for _, dto := range dtos {
		template, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		templates = append(templates, template)
	}

	return templates, nil
}
