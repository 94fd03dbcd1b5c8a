package ports

import (
	"context"
	"time"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/recurring"
)

// RecurringOrderRepository defines the persistence contract for recurring
// order templates.
type RecurringOrderRepository interface {
	// Add persists a new template aggregate to storage.
	Add(ctx context.Context, aggregate *recurring.Template) error

	// Update persists changes to an existing template aggregate.
	// Used by the scheduler to advance nextRun after an execution.
	Update(ctx context.Context, aggregate *recurring.Template) error

	// Get retrieves a template aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*recurring.Template, error)

	// GetAllDue retrieves all active templates whose next run time is at or
	// before the given moment. The scheduler processes each returned
	// template independently.
	GetAllDue(ctx context.Context, now time.Time) ([]*recurring.Template, error)
}
