package ports

import (
	"context"
	"time"

	"cropflow/internal/core/domain/model/kernel"
	"cropflow/internal/core/domain/model/schedule"
)

// TaskRepository defines the persistence contract for scheduled tasks.
type TaskRepository interface {
	// Upsert persists the task, inserting on first save and replacing the
	// stored row afterwards. A crop unit keeps at most one active task per
	// condition kind, so rescheduling the same transition overwrites the
	// previous task instead of accumulating duplicates.
	Upsert(ctx context.Context, aggregate *schedule.ScheduledTask) error

	// Get retrieves a task by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*schedule.ScheduledTask, error)

	// GetDue retrieves all active tasks whose due time is at or before now,
	// ordered by due time ascending.
	GetDue(ctx context.Context, now time.Time) ([]*schedule.ScheduledTask, error)

	// GetActiveByCrop retrieves the active tasks for one crop unit.
	GetActiveByCrop(ctx context.Context, cropID kernel.UUID) ([]*schedule.ScheduledTask, error)
}
