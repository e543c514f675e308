package taskrepo

import (
	"context"
	"errors"
	"time"

	"cropflow/internal/core/domain/model/kernel"
	"cropflow/internal/core/domain/model/schedule"
	"cropflow/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTaskRepository implements TaskRepository using GORM.
type GormTaskRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormTaskRepository creates a new GORM scheduled task repository.
func NewGormTaskRepository(db *gorm.DB, tracker aggregateTracker) *GormTaskRepository {
	return &GormTaskRepository{
		db:      db,
		tracker: tracker,
	}
}

// Upsert saves the task, inserting on first save and replacing the stored row
// afterwards. Rescheduling the same transition overwrites the previous row
// instead of accumulating duplicates.
func (r *GormTaskRepository) Upsert(ctx context.Context, task *schedule.ScheduledTask) error {
	if err := task.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(task)
	if err != nil {
		return err
	}

	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(task.ID(), task)
	return nil
}

// Get retrieves a task by ID.
func (r *GormTaskRepository) Get(ctx context.Context, id kernel.UUID) (*schedule.ScheduledTask, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ScheduledTaskDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("scheduledTask", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetDue retrieves all active tasks due at or before now, earliest first.
func (r *GormTaskRepository) GetDue(ctx context.Context, now time.Time) ([]*schedule.ScheduledTask, error) {
	var dtos []ScheduledTaskDTO
	if err := r.db.WithContext(ctx).
		Where("active AND due_at <= ?", now).
		Order("due_at ASC").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	return tasksToDomain(dtos)
}

// GetActiveByCrop retrieves the active tasks for one crop unit.
func (r *GormTaskRepository) GetActiveByCrop(ctx context.Context, cropID kernel.UUID) ([]*schedule.ScheduledTask, error) {
	if err := cropID.Validate(); err != nil {
		return nil, err
	}

	var dtos []ScheduledTaskDTO
	if err := r.db.WithContext(ctx).
		Find(&dtos, "crop_id = ? AND active", cropID.Bytes()).Error; err != nil {
		return nil, err
	}

	return tasksToDomain(dtos)
}

func tasksToDomain(dtos []ScheduledTaskDTO) ([]*schedule.ScheduledTask, error) {
	tasks := make([]*schedule.ScheduledTask, 0, len(dtos))
	for _, dto := range dtos {
		task, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}
