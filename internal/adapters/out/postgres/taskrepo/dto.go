// Package taskrepo provides data transfer objects and mapping functions for
// scheduled task persistence. The kind-discriminated condition payload is
// flattened into typed columns; a jsonb blob would let the scheduler and the
// stage engine drift apart on field names.
package taskrepo

import (
	"fmt"
	"time"

	"cropflow/internal/core/domain/model/crop"
	"cropflow/internal/core/domain/model/kernel"
	"cropflow/internal/core/domain/model/schedule"

	"github.com/google/uuid"
)

// ScheduledTaskDTO represents the database structure for persisting scheduled
// tasks. Kind and TargetStage store their persisted names, matching
// schedule.Kind.String() and crop.Stage.String().
type ScheduledTaskDTO struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	CropID uuid.UUID `gorm:"type:uuid;index"`

	Kind        string
	TargetStage string
	SeedVariety string

	DueAt     time.Time `gorm:"index"`
	Active    bool      `gorm:"index"`
	LastRunAt *time.Time
}

// TableName specifies the database table name for scheduled tasks.
func (ScheduledTaskDTO) TableName() string {
	return "scheduled_tasks"
}

// fromDomain converts a scheduled task domain entity to its database representation.
func fromDomain(task *schedule.ScheduledTask) (ScheduledTaskDTO, error) {
	cond, ok := task.AdvanceCondition()
	if !ok {
		return ScheduledTaskDTO{}, fmt.Errorf("unsupported task kind %s", task.Condition().Kind())
	}

	return ScheduledTaskDTO{
		ID:          task.ID().Bytes(),
		CropID:      task.CropID().Bytes(),
		Kind:        task.Condition().Kind().String(),
		TargetStage: cond.Target.String(),
		SeedVariety: cond.SeedVariety,
		DueAt:       task.DueAt(),
		Active:      task.IsActive(),
		LastRunAt:   task.LastRunAt(),
	}, nil
}

// toDomain converts a database DTO to a scheduled task domain entity.
func toDomain(dto ScheduledTaskDTO) (*schedule.ScheduledTask, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	cropID, err := kernel.UUIDFromBytes(dto.CropID[:])
	if err != nil {
		return nil, err
	}

	if dto.Kind != schedule.KindAdvanceStage.String() {
		return nil, fmt.Errorf("unsupported task kind %q", dto.Kind)
	}

	target, err := parseStage(dto.TargetStage)
	if err != nil {
		return nil, err
	}

	condition := schedule.AdvanceStageCondition{
		Target:      target,
		SeedVariety: dto.SeedVariety,
	}

	return schedule.RestoreTask(id, cropID, condition, dto.DueAt, dto.Active, dto.LastRunAt)
}

// parseStage resolves a persisted stage name back to its Stage value.
func parseStage(name string) (crop.Stage, error) {
	for _, s := range []crop.Stage{crop.Soaking, crop.Germination, crop.Blackout, crop.Light, crop.Harvested} {
		if s.String() == name {
			return s, nil
		}
	}
	return crop.Unknown, fmt.Errorf("unknown crop stage %q", name)
}
