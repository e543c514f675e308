package schedule

import (
	"errors"
	"fmt"
	"time"

	"cropflow/internal/core/domain/model/crop"
	"cropflow/internal/core/domain/model/kernel"
	"cropflow/internal/pkg/errs"
)

var (
	// ErrTaskIsNotConstructed is returned when a ScheduledTask instance was not
	// created through a factory method.
	ErrTaskIsNotConstructed = errors.New("ScheduledTask must be created via NewAdvanceStageTask or RestoreTask")

	// ErrStaleTask marks a task whose crop unit has already moved past the
	// stage the task targets, typically after a manual override. Stale tasks
	// are resolved as idempotent no-ops by the scheduler, never retried.
	ErrStaleTask = errors.New("task is stale")

	// ErrTaskIsInactive is returned when executing or deactivating a task that
	// was already consumed.
	ErrTaskIsInactive = errors.New("task is no longer active")
)

// Kind discriminates the typed condition payload carried by a task.
type Kind int

const (
	// KindUnknown represents an invalid or undefined kind.
	KindUnknown Kind = iota

	// KindAdvanceStage is a time-triggered crop stage advancement.
	KindAdvanceStage
)

// String returns the persisted name of the kind.
func (k Kind) String() string {
	if k == KindAdvanceStage {
		return "advance_stage"
	}
	return "unknown"
}

// Condition is the kind-discriminated payload of a scheduled task. Each kind
// carries its own typed fields instead of a loosely-typed blob, so the
// scheduler and the stage engine cannot drift apart on field names.
type Condition interface {
	Kind() Kind
	Validate() error
}

// AdvanceStageCondition is the payload of a KindAdvanceStage task: the stage
// the crop unit must be advanced into, plus denormalized display fields for
// operator-facing task lists.
type AdvanceStageCondition struct {
	// Target is the stage the crop unit is advanced into when the task fires.
	Target crop.Stage

	// SeedVariety is a denormalized display field copied from the recipe.
	SeedVariety string
}

// Kind returns KindAdvanceStage.
func (c AdvanceStageCondition) Kind() Kind {
	return KindAdvanceStage
}

// Validate checks the payload fields.
func (c AdvanceStageCondition) Validate() error {
	if err := c.Target.Validate(); err != nil {
		return err
	}
	if c.SeedVariety == "" {
		return errs.NewValueIsRequiredError("seedVariety")
	}
	return nil
}

// ScheduledTask is a durable record of one pending, time-triggered stage
// advancement. A crop unit has at most one active task at a time; the
// scheduler enforces this by replacing any previous active task when a new
// one is scheduled (upsert semantics).
//
// A task is consumed exactly once: MarkRun records the execution time and
// deactivates it, whether the execution advanced the crop or resolved as a
// stale no-op.
type ScheduledTask struct {
	id        kernel.UUID
	cropID    kernel.UUID
	condition Condition
	dueAt     time.Time
	active    bool
	lastRunAt *time.Time

	isConstructed bool
}

// NewAdvanceStageTask creates an active task that advances the given crop
// unit into target at dueAt.
func NewAdvanceStageTask(
	id kernel.UUID,
	cropID kernel.UUID,
	target crop.Stage,
	seedVariety string,
	dueAt time.Time,
) (*ScheduledTask, error) {
	cond := AdvanceStageCondition{Target: target, SeedVariety: seedVariety}

	if err := errors.Join(id.Validate(), cropID.Validate(), cond.Validate()); err != nil {
		return nil, err
	}

	if dueAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("dueAt")
	}

	return &ScheduledTask{
		id:            id,
		cropID:        cropID,
		condition:     cond,
		dueAt:         dueAt,
		active:        true,
		isConstructed: true,
	}, nil
}

// RestoreTask reconstructs a task from persistence.
func RestoreTask(
	id kernel.UUID,
	cropID kernel.UUID,
	condition Condition,
	dueAt time.Time,
	active bool,
	lastRunAt *time.Time,
) (*ScheduledTask, error) {
	if condition == nil {
		return nil, errs.NewValueIsRequiredError("condition")
	}

	if err := errors.Join(id.Validate(), cropID.Validate(), condition.Validate()); err != nil {
		return nil, err
	}

	if dueAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("dueAt")
	}

	return &ScheduledTask{
		id:            id,
		cropID:        cropID,
		condition:     condition,
		dueAt:         dueAt,
		active:        active,
		lastRunAt:     lastRunAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the task was constructed through a factory method.
func (t *ScheduledTask) Validate() error {
	if t == nil || !t.isConstructed {
		return ErrTaskIsNotConstructed
	}
	return nil
}

// ID returns the task's unique identifier.
func (t *ScheduledTask) ID() kernel.UUID {
	return t.id
}

// CropID returns the id of the crop unit this task targets.
func (t *ScheduledTask) CropID() kernel.UUID {
	return t.cropID
}

// Condition returns the kind-discriminated payload.
func (t *ScheduledTask) Condition() Condition {
	return t.condition
}

// AdvanceCondition returns the payload as an AdvanceStageCondition.
// The second result is false for other kinds.
func (t *ScheduledTask) AdvanceCondition() (AdvanceStageCondition, bool) {
	cond, ok := t.condition.(AdvanceStageCondition)
	return cond, ok
}

// DueAt returns the instant at which the task becomes due.
func (t *ScheduledTask) DueAt() time.Time {
	return t.dueAt
}

// IsActive reports whether the task is still pending.
func (t *ScheduledTask) IsActive() bool {
	return t.active
}

// IsDue reports whether the task is active and due at now.
func (t *ScheduledTask) IsDue(now time.Time) bool {
	return t.active && !t.dueAt.After(now)
}

// LastRunAt returns the instant the task was executed, or nil if never run.
func (t *ScheduledTask) LastRunAt() *time.Time {
	return t.lastRunAt
}

// MarkRun records the execution time and consumes the task.
// Fails when the task was already consumed.
func (t *ScheduledTask) MarkRun(now time.Time) error {
	if err := t.Validate(); err != nil {
		return err
	}

	if !t.active {
		return fmt.Errorf("%w: task %s", ErrTaskIsInactive, t.id)
	}

	ranAt := now
	t.lastRunAt = &ranAt
	t.active = false
	return nil
}

// Deactivate consumes the task without running it, e.g. when it is replaced
// by a newer task for the same crop unit or cancelled out of band.
func (t *ScheduledTask) Deactivate() {
	t.active = false
}
