package commands

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"cropflow/internal/core/domain/model/crop"
	"cropflow/internal/core/domain/model/kernel"
	"cropflow/internal/core/domain/model/schedule"
	"cropflow/internal/core/domain/services"
	"cropflow/internal/core/ports"
)

// cropLockRegistry hands out one mutex per crop unit id so overlapping
// ticks never advance the same unit concurrently. Locks for harvested
// units are released from the registry when their lifecycle ends.
type cropLockRegistry struct {
	mu    sync.Mutex
	locks map[kernel.UUID]*sync.Mutex
}

func newCropLockRegistry() *cropLockRegistry {
	return &cropLockRegistry{
		locks: make(map[kernel.UUID]*sync.Mutex),
	}
}

func (r *cropLockRegistry) lockFor(id kernel.UUID) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.locks[id]
	if !ok {
		l = &sync.Mutex{}
		r.locks[id] = l
	}
	return l
}

func (r *cropLockRegistry) release(id kernel.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.locks, id)
}

// ProcessDueTasksCommandHandler executes the scheduler tick.
//
// Each due task is handled in its own transaction so one poisoned task never
// blocks the rest of the tick. Execution per crop unit is serialized through
// an in-process lock registry; a task whose target no longer matches the
// unit's next stage (a double fire from another process, or a manual
// override that ran first) is treated as stale: deactivated, logged, never
// retried and never an error.
type ProcessDueTasksCommandHandler struct {
	uowFactory SchedulingUoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
	registry   *cropLockRegistry
}

// NewProcessDueTasksCommandHandler creates a handler for scheduler ticks.
// A single handler instance must be shared between ticks: the per-crop lock
// registry lives on the handler.
func NewProcessDueTasksCommandHandler(
	uowFactory SchedulingUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) ProcessDueTasksCommandHandler {
	return ProcessDueTasksCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger,
		registry:   newCropLockRegistry(),
	}
}

// Handle processes all tasks due at the tick time, earliest first.
// Returns an error only when the due task list itself cannot be loaded;
// individual task failures are logged and absorbed.
func (h ProcessDueTasksCommandHandler) Handle(ctx context.Context, command ProcessDueTasksCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	due, err := h.loadDue(ctx, command)
	if err != nil {
		return err
	}

	for _, task := range due {
		if err := h.executeTask(ctx, task, command); err != nil {
			h.logger.Error("task execution failed",
				"task_id", task.ID().String(),
				"crop_id", task.CropID().String(),
				"error", err)
		}
	}

	return nil
}

func (h ProcessDueTasksCommandHandler) loadDue(ctx context.Context, command ProcessDueTasksCommand) ([]*schedule.ScheduledTask, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	return uow.TaskRepository().GetDue(ctx, command.Now())
}

func (h ProcessDueTasksCommandHandler) executeTask(ctx context.Context, task *schedule.ScheduledTask, command ProcessDueTasksCommand) error {
	lock := h.registry.lockFor(task.CropID())
	lock.Lock()
	defer lock.Unlock()

	condition, ok := task.AdvanceCondition()
	if !ok {
		return schedule.ErrTaskIsNotConstructed
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	unit, err := uow.CropRepository().Get(ctx, task.CropID())
	if err != nil {
		return err
	}

	if err = unit.Advance(condition.Target, command.Now()); err != nil {
		if errors.Is(err, crop.ErrInvalidStageTransition) {
			return h.absorbStale(ctx, uow, task, condition)
		}
		return err
	}

	if err = task.MarkRun(command.Now()); err != nil {
		return err
	}

	if err = uow.CropRepository().Update(ctx, unit); err != nil {
		return err
	}

	if err = uow.TaskRepository().Upsert(ctx, task); err != nil {
		return err
	}

	if unit.IsHarvested() {
		h.registry.release(unit.ID())
	} else {
		next, dueAt, scheduleErr := services.NewStageEngine().ScheduleNext(unit)
		if scheduleErr != nil {
			return scheduleErr
		}

		successor, taskErr := schedule.NewAdvanceStageTask(
			kernel.NewUUID(), unit.ID(), next, condition.SeedVariety, dueAt)
		if taskErr != nil {
			return taskErr
		}

		if err = uow.TaskRepository().Upsert(ctx, successor); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Publish(ctx, ports.DomainEvent{
		Name:        "crop.stage_advanced",
		AggregateID: unit.ID(),
		OccurredAt:  command.Now(),
		Payload: map[string]string{
			"stage":        unit.Stage().String(),
			"seed_variety": condition.SeedVariety,
		},
	})

	return nil
}

// absorbStale retires a task whose transition the aggregate rejected.
func (h ProcessDueTasksCommandHandler) absorbStale(
	ctx context.Context,
	uow SchedulingUoW,
	task *schedule.ScheduledTask,
	condition schedule.AdvanceStageCondition,
) error {
	h.logger.Warn("stale task absorbed",
		"task_id", task.ID().String(),
		"crop_id", task.CropID().String(),
		"target_stage", condition.Target.String())

	task.Deactivate()
	if err := uow.TaskRepository().Upsert(ctx, task); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
