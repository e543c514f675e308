package commands

import (
	"context"

	"cropflow/internal/core/domain/model/kernel"
	"cropflow/internal/core/domain/model/schedule"
	"cropflow/internal/core/domain/services"
	"cropflow/internal/core/ports"
)

// AdvanceCropCommandHandler applies manual stage overrides.
// Pending tasks for the unit are retired and the schedule restarts from the
// new stage, so a manual jump never leaves a task pointing at a transition
// the unit has already made.
type AdvanceCropCommandHandler struct {
	uowFactory SchedulingUoWFactory
	publisher  ports.EventPublisher
}

// NewAdvanceCropCommandHandler creates a handler for manual advance operations.
func NewAdvanceCropCommandHandler(uowFactory SchedulingUoWFactory, publisher ports.EventPublisher) AdvanceCropCommandHandler {
	return AdvanceCropCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the manual advance command.
func (h AdvanceCropCommandHandler) Handle(ctx context.Context, command AdvanceCropCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	unit, err := uow.CropRepository().Get(ctx, command.CropID())
	if err != nil {
		return err
	}

	if err = unit.Advance(command.Target(), command.Now()); err != nil {
		return err
	}

	if err = uow.CropRepository().Update(ctx, unit); err != nil {
		return err
	}

	pending, err := uow.TaskRepository().GetActiveByCrop(ctx, unit.ID())
	if err != nil {
		return err
	}

	for _, task := range pending {
		task.Deactivate()
		if err = uow.TaskRepository().Upsert(ctx, task); err != nil {
			return err
		}
	}

	if !unit.IsHarvested() {
		next, dueAt, scheduleErr := services.NewStageEngine().ScheduleNext(unit)
		if scheduleErr != nil {
			return scheduleErr
		}

		successor, taskErr := schedule.NewAdvanceStageTask(
			kernel.NewUUID(), unit.ID(), next, unit.Recipe().SeedVariety(), dueAt)
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
			"stage":  unit.Stage().String(),
			"manual": "true",
		},
	})

	return nil
}
