package commands

import (
	"context"

	"cropflow/internal/core/domain/model/crop"
	"cropflow/internal/core/domain/model/kernel"
	"cropflow/internal/core/domain/model/schedule"
	"cropflow/internal/core/domain/services"
	"cropflow/internal/core/ports"
)

// PlantCropCommandHandler orchestrates planting a crop unit.
// Resolves the recipe, verifies the order exists, creates the unit in its
// first stage, and schedules the first stage transition, all in one
// transaction.
type PlantCropCommandHandler struct {
	uowFactory PlantingUoWFactory
	publisher  ports.EventPublisher
}

// NewPlantCropCommandHandler creates a handler for planting operations.
func NewPlantCropCommandHandler(uowFactory PlantingUoWFactory, publisher ports.EventPublisher) PlantCropCommandHandler {
	return PlantCropCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the planting command.
// The first transition task is computed by the stage engine from the
// recipe's stage durations. Recipes without grow stages would yield a unit
// that can never advance, so planting a fully harvested-at-birth unit is
// impossible by construction.
func (h PlantCropCommandHandler) Handle(ctx context.Context, command PlantCropCommand) error {
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

	recipeAggregate, err := uow.RecipeRepository().Get(ctx, command.RecipeID())
	if err != nil {
		return err
	}

	if _, err = uow.OrderRepository().Get(ctx, command.OrderID()); err != nil {
		return err
	}

	unit, err := crop.NewCropUnit(command.CropID(), command.OrderID(), recipeAggregate, command.PlantedAt())
	if err != nil {
		return err
	}

	if err = uow.CropRepository().Add(ctx, unit); err != nil {
		return err
	}

	next, dueAt, err := services.NewStageEngine().ScheduleNext(unit)
	if err != nil {
		return err
	}

	task, err := schedule.NewAdvanceStageTask(kernel.NewUUID(), unit.ID(), next, recipeAggregate.SeedVariety(), dueAt)
	if err != nil {
		return err
	}

	if err = uow.TaskRepository().Upsert(ctx, task); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Publish(ctx, ports.DomainEvent{
		Name:        "crop.planted",
		AggregateID: unit.ID(),
		OccurredAt:  command.PlantedAt(),
		Payload: map[string]string{
			"order_id":     command.OrderID().String(),
			"seed_variety": recipeAggregate.SeedVariety(),
			"stage":        unit.Stage().String(),
		},
	})

	return nil
}
