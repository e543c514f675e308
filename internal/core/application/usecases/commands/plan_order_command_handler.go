package commands

import (
	"context"

	"cropflow/internal/core/domain/model/kernel"
	"cropflow/internal/core/domain/services"
)

// PlanOrderCommandHandler expands an order into crop plans.
// The handler only reads; acting on the produced plans (planting, rejecting
// the order) is left to the caller.
type PlanOrderCommandHandler struct {
	uowFactory PlanningUoWFactory
}

// NewPlanOrderCommandHandler creates a handler for planning operations.
func NewPlanOrderCommandHandler(uowFactory PlanningUoWFactory) PlanOrderCommandHandler {
	return PlanOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the planning command and returns the plans and issues.
func (h PlanOrderCommandHandler) Handle(ctx context.Context, command PlanOrderCommand) (services.PlanningResult, error) {
	if err := command.Validate(); err != nil {
		return services.PlanningResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return services.PlanningResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().Get(ctx, command.OrderID())
	if err != nil {
		return services.PlanningResult{}, err
	}

	recipeIDs := make([]kernel.UUID, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		recipeIDs = append(recipeIDs, item.RecipeID())
	}

	recipes, err := uow.RecipeRepository().GetByIDs(ctx, recipeIDs)
	if err != nil {
		return services.PlanningResult{}, err
	}

	return services.NewOrderPlanner().Plan(aggregate, recipes, command.Now())
}
