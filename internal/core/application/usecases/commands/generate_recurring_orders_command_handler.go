package commands

import (
	"context"
	"log/slog"
	"time"

	"cropflow/internal/core/domain/model/kernel"
	"cropflow/internal/core/domain/model/order"
	"cropflow/internal/core/domain/services"
	"cropflow/internal/core/ports"
)

// GenerateRecurringOrdersCommandHandler runs the recurring order sweep.
//
// Each due template is processed in its own transaction and generates every
// occurrence it is behind on, so a sweep that was down for a week catches up
// without drifting the cadence. Generated orders are planned immediately;
// planning issues are reported through the event sink, never as errors.
type GenerateRecurringOrdersCommandHandler struct {
	uowFactory PlanningUoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewGenerateRecurringOrdersCommandHandler creates a handler for generation sweeps.
func NewGenerateRecurringOrdersCommandHandler(
	uowFactory PlanningUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) GenerateRecurringOrdersCommandHandler {
	return GenerateRecurringOrdersCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle processes the sweep command.
// Returns an error only when the due template list cannot be loaded;
// individual template failures are logged and absorbed.
func (h GenerateRecurringOrdersCommandHandler) Handle(ctx context.Context, command GenerateRecurringOrdersCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	templates, err := h.loadDueTemplates(ctx, command)
	if err != nil {
		return err
	}

	for _, template := range templates {
		if err := h.generateFor(ctx, template, command); err != nil {
			h.logger.Error("recurring generation failed",
				"template_id", template.ID().String(),
				"error", err)
		}
	}

	return nil
}

func (h GenerateRecurringOrdersCommandHandler) loadDueTemplates(ctx context.Context, command GenerateRecurringOrdersCommand) ([]*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	return uow.OrderRepository().GetDueTemplates(ctx, command.Now())
}

func (h GenerateRecurringOrdersCommandHandler) generateFor(ctx context.Context, template *order.Order, command GenerateRecurringOrdersCommand) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	generator := services.NewRecurringOrderGenerator()
	wasTemplate := template.IsRecurringTemplate()

	var children []*order.Order
	for {
		child, err := generator.GenerateNext(template, kernel.NewUUID(), command.Now())
		if err != nil {
			return err
		}
		if child == nil {
			break
		}

		if err = uow.OrderRepository().Add(ctx, child); err != nil {
			return err
		}

		children = append(children, child)
	}

	// A template whose cadence ran past its end date generates nothing but
	// deactivates itself; that state change must reach storage or the next
	// sweep fetches the template again.
	deactivated := wasTemplate && !template.IsRecurringTemplate()
	if len(children) == 0 && !deactivated {
		return nil
	}

	if err := uow.OrderRepository().Update(ctx, template); err != nil {
		return err
	}

	if len(children) == 0 {
		return uow.Commit(ctx)
	}

	issuesByChild, err := h.planChildren(ctx, uow, children, command.Now())
	if err != nil {
		return err
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	for _, child := range children {
		h.publisher.Publish(ctx, ports.DomainEvent{
			Name:        "order.generated",
			AggregateID: child.ID(),
			OccurredAt:  command.Now(),
			Payload: map[string]string{
				"template_id":   template.ID().String(),
				"delivery_date": child.DeliveryDate().Format("2006-01-02"),
			},
		})

		for _, issue := range issuesByChild[child.ID()] {
			h.publisher.Publish(ctx, ports.DomainEvent{
				Name:        "order.planning_issue",
				AggregateID: child.ID(),
				OccurredAt:  command.Now(),
				Payload: map[string]string{
					"kind":   issue.Kind.String(),
					"detail": issue.Detail,
				},
			})
		}
	}

	return nil
}

// planChildren runs the planner over each generated order so lead-time
// problems surface on the day of generation, not on planting day.
func (h GenerateRecurringOrdersCommandHandler) planChildren(
	ctx context.Context,
	uow PlanningUoW,
	children []*order.Order,
	now time.Time,
) (map[kernel.UUID][]services.PlanningIssue, error) {
	recipeIDs := make([]kernel.UUID, 0)
	seen := make(map[kernel.UUID]struct{})
	for _, child := range children {
		for _, item := range child.Items() {
			if _, ok := seen[item.RecipeID()]; ok {
				continue
			}
			seen[item.RecipeID()] = struct{}{}
			recipeIDs = append(recipeIDs, item.RecipeID())
		}
	}

	recipes, err := uow.RecipeRepository().GetByIDs(ctx, recipeIDs)
	if err != nil {
		return nil, err
	}

	planner := services.NewOrderPlanner()
	issues := make(map[kernel.UUID][]services.PlanningIssue)
	for _, child := range children {
		result, planErr := planner.Plan(child, recipes, now)
		if planErr != nil {
			return nil, planErr
		}
		if result.HasIssues() {
			issues[child.ID()] = result.Issues
		}
	}

	return issues, nil
}
