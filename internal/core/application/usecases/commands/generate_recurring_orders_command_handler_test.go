package commands_test

import (
	"testing"
	"time"

	"cropflow/internal/core/application/usecases/commands"
	"cropflow/internal/core/domain/model/kernel"
	"cropflow/internal/core/domain/model/order"
	"cropflow/internal/core/domain/model/recipe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func weeklyTemplate(t *testing.T, recipeID kernel.UUID, start time.Time) *order.Order {
	t.Helper()

	item, err := order.NewOrderItem(recipeID, 500)
	require.NoError(t, err)

	o, err := order.NewOrder(kernel.NewUUID(), start, []order.OrderItem{item})
	require.NoError(t, err)

	settings, err := order.NewRecurrenceSettings(order.Weekly, 0, start, nil)
	require.NoError(t, err)
	require.NoError(t, o.ConvertToTemplate(settings, order.DefaultTransitionGraph()))
	return o
}

func TestGenerateRecurringOrdersCommandHandler_Handle_GeneratesAndPlans(t *testing.T) {
	ctx := t.Context()
	start := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	r := testRecipe(t)
	template := weeklyTemplate(t, r.ID(), start)

	orderRepo := new(MockOrderRepository)
	recipeRepo := new(MockRecipeRepository)
	loadUoW := new(MockPlanningUoW)
	genUoW := new(MockPlanningUoW)

	resolved := map[kernel.UUID]*recipe.Recipe{r.ID(): r}

	mock.InOrder(
		loadUoW.On("Begin", ctx).Return(nil).Once(),
		loadUoW.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetDueTemplates", ctx, start).Return([]*order.Order{template}, nil).Once(),
		loadUoW.On("Rollback", ctx).Return(nil).Once(),

		genUoW.On("Begin", ctx).Return(nil).Once(),
		genUoW.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		genUoW.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Update", ctx, template).Return(nil).Once(),
		genUoW.On("RecipeRepository").Return(recipeRepo).Once(),
		recipeRepo.On("GetByIDs", ctx, mock.AnythingOfType("[]kernel.UUID")).Return(resolved, nil).Once(),
		genUoW.On("Commit", ctx).Return(nil).Once(),
		genUoW.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPlanningUoWFactory)
	factory.On("Create").Return(loadUoW).Once()
	factory.On("Create").Return(genUoW).Once()

	publisher := &RecordingPublisher{}
	handler := commands.NewGenerateRecurringOrdersCommandHandler(factory, publisher, discardLogger())

	cmd, err := commands.NewGenerateRecurringOrdersCommand(start)
	require.NoError(t, err)

	require.NoError(t, handler.Handle(ctx, cmd))

	// cadence advanced one period, one generated event
	assert.Equal(t, start.AddDate(0, 0, 7), template.Recurrence().NextGenerationDate())
	require.Len(t, publisher.Events, 2)
	assert.Equal(t, "order.generated", publisher.Events[0].Name)
	// delivery is 7 days after the run day; the 10-day grow cycle cannot fit
	assert.Equal(t, "order.planning_issue", publisher.Events[1].Name)
	assert.Equal(t, "insufficient_lead_time", publisher.Events[1].Payload["kind"])

	orderRepo.AssertExpectations(t)
	recipeRepo.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestGenerateRecurringOrdersCommandHandler_Handle_PersistsExpiredTemplateDeactivation(t *testing.T) {
	ctx := t.Context()
	now := time.Date(2025, 6, 6, 0, 0, 0, 0, time.UTC)
	start := time.Date(2025, 5, 5, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	item, err := order.NewOrderItem(kernel.NewUUID(), 500)
	require.NoError(t, err)

	// the last successful generation advanced the cadence past the end date
	settings, err := order.RestoreRecurrenceSettings(
		order.Weekly, 0, start, &end, time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), true)
	require.NoError(t, err)

	template, err := order.RestoreOrder(
		kernel.NewUUID(), order.StatusDraft, start, start,
		[]order.OrderItem{item}, &settings, nil, "", "")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	loadUoW := new(MockPlanningUoW)
	genUoW := new(MockPlanningUoW)

	mock.InOrder(
		loadUoW.On("Begin", ctx).Return(nil).Once(),
		loadUoW.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetDueTemplates", ctx, now).Return([]*order.Order{template}, nil).Once(),
		loadUoW.On("Rollback", ctx).Return(nil).Once(),

		// zero orders generated, yet the deactivation still reaches storage
		genUoW.On("Begin", ctx).Return(nil).Once(),
		genUoW.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Update", ctx, template).Return(nil).Once(),
		genUoW.On("Commit", ctx).Return(nil).Once(),
		genUoW.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPlanningUoWFactory)
	factory.On("Create").Return(loadUoW).Once()
	factory.On("Create").Return(genUoW).Once()

	publisher := &RecordingPublisher{}
	handler := commands.NewGenerateRecurringOrdersCommandHandler(factory, publisher, discardLogger())

	cmd, err := commands.NewGenerateRecurringOrdersCommand(now)
	require.NoError(t, err)

	require.NoError(t, handler.Handle(ctx, cmd))

	assert.False(t, template.Recurrence().IsActive())
	orderRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	assert.Empty(t, publisher.Events)

	orderRepo.AssertExpectations(t)
	genUoW.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestGenerateRecurringOrdersCommandHandler_Handle_NoTemplatesDue(t *testing.T) {
	ctx := t.Context()
	now := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	orderRepo := new(MockOrderRepository)
	loadUoW := new(MockPlanningUoW)

	mock.InOrder(
		loadUoW.On("Begin", ctx).Return(nil).Once(),
		loadUoW.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetDueTemplates", ctx, now).Return([]*order.Order{}, nil).Once(),
		loadUoW.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPlanningUoWFactory)
	factory.On("Create").Return(loadUoW).Once()

	handler := commands.NewGenerateRecurringOrdersCommandHandler(factory, &RecordingPublisher{}, discardLogger())

	cmd, err := commands.NewGenerateRecurringOrdersCommand(now)
	require.NoError(t, err)

	require.NoError(t, handler.Handle(ctx, cmd))
	factory.AssertNumberOfCalls(t, "Create", 1)
}

func TestGenerateRecurringOrdersCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	factory := new(MockPlanningUoWFactory)
	handler := commands.NewGenerateRecurringOrdersCommandHandler(factory, &RecordingPublisher{}, discardLogger())

	err := handler.Handle(ctx, commands.GenerateRecurringOrdersCommand{})

	require.ErrorIs(t, err, commands.ErrGenerateRecurringOrdersCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}
