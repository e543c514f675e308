package commands_test

import (
	"context"
	"time"

	"cropflow/internal/core/application/usecases/commands"
	"cropflow/internal/core/domain/model/crop"
	"cropflow/internal/core/domain/model/kernel"
	"cropflow/internal/core/domain/model/order"
	"cropflow/internal/core/domain/model/recipe"
	"cropflow/internal/core/domain/model/schedule"
	"cropflow/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockRecipeRepository struct{ mock.Mock }

func (m *MockRecipeRepository) Add(ctx context.Context, r *recipe.Recipe) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRecipeRepository) Update(ctx context.Context, r *recipe.Recipe) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRecipeRepository) Get(ctx context.Context, id kernel.UUID) (*recipe.Recipe, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*recipe.Recipe), args.Error(1)
}

func (m *MockRecipeRepository) GetByIDs(ctx context.Context, ids []kernel.UUID) (map[kernel.UUID]*recipe.Recipe, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[kernel.UUID]*recipe.Recipe), args.Error(1)
}

type MockCropRepository struct{ mock.Mock }

func (m *MockCropRepository) Add(ctx context.Context, unit *crop.CropUnit) error {
	args := m.Called(ctx, unit)
	return args.Error(0)
}

func (m *MockCropRepository) Update(ctx context.Context, unit *crop.CropUnit) error {
	args := m.Called(ctx, unit)
	return args.Error(0)
}

func (m *MockCropRepository) Get(ctx context.Context, id kernel.UUID) (*crop.CropUnit, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crop.CropUnit), args.Error(1)
}

func (m *MockCropRepository) GetAllActive(ctx context.Context) ([]*crop.CropUnit, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*crop.CropUnit), args.Error(1)
}

func (m *MockCropRepository) GetByOrder(ctx context.Context, orderID kernel.UUID) ([]*crop.CropUnit, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*crop.CropUnit), args.Error(1)
}

type MockTaskRepository struct{ mock.Mock }

func (m *MockTaskRepository) Upsert(ctx context.Context, task *schedule.ScheduledTask) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) Get(ctx context.Context, id kernel.UUID) (*schedule.ScheduledTask, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*schedule.ScheduledTask), args.Error(1)
}

func (m *MockTaskRepository) GetDue(ctx context.Context, now time.Time) ([]*schedule.ScheduledTask, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*schedule.ScheduledTask), args.Error(1)
}

func (m *MockTaskRepository) GetActiveByCrop(ctx context.Context, cropID kernel.UUID) ([]*schedule.ScheduledTask, error) {
	args := m.Called(ctx, cropID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*schedule.ScheduledTask), args.Error(1)
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) UpdateWithStatusCheck(ctx context.Context, o *order.Order, expectedStatus string) error {
	args := m.Called(ctx, o, expectedStatus)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByStatus(ctx context.Context, statusCode string) ([]*order.Order, error) {
	args := m.Called(ctx, statusCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetDueTemplates(ctx context.Context, now time.Time) ([]*order.Order, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockTransitionLogRepository struct{ mock.Mock }

func (m *MockTransitionLogRepository) Append(ctx context.Context, record order.TransitionRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockTransitionLogRepository) GetByOrder(ctx context.Context, orderID kernel.UUID) ([]order.TransitionRecord, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.TransitionRecord), args.Error(1)
}

// MockPlantingUoW implements commands.PlantingUoW.
type MockPlantingUoW struct{ mock.Mock }

func (m *MockPlantingUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockPlantingUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockPlantingUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockPlantingUoW) RecipeRepository() ports.RecipeRepository {
	args := m.Called()
	return args.Get(0).(ports.RecipeRepository)
}

func (m *MockPlantingUoW) CropRepository() ports.CropRepository {
	args := m.Called()
	return args.Get(0).(ports.CropRepository)
}

func (m *MockPlantingUoW) TaskRepository() ports.TaskRepository {
	args := m.Called()
	return args.Get(0).(ports.TaskRepository)
}

func (m *MockPlantingUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockPlantingUoWFactory struct{ mock.Mock }

func (m *MockPlantingUoWFactory) Create() commands.PlantingUoW {
	args := m.Called()
	return args.Get(0).(commands.PlantingUoW)
}

// MockSchedulingUoW implements commands.SchedulingUoW.
type MockSchedulingUoW struct{ mock.Mock }

func (m *MockSchedulingUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockSchedulingUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockSchedulingUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockSchedulingUoW) CropRepository() ports.CropRepository {
	args := m.Called()
	return args.Get(0).(ports.CropRepository)
}

func (m *MockSchedulingUoW) TaskRepository() ports.TaskRepository {
	args := m.Called()
	return args.Get(0).(ports.TaskRepository)
}

type MockSchedulingUoWFactory struct{ mock.Mock }

func (m *MockSchedulingUoWFactory) Create() commands.SchedulingUoW {
	args := m.Called()
	return args.Get(0).(commands.SchedulingUoW)
}

// MockOrderUoW implements commands.OrderUoW.
type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockOrderUoW) TransitionLogRepository() ports.TransitionLogRepository {
	args := m.Called()
	return args.Get(0).(ports.TransitionLogRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

// MockPlanningUoW implements commands.PlanningUoW.
type MockPlanningUoW struct{ mock.Mock }

func (m *MockPlanningUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockPlanningUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockPlanningUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockPlanningUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockPlanningUoW) RecipeRepository() ports.RecipeRepository {
	args := m.Called()
	return args.Get(0).(ports.RecipeRepository)
}

type MockPlanningUoWFactory struct{ mock.Mock }

func (m *MockPlanningUoWFactory) Create() commands.PlanningUoW {
	args := m.Called()
	return args.Get(0).(commands.PlanningUoW)
}

// RecordingPublisher captures published events for assertions.
type RecordingPublisher struct {
	Events []ports.DomainEvent
}

func (p *RecordingPublisher) Publish(_ context.Context, event ports.DomainEvent) {
	p.Events = append(p.Events, event)
}
