package cmd

import (
	"log/slog"

	"cropflow/internal/adapters/out/notifier"
	"cropflow/internal/adapters/out/postgres"
	"cropflow/internal/core/application/usecases/commands"
	"cropflow/internal/core/application/usecases/queries"
	"cropflow/internal/core/domain/model/order"
	"cropflow/internal/core/ports"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	publisher  ports.EventPublisher
	graph      *order.TransitionGraph
	logger     *slog.Logger

	// Shared between scheduler ticks: the per-crop lock registry lives on it.
	processDueTasksHandler commands.ProcessDueTasksCommandHandler
}

func NewCompositionRoot(_ Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	uowFactory := postgres.NewGormUnitOfWorkFactory(gormDB)
	publisher := notifier.NewSlogEventPublisher(logger)

	schedulingFactory := FuncSchedulingUoWFactory(func() commands.SchedulingUoW {
		return uowFactory.Create()
	})

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *uowFactory,
		publisher:  publisher,
		graph:      order.DefaultTransitionGraph(),
		logger:     logger,
		processDueTasksHandler: commands.NewProcessDueTasksCommandHandler(
			schedulingFactory, publisher, logger),
	}
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateTransitionOrderCommandHandler() commands.TransitionOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewTransitionOrderCommandHandler(f, c.graph, c.publisher)
}

func (c *CompositionRoot) CreateBulkTransitionOrdersCommandHandler() commands.BulkTransitionOrdersCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewBulkTransitionOrdersCommandHandler(f, c.graph, c.publisher)
}

func (c *CompositionRoot) CreateConvertOrderToTemplateCommandHandler() commands.ConvertOrderToTemplateCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewConvertOrderToTemplateCommandHandler(f, c.graph)
}

func (c *CompositionRoot) CreatePlantCropCommandHandler() commands.PlantCropCommandHandler {
	var f commands.PlantingUoWFactory = FuncPlantingUoWFactory(func() commands.PlantingUoW {
		return c.uowFactory.Create()
	})
	return commands.NewPlantCropCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateAdvanceCropCommandHandler() commands.AdvanceCropCommandHandler {
	var f commands.SchedulingUoWFactory = FuncSchedulingUoWFactory(func() commands.SchedulingUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAdvanceCropCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateProcessDueTasksCommandHandler() commands.ProcessDueTasksCommandHandler {
	return c.processDueTasksHandler
}

func (c *CompositionRoot) CreateGenerateRecurringOrdersCommandHandler() commands.GenerateRecurringOrdersCommandHandler {
	var f commands.PlanningUoWFactory = FuncPlanningUoWFactory(func() commands.PlanningUoW {
		return c.uowFactory.Create()
	})
	return commands.NewGenerateRecurringOrdersCommandHandler(f, c.publisher, c.logger)
}

func (c *CompositionRoot) CreatePlanOrderCommandHandler() commands.PlanOrderCommandHandler {
	var f commands.PlanningUoWFactory = FuncPlanningUoWFactory(func() commands.PlanningUoW {
		return c.uowFactory.Create()
	})
	return commands.NewPlanOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateGetActiveCropsQueryHandler() queries.GetActiveCropsQueryHandler {
	return queries.NewGetActiveCropsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetPendingTasksQueryHandler() queries.GetPendingTasksQueryHandler {
	return queries.NewGetPendingTasksQueryHandler(c.gormDB)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncPlantingUoWFactory func() commands.PlantingUoW

func (f FuncPlantingUoWFactory) Create() commands.PlantingUoW {
	return f()
}

type FuncSchedulingUoWFactory func() commands.SchedulingUoW

func (f FuncSchedulingUoWFactory) Create() commands.SchedulingUoW {
	return f()
}

type FuncPlanningUoWFactory func() commands.PlanningUoW

func (f FuncPlanningUoWFactory) Create() commands.PlanningUoW {
	return f()
}
