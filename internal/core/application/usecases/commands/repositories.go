// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"cropflow/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// RecipeRepoFactory provides access to the recipe repository within a transaction.
	RecipeRepoFactory interface {
		RecipeRepository() ports.RecipeRepository
	}

	// CropRepoFactory provides access to the crop repository within a transaction.
	CropRepoFactory interface {
		CropRepository() ports.CropRepository
	}

	// TaskRepoFactory provides access to the task repository within a transaction.
	TaskRepoFactory interface {
		TaskRepository() ports.TaskRepository
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// TransitionLogRepoFactory provides access to the transition log within a transaction.
	TransitionLogRepoFactory interface {
		TransitionLogRepository() ports.TransitionLogRepository
	}

	// PlantingUoW manages transactions for planting operations, which read
	// recipes and orders and write crop units and tasks.
	PlantingUoW interface {
		TxManager
		RecipeRepoFactory
		CropRepoFactory
		TaskRepoFactory
		OrderRepoFactory
	}

	// PlantingUoWFactory creates new planting unit of work instances.
	PlantingUoWFactory interface {
		Create() PlantingUoW
	}

	// SchedulingUoW manages transactions for scheduler ticks and manual
	// stage overrides, which touch crop units and their tasks.
	SchedulingUoW interface {
		TxManager
		CropRepoFactory
		TaskRepoFactory
	}

	// SchedulingUoWFactory creates new scheduling unit of work instances.
	SchedulingUoWFactory interface {
		Create() SchedulingUoW
	}

	// OrderUoW manages transactions for order lifecycle operations and
	// their audit records.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		TransitionLogRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// PlanningUoW manages transactions for planning operations, which read
	// orders and recipes without modifying them.
	PlanningUoW interface {
		TxManager
		OrderRepoFactory
		RecipeRepoFactory
	}

	// PlanningUoWFactory creates new planning unit of work instances.
	PlanningUoWFactory interface {
		Create() PlanningUoW
	}
)
