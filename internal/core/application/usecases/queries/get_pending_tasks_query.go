package queries

import (
	"errors"
	"time"

	"cropflow/internal/core/domain/model/kernel"
	"cropflow/internal/pkg/guard"
)

var ErrGetPendingTasksQueryIsNotConstructed = errors.New(
	"GetPendingTasksQuery must be created via NewGetPendingTasksQuery constructor",
)

// GetPendingTasksQuery retrieves every active scheduled task, soonest first.
// Used by operators to see what the scheduler is about to do.
type GetPendingTasksQuery struct {
	guard guard.ConstructorGuard
}

// NewGetPendingTasksQuery creates a query to retrieve all pending tasks.
func NewGetPendingTasksQuery() GetPendingTasksQuery {
	return GetPendingTasksQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetPendingTasksQueryIsNotConstructed if validation fails.
func (q GetPendingTasksQuery) Validate() error {
	return q.guard.Validate(ErrGetPendingTasksQueryIsNotConstructed)
}

// GetPendingTasksQueryResponse represents one pending task in the read model.
type GetPendingTasksQueryResponse struct {
	ID          kernel.UUID
	CropID      kernel.UUID
	TargetStage string
	SeedVariety string
	DueAt       time.Time
}
