package queries

import (
	"context"

	"cropflow/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetPendingTasksQueryHandler retrieves active scheduled tasks from the database.
// Uses direct SQL queries for optimal read performance in the CQRS pattern.
type GetPendingTasksQueryHandler struct {
	db *gorm.DB
}

// NewGetPendingTasksQueryHandler creates a handler for pending task queries.
// Requires a GORM database connection for query execution.
func NewGetPendingTasksQueryHandler(db *gorm.DB) GetPendingTasksQueryHandler {
	return GetPendingTasksQueryHandler{db: db}
}

// Handle executes the query to retrieve all active tasks ordered by due time.
func (h GetPendingTasksQueryHandler) Handle(
	ctx context.Context,
	query GetPendingTasksQuery,
) ([]GetPendingTasksQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	tasks := make([]GetPendingTasksQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			crop_id,
			target_stage,
			seed_variety,
			due_at
		FROM scheduled_tasks
		WHERE active
		ORDER BY due_at
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var response GetPendingTasksQueryResponse
		var id, cropID uuid.UUID

		err = rows.Scan(
			&id,
			&cropID,
			&response.TargetStage,
			&response.SeedVariety,
			&response.DueAt,
		)
		if err != nil {
			return nil, err
		}

		taskID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		response.ID = taskID

		taskCropID, idErr := kernel.UUIDFromBytes(cropID[:])
		if idErr != nil {
			return nil, idErr
		}
		response.CropID = taskCropID

		tasks = append(tasks, response)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return tasks, nil
}
