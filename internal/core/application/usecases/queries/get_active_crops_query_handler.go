package queries

import (
	"context"
	"time"

	"cropflow/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetActiveCropsQueryHandler retrieves growing crop units from the database.
// Uses direct SQL queries for optimal read performance in the CQRS pattern.
type GetActiveCropsQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveCropsQueryHandler creates a handler for active crop queries.
// Requires a GORM database connection for query execution.
func NewGetActiveCropsQueryHandler(db *gorm.DB) GetActiveCropsQueryHandler {
	return GetActiveCropsQueryHandler{db: db}
}

// Handle executes the query to retrieve all crop units not yet harvested.
// Returns read models sorted by how long the unit has been in its current
// stage, longest first.
func (h GetActiveCropsQueryHandler) Handle(
	ctx context.Context,
	query GetActiveCropsQuery,
) ([]GetActiveCropsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	crops := make([]GetActiveCropsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			c.id,
			c.order_id,
			r.seed_variety,
			c.stage,
			CASE c.stage
				WHEN 'Soaking' THEN c.soaking_at
				WHEN 'Germination' THEN c.germination_at
				WHEN 'Blackout' THEN c.blackout_at
				WHEN 'Light' THEN c.light_at
			END AS stage_entered_at
		FROM crop_units c
		JOIN recipes r ON r.id = c.recipe_id
		WHERE c.stage <> 'Harvested'
		ORDER BY stage_entered_at
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var response GetActiveCropsQueryResponse
		var id, orderID uuid.UUID
		var enteredAt time.Time

		err = rows.Scan(
			&id,
			&orderID,
			&response.SeedVariety,
			&response.Stage,
			&enteredAt,
		)
		if err != nil {
			return nil, err
		}

		cropID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		response.ID = cropID

		cropOrderID, idErr := kernel.UUIDFromBytes(orderID[:])
		if idErr != nil {
			return nil, idErr
		}
		response.OrderID = cropOrderID

		response.StageEnteredAt = enteredAt
		crops = append(crops, response)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return crops, nil
}
