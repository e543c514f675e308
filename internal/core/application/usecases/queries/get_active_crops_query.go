// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"
	"time"

	"cropflow/internal/core/domain/model/kernel"
	"cropflow/internal/pkg/guard"
)

var ErrGetActiveCropsQueryIsNotConstructed = errors.New(
	"GetActiveCropsQuery must be created via NewGetActiveCropsQuery constructor",
)

// GetActiveCropsQuery retrieves every crop unit that has not been harvested,
// together with its recipe's variety name for display.
//
// Example:
//
//	query := NewGetActiveCropsQuery()
//	handler := NewGetActiveCropsQueryHandler(db)
//
//	crops, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to retrieve crops: %w", err)
//	}
//
//	for _, c := range crops {
//	    fmt.Printf("%s: %s since %s\n", c.SeedVariety, c.Stage, c.StageEnteredAt)
//	}
type GetActiveCropsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetActiveCropsQuery creates a query to retrieve all active crop units.
func NewGetActiveCropsQuery() GetActiveCropsQuery {
	return GetActiveCropsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetActiveCropsQueryIsNotConstructed if validation fails.
func (q GetActiveCropsQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveCropsQueryIsNotConstructed)
}

// GetActiveCropsQueryResponse represents one growing crop unit in the read model.
type GetActiveCropsQueryResponse struct {
	ID             kernel.UUID
	OrderID        kernel.UUID
	SeedVariety    string
	Stage          string
	StageEnteredAt time.Time
}
