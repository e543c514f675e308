package ports

import (
	"context"

	"cropflow/internal/core/domain/model/crop"
	"cropflow/internal/core/domain/model/kernel"
)

// CropRepository defines the persistence contract for crop unit aggregates.
// Provides methods for storing, retrieving, and querying crop units with
// their complete stage history.
type CropRepository interface {
	// Add persists a new crop unit aggregate to storage.
	// The unit must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *crop.CropUnit) error

	// Update persists changes to an existing crop unit aggregate.
	// The unit must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *crop.CropUnit) error

	// Get retrieves a crop unit aggregate by its unique identifier.
	// Returns the complete unit including its stage entry history.
	Get(ctx context.Context, id kernel.UUID) (*crop.CropUnit, error)

	// GetAllActive retrieves all crop units that have not reached the
	// harvested stage.
	GetAllActive(ctx context.Context) ([]*crop.CropUnit, error)

	// GetByOrder retrieves all crop units planted for the given order.
	GetByOrder(ctx context.Context, orderID kernel.UUID) ([]*crop.CropUnit, error)
}
