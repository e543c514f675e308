// Package ports defines repository interfaces for the production domain.
// These interfaces establish contracts between the domain layer and infrastructure,
// enabling dependency inversion and testability.
package ports

import (
	"context"

	"cropflow/internal/core/domain/model/kernel"
	"cropflow/internal/core/domain/model/recipe"
)

// RecipeRepository defines the persistence contract for grow recipes.
// Recipes are reference data: added and updated by operators, read by
// planning and scheduling.
type RecipeRepository interface {
	// Add persists a new recipe to storage.
	// The recipe must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *recipe.Recipe) error

	// Update persists changes to an existing recipe.
	// The recipe must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *recipe.Recipe) error

	// Get retrieves a recipe by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*recipe.Recipe, error)

	// GetByIDs retrieves the recipes for the given identifiers. Missing
	// identifiers are silently absent from the result; the caller decides
	// whether absence is an error.
	GetByIDs(ctx context.Context, ids []kernel.UUID) (map[kernel.UUID]*recipe.Recipe, error)
}
