// Package reciperepo provides data transfer objects and mapping functions for
// recipe persistence. Recipes are immutable reference data: every stage
// duration, the expected yield and the planning buffer are stored as plain
// columns and reconstructed through RestoreRecipe on read.
package reciperepo

import (
	"errors"

	"cropflow/internal/core/domain/model/kernel"
	"cropflow/internal/core/domain/model/recipe"

	"github.com/google/uuid"
)

// RecipeDTO represents the database structure for persisting grow recipes.
type RecipeDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	SeedVariety     string    `gorm:"index"`
	SoakDays        float64
	GerminationDays float64
	BlackoutDays    float64
	LightDays       float64
	YieldGrams      float64
	BufferPct       float64
}

// TableName specifies the database table name for recipes.
func (RecipeDTO) TableName() string {
	return "recipes"
}

// fromDomain converts a recipe domain entity to its database representation.
func fromDomain(r *recipe.Recipe) RecipeDTO {
	return RecipeDTO{
		ID:              r.ID().Bytes(),
		SeedVariety:     r.SeedVariety(),
		SoakDays:        r.SoakDuration().Days(),
		GerminationDays: r.GerminationDuration().Days(),
		BlackoutDays:    r.BlackoutDuration().Days(),
		LightDays:       r.LightDuration().Days(),
		YieldGrams:      r.ExpectedYieldGrams(),
		BufferPct:       r.BufferPercent(),
	}
}

// ToDomain converts a database DTO to a recipe domain entity. It is exported
// because the crop unit repository reconstructs recipes from a joined row.
func ToDomain(dto RecipeDTO) (*recipe.Recipe, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	soak, soakErr := kernel.NewGrowDuration(dto.SoakDays)
	germination, germErr := kernel.NewGrowDuration(dto.GerminationDays)
	blackout, blackoutErr := kernel.NewGrowDuration(dto.BlackoutDays)
	light, lightErr := kernel.NewGrowDuration(dto.LightDays)
	if err := errors.Join(soakErr, germErr, blackoutErr, lightErr); err != nil {
		return nil, err
	}

	return recipe.RestoreRecipe(id, dto.SeedVariety,
		soak, germination, blackout, light,
		dto.YieldGrams, dto.BufferPct)
}
