package reciperepo

import (
	"context"
	"errors"

	"cropflow/internal/core/domain/model/kernel"
	"cropflow/internal/core/domain/model/recipe"
	"cropflow/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormRecipeRepository implements RecipeRepository using GORM.
type GormRecipeRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormRecipeRepository creates a new GORM recipe repository.
func NewGormRecipeRepository(db *gorm.DB, tracker aggregateTracker) *GormRecipeRepository {
	return &GormRecipeRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new recipe to the database.
func (r *GormRecipeRepository) Add(ctx context.Context, aggregate *recipe.Recipe) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing recipe to the database.
func (r *GormRecipeRepository) Update(ctx context.Context, aggregate *recipe.Recipe) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&RecipeDTO{}).
		Where("id = ?", dto.ID).
		Select("*").Omit("id").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a recipe by ID.
func (r *GormRecipeRepository) Get(ctx context.Context, id kernel.UUID) (*recipe.Recipe, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto RecipeDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("recipe", id.String())
		}
		return nil, err
	}

	return ToDomain(dto)
}

// GetByIDs retrieves the recipes for the given identifiers.
// Identifiers without a stored recipe are silently absent from the result.
func (r *GormRecipeRepository) GetByIDs(ctx context.Context, ids []kernel.UUID) (map[kernel.UUID]*recipe.Recipe, error) {
	if len(ids) == 0 {
		return map[kernel.UUID]*recipe.Recipe{}, nil
	}

	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		raw = append(raw, id.Bytes())
	}

	var dtos []RecipeDTO
	if err := r.db.WithContext(ctx).Find(&dtos, "id IN ?", raw).Error; err != nil {
		return nil, err
	}

	recipes := make(map[kernel.UUID]*recipe.Recipe, len(dtos))
	for _, dto := range dtos {
		rec, err := ToDomain(dto)
		if err != nil {
			return nil, err
		}
		recipes[rec.ID()] = rec
	}

	return recipes, nil
}
