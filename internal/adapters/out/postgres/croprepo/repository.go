package croprepo

import (
	"context"
	"errors"

	"cropflow/internal/core/domain/model/crop"
	"cropflow/internal/core/domain/model/kernel"
	"cropflow/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormCropRepository implements CropRepository using GORM.
type GormCropRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormCropRepository creates a new GORM crop unit repository.
func NewGormCropRepository(db *gorm.DB, tracker aggregateTracker) *GormCropRepository {
	return &GormCropRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new crop unit to the database.
func (r *GormCropRepository) Add(ctx context.Context, aggregate *crop.CropUnit) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Omit("Recipe").Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing crop unit to the database.
// All columns are written explicitly so that cleared nullable timestamps and
// the watering flag persist their zero values.
func (r *GormCropRepository) Update(ctx context.Context, aggregate *crop.CropUnit) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&CropUnitDTO{}).
		Where("id = ?", dto.ID).
		Select("*").Omit("id", "Recipe").
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

// Get retrieves a crop unit by ID, recipe included.
func (r *GormCropRepository) Get(ctx context.Context, id kernel.UUID) (*crop.CropUnit, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto CropUnitDTO
	if err := r.db.WithContext(ctx).Preload("Recipe").First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("cropUnit", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllActive retrieves all crop units that have not reached the harvested stage.
func (r *GormCropRepository) GetAllActive(ctx context.Context) ([]*crop.CropUnit, error) {
	var dtos []CropUnitDTO
	if err := r.db.WithContext(ctx).Preload("Recipe").
		Find(&dtos, "stage <> ?", crop.Harvested.String()).Error; err != nil {
		return nil, err
	}

	return unitsToDomain(dtos)
}

// GetByOrder retrieves all crop units planted for the given order.
func (r *GormCropRepository) GetByOrder(ctx context.Context, orderID kernel.UUID) ([]*crop.CropUnit, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []CropUnitDTO
	if err := r.db.WithContext(ctx).Preload("Recipe").
		Find(&dtos, "order_id = ?", orderID.Bytes()).Error; err != nil {
		return nil, err
	}

	return unitsToDomain(dtos)
}

func unitsToDomain(dtos []CropUnitDTO) ([]*crop.CropUnit, error) {
	units := make([]*crop.CropUnit, 0, len(dtos))
	for _, dto := range dtos {
		unit, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		units = append(units, unit)
	}
	return units, nil
}
