// Package croprepo provides data transfer objects and mapping functions for
// crop unit persistence. The unit's stage history is flattened into one
// nullable timestamp column per stage; the recipe is loaded alongside the
// unit because the aggregate cannot be reconstructed without it.
package croprepo

import (
	"fmt"
	"time"

	"cropflow/internal/adapters/out/postgres/reciperepo"
	"cropflow/internal/core/domain/model/crop"
	"cropflow/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CropUnitDTO represents the database structure for persisting crop units.
// The stage column stores the stage name, matching crop.Stage.String().
type CropUnitDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID  uuid.UUID `gorm:"type:uuid;index"`
	RecipeID uuid.UUID `gorm:"type:uuid;index"`

	Stage             string `gorm:"index"`
	WateringSuspended bool

	SoakingAt     *time.Time
	GerminationAt *time.Time
	BlackoutAt    *time.Time
	LightAt       *time.Time
	HarvestedAt   *time.Time

	Recipe reciperepo.RecipeDTO `gorm:"foreignKey:RecipeID;references:ID"`
}

// TableName specifies the database table name for crop units.
func (CropUnitDTO) TableName() string {
	return "crop_units"
}

// parseStage resolves a persisted stage name back to its Stage value.
func parseStage(name string) (crop.Stage, error) {
	for _, s := range []crop.Stage{crop.Soaking, crop.Germination, crop.Blackout, crop.Light, crop.Harvested} {
		if s.String() == name {
			return s, nil
		}
	}
	return crop.Unknown, fmt.Errorf("unknown crop stage %q", name)
}

// fromDomain converts a crop unit domain aggregate to its database representation.
func fromDomain(unit *crop.CropUnit) CropUnitDTO {
	return CropUnitDTO{
		ID:                unit.ID().Bytes(),
		OrderID:           unit.OrderID().Bytes(),
		RecipeID:          unit.Recipe().ID().Bytes(),
		Stage:             unit.Stage().String(),
		WateringSuspended: unit.IsWateringSuspended(),
		SoakingAt:         unit.StageEnteredAt(crop.Soaking),
		GerminationAt:     unit.StageEnteredAt(crop.Germination),
		BlackoutAt:        unit.StageEnteredAt(crop.Blackout),
		LightAt:           unit.StageEnteredAt(crop.Light),
		HarvestedAt:       unit.StageEnteredAt(crop.Harvested),
	}
}

// toDomain converts a database DTO to a crop unit domain aggregate.
// The DTO's Recipe association must be loaded.
func toDomain(dto CropUnitDTO) (*crop.CropUnit, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	rec, err := reciperepo.ToDomain(dto.Recipe)
	if err != nil {
		return nil, err
	}

	stage, err := parseStage(dto.Stage)
	if err != nil {
		return nil, err
	}

	entries := make(map[crop.Stage]time.Time, 5)
	for s, at := range map[crop.Stage]*time.Time{
		crop.Soaking:     dto.SoakingAt,
		crop.Germination: dto.GerminationAt,
		crop.Blackout:    dto.BlackoutAt,
		crop.Light:       dto.LightAt,
		crop.Harvested:   dto.HarvestedAt,
	} {
		if at != nil {
			entries[s] = *at
		}
	}

	return crop.RestoreCropUnit(id, orderID, rec, stage, entries, dto.WateringSuspended)
}
