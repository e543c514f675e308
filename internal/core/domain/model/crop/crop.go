package crop

import (
	"errors"
	"fmt"
	"time"

	"cropflow/internal/core/domain/model/kernel"
	"cropflow/internal/core/domain/model/recipe"
)

var (
	// ErrCropUnitIsNotConstructed is returned when a CropUnit instance was not
	// created through the NewCropUnit factory method.
	ErrCropUnitIsNotConstructed = errors.New("CropUnit must be created via NewCropUnit constructor")

	// ErrInvalidStageTransition is returned when an advancement targets a stage
	// that is not the recipe successor of the unit's current stage, or when the
	// unit is already harvested. This is a non-retryable caller error.
	ErrInvalidStageTransition = errors.New("invalid stage transition")
)

// CropUnit is one tray/batch instance tracked through the stage lifecycle.
// It is the aggregate root for crop state: the current stage, the timestamp
// at which each reached stage was entered, and the watering marker.
//
// CropUnit invariants:
//   - Stage-entry timestamps are monotonically non-decreasing in stage order
//   - A recorded timestamp for stage N implies recorded timestamps for every
//     earlier stage the recipe requires
//   - A harvested unit never advances again
//
// Stage-entry timestamps record actual execution time, not the originally
// scheduled due time, so lateness stays auditable.
type CropUnit struct {
	id      kernel.UUID
	orderID kernel.UUID
	recipe  *recipe.Recipe

	stage        Stage
	stageEntries map[Stage]time.Time

	wateringSuspended bool
	isConstructed     bool
}

// NewCropUnit creates a crop unit entering its recipe's first stage at plantedAt.
// Recipes without a soak duration begin at Germination; all others at Soaking.
//
// Parameters:
//   - id: unique identifier for the unit
//   - orderID: the order whose planting requirement spawned this unit
//   - r: the recipe this unit grows by (immutable reference data)
//   - plantedAt: the instant the unit entered its first stage
func NewCropUnit(id kernel.UUID, orderID kernel.UUID, r *recipe.Recipe, plantedAt time.Time) (*CropUnit, error) {
	if err := errors.Join(id.Validate(), orderID.Validate(), r.Validate()); err != nil {
		return nil, err
	}

	if plantedAt.IsZero() {
		return nil, errors.New("plantedAt must not be the zero time")
	}

	first := FirstStageFor(r)
	return &CropUnit{
		id:            id,
		orderID:       orderID,
		recipe:        r,
		stage:         first,
		stageEntries:  map[Stage]time.Time{first: plantedAt},
		isConstructed: true,
	}, nil
}

// RestoreCropUnit reconstructs a crop unit from persistence.
// Validates the stage-entry timestamp invariants before accepting the state.
func RestoreCropUnit(
	id kernel.UUID,
	orderID kernel.UUID,
	r *recipe.Recipe,
	stage Stage,
	stageEntries map[Stage]time.Time,
	wateringSuspended bool,
) (*CropUnit, error) {
	if err := errors.Join(id.Validate(), orderID.Validate(), r.Validate(), stage.Validate()); err != nil {
		return nil, err
	}

	entries := make(map[Stage]time.Time, len(stageEntries))
	for s, at := range stageEntries {
		if err := s.Validate(); err != nil {
			return nil, err
		}
		entries[s] = at
	}

	if _, ok := entries[stage]; !ok {
		return nil, fmt.Errorf("stage %s has no entry timestamp", stage)
	}

	unit := &CropUnit{
		id:                id,
		orderID:           orderID,
		recipe:            r,
		stage:             stage,
		stageEntries:      entries,
		wateringSuspended: wateringSuspended,
		isConstructed:     true,
	}

	if err := unit.validateEntryOrder(); err != nil {
		return nil, err
	}

	return unit, nil
}

// Validate ensures the CropUnit was constructed through NewCropUnit or RestoreCropUnit.
func (c *CropUnit) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCropUnitIsNotConstructed
	}
	return nil
}

// IsEqual compares two crop units by identifier.
func (c *CropUnit) IsEqual(other *CropUnit) bool {
	return other != nil && c.id.IsEqual(other.id)
}

// ID returns the crop unit's unique identifier.
func (c *CropUnit) ID() kernel.UUID {
	return c.id
}

// OrderID returns the id of the order that owns this unit.
func (c *CropUnit) OrderID() kernel.UUID {
	return c.orderID
}

// Recipe returns the recipe this unit grows by.
func (c *CropUnit) Recipe() *recipe.Recipe {
	return c.recipe
}

// Stage returns the unit's current lifecycle stage.
func (c *CropUnit) Stage() Stage {
	return c.stage
}

// StageEnteredAt returns the instant the unit entered the given stage,
// or nil if the stage has not been reached.
func (c *CropUnit) StageEnteredAt(s Stage) *time.Time {
	if at, ok := c.stageEntries[s]; ok {
		entered := at
		return &entered
	}
	return nil
}

// CurrentStageEnteredAt returns the instant the unit entered its current stage.
func (c *CropUnit) CurrentStageEnteredAt() time.Time {
	return c.stageEntries[c.stage]
}

// IsHarvested reports whether the unit reached its terminal stage.
func (c *CropUnit) IsHarvested() bool {
	return c.stage.IsTerminal()
}

// IsWateringSuspended reports whether watering is currently suspended.
func (c *CropUnit) IsWateringSuspended() bool {
	return c.wateringSuspended
}

// SuspendWatering marks the unit as not to be watered. Typical before harvest.
func (c *CropUnit) SuspendWatering() {
	c.wateringSuspended = true
}

// ResumeWatering clears the watering-suspended marker.
func (c *CropUnit) ResumeWatering() {
	c.wateringSuspended = false
}

// Advance moves the unit into target, recording now as the stage-entry time.
//
// Fails with ErrInvalidStageTransition when:
//   - the unit is already Harvested
//   - target is not the recipe successor of the current stage
//   - now precedes the current stage's entry time (would break monotonicity)
//
// On failure the unit's state is left unchanged. The engine never clamps.
func (c *CropUnit) Advance(target Stage, now time.Time) error {
	if err := c.Validate(); err != nil {
		return err
	}

	if c.IsHarvested() {
		return fmt.Errorf("%w: unit %s is already harvested", ErrInvalidStageTransition, c.id)
	}

	next, err := c.stage.SuccessorIn(c.recipe)
	if err != nil {
		return err
	}

	if target != next {
		return fmt.Errorf("%w: %s does not follow %s for recipe %s",
			ErrInvalidStageTransition, target, c.stage, c.recipe.SeedVariety())
	}

	if now.Before(c.CurrentStageEnteredAt()) {
		return fmt.Errorf("%w: advancement time %s precedes %s entry at %s",
			ErrInvalidStageTransition, now.Format(time.RFC3339), c.stage,
			c.CurrentStageEnteredAt().Format(time.RFC3339))
	}

	c.stage = target
	c.stageEntries[target] = now
	return nil
}

// validateEntryOrder checks that recorded stage-entry timestamps are monotone
// non-decreasing in stage order and that no required earlier stage is missing
// an entry while a later one has one.
func (c *CropUnit) validateEntryOrder() error {
	var last *time.Time
	var missing []Stage

	for _, s := range c.requiredStages() {
		at, ok := c.stageEntries[s]
		if !ok {
			missing = append(missing, s)
			continue
		}

		if len(missing) > 0 {
			return fmt.Errorf("stage %s has an entry timestamp but earlier stage %s does not", s, missing[0])
		}

		if last != nil && at.Before(*last) {
			return fmt.Errorf("stage %s entered at %s before previous stage at %s",
				s, at.Format(time.RFC3339), last.Format(time.RFC3339))
		}

		entered := at
		last = &entered
	}

	return nil
}

// requiredStages returns the ordered stages this unit's recipe passes through,
// Harvested included.
func (c *CropUnit) requiredStages() []Stage {
	stages := make([]Stage, 0, 5)
	if c.recipe.RequiresSoaking() {
		stages = append(stages, Soaking)
	}
	stages = append(stages, Germination)
	if c.recipe.RequiresBlackout() {
		stages = append(stages, Blackout)
	}
	return append(stages, Light, Harvested)
}
