package recipe

import (
	"errors"
	"fmt"
	"math"

	"cropflow/internal/core/domain/model/kernel"
	"cropflow/internal/pkg/errs"
)

const maxBufferPercent = 100

var (
	// ErrRecipeIsNotConstructed is returned when a Recipe instance was not created
	// through the NewRecipe factory method.
	ErrRecipeIsNotConstructed = errors.New("Recipe must be created via NewRecipe constructor")

	// ErrNoGrowStages is returned when every stage duration of a recipe is zero.
	// A recipe must describe at least one stage with a positive duration.
	ErrNoGrowStages = errors.New("recipe must have at least one stage with a positive duration")
)

// Recipe is immutable reference data describing how one seed variety is grown:
// how long each stage lasts, how much a tray is expected to yield, and what
// safety buffer planning applies on top of the raw cycle length.
//
// Recipe invariants:
//   - All stage durations are non-negative; at least one is positive
//   - Expected yield per tray is positive
//   - Buffer percent lies in [0, 100]
//
// A zero soak duration means the variety is never soaked and its crops begin
// life in the germination stage. A zero blackout duration means crops pass
// straight from germination to light.
type Recipe struct {
	id            kernel.UUID
	seedVariety   string
	soak          kernel.GrowDuration
	germination   kernel.GrowDuration
	blackout      kernel.GrowDuration
	light         kernel.GrowDuration
	yieldGrams    float64
	bufferPct     float64
	isConstructed bool
}

// NewRecipe creates a validated Recipe.
//
// Parameters:
//   - id: unique identifier
//   - seedVariety: display name of the variety (must be non-empty)
//   - soak, germination, blackout, light: stage durations (each may be zero)
//   - yieldGrams: expected yield per tray in grams (must be positive)
//   - bufferPct: planning safety buffer in percent (0..100)
func NewRecipe(
	id kernel.UUID,
	seedVariety string,
	soak, germination, blackout, light kernel.GrowDuration,
	yieldGrams float64,
	bufferPct float64,
) (*Recipe, error) {
	r := &Recipe{isConstructed: true}

	if err := errors.Join(
		r.setID(id),
		r.setSeedVariety(seedVariety),
		r.setDurations(soak, germination, blackout, light),
		r.setYieldGrams(yieldGrams),
		r.setBufferPct(bufferPct),
	); err != nil {
		return nil, err
	}

	return r, nil
}

// RestoreRecipe reconstructs a Recipe from persistence.
// Applies the same validation as NewRecipe.
func RestoreRecipe(
	id kernel.UUID,
	seedVariety string,
	soak, germination, blackout, light kernel.GrowDuration,
	yieldGrams float64,
	bufferPct float64,
) (*Recipe, error) {
	return NewRecipe(id, seedVariety, soak, germination, blackout, light, yieldGrams, bufferPct)
}

// Validate ensures the Recipe was constructed through NewRecipe.
func (r *Recipe) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRecipeIsNotConstructed
	}
	return nil
}

// IsEqual compares two recipes by identifier.
func (r *Recipe) IsEqual(other *Recipe) bool {
	return other != nil && r.id.IsEqual(other.id)
}

// ID returns the recipe's unique identifier.
func (r *Recipe) ID() kernel.UUID {
	return r.id
}

// SeedVariety returns the display name of the seed variety.
func (r *Recipe) SeedVariety() string {
	return r.seedVariety
}

// SoakDuration returns the soak stage duration. Zero means the variety is not soaked.
func (r *Recipe) SoakDuration() kernel.GrowDuration {
	return r.soak
}

// GerminationDuration returns the germination stage duration.
func (r *Recipe) GerminationDuration() kernel.GrowDuration {
	return r.germination
}

// BlackoutDuration returns the blackout stage duration. Zero means blackout is skipped.
func (r *Recipe) BlackoutDuration() kernel.GrowDuration {
	return r.blackout
}

// LightDuration returns the light stage duration.
func (r *Recipe) LightDuration() kernel.GrowDuration {
	return r.light
}

// ExpectedYieldGrams returns the expected yield per tray in grams.
func (r *Recipe) ExpectedYieldGrams() float64 {
	return r.yieldGrams
}

// BufferPercent returns the planning safety buffer in percent.
func (r *Recipe) BufferPercent() float64 {
	return r.bufferPct
}

// RequiresSoaking reports whether crops of this variety begin with a soak stage.
func (r *Recipe) RequiresSoaking() bool {
	return !r.soak.IsZero()
}

// RequiresBlackout reports whether crops of this variety pass through a blackout stage.
func (r *Recipe) RequiresBlackout() bool {
	return !r.blackout.IsZero()
}

// TotalGrowCycle returns the full seed-to-harvest duration including the
// safety buffer: (soak + germination + blackout + light) * (1 + buffer/100).
// Planning works backward from the delivery date by this amount.
func (r *Recipe) TotalGrowCycle() kernel.GrowDuration {
	total := r.soak.Days() + r.germination.Days() + r.blackout.Days() + r.light.Days()
	buffered, err := kernel.NewGrowDuration(total * (1 + r.bufferPct/maxBufferPercent))
	if err != nil {
		// Cannot happen: all components were validated non-negative.
		buffered, _ = kernel.NewGrowDuration(total)
	}
	return buffered
}

// TraysFor returns the number of trays required to produce requiredGrams,
// rounded up to whole trays. Zero or negative demand needs zero trays.
func (r *Recipe) TraysFor(requiredGrams float64) int {
	if requiredGrams <= 0 {
		return 0
	}
	return int(math.Ceil(requiredGrams / r.yieldGrams))
}

func (r *Recipe) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Recipe) setSeedVariety(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("seedVariety")
	}
	r.seedVariety = name
	return nil
}

func (r *Recipe) setDurations(soak, germination, blackout, light kernel.GrowDuration) error {
	if err := errors.Join(
		soak.Validate(),
		germination.Validate(),
		blackout.Validate(),
		light.Validate(),
	); err != nil {
		return err
	}

	if soak.IsZero() && germination.IsZero() && blackout.IsZero() && light.IsZero() {
		return ErrNoGrowStages
	}

	r.soak = soak
	r.germination = germination
	r.blackout = blackout
	r.light = light
	return nil
}

func (r *Recipe) setYieldGrams(yieldGrams float64) error {
	if yieldGrams <= 0 || math.IsNaN(yieldGrams) || math.IsInf(yieldGrams, 0) {
		return errs.NewValueIsInvalidErrorWithCause("expectedYieldGrams",
			fmt.Errorf("%v is not greater than 0", yieldGrams))
	}
	r.yieldGrams = yieldGrams
	return nil
}

func (r *Recipe) setBufferPct(bufferPct float64) error {
	if bufferPct < 0 || bufferPct > maxBufferPercent || math.IsNaN(bufferPct) {
		return errs.NewValueIsOutOfRangeError("bufferPercent", bufferPct, 0, maxBufferPercent)
	}
	r.bufferPct = bufferPct
	return nil
}
