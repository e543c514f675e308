package crop

import (
	"fmt"

	"cropflow/internal/core/domain/model/kernel"
	"cropflow/internal/core/domain/model/recipe"
	"cropflow/internal/pkg/errs"
)

// Stage represents one phase of a crop unit's biological lifecycle.
// It implements a fixed-order state machine:
//
//	Soaking? ──> Germination ──> Blackout? ──> Light ──> Harvested
//
// Soaking exists only for recipes with a positive soak duration, and
// Blackout is skipped for recipes with a zero blackout duration. The
// recipe-aware successor is computed by SuccessorIn.
type Stage int

const (
	// Unknown represents an invalid or undefined stage.
	// This value (0) helps catch uninitialized Stage values.
	Unknown Stage = iota

	// Soaking is the pre-germination seed soak. Only recipes with a positive
	// soak duration pass through this stage.
	Soaking

	// Germination is the covered sprouting phase after sowing.
	Germination

	// Blackout keeps sprouted trays in darkness to stretch stems.
	// Recipes with a zero blackout duration skip it.
	Blackout

	// Light is the final greening phase under grow lights.
	Light

	// Harvested is the terminal stage. No further transitions are allowed.
	Harvested
)

// getStageStrings returns a map of Stage values to their string representations.
func getStageStrings() map[Stage]string {
	return map[Stage]string{
		Unknown:     "Unknown",
		Soaking:     "Soaking",
		Germination: "Germination",
		Blackout:    "Blackout",
		Light:       "Light",
		Harvested:   "Harvested",
	}
}

// getValidStageStrings returns a map of only valid Stage values.
func getValidStageStrings() map[Stage]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Stage]string{
		Soaking:     "Soaking",
		Germination: "Germination",
		Blackout:    "Blackout",
		Light:       "Light",
		Harvested:   "Harvested",
	}
}

// Validate checks if the Stage value is valid.
// Unknown (0) and out-of-range values are invalid.
func (s Stage) Validate() error {
	if _, ok := getValidStageStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("stage is invalid",
			fmt.Errorf("%d is not a valid stage", s))
	}
	return nil
}

// String returns the human-readable name of the stage.
// Implements fmt.Stringer and is safe on invalid values.
func (s Stage) String() string {
	if str, ok := getStageStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether the stage ends the crop lifecycle.
func (s Stage) IsTerminal() bool {
	return s == Harvested
}

// SuccessorIn returns the next stage a crop of the given recipe enters after
// this one. Stages the recipe does not require are skipped: a recipe without
// blackout passes from Germination straight to Light.
//
// Returns an error when called on Harvested (no successor exists) or on an
// invalid stage.
func (s Stage) SuccessorIn(r *recipe.Recipe) (Stage, error) {
	if err := r.Validate(); err != nil {
		return Unknown, err
	}

	switch s {
	case Soaking:
		return Germination, nil
	case Germination:
		if r.RequiresBlackout() {
			return Blackout, nil
		}
		return Light, nil
	case Blackout:
		return Light, nil
	case Light:
		return Harvested, nil
	case Harvested:
		return Unknown, fmt.Errorf("%w: %s is terminal", ErrInvalidStageTransition, s)
	default:
		return Unknown, errs.NewValueIsInvalidErrorWithCause("stage is invalid",
			fmt.Errorf("%d is not a valid stage", s))
	}
}

// DurationIn returns how long a crop of the given recipe spends in this stage.
// Harvested has no duration; it returns the zero-length duration.
func (s Stage) DurationIn(r *recipe.Recipe) kernel.GrowDuration {
	switch s {
	case Soaking:
		return r.SoakDuration()
	case Germination:
		return r.GerminationDuration()
	case Blackout:
		return r.BlackoutDuration()
	case Light:
		return r.LightDuration()
	default:
		zero, _ := kernel.NewGrowDuration(0)
		return zero
	}
}

// FirstStageFor returns the stage a freshly planted crop of the given recipe
// enters: Soaking when the recipe soaks, otherwise Germination.
func FirstStageFor(r *recipe.Recipe) Stage {
	if r.RequiresSoaking() {
		return Soaking
	}
	return Germination
}
