package kernel

import (
	"fmt"
	"math"
	"time"

	"cropflow/internal/pkg/errs"
	"cropflow/internal/pkg/guard"
)

// hoursPerDay converts fractional grow days into clock time.
const hoursPerDay = 24

// ErrGrowDurationIsNotConstructed is returned when attempting to use an improperly
// initialized GrowDuration. Durations must be created via NewGrowDuration.
var ErrGrowDurationIsNotConstructed = errs.NewValueIsRequiredError(
	"grow duration must be created via NewGrowDuration constructor")

// GrowDuration represents the length of one growth stage, expressed in days.
// Recipes record stage lengths in fractional days (e.g. 0.5 for a 12-hour soak),
// and GrowDuration converts them to absolute instants when scheduling.
//
// GrowDuration is an immutable value object. The zero value is invalid and
// fails validation; a valid zero-length duration is created with
// NewGrowDuration(0) and means the stage is skipped.
//
// Example:
//
//	soak, err := kernel.NewGrowDuration(0.5)
//	if err != nil {
//	    // Handle validation error
//	}
//	due := soak.AddTo(plantedAt) // plantedAt + 12h
type GrowDuration struct { //nolint:recvcheck //using for validation
	days  float64
	guard guard.ConstructorGuard
}

// NewGrowDuration creates a GrowDuration from a number of fractional days.
// Days must be finite and non-negative; zero is valid and marks a skipped stage.
//
// Returns:
//   - GrowDuration: a valid duration instance
//   - error: validation error when days is negative, NaN, or infinite
func NewGrowDuration(days float64) (GrowDuration, error) {
	if math.IsNaN(days) || math.IsInf(days, 0) {
		return GrowDuration{}, errs.NewValueIsInvalidErrorWithCause(
			"days", fmt.Errorf("%v is not a finite number", days))
	}

	if days < 0 {
		return GrowDuration{}, errs.NewValueIsInvalidErrorWithCause(
			"days", fmt.Errorf("%v is not greater than or equal to 0", days))
	}

	return GrowDuration{
		days:  days,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate checks if the GrowDuration was properly constructed.
// The zero value fails this validation.
func (d GrowDuration) Validate() error {
	return d.guard.Validate(ErrGrowDurationIsNotConstructed)
}

// Days returns the duration expressed in fractional days.
func (d GrowDuration) Days() float64 {
	return d.days
}

// IsZero reports whether the duration is zero-length, meaning the stage
// it describes is skipped entirely.
func (d GrowDuration) IsZero() bool {
	return d.days == 0
}

// ToDuration converts the fractional-day value to a time.Duration.
func (d GrowDuration) ToDuration() time.Duration {
	return time.Duration(d.days * hoursPerDay * float64(time.Hour))
}

// AddTo returns the instant obtained by adding the duration to t.
// This is how stage-entry timestamps become stage-transition due times.
func (d GrowDuration) AddTo(t time.Time) time.Time {
	return t.Add(d.ToDuration())
}

// Add returns the sum of two grow durations.
func (d GrowDuration) Add(other GrowDuration) (GrowDuration, error) {
	return NewGrowDuration(d.days + other.days)
}

// Scale returns the duration multiplied by factor. Used to apply a recipe's
// safety buffer to the total grow cycle.
func (d GrowDuration) Scale(factor float64) (GrowDuration, error) {
	return NewGrowDuration(d.days * factor)
}

// IsEqual compares two durations by their day value.
func (d GrowDuration) IsEqual(other GrowDuration) bool {
	return d.days == other.days
}

// String returns a human-readable representation, e.g. "3.5d".
func (d GrowDuration) String() string {
	return fmt.Sprintf("%gd", d.days)
}
