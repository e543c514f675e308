package services

import (
	"errors"
	"time"

	"cropflow/internal/core/domain/model/crop"
)

// ErrNothingToSchedule is returned when a crop unit has no further stage
// transition to schedule. This occurs when the unit has already reached
// the harvested stage.
var ErrNothingToSchedule = errors.New("nothing to schedule")

// StageEngine is a domain service that decides the next stage transition for
// a crop unit and when that transition is due.
//
// Key responsibilities:
//   - Validating crop units before scheduling
//   - Resolving the next stage from the unit's recipe
//   - Computing the transition due time from stage durations
//
// Business rules:
//   - Zero-duration stages declared by the recipe are skipped entirely
//   - The due time is measured from when the unit entered its current stage,
//     never from wall-clock now, so late runs do not push the cycle back
//   - A harvested unit has nothing left to schedule
type StageEngine struct{}

// NewStageEngine creates a new StageEngine instance.
func NewStageEngine() StageEngine {
	return StageEngine{}
}

// ScheduleNext determines the next stage for the given crop unit and the time
// at which the unit should enter it.
//
// Parameters:
//   - unit: the crop unit to schedule (must be valid)
//
// Returns:
//   - crop.Stage: the stage the unit should move into next
//   - time.Time: when the transition is due
//   - error: ErrNothingToSchedule if the unit is already harvested, or
//     validation errors
func (e StageEngine) ScheduleNext(unit *crop.CropUnit) (crop.Stage, time.Time, error) {
	if err := unit.Validate(); err != nil {
		return crop.Unknown, time.Time{}, err
	}

	if unit.IsHarvested() {
		return crop.Unknown, time.Time{}, ErrNothingToSchedule
	}

	next, err := unit.Stage().SuccessorIn(unit.Recipe())
	if err != nil {
		return crop.Unknown, time.Time{}, err
	}

	dueAt := unit.Stage().DurationIn(unit.Recipe()).AddTo(unit.CurrentStageEnteredAt())
	return next, dueAt, nil
}
