package commands

import (
	"errors"
	"time"

	"cropflow/internal/core/domain/model/crop"
	"cropflow/internal/core/domain/model/kernel"
	"cropflow/internal/pkg/guard"
)

var ErrAdvanceCropCommandIsNotConstructed = errors.New(
	"AdvanceCropCommand must be created via NewAdvanceCropCommand constructor",
)

// AdvanceCropCommand represents a manual stage override by an operator:
// move a crop unit into the given stage now, regardless of what the
// scheduler had planned.
//
// Example:
//
//	cmd, err := NewAdvanceCropCommand(cropID, crop.Light, time.Now())
//	if err != nil {
//	    return err
//	}
//	err = handler.Handle(ctx, cmd)
//	if errors.Is(err, crop.ErrInvalidStageTransition) {
//	    // the unit cannot move into that stage from where it is
//	}
type AdvanceCropCommand struct { //nolint:recvcheck //using for validation
	cropID kernel.UUID
	target crop.Stage
	now    time.Time

	guard guard.ConstructorGuard
}

// NewAdvanceCropCommand creates a command to manually advance a crop unit.
func NewAdvanceCropCommand(cropID kernel.UUID, target crop.Stage, now time.Time) (AdvanceCropCommand, error) {
	cmd := AdvanceCropCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCropID(cropID),
		cmd.setTarget(target),
		cmd.setNow(now),
	); err != nil {
		return AdvanceCropCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrAdvanceCropCommandIsNotConstructed if validation fails.
func (c AdvanceCropCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceCropCommandIsNotConstructed)
}

// CropID returns the unit to advance.
func (c AdvanceCropCommand) CropID() kernel.UUID {
	return c.cropID
}

// Target returns the stage to move into.
func (c AdvanceCropCommand) Target() crop.Stage {
	return c.target
}

// Now returns the override instant.
func (c AdvanceCropCommand) Now() time.Time {
	return c.now
}

func (c *AdvanceCropCommand) setCropID(cropID kernel.UUID) error {
	if err := cropID.Validate(); err != nil {
		return err
	}

	c.cropID = cropID
	return nil
}

func (c *AdvanceCropCommand) setTarget(target crop.Stage) error {
	if err := target.Validate(); err != nil {
		return err
	}

	c.target = target
	return nil
}

func (c *AdvanceCropCommand) setNow(now time.Time) error {
	if now.IsZero() {
		return ErrNowIsRequired
	}

	c.now = now
	return nil
}
