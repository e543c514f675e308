package commands

import (
	"errors"
	"time"

	"cropflow/internal/pkg/guard"
)

var ErrGenerateRecurringOrdersCommandIsNotConstructed = errors.New(
	"GenerateRecurringOrdersCommand must be created via NewGenerateRecurringOrdersCommand constructor",
)

// GenerateRecurringOrdersCommand represents one generation sweep: every due
// recurring template produces its pending occurrences.
//
// Example:
//
//	cmd, err := NewGenerateRecurringOrdersCommand(time.Now())
//	if err != nil {
//	    return err
//	}
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    log.Printf("generation sweep failed: %v", err)
//	}
type GenerateRecurringOrdersCommand struct { //nolint:recvcheck //using for validation
	now time.Time

	guard guard.ConstructorGuard
}

// NewGenerateRecurringOrdersCommand creates a command to run the generation
// sweep at now.
func NewGenerateRecurringOrdersCommand(now time.Time) (GenerateRecurringOrdersCommand, error) {
	if now.IsZero() {
		return GenerateRecurringOrdersCommand{}, ErrNowIsRequired
	}

	return GenerateRecurringOrdersCommand{
		now:   now,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrGenerateRecurringOrdersCommandIsNotConstructed if validation fails.
func (c GenerateRecurringOrdersCommand) Validate() error {
	return c.guard.Validate(ErrGenerateRecurringOrdersCommandIsNotConstructed)
}

// Now returns the sweep time.
func (c GenerateRecurringOrdersCommand) Now() time.Time {
	return c.now
}
