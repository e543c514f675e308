package commands

import (
	"errors"
	"time"

	"cropflow/internal/pkg/guard"
)

var (
	ErrProcessDueTasksCommandIsNotConstructed = errors.New(
		"ProcessDueTasksCommand must be created via NewProcessDueTasksCommand constructor",
	)
	ErrNowIsRequired = errors.New("now is required")
)

// ProcessDueTasksCommand represents one scheduler tick: every active task
// whose due time has arrived gets executed.
//
// Example:
//
//	cmd, err := NewProcessDueTasksCommand(time.Now())
//	if err != nil {
//	    return err
//	}
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    log.Printf("tick failed: %v", err)
//	}
type ProcessDueTasksCommand struct { //nolint:recvcheck //using for validation
	now time.Time

	guard guard.ConstructorGuard
}

// NewProcessDueTasksCommand creates a command to run the scheduler at now.
// The tick time is passed in rather than read inside the handler so tests
// and catch-up runs control the clock.
func NewProcessDueTasksCommand(now time.Time) (ProcessDueTasksCommand, error) {
	if now.IsZero() {
		return ProcessDueTasksCommand{}, ErrNowIsRequired
	}

	return ProcessDueTasksCommand{
		now:   now,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrProcessDueTasksCommandIsNotConstructed if validation fails.
func (c ProcessDueTasksCommand) Validate() error {
	return c.guard.Validate(ErrProcessDueTasksCommandIsNotConstructed)
}

// Now returns the tick time.
func (c ProcessDueTasksCommand) Now() time.Time {
	return c.now
}
