package commands

import (
	"errors"
	"time"

	"cropflow/internal/core/domain/model/kernel"
	"cropflow/internal/pkg/guard"
)

var (
	ErrTransitionOrderCommandIsNotConstructed = errors.New(
		"TransitionOrderCommand must be created via NewTransitionOrderCommand constructor",
	)
	ErrTargetStatusIsRequired = errors.New("target status is required")
	ErrActorIsRequired        = errors.New("actor is required")
)

// TransitionOrderCommand represents a request to move an order to a new
// status: an operator action by default, or a system action when raised by
// automation (planting completion, delivery confirmation).
//
// Example:
//
//	cmd, err := NewTransitionOrderCommand(orderID, order.StatusConfirmed, "operator:jane", "", false, time.Now())
//	if err != nil {
//	    return err
//	}
//	err = handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, order.ErrInvalidTransition):
//	    // the lifecycle does not allow that move
//	case errors.Is(err, order.ErrOrderLocked):
//	    // the order is in production and operators cannot touch it
//	}
type TransitionOrderCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.UUID
	targetStatus    string
	actor           string
	notes           string
	systemInitiated bool
	now             time.Time

	guard guard.ConstructorGuard
}

// NewTransitionOrderCommand creates a command to transition one order.
func NewTransitionOrderCommand(
	orderID kernel.UUID,
	targetStatus string,
	actor string,
	notes string,
	systemInitiated bool,
	now time.Time,
) (TransitionOrderCommand, error) {
	cmd := TransitionOrderCommand{
		notes:           notes,
		systemInitiated: systemInitiated,
		guard:           guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setTargetStatus(targetStatus),
		cmd.setActor(actor),
		cmd.setNow(now),
	); err != nil {
		return TransitionOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrTransitionOrderCommandIsNotConstructed if validation fails.
func (c TransitionOrderCommand) Validate() error {
	return c.guard.Validate(ErrTransitionOrderCommandIsNotConstructed)
}

// OrderID returns the order to transition.
func (c TransitionOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// TargetStatus returns the status code to move into.
func (c TransitionOrderCommand) TargetStatus() string {
	return c.targetStatus
}

// Actor returns who initiated the transition, recorded in the audit log.
func (c TransitionOrderCommand) Actor() string {
	return c.actor
}

// Notes returns free-form context for the audit record, possibly empty.
func (c TransitionOrderCommand) Notes() string {
	return c.notes
}

// SystemInitiated reports whether automation raised this transition.
// System transitions bypass the modification lock on production statuses.
func (c TransitionOrderCommand) SystemInitiated() bool {
	return c.systemInitiated
}

// Now returns the transition instant.
func (c TransitionOrderCommand) Now() time.Time {
	return c.now
}

func (c *TransitionOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *TransitionOrderCommand) setTargetStatus(targetStatus string) error {
	if targetStatus == "" {
		return ErrTargetStatusIsRequired
	}

	c.targetStatus = targetStatus
	return nil
}

func (c *TransitionOrderCommand) setActor(actor string) error {
	if actor == "" {
		return ErrActorIsRequired
	}

	c.actor = actor
	return nil
}

func (c *TransitionOrderCommand) setNow(now time.Time) error {
	if now.IsZero() {
		return ErrNowIsRequired
	}

	c.now = now
	return nil
}
