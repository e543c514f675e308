package commands

import (
	"errors"
	"time"

	"cropflow/internal/core/domain/model/kernel"
	"cropflow/internal/pkg/guard"
)

var (
	ErrBulkTransitionOrdersCommandIsNotConstructed = errors.New(
		"BulkTransitionOrdersCommand must be created via NewBulkTransitionOrdersCommand constructor",
	)
	ErrOrderIDsAreRequired = errors.New("at least one order id is required")
)

// BulkTransitionOrdersCommand represents a request to move several orders to
// the same status in one operation, e.g. confirming a day's drafts or
// invoicing everything delivered.
//
// Example:
//
//	cmd, err := NewBulkTransitionOrdersCommand(ids, order.StatusConfirmed, "operator:jane", time.Now())
//	if err != nil {
//	    return err
//	}
//	result, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return err
//	}
//	log.Printf("moved %d, rejected %d", len(result.Succeeded), len(result.Failed))
type BulkTransitionOrdersCommand struct { //nolint:recvcheck //using for validation
	orderIDs     []kernel.UUID
	targetStatus string
	actor        string
	now          time.Time

	guard guard.ConstructorGuard
}

// NewBulkTransitionOrdersCommand creates a command to transition a batch of orders.
func NewBulkTransitionOrdersCommand(
	orderIDs []kernel.UUID,
	targetStatus string,
	actor string,
	now time.Time,
) (BulkTransitionOrdersCommand, error) {
	cmd := BulkTransitionOrdersCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderIDs(orderIDs),
		cmd.setTargetStatus(targetStatus),
		cmd.setActor(actor),
		cmd.setNow(now),
	); err != nil {
		return BulkTransitionOrdersCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrBulkTransitionOrdersCommandIsNotConstructed if validation fails.
func (c BulkTransitionOrdersCommand) Validate() error {
	return c.guard.Validate(ErrBulkTransitionOrdersCommandIsNotConstructed)
}

// OrderIDs returns the orders to transition.
func (c BulkTransitionOrdersCommand) OrderIDs() []kernel.UUID {
	ids := make([]kernel.UUID, len(c.orderIDs))
	copy(ids, c.orderIDs)
	return ids
}

// TargetStatus returns the status code every order should move into.
func (c BulkTransitionOrdersCommand) TargetStatus() string {
	return c.targetStatus
}

// Actor returns who initiated the batch.
func (c BulkTransitionOrdersCommand) Actor() string {
	return c.actor
}

// Now returns the transition instant.
func (c BulkTransitionOrdersCommand) Now() time.Time {
	return c.now
}

func (c *BulkTransitionOrdersCommand) setOrderIDs(orderIDs []kernel.UUID) error {
	if len(orderIDs) == 0 {
		return ErrOrderIDsAreRequired
	}

	for _, id := range orderIDs {
		if err := id.Validate(); err != nil {
			return err
		}
	}

	c.orderIDs = orderIDs
	return nil
}

func (c *BulkTransitionOrdersCommand) setTargetStatus(targetStatus string) error {
	if targetStatus == "" {
		return ErrTargetStatusIsRequired
	}

	c.targetStatus = targetStatus
	return nil
}

func (c *BulkTransitionOrdersCommand) setActor(actor string) error {
	if actor == "" {
		return ErrActorIsRequired
	}

	c.actor = actor
	return nil
}

func (c *BulkTransitionOrdersCommand) setNow(now time.Time) error {
	if now.IsZero() {
		return ErrNowIsRequired
	}

	c.now = now
	return nil
}
