package commands

import (
	"errors"
	"time"

	"cropflow/internal/core/domain/model/kernel"
	"cropflow/internal/pkg/guard"
)

var ErrPlanOrderCommandIsNotConstructed = errors.New(
	"PlanOrderCommand must be created via NewPlanOrderCommand constructor",
)

// PlanOrderCommand represents a request to expand one order into crop plans:
// how many trays of which recipe to plant, and by when.
//
// Example:
//
//	cmd, err := NewPlanOrderCommand(orderID, time.Now())
//	if err != nil {
//	    return err
//	}
//	result, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return err
//	}
//	for _, issue := range result.Issues {
//	    log.Printf("planning issue: %s", issue.Detail)
//	}
type PlanOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	now     time.Time

	guard guard.ConstructorGuard
}

// NewPlanOrderCommand creates a command to plan one order.
func NewPlanOrderCommand(orderID kernel.UUID, now time.Time) (PlanOrderCommand, error) {
	cmd := PlanOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setNow(now),
	); err != nil {
		return PlanOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrPlanOrderCommandIsNotConstructed if validation fails.
func (c PlanOrderCommand) Validate() error {
	return c.guard.Validate(ErrPlanOrderCommandIsNotConstructed)
}

// OrderID returns the order to plan.
func (c PlanOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Now returns the planning time, used for lead-time checks.
func (c PlanOrderCommand) Now() time.Time {
	return c.now
}

func (c *PlanOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *PlanOrderCommand) setNow(now time.Time) error {
	if now.IsZero() {
		return ErrNowIsRequired
	}

	c.now = now
	return nil
}
