package commands

import (
	"errors"
	"time"

	"cropflow/internal/core/domain/model/kernel"
	"cropflow/internal/core/domain/model/order"
	"cropflow/internal/pkg/guard"
)

var ErrConvertOrderToTemplateCommandIsNotConstructed = errors.New(
	"ConvertOrderToTemplateCommand must be created via NewConvertOrderToTemplateCommand constructor",
)

// ConvertOrderToTemplateCommand represents a request to turn an existing
// order into a recurring template with the given cadence.
//
// Example:
//
//	cmd, err := NewConvertOrderToTemplateCommand(orderID, order.Weekly, 0, startDate, nil)
//	if err != nil {
//	    return err
//	}
//	err = handler.Handle(ctx, cmd)
//	if errors.Is(err, order.ErrNestedRecurrence) {
//	    // generated orders cannot become templates
//	}
type ConvertOrderToTemplateCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	frequency order.Frequency
	interval  int
	startDate time.Time
	endDate   *time.Time

	guard guard.ConstructorGuard
}

// NewConvertOrderToTemplateCommand creates a command to convert an order
// into a recurring template. Cadence details are validated by the
// recurrence settings value object in the handler.
func NewConvertOrderToTemplateCommand(
	orderID kernel.UUID,
	frequency order.Frequency,
	interval int,
	startDate time.Time,
	endDate *time.Time,
) (ConvertOrderToTemplateCommand, error) {
	cmd := ConvertOrderToTemplateCommand{
		interval:  interval,
		startDate: startDate,
		endDate:   endDate,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setFrequency(frequency),
	); err != nil {
		return ConvertOrderToTemplateCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrConvertOrderToTemplateCommandIsNotConstructed if validation fails.
func (c ConvertOrderToTemplateCommand) Validate() error {
	return c.guard.Validate(ErrConvertOrderToTemplateCommandIsNotConstructed)
}

// OrderID returns the order to convert.
func (c ConvertOrderToTemplateCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Frequency returns the requested cadence.
func (c ConvertOrderToTemplateCommand) Frequency() order.Frequency {
	return c.frequency
}

// Interval returns the cadence interval, meaningful for biweekly templates.
func (c ConvertOrderToTemplateCommand) Interval() int {
	return c.interval
}

// StartDate returns the first occurrence date.
func (c ConvertOrderToTemplateCommand) StartDate() time.Time {
	return c.startDate
}

// EndDate returns the optional last occurrence bound.
func (c ConvertOrderToTemplateCommand) EndDate() *time.Time {
	return c.endDate
}

func (c *ConvertOrderToTemplateCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ConvertOrderToTemplateCommand) setFrequency(frequency order.Frequency) error {
	if err := frequency.Validate(); err != nil {
		return err
	}

	c.frequency = frequency
	return nil
}
