package commands

import (
	"errors"
	"time"

	"cropflow/internal/core/domain/model/kernel"
	"cropflow/internal/core/domain/model/order"
	"cropflow/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrDeliveryDateIsRequired = errors.New("delivery date is required")
	ErrItemsAreRequired       = errors.New("at least one order item is required")
)

// OrderItemInput is one requested line of a new order: which recipe and how
// many grams of finished product.
type OrderItemInput struct {
	RecipeID      kernel.UUID
	RequiredGrams float64
}

// CreateOrderCommand represents a request to register a new customer order.
// Encapsulates the delivery date and the requested product lines.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewCreateOrderCommand(orderID, deliveryDate, items, "ACC-17", "")
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID        kernel.UUID
	deliveryDate   time.Time
	items          []OrderItemInput
	billingAccount string
	notes          string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new order.
// Validates that the order ID is valid, the delivery date is set, and at
// least one item is requested. Item contents are validated by the aggregate.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	deliveryDate time.Time,
	items []OrderItemInput,
	billingAccount string,
	notes string,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		billingAccount: billingAccount,
		notes:          notes,
		guard:          guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setDeliveryDate(deliveryDate),
		cmd.setItems(items),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// DeliveryDate returns the promised delivery date.
func (c CreateOrderCommand) DeliveryDate() time.Time {
	return c.deliveryDate
}

// Items returns the requested product lines.
func (c CreateOrderCommand) Items() []OrderItemInput {
	return c.items
}

// BillingAccount returns the billing account reference, possibly empty.
func (c CreateOrderCommand) BillingAccount() string {
	return c.billingAccount
}

// Notes returns free-form operator notes, possibly empty.
func (c CreateOrderCommand) Notes() string {
	return c.notes
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setDeliveryDate(deliveryDate time.Time) error {
	if deliveryDate.IsZero() {
		return ErrDeliveryDateIsRequired
	}

	c.deliveryDate = deliveryDate
	return nil
}

func (c *CreateOrderCommand) setItems(items []OrderItemInput) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}

	c.items = items
	return nil
}

// toOrderItems maps the raw inputs to validated domain items.
func (c CreateOrderCommand) toOrderItems() ([]order.OrderItem, error) {
	items := make([]order.OrderItem, 0, len(c.items))
	for _, input := range c.items {
		item, err := order.NewOrderItem(input.RecipeID, input.RequiredGrams)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}
