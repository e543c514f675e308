package commands

import (
	"context"

	"cropflow/internal/core/domain/model/order"
)

// CreateOrderCommandHandler persists new customer orders.
// Orders always start in the draft status; planting and planning happen
// through separate commands.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the order creation command.
// Builds the aggregate from the command inputs and persists it atomically.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, command CreateOrderCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	items, err := command.toOrderItems()
	if err != nil {
		return err
	}

	aggregate, err := order.NewOrder(command.OrderID(), command.DeliveryDate(), items)
	if err != nil {
		return err
	}

	aggregate.AssignBillingAccount(command.BillingAccount())
	aggregate.AttachNotes(command.Notes())

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
