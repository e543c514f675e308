package commands

import (
	"context"

	"cropflow/internal/core/domain/model/order"
)

// ConvertOrderToTemplateCommandHandler turns orders into recurring templates.
type ConvertOrderToTemplateCommandHandler struct {
	uowFactory OrderUoWFactory
	graph      *order.TransitionGraph
}

// NewConvertOrderToTemplateCommandHandler creates a handler for template conversions.
func NewConvertOrderToTemplateCommandHandler(uowFactory OrderUoWFactory, graph *order.TransitionGraph) ConvertOrderToTemplateCommandHandler {
	return ConvertOrderToTemplateCommandHandler{
		uowFactory: uowFactory,
		graph:      graph,
	}
}

// Handle processes the conversion command.
func (h ConvertOrderToTemplateCommandHandler) Handle(ctx context.Context, command ConvertOrderToTemplateCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	settings, err := order.NewRecurrenceSettings(
		command.Frequency(), command.Interval(), command.StartDate(), command.EndDate())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().Get(ctx, command.OrderID())
	if err != nil {
		return err
	}

	if err = aggregate.ConvertToTemplate(settings, h.graph); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
