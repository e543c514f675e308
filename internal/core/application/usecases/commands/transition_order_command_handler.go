package commands

import (
	"context"
	"errors"
	"fmt"

	"cropflow/internal/core/domain/model/order"
	"cropflow/internal/core/ports"
	"cropflow/internal/pkg/errs"
)

// TransitionOrderCommandHandler applies order status transitions.
//
// The aggregate validates the move against the transition graph; the write
// uses an optimistic status check so two concurrent transitions from the
// same status cannot both win. The loser's write matches zero rows and is
// reported as order.ErrInvalidTransition, the same answer it would have
// received had it read the winner's status first. Every applied transition
// appends one audit record.
type TransitionOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	graph      *order.TransitionGraph
	publisher  ports.EventPublisher
}

// NewTransitionOrderCommandHandler creates a handler for order transitions.
func NewTransitionOrderCommandHandler(
	uowFactory OrderUoWFactory,
	graph *order.TransitionGraph,
	publisher ports.EventPublisher,
) TransitionOrderCommandHandler {
	return TransitionOrderCommandHandler{
		uowFactory: uowFactory,
		graph:      graph,
		publisher:  publisher,
	}
}

// Handle processes the transition command.
func (h TransitionOrderCommandHandler) Handle(ctx context.Context, command TransitionOrderCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().Get(ctx, command.OrderID())
	if err != nil {
		return err
	}

	fromCode := aggregate.Status()

	if err = aggregate.ChangeStatus(command.TargetStatus(), h.graph, command.SystemInitiated()); err != nil {
		return err
	}

	err = uow.OrderRepository().UpdateWithStatusCheck(ctx, aggregate, fromCode)
	if errors.Is(err, errs.ErrObjectNotFound) {
		// a concurrent transition won the race
		return fmt.Errorf("%w: %s -> %s", order.ErrInvalidTransition, fromCode, command.TargetStatus())
	}
	if err != nil {
		return err
	}

	target, err := h.graph.Status(command.TargetStatus())
	if err != nil {
		return err
	}

	record, err := order.NewTransitionRecord(
		aggregate.ID(), fromCode, command.TargetStatus(),
		target.Bucket(), command.Actor(), command.Now(), command.Notes())
	if err != nil {
		return err
	}

	if err = uow.TransitionLogRepository().Append(ctx, record); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Publish(ctx, ports.DomainEvent{
		Name:        "order.status_changed",
		AggregateID: aggregate.ID(),
		OccurredAt:  command.Now(),
		Payload: map[string]string{
			"from":  fromCode,
			"to":    command.TargetStatus(),
			"actor": command.Actor(),
		},
	})

	return nil
}
