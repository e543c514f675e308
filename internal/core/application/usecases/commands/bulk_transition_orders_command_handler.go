package commands

import (
	"context"

	"cropflow/internal/core/domain/model/kernel"
	"cropflow/internal/core/domain/model/order"
	"cropflow/internal/core/ports"
)

// BulkTransitionFailure records why one order in a batch was not moved.
type BulkTransitionFailure struct {
	OrderID kernel.UUID
	Err     error
}

// BulkTransitionResult partitions a batch into orders that moved and orders
// that were rejected. A rejection never rolls back the rest of the batch.
type BulkTransitionResult struct {
	Succeeded []kernel.UUID
	Failed    []BulkTransitionFailure
}

// BulkTransitionOrdersCommandHandler applies the same transition to a batch
// of orders, one transaction per order. Each order succeeds or fails on its
// own; the result reports both partitions.
type BulkTransitionOrdersCommandHandler struct {
	inner TransitionOrderCommandHandler
}

// NewBulkTransitionOrdersCommandHandler creates a handler for batch transitions.
func NewBulkTransitionOrdersCommandHandler(
	uowFactory OrderUoWFactory,
	graph *order.TransitionGraph,
	publisher ports.EventPublisher,
) BulkTransitionOrdersCommandHandler {
	return BulkTransitionOrdersCommandHandler{
		inner: NewTransitionOrderCommandHandler(uowFactory, graph, publisher),
	}
}

// Handle processes the batch. The returned error covers only command
// validation; per-order outcomes live in the result.
func (h BulkTransitionOrdersCommandHandler) Handle(ctx context.Context, command BulkTransitionOrdersCommand) (BulkTransitionResult, error) {
	if err := command.Validate(); err != nil {
		return BulkTransitionResult{}, err
	}

	var result BulkTransitionResult

	for _, orderID := range command.OrderIDs() {
		single, err := NewTransitionOrderCommand(
			orderID, command.TargetStatus(), command.Actor(), "", false, command.Now())
		if err != nil {
			result.Failed = append(result.Failed, BulkTransitionFailure{OrderID: orderID, Err: err})
			continue
		}

		if err = h.inner.Handle(ctx, single); err != nil {
			result.Failed = append(result.Failed, BulkTransitionFailure{OrderID: orderID, Err: err})
			continue
		}

		result.Succeeded = append(result.Succeeded, orderID)
	}

	return result, nil
}
