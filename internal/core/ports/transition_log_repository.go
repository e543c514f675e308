package ports

import (
	"context"

	"cropflow/internal/core/domain/model/kernel"
	"cropflow/internal/core/domain/model/order"
)

// TransitionLogRepository defines the persistence contract for the order
// status audit log. The log is append-only: records are never updated or
// deleted.
type TransitionLogRepository interface {
	// Append persists one transition record.
	Append(ctx context.Context, record order.TransitionRecord) error

	// GetByOrder retrieves the full transition history for an order,
	// oldest first.
	GetByOrder(ctx context.Context, orderID kernel.UUID) ([]order.TransitionRecord, error)
}
