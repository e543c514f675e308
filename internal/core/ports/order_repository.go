package ports

import (
	"context"
	"time"

	"cropflow/internal/core/domain/model/kernel"
	"cropflow/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates,
// both concrete orders and recurring templates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// The order must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *order.Order) error

	// UpdateWithStatusCheck persists the aggregate only if the stored row
	// still carries expectedStatus. Returns errs.ObjectNotFoundError wrapping
	// the order id when the stored status has moved on, so concurrent
	// transitions lose cleanly instead of overwriting each other.
	UpdateWithStatusCheck(ctx context.Context, aggregate *order.Order, expectedStatus string) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByStatus retrieves all orders currently in the given status code.
	GetByStatus(ctx context.Context, statusCode string) ([]*order.Order, error)

	// GetDueTemplates retrieves all active recurring templates whose next
	// generation date is at or before now.
	GetDueTemplates(ctx context.Context, now time.Time) ([]*order.Order, error)
}
