package ports

import (
	"context"
	"time"

	"cropflow/internal/core/domain/model/kernel"
)

// DomainEvent is one notification about something that happened in the
// production domain: a crop changed stage, an order changed status, a
// recurring template produced an order.
type DomainEvent struct {
	// Name identifies the event, e.g. "crop.stage_advanced".
	Name string

	// AggregateID is the id of the aggregate the event concerns.
	AggregateID kernel.UUID

	// OccurredAt is when the change happened.
	OccurredAt time.Time

	// Payload carries event-specific details, e.g. raised stage codes.
	Payload map[string]string
}

// EventPublisher defines the outbound contract for domain notifications.
// Publishing is best-effort: callers treat failures as observability loss,
// not as a reason to roll back the business change.
type EventPublisher interface {
	Publish(ctx context.Context, event DomainEvent)
}
