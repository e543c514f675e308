// Package notifier provides outbound adapters for domain event notifications.
package notifier

import (
	"context"
	"log/slog"

	"cropflow/internal/core/ports"
)

// SlogEventPublisher publishes domain events to the structured log. It is
// the default event sink: downstream integrations subscribe by shipping
// the log stream.
type SlogEventPublisher struct {
	logger *slog.Logger
}

// NewSlogEventPublisher creates an event publisher writing to the given logger.
func NewSlogEventPublisher(logger *slog.Logger) *SlogEventPublisher {
	return &SlogEventPublisher{
		logger: logger.With("component", "domain_events"),
	}
}

// Publish writes the event as one structured log record. Never fails;
// publishing is best-effort by contract.
func (p *SlogEventPublisher) Publish(ctx context.Context, event ports.DomainEvent) {
	attrs := make([]any, 0, 6+2*len(event.Payload))
	attrs = append(attrs,
		"event", event.Name,
		"aggregate_id", event.AggregateID.String(),
		"occurred_at", event.OccurredAt,
	)
	for key, value := range event.Payload {
		attrs = append(attrs, key, value)
	}

	p.logger.InfoContext(ctx, "domain event", attrs...)
}
