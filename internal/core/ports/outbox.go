package ports

import (
	"context"
	"time"

	"production/internal/core/domain/events"
	"production/internal/core/domain/model/kernel"
)

// Outbox stores events in the transaction that produced them.
type Outbox interface {
	// Append stores events as pending.
	Append(ctx context.Context, evts ...events.Event) error

	// FetchPending returns up to limit unpublished events in occurrence order.
	// Rows are locked for the surrounding transaction and skipped by concurrent relays.
	FetchPending(ctx context.Context, limit int) ([]events.Event, error)

	// MarkPublished flags the events as delivered at the given instant.
	MarkPublished(ctx context.Context, ids []kernel.UUID, at time.Time) error
}

// EventPublisher hands an event to the external bus.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}
