// Package publisher delivers outbox events to the message bus. The bus itself
// is owned by another team; until it is reachable from this service events
// are written to the structured log, one entry per event.
package publisher

import (
	"context"

	"production/internal/core/domain/events"
	"production/internal/core/domain/model/kernel"

	"go.uber.org/zap"
)

type LogPublisher struct {
	logger *zap.Logger
}

func NewLogPublisher(logger *zap.Logger) *LogPublisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogPublisher{logger: logger}
}

// Publish rejects envelopes with an unknown type; everything else is logged at info level.
func (p *LogPublisher) Publish(ctx context.Context, event events.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := event.EventType.Validate(); err != nil {
		return err
	}

	fields := []zap.Field{
		zap.Stringer("eventId", event.EventID),
		zap.String("eventType", string(event.EventType)),
		zap.Int("eventVersion", event.EventVersion),
		zap.Time("occurredAt", event.OccurredAt),
		zap.Stringer("tenantId", event.TenantID),
		zap.Stringer("aggregateId", event.AggregateID),
		zap.ByteString("payload", event.Payload),
	}
	fields = appendOptional(fields, "correlationId", event.CorrelationID)
	fields = appendOptional(fields, "causationId", event.CausationID)

	p.logger.Info("event published", fields...)
	return nil
}

func appendOptional(fields []zap.Field, key string, id *kernel.UUID) []zap.Field {
	if id == nil {
		return fields
	}
	return append(fields, zap.Stringer(key, *id))
}
