package commands

import (
	"context"
	"fmt"

	"production/internal/core/domain/events"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/ports"
)

type RelayOutboxCommandHandler struct {
	uowFactory OutboxUoWFactory
	publisher  ports.EventPublisher
	clock      kernel.Clock
}

func NewRelayOutboxCommandHandler(
	uowFactory OutboxUoWFactory,
	publisher ports.EventPublisher,
	clock kernel.Clock,
) RelayOutboxCommandHandler {
	return RelayOutboxCommandHandler{uowFactory: uowFactory, publisher: publisher, clock: clock}
}

// Handle publishes pending events in occurrence order and returns the ones
// that reached the publisher. Publishing stops at the first failure; events
// published before it are still marked so they are not sent twice.
func (h RelayOutboxCommandHandler) Handle(ctx context.Context, command RelayOutboxCommand) ([]events.Event, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	var published []events.Event
	var publishErr error
	uow := h.uowFactory.Create()
	err := inTransaction(ctx, uow, func() error {
		pending, err := uow.Outbox().FetchPending(ctx, command.Limit())
		if err != nil {
			return err
		}

		ids := make([]kernel.UUID, 0, len(pending))
		for _, event := range pending {
			if err := h.publisher.Publish(ctx, event); err != nil {
				publishErr = fmt.Errorf("publish %s %s: %w", event.EventType, event.EventID, err)
				break
			}
			published = append(published, event)
			ids = append(ids, event.EventID)
		}
		if len(ids) == 0 {
			return nil
		}
		return uow.Outbox().MarkPublished(ctx, ids, h.clock.Now())
	})
	if err != nil {
		return nil, err
	}

	return published, publishErr
}
