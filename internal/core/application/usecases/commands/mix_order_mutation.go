package commands

import (
	"context"

	"production/internal/core/domain/events"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/mixorder"
	"production/internal/core/ports"
)

// mixOrderUpdater is shared by the handlers that modify an existing mix order.
// Every change stamps updatedAt and updatedBy before it is stored.
type mixOrderUpdater struct {
	uowFactory MixOrderUoWFactory
	clock      kernel.Clock
	events     events.Factory
}

func (u mixOrderUpdater) update(
	ctx context.Context,
	env Envelope,
	id kernel.UUID,
	change func(mixorder.MixOrder) (mixorder.MixOrder, error),
	eventType events.Type,
) (mixorder.MixOrder, error) {
	m := mutation[mixorder.MixOrder]{
		env: env,
		id:  id,
		change: func(current mixorder.MixOrder) (mixorder.MixOrder, error) {
			next, err := change(current)
			if err != nil {
				return mixorder.MixOrder{}, err
			}
			return next.Touch(u.clock.Now(), env.Actor())
		},
	}
	if eventType != "" {
		m.emit = func(saved mixorder.MixOrder) ([]events.Event, error) {
			return single(u.events.MixOrderTransitioned(eventType, saved, env.Metadata()))
		}
	}

	uow := u.uowFactory.Create()
	return m.run(ctx, uow,
		func() aggregateRepository[mixorder.MixOrder] { return uow.MixOrderRepository() },
		func() ports.Outbox { return uow.Outbox() },
	)
}
