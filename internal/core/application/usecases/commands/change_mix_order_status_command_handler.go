package commands

import (
	"context"

	"production/internal/core/domain/events"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/mixorder"
)

type ChangeMixOrderStatusCommandHandler struct {
	updater mixOrderUpdater
}

func NewChangeMixOrderStatusCommandHandler(
	uowFactory MixOrderUoWFactory,
	clock kernel.Clock,
	eventFactory events.Factory,
) ChangeMixOrderStatusCommandHandler {
	return ChangeMixOrderStatusCommandHandler{
		updater: mixOrderUpdater{uowFactory: uowFactory, clock: clock, events: eventFactory},
	}
}

func (h ChangeMixOrderStatusCommandHandler) Handle(
	ctx context.Context,
	command ChangeMixOrderStatusCommand,
) (mixorder.MixOrder, error) {
	if err := command.Validate(); err != nil {
		return mixorder.MixOrder{}, err
	}

	action := command.Action()
	return h.updater.update(ctx, command.Envelope(), command.MixOrderID(),
		func(o mixorder.MixOrder) (mixorder.MixOrder, error) {
			return action.apply(o, command.Reason())
		},
		action.eventType(),
	)
}
