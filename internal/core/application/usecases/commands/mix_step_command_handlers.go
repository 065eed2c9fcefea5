package commands

import (
	"context"

	"production/internal/core/domain/events"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/mixorder"
)

type AddMixStepCommandHandler struct {
	updater mixOrderUpdater
}

func NewAddMixStepCommandHandler(
	uowFactory MixOrderUoWFactory,
	clock kernel.Clock,
	eventFactory events.Factory,
) AddMixStepCommandHandler {
	return AddMixStepCommandHandler{
		updater: mixOrderUpdater{uowFactory: uowFactory, clock: clock, events: eventFactory},
	}
}

func (h AddMixStepCommandHandler) Handle(ctx context.Context, command AddMixStepCommand) (mixorder.MixOrder, error) {
	if err := command.Validate(); err != nil {
		return mixorder.MixOrder{}, err
	}
	return h.updater.update(ctx, command.Envelope(), command.MixOrderID(),
		func(o mixorder.MixOrder) (mixorder.MixOrder, error) {
			return o.AddStep(command.Step())
		}, "")
}

type UpdateMixStepCommandHandler struct {
	updater mixOrderUpdater
}

func NewUpdateMixStepCommandHandler(
	uowFactory MixOrderUoWFactory,
	clock kernel.Clock,
	eventFactory events.Factory,
) UpdateMixStepCommandHandler {
	return UpdateMixStepCommandHandler{
		updater: mixOrderUpdater{uowFactory: uowFactory, clock: clock, events: eventFactory},
	}
}

func (h UpdateMixStepCommandHandler) Handle(ctx context.Context, command UpdateMixStepCommand) (mixorder.MixOrder, error) {
	if err := command.Validate(); err != nil {
		return mixorder.MixOrder{}, err
	}
	return h.updater.update(ctx, command.Envelope(), command.MixOrderID(),
		func(o mixorder.MixOrder) (mixorder.MixOrder, error) {
			return o.UpdateStep(command.Index(), command.Patch())
		}, "")
}

type EndMixStepCommandHandler struct {
	updater mixOrderUpdater
}

func NewEndMixStepCommandHandler(
	uowFactory MixOrderUoWFactory,
	clock kernel.Clock,
	eventFactory events.Factory,
) EndMixStepCommandHandler {
	return EndMixStepCommandHandler{
		updater: mixOrderUpdater{uowFactory: uowFactory, clock: clock, events: eventFactory},
	}
}

func (h EndMixStepCommandHandler) Handle(ctx context.Context, command EndMixStepCommand) (mixorder.MixOrder, error) {
	if err := command.Validate(); err != nil {
		return mixorder.MixOrder{}, err
	}

	endedAt := h.updater.clock.Now()
	if command.EndedAt() != nil {
		endedAt = *command.EndedAt()
	}
	return h.updater.update(ctx, command.Envelope(), command.MixOrderID(),
		func(o mixorder.MixOrder) (mixorder.MixOrder, error) {
			return o.EndStep(command.Index(), endedAt, command.Actuals())
		}, "")
}
