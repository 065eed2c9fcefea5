package commands

import (
	"context"

	"production/internal/core/domain/events"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/mixorder"
)

type CreateMixOrderCommandHandler struct {
	uowFactory MixOrderUoWFactory
	ids        kernel.IDGenerator
	clock      kernel.Clock
	events     events.Factory
}

func NewCreateMixOrderCommandHandler(
	uowFactory MixOrderUoWFactory,
	ids kernel.IDGenerator,
	clock kernel.Clock,
	eventFactory events.Factory,
) CreateMixOrderCommandHandler {
	return CreateMixOrderCommandHandler{
		uowFactory: uowFactory,
		ids:        ids,
		clock:      clock,
		events:     eventFactory,
	}
}

func (h CreateMixOrderCommandHandler) Handle(ctx context.Context, command CreateMixOrderCommand) (mixorder.MixOrder, error) {
	if err := command.Validate(); err != nil {
		return mixorder.MixOrder{}, err
	}

	order, err := mixorder.NewMixOrder(h.ids, h.clock, command.Params())
	if err != nil {
		return mixorder.MixOrder{}, err
	}
	event, err := h.events.MixOrderCreated(order, command.Envelope().Metadata())
	if err != nil {
		return mixorder.MixOrder{}, err
	}

	uow := h.uowFactory.Create()
	err = inTransaction(ctx, uow, func() error {
		if err := uow.MixOrderRepository().Add(ctx, order); err != nil {
			return err
		}
		return uow.Outbox().Append(ctx, event)
	})
	if err != nil {
		return mixorder.MixOrder{}, err
	}

	return order, nil
}
