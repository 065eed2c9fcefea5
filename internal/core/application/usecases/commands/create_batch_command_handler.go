package commands

import (
	"context"

	"production/internal/core/domain/events"
	"production/internal/core/domain/model/batch"
	"production/internal/core/domain/model/kernel"
)

type CreateBatchCommandHandler struct {
	uowFactory BatchUoWFactory
	ids        kernel.IDGenerator
	events     events.Factory
}

func NewCreateBatchCommandHandler(
	uowFactory BatchUoWFactory,
	ids kernel.IDGenerator,
	eventFactory events.Factory,
) CreateBatchCommandHandler {
	return CreateBatchCommandHandler{
		uowFactory: uowFactory,
		ids:        ids,
		events:     eventFactory,
	}
}

// Handle stores a new Quarantine batch for an existing mix order of the same tenant.
func (h CreateBatchCommandHandler) Handle(ctx context.Context, command CreateBatchCommand) (batch.Batch, error) {
	if err := command.Validate(); err != nil {
		return batch.Batch{}, err
	}

	b, err := batch.NewBatch(h.ids, command.Params())
	if err != nil {
		return batch.Batch{}, err
	}
	env := command.Envelope()
	event, err := h.events.BatchCreated(b, env.Metadata())
	if err != nil {
		return batch.Batch{}, err
	}

	uow := h.uowFactory.Create()
	err = inTransaction(ctx, uow, func() error {
		if _, err := uow.MixOrderRepository().Get(ctx, env.TenantID(), b.MixOrderID()); err != nil {
			return err
		}
		if err := uow.BatchRepository().Add(ctx, b); err != nil {
			return err
		}
		return uow.Outbox().Append(ctx, event)
	})
	if err != nil {
		return batch.Batch{}, err
	}

	return b, nil
}
