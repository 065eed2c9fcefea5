package commands

import (
	"context"

	"production/internal/core/domain/events"
	"production/internal/core/domain/model/batch"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/ports"
)

type batchUpdater struct {
	uowFactory BatchUoWFactory
	events     events.Factory
}

func (u batchUpdater) update(
	ctx context.Context,
	env Envelope,
	id kernel.UUID,
	change func(batch.Batch) (batch.Batch, error),
	emit func(saved batch.Batch) ([]events.Event, error),
) (batch.Batch, error) {
	uow := u.uowFactory.Create()
	return mutation[batch.Batch]{env: env, id: id, change: change, emit: emit}.run(ctx, uow,
		func() aggregateRepository[batch.Batch] { return uow.BatchRepository() },
		func() ports.Outbox { return uow.Outbox() },
	)
}
