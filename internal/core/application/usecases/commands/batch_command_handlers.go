package commands

import (
	"context"

	"production/internal/core/domain/events"
	"production/internal/core/domain/model/batch"
	"production/internal/core/domain/model/kernel"
)

type ChangeBatchStatusCommandHandler struct {
	updater batchUpdater
}

func NewChangeBatchStatusCommandHandler(uowFactory BatchUoWFactory, eventFactory events.Factory) ChangeBatchStatusCommandHandler {
	return ChangeBatchStatusCommandHandler{updater: batchUpdater{uowFactory: uowFactory, events: eventFactory}}
}

// Handle applies a quality decision and publishes the matching batch status event.
func (h ChangeBatchStatusCommandHandler) Handle(ctx context.Context, command ChangeBatchStatusCommand) (batch.Batch, error) {
	if err := command.Validate(); err != nil {
		return batch.Batch{}, err
	}
	env := command.Envelope()
	return h.updater.update(ctx, env, command.BatchID(),
		func(b batch.Batch) (batch.Batch, error) {
			return command.Action().apply(b, command.Reason())
		},
		func(saved batch.Batch) ([]events.Event, error) {
			return single(h.updater.events.BatchStatusChanged(saved, command.Reason(), env.Metadata()))
		},
	)
}

type CompleteBatchCommandHandler struct {
	updater batchUpdater
	clock   kernel.Clock
}

func NewCompleteBatchCommandHandler(uowFactory BatchUoWFactory, clock kernel.Clock) CompleteBatchCommandHandler {
	return CompleteBatchCommandHandler{updater: batchUpdater{uowFactory: uowFactory}, clock: clock}
}

func (h CompleteBatchCommandHandler) Handle(ctx context.Context, command CompleteBatchCommand) (batch.Batch, error) {
	if err := command.Validate(); err != nil {
		return batch.Batch{}, err
	}
	endAt := h.clock.Now()
	if command.EndAt() != nil {
		endAt = *command.EndAt()
	}
	return h.updater.update(ctx, command.Envelope(), command.BatchID(),
		func(b batch.Batch) (batch.Batch, error) {
			return b.Complete(endAt)
		}, nil)
}

type AddBatchInputCommandHandler struct {
	updater batchUpdater
}

func NewAddBatchInputCommandHandler(uowFactory BatchUoWFactory) AddBatchInputCommandHandler {
	return AddBatchInputCommandHandler{updater: batchUpdater{uowFactory: uowFactory}}
}

func (h AddBatchInputCommandHandler) Handle(ctx context.Context, command AddBatchInputCommand) (batch.Batch, error) {
	if err := command.Validate(); err != nil {
		return batch.Batch{}, err
	}
	return h.updater.update(ctx, command.Envelope(), command.BatchID(),
		func(b batch.Batch) (batch.Batch, error) {
			return b.AddInput(command.Input())
		}, nil)
}

type AddBatchOutputCommandHandler struct {
	updater batchUpdater
	ids     kernel.IDGenerator
}

func NewAddBatchOutputCommandHandler(uowFactory BatchUoWFactory, ids kernel.IDGenerator) AddBatchOutputCommandHandler {
	return AddBatchOutputCommandHandler{updater: batchUpdater{uowFactory: uowFactory}, ids: ids}
}

func (h AddBatchOutputCommandHandler) Handle(ctx context.Context, command AddBatchOutputCommand) (batch.Batch, error) {
	if err := command.Validate(); err != nil {
		return batch.Batch{}, err
	}
	p := command.Params()
	lot, err := batch.NewOutputLot(h.ids.NewID(), p.LotNumber, p.QtyKg, p.Packing, p.Destination, p.GMPPlusMarkings)
	if err != nil {
		return batch.Batch{}, err
	}
	return h.updater.update(ctx, command.Envelope(), command.BatchID(),
		func(b batch.Batch) (batch.Batch, error) {
			return b.AddOutput(lot)
		}, nil)
}

type ChangeBatchLabelCommandHandler struct {
	updater batchUpdater
}

func NewChangeBatchLabelCommandHandler(uowFactory BatchUoWFactory) ChangeBatchLabelCommandHandler {
	return ChangeBatchLabelCommandHandler{updater: batchUpdater{uowFactory: uowFactory}}
}

func (h ChangeBatchLabelCommandHandler) Handle(ctx context.Context, command ChangeBatchLabelCommand) (batch.Batch, error) {
	if err := command.Validate(); err != nil {
		return batch.Batch{}, err
	}
	return h.updater.update(ctx, command.Envelope(), command.BatchID(),
		func(b batch.Batch) (batch.Batch, error) {
			if command.Remove() {
				return b.RemoveLabel(command.Label())
			}
			return b.AddLabel(command.Label())
		}, nil)
}
