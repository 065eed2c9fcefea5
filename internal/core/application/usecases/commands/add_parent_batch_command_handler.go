package commands

import (
	"context"

	"production/internal/core/domain/model/batch"
)

type AddParentBatchCommandHandler struct {
	uowFactory BatchUoWFactory
}

func NewAddParentBatchCommandHandler(uowFactory BatchUoWFactory) AddParentBatchCommandHandler {
	return AddParentBatchCommandHandler{uowFactory: uowFactory}
}

// Handle links an existing batch of the same tenant as a parent of the target batch.
func (h AddParentBatchCommandHandler) Handle(ctx context.Context, command AddParentBatchCommand) (batch.Batch, error) {
	if err := command.Validate(); err != nil {
		return batch.Batch{}, err
	}

	env := command.Envelope()
	uow := h.uowFactory.Create()
	var saved batch.Batch
	err := inTransaction(ctx, uow, func() error {
		repo := uow.BatchRepository()

		current, err := repo.Get(ctx, env.TenantID(), command.BatchID())
		if err != nil {
			return err
		}
		next, err := current.AddParentBatch(command.ParentID())
		if err != nil {
			return err
		}
		if _, err := repo.Get(ctx, env.TenantID(), command.ParentID()); err != nil {
			return err
		}
		saved, err = repo.Update(ctx, next)
		return err
	})
	if err != nil {
		return batch.Batch{}, err
	}

	return saved, nil
}
