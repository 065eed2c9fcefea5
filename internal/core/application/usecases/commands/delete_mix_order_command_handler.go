package commands

import (
	"context"
)

type DeleteMixOrderCommandHandler struct {
	uowFactory MixOrderUoWFactory
}

func NewDeleteMixOrderCommandHandler(uowFactory MixOrderUoWFactory) DeleteMixOrderCommandHandler {
	return DeleteMixOrderCommandHandler{uowFactory: uowFactory}
}

// Handle removes a Draft order. Orders that have been staged are kept for traceability.
func (h DeleteMixOrderCommandHandler) Handle(ctx context.Context, command DeleteMixOrderCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	env := command.Envelope()
	uow := h.uowFactory.Create()
	return inTransaction(ctx, uow, func() error {
		repo := uow.MixOrderRepository()

		order, err := repo.Get(ctx, env.TenantID(), command.MixOrderID())
		if err != nil {
			return err
		}
		if err := order.CheckDeletable(); err != nil {
			return err
		}
		return repo.Delete(ctx, env.TenantID(), order.ID())
	})
}
