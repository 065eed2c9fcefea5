package commands

import (
	"errors"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/guard"
)

var ErrDeleteMixOrderCommandIsNotConstructed = errors.New(
	"DeleteMixOrderCommand must be created via NewDeleteMixOrderCommand constructor",
)

type DeleteMixOrderCommand struct {
	envelope   Envelope
	mixOrderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewDeleteMixOrderCommand(env Envelope, mixOrderID kernel.UUID) (DeleteMixOrderCommand, error) {
	if err := errors.Join(env.Validate(), mixOrderID.Validate()); err != nil {
		return DeleteMixOrderCommand{}, err
	}
	return DeleteMixOrderCommand{
		envelope:   env,
		mixOrderID: mixOrderID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c DeleteMixOrderCommand) Validate() error {
	return c.guard.Validate(ErrDeleteMixOrderCommandIsNotConstructed)
}

func (c DeleteMixOrderCommand) Envelope() Envelope {
	return c.envelope
}

func (c DeleteMixOrderCommand) MixOrderID() kernel.UUID {
	return c.mixOrderID
}
