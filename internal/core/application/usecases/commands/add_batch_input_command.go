package commands

import (
	"errors"

	"production/internal/core/domain/model/batch"
	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/guard"
)

var ErrAddBatchInputCommandIsNotConstructed = errors.New(
	"AddBatchInputCommand must be created via NewAddBatchInputCommand constructor",
)

type AddBatchInputCommand struct {
	envelope Envelope
	batchID  kernel.UUID
	input    batch.Input

	guard guard.ConstructorGuard
}

func NewAddBatchInputCommand(env Envelope, batchID kernel.UUID, input batch.Input) (AddBatchInputCommand, error) {
	if err := errors.Join(env.Validate(), batchID.Validate(), input.Validate()); err != nil {
		return AddBatchInputCommand{}, err
	}
	return AddBatchInputCommand{
		envelope: env,
		batchID:  batchID,
		input:    input,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c AddBatchInputCommand) Validate() error {
	return c.guard.Validate(ErrAddBatchInputCommandIsNotConstructed)
}

func (c AddBatchInputCommand) Envelope() Envelope {
	return c.envelope
}

func (c AddBatchInputCommand) BatchID() kernel.UUID {
	return c.batchID
}

func (c AddBatchInputCommand) Input() batch.Input {
	return c.input
}
