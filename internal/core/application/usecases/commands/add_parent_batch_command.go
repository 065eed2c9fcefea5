package commands

import (
	"errors"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/guard"
)

var ErrAddParentBatchCommandIsNotConstructed = errors.New(
	"AddParentBatchCommand must be created via NewAddParentBatchCommand constructor",
)

type AddParentBatchCommand struct {
	envelope Envelope
	batchID  kernel.UUID
	parentID kernel.UUID

	guard guard.ConstructorGuard
}

func NewAddParentBatchCommand(env Envelope, batchID, parentID kernel.UUID) (AddParentBatchCommand, error) {
	if err := errors.Join(env.Validate(), batchID.Validate(), parentID.Validate()); err != nil {
		return AddParentBatchCommand{}, err
	}
	return AddParentBatchCommand{
		envelope: env,
		batchID:  batchID,
		parentID: parentID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c AddParentBatchCommand) Validate() error {
	return c.guard.Validate(ErrAddParentBatchCommandIsNotConstructed)
}

func (c AddParentBatchCommand) Envelope() Envelope {
	return c.envelope
}

func (c AddParentBatchCommand) BatchID() kernel.UUID {
	return c.batchID
}

func (c AddParentBatchCommand) ParentID() kernel.UUID {
	return c.parentID
}
