package commands

import (
	"errors"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/guard"
)

var ErrCompleteBatchCommandIsNotConstructed = errors.New(
	"CompleteBatchCommand must be created via NewCompleteBatchCommand constructor",
)

type CompleteBatchCommand struct {
	envelope Envelope
	batchID  kernel.UUID
	endAt    *time.Time

	guard guard.ConstructorGuard
}

// NewCompleteBatchCommand builds the command; a nil endAt means the handler's current time.
func NewCompleteBatchCommand(env Envelope, batchID kernel.UUID, endAt *time.Time) (CompleteBatchCommand, error) {
	if err := errors.Join(env.Validate(), batchID.Validate()); err != nil {
		return CompleteBatchCommand{}, err
	}
	return CompleteBatchCommand{
		envelope: env,
		batchID:  batchID,
		endAt:    kernel.NormalizeOptionalTime(endAt),
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c CompleteBatchCommand) Validate() error {
	return c.guard.Validate(ErrCompleteBatchCommandIsNotConstructed)
}

func (c CompleteBatchCommand) Envelope() Envelope {
	return c.envelope
}

func (c CompleteBatchCommand) BatchID() kernel.UUID {
	return c.batchID
}

func (c CompleteBatchCommand) EndAt() *time.Time {
	return c.endAt
}
