package commands

import (
	"errors"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/mobilerun"
	"production/internal/pkg/guard"
)

var ErrAddCleaningSequenceCommandIsNotConstructed = errors.New(
	"AddCleaningSequenceCommand must be created via NewAddCleaningSequenceCommand constructor",
)

// AddCleaningSequenceCommand opens a cleaning sequence, or records a finished
// one when params.EndedAt is set. params.ID is ignored; the handler generates it.
type AddCleaningSequenceCommand struct {
	envelope    Envelope
	mobileRunID kernel.UUID
	params      mobilerun.CleaningSequenceParams

	guard guard.ConstructorGuard
}

func NewAddCleaningSequenceCommand(
	env Envelope,
	mobileRunID kernel.UUID,
	params mobilerun.CleaningSequenceParams,
) (AddCleaningSequenceCommand, error) {
	if err := errors.Join(env.Validate(), mobileRunID.Validate(), params.Type.Validate()); err != nil {
		return AddCleaningSequenceCommand{}, err
	}
	return AddCleaningSequenceCommand{
		envelope:    env,
		mobileRunID: mobileRunID,
		params:      params,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c AddCleaningSequenceCommand) Validate() error {
	return c.guard.Validate(ErrAddCleaningSequenceCommandIsNotConstructed)
}

func (c AddCleaningSequenceCommand) Envelope() Envelope {
	return c.envelope
}

func (c AddCleaningSequenceCommand) MobileRunID() kernel.UUID {
	return c.mobileRunID
}

func (c AddCleaningSequenceCommand) Params() mobilerun.CleaningSequenceParams {
	return c.params
}
