package commands

import (
	"errors"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/guard"
)

var ErrEndCleaningSequenceCommandIsNotConstructed = errors.New(
	"EndCleaningSequenceCommand must be created via NewEndCleaningSequenceCommand constructor",
)

type EndCleaningSequenceCommand struct {
	envelope    Envelope
	mobileRunID kernel.UUID
	sequenceID  kernel.UUID
	endedAt     *time.Time
	notes       string

	guard guard.ConstructorGuard
}

func NewEndCleaningSequenceCommand(
	env Envelope,
	mobileRunID, sequenceID kernel.UUID,
	endedAt *time.Time,
	notes string,
) (EndCleaningSequenceCommand, error) {
	if err := errors.Join(env.Validate(), mobileRunID.Validate(), sequenceID.Validate()); err != nil {
		return EndCleaningSequenceCommand{}, err
	}
	return EndCleaningSequenceCommand{
		envelope:    env,
		mobileRunID: mobileRunID,
		sequenceID:  sequenceID,
		endedAt:     kernel.NormalizeOptionalTime(endedAt),
		notes:       notes,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c EndCleaningSequenceCommand) Validate() error {
	return c.guard.Validate(ErrEndCleaningSequenceCommandIsNotConstructed)
}

func (c EndCleaningSequenceCommand) Envelope() Envelope {
	return c.envelope
}

func (c EndCleaningSequenceCommand) MobileRunID() kernel.UUID {
	return c.mobileRunID
}

func (c EndCleaningSequenceCommand) SequenceID() kernel.UUID {
	return c.sequenceID
}

func (c EndCleaningSequenceCommand) EndedAt() *time.Time {
	return c.endedAt
}

func (c EndCleaningSequenceCommand) Notes() string {
	return c.notes
}
