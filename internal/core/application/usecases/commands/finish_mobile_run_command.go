package commands

import (
	"errors"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/guard"
)

var ErrFinishMobileRunCommandIsNotConstructed = errors.New(
	"FinishMobileRunCommand must be created via NewFinishMobileRunCommand constructor",
)

type FinishMobileRunCommand struct {
	envelope    Envelope
	mobileRunID kernel.UUID
	endAt       *time.Time

	guard guard.ConstructorGuard
}

func NewFinishMobileRunCommand(env Envelope, mobileRunID kernel.UUID, endAt *time.Time) (FinishMobileRunCommand, error) {
	if err := errors.Join(env.Validate(), mobileRunID.Validate()); err != nil {
		return FinishMobileRunCommand{}, err
	}
	return FinishMobileRunCommand{
		envelope:    env,
		mobileRunID: mobileRunID,
		endAt:       kernel.NormalizeOptionalTime(endAt),
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c FinishMobileRunCommand) Validate() error {
	return c.guard.Validate(ErrFinishMobileRunCommandIsNotConstructed)
}

func (c FinishMobileRunCommand) Envelope() Envelope {
	return c.envelope
}

func (c FinishMobileRunCommand) MobileRunID() kernel.UUID {
	return c.mobileRunID
}

// EndAt is nil when the run ends at the handler's current time.
func (c FinishMobileRunCommand) EndAt() *time.Time {
	return c.endAt
}
