package commands

import (
	"errors"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/mobilerun"
	"production/internal/pkg/guard"
)

var ErrUpdateCalibrationCheckCommandIsNotConstructed = errors.New(
	"UpdateCalibrationCheckCommand must be created via NewUpdateCalibrationCheckCommand constructor",
)

type UpdateCalibrationCheckCommand struct {
	envelope    Envelope
	mobileRunID kernel.UUID
	check       mobilerun.CalibrationCheck

	guard guard.ConstructorGuard
}

func NewUpdateCalibrationCheckCommand(
	env Envelope,
	mobileRunID kernel.UUID,
	check mobilerun.CalibrationCheck,
) (UpdateCalibrationCheckCommand, error) {
	if err := errors.Join(env.Validate(), mobileRunID.Validate()); err != nil {
		return UpdateCalibrationCheckCommand{}, err
	}
	return UpdateCalibrationCheckCommand{
		envelope:    env,
		mobileRunID: mobileRunID,
		check:       check,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateCalibrationCheckCommand) Validate() error {
	return c.guard.Validate(ErrUpdateCalibrationCheckCommandIsNotConstructed)
}

func (c UpdateCalibrationCheckCommand) Envelope() Envelope {
	return c.envelope
}

func (c UpdateCalibrationCheckCommand) MobileRunID() kernel.UUID {
	return c.mobileRunID
}

func (c UpdateCalibrationCheckCommand) Check() mobilerun.CalibrationCheck {
	return c.check
}
