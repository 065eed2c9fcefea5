package commands

import (
	"errors"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/mixorder"
	"production/internal/pkg/guard"
)

var ErrAddMixStepCommandIsNotConstructed = errors.New(
	"AddMixStepCommand must be created via NewAddMixStepCommand constructor",
)

type AddMixStepCommand struct {
	envelope   Envelope
	mixOrderID kernel.UUID
	step       mixorder.Step

	guard guard.ConstructorGuard
}

func NewAddMixStepCommand(env Envelope, mixOrderID kernel.UUID, step mixorder.Step) (AddMixStepCommand, error) {
	if err := errors.Join(env.Validate(), mixOrderID.Validate(), step.Validate()); err != nil {
		return AddMixStepCommand{}, err
	}
	return AddMixStepCommand{
		envelope:   env,
		mixOrderID: mixOrderID,
		step:       step,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c AddMixStepCommand) Validate() error {
	return c.guard.Validate(ErrAddMixStepCommandIsNotConstructed)
}

func (c AddMixStepCommand) Envelope() Envelope {
	return c.envelope
}

func (c AddMixStepCommand) MixOrderID() kernel.UUID {
	return c.mixOrderID
}

func (c AddMixStepCommand) Step() mixorder.Step {
	return c.step
}
