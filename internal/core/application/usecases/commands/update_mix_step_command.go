package commands

import (
	"errors"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/mixorder"
	"production/internal/pkg/errs"
	"production/internal/pkg/guard"
)

var ErrUpdateMixStepCommandIsNotConstructed = errors.New(
	"UpdateMixStepCommand must be created via NewUpdateMixStepCommand constructor",
)

type UpdateMixStepCommand struct {
	envelope   Envelope
	mixOrderID kernel.UUID
	index      int
	patch      mixorder.StepPatch

	guard guard.ConstructorGuard
}

func NewUpdateMixStepCommand(
	env Envelope,
	mixOrderID kernel.UUID,
	index int,
	patch mixorder.StepPatch,
) (UpdateMixStepCommand, error) {
	var indexErr error
	if index < 0 {
		indexErr = errs.NewValueIsInvalidError("stepIndex")
	}
	if err := errors.Join(env.Validate(), mixOrderID.Validate(), indexErr); err != nil {
		return UpdateMixStepCommand{}, err
	}
	return UpdateMixStepCommand{
		envelope:   env,
		mixOrderID: mixOrderID,
		index:      index,
		patch:      patch,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateMixStepCommand) Validate() error {
	return c.guard.Validate(ErrUpdateMixStepCommandIsNotConstructed)
}

func (c UpdateMixStepCommand) Envelope() Envelope {
	return c.envelope
}

func (c UpdateMixStepCommand) MixOrderID() kernel.UUID {
	return c.mixOrderID
}

func (c UpdateMixStepCommand) Index() int {
	return c.index
}

func (c UpdateMixStepCommand) Patch() mixorder.StepPatch {
	return c.patch
}
