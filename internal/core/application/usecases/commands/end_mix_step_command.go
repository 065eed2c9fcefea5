package commands

import (
	"errors"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/mixorder"
	"production/internal/pkg/errs"
	"production/internal/pkg/guard"
)

var ErrEndMixStepCommandIsNotConstructed = errors.New(
	"EndMixStepCommand must be created via NewEndMixStepCommand constructor",
)

type EndMixStepCommand struct {
	envelope   Envelope
	mixOrderID kernel.UUID
	index      int
	endedAt    *time.Time
	actuals    *mixorder.Actuals

	guard guard.ConstructorGuard
}

// NewEndMixStepCommand builds the command; a nil endedAt means the handler's current time.
func NewEndMixStepCommand(
	env Envelope,
	mixOrderID kernel.UUID,
	index int,
	endedAt *time.Time,
	actuals *mixorder.Actuals,
) (EndMixStepCommand, error) {
	var indexErr error
	if index < 0 {
		indexErr = errs.NewValueIsInvalidError("stepIndex")
	}
	if err := errors.Join(env.Validate(), mixOrderID.Validate(), indexErr); err != nil {
		return EndMixStepCommand{}, err
	}
	return EndMixStepCommand{
		envelope:   env,
		mixOrderID: mixOrderID,
		index:      index,
		endedAt:    kernel.NormalizeOptionalTime(endedAt),
		actuals:    actuals,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c EndMixStepCommand) Validate() error {
	return c.guard.Validate(ErrEndMixStepCommandIsNotConstructed)
}

func (c EndMixStepCommand) Envelope() Envelope {
	return c.envelope
}

func (c EndMixStepCommand) MixOrderID() kernel.UUID {
	return c.mixOrderID
}

func (c EndMixStepCommand) Index() int {
	return c.index
}

func (c EndMixStepCommand) EndedAt() *time.Time {
	return c.endedAt
}

func (c EndMixStepCommand) Actuals() *mixorder.Actuals {
	return c.actuals
}
