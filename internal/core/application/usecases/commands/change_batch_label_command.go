package commands

import (
	"errors"
	"strings"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"
	"production/internal/pkg/guard"
)

var ErrChangeBatchLabelCommandIsNotConstructed = errors.New(
	"ChangeBatchLabelCommand must be created via NewChangeBatchLabelCommand constructor",
)

// ChangeBatchLabelCommand adds a label, or removes it when remove is set.
type ChangeBatchLabelCommand struct {
	envelope Envelope
	batchID  kernel.UUID
	label    string
	remove   bool

	guard guard.ConstructorGuard
}

func NewChangeBatchLabelCommand(env Envelope, batchID kernel.UUID, label string, remove bool) (ChangeBatchLabelCommand, error) {
	label = strings.TrimSpace(label)
	var labelErr error
	if label == "" {
		labelErr = errs.NewValueIsRequiredError("label")
	}
	if err := errors.Join(env.Validate(), batchID.Validate(), labelErr); err != nil {
		return ChangeBatchLabelCommand{}, err
	}
	return ChangeBatchLabelCommand{
		envelope: env,
		batchID:  batchID,
		label:    label,
		remove:   remove,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c ChangeBatchLabelCommand) Validate() error {
	return c.guard.Validate(ErrChangeBatchLabelCommandIsNotConstructed)
}

func (c ChangeBatchLabelCommand) Envelope() Envelope {
	return c.envelope
}

func (c ChangeBatchLabelCommand) BatchID() kernel.UUID {
	return c.batchID
}

func (c ChangeBatchLabelCommand) Label() string {
	return c.label
}

func (c ChangeBatchLabelCommand) Remove() bool {
	return c.remove
}
