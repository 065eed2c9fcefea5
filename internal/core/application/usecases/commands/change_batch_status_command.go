package commands

import (
	"errors"
	"fmt"
	"strings"

	"production/internal/core/domain/model/batch"
	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"
	"production/internal/pkg/guard"
)

var ErrChangeBatchStatusCommandIsNotConstructed = errors.New(
	"ChangeBatchStatusCommand must be created via NewChangeBatchStatusCommand constructor",
)

// BatchAction is a quality decision on a batch.
type BatchAction string

const (
	ReleaseBatch    BatchAction = "release"
	RejectBatch     BatchAction = "reject"
	QuarantineBatch BatchAction = "quarantine"
)

func ParseBatchAction(s string) (BatchAction, error) {
	a := BatchAction(strings.ToLower(strings.TrimSpace(s)))
	if err := a.Validate(); err != nil {
		return "", err
	}
	return a, nil
}

func (a BatchAction) Validate() error {
	switch a {
	case ReleaseBatch, RejectBatch, QuarantineBatch:
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("action", fmt.Errorf("%q is not a batch action", string(a)))
}

func (a BatchAction) apply(b batch.Batch, reason string) (batch.Batch, error) {
	switch a {
	case ReleaseBatch:
		return b.Release()
	case RejectBatch:
		return b.Reject(reason)
	case QuarantineBatch:
		return b.Quarantine(reason)
	}
	return batch.Batch{}, a.Validate()
}

type ChangeBatchStatusCommand struct {
	envelope Envelope
	batchID  kernel.UUID
	action   BatchAction
	reason   string

	guard guard.ConstructorGuard
}

func NewChangeBatchStatusCommand(
	env Envelope,
	batchID kernel.UUID,
	action BatchAction,
	reason string,
) (ChangeBatchStatusCommand, error) {
	if err := errors.Join(env.Validate(), batchID.Validate(), action.Validate()); err != nil {
		return ChangeBatchStatusCommand{}, err
	}
	return ChangeBatchStatusCommand{
		envelope: env,
		batchID:  batchID,
		action:   action,
		reason:   strings.TrimSpace(reason),
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c ChangeBatchStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeBatchStatusCommandIsNotConstructed)
}

func (c ChangeBatchStatusCommand) Envelope() Envelope {
	return c.envelope
}

func (c ChangeBatchStatusCommand) BatchID() kernel.UUID {
	return c.batchID
}

func (c ChangeBatchStatusCommand) Action() BatchAction {
	return c.action
}

func (c ChangeBatchStatusCommand) Reason() string {
	return c.reason
}
