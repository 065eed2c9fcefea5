package commands

import (
	"errors"
	"fmt"
	"strings"

	"production/internal/core/domain/events"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/mixorder"
	"production/internal/pkg/errs"
	"production/internal/pkg/guard"
)

var ErrChangeMixOrderStatusCommandIsNotConstructed = errors.New(
	"ChangeMixOrderStatusCommand must be created via NewChangeMixOrderStatusCommand constructor",
)

// MixOrderAction is a lifecycle operation requested on a mix order.
type MixOrderAction string

const (
	StageMixOrder    MixOrderAction = "stage"
	StartMixOrder    MixOrderAction = "start"
	HoldMixOrder     MixOrderAction = "hold"
	ResumeMixOrder   MixOrderAction = "resume"
	CompleteMixOrder MixOrderAction = "complete"
	AbortMixOrder    MixOrderAction = "abort"
)

func ParseMixOrderAction(s string) (MixOrderAction, error) {
	a := MixOrderAction(strings.ToLower(strings.TrimSpace(s)))
	if err := a.Validate(); err != nil {
		return "", err
	}
	return a, nil
}

func (a MixOrderAction) Validate() error {
	switch a {
	case StageMixOrder, StartMixOrder, HoldMixOrder, ResumeMixOrder, CompleteMixOrder, AbortMixOrder:
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("action", fmt.Errorf("%q is not a mix order action", string(a)))
}

func (a MixOrderAction) apply(o mixorder.MixOrder, reason string) (mixorder.MixOrder, error) {
	switch a {
	case StageMixOrder:
		return o.Stage()
	case StartMixOrder:
		return o.Start()
	case HoldMixOrder:
		return o.Hold(reason)
	case ResumeMixOrder:
		return o.Resume()
	case CompleteMixOrder:
		return o.Complete()
	case AbortMixOrder:
		return o.Abort(reason)
	}
	return mixorder.MixOrder{}, a.Validate()
}

// eventType is empty for hold and resume, which publish nothing.
func (a MixOrderAction) eventType() events.Type {
	switch a {
	case StageMixOrder:
		return events.MixOrderStaged
	case StartMixOrder:
		return events.MixOrderStarted
	case CompleteMixOrder:
		return events.MixOrderCompleted
	case AbortMixOrder:
		return events.MixOrderAborted
	}
	return ""
}

type ChangeMixOrderStatusCommand struct {
	envelope   Envelope
	mixOrderID kernel.UUID
	action     MixOrderAction
	reason     string

	guard guard.ConstructorGuard
}

func NewChangeMixOrderStatusCommand(
	env Envelope,
	mixOrderID kernel.UUID,
	action MixOrderAction,
	reason string,
) (ChangeMixOrderStatusCommand, error) {
	if err := errors.Join(env.Validate(), mixOrderID.Validate(), action.Validate()); err != nil {
		return ChangeMixOrderStatusCommand{}, err
	}
	return ChangeMixOrderStatusCommand{
		envelope:   env,
		mixOrderID: mixOrderID,
		action:     action,
		reason:     strings.TrimSpace(reason),
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c ChangeMixOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeMixOrderStatusCommandIsNotConstructed)
}

func (c ChangeMixOrderStatusCommand) Envelope() Envelope {
	return c.envelope
}

func (c ChangeMixOrderStatusCommand) MixOrderID() kernel.UUID {
	return c.mixOrderID
}

func (c ChangeMixOrderStatusCommand) Action() MixOrderAction {
	return c.action
}

func (c ChangeMixOrderStatusCommand) Reason() string {
	return c.reason
}
