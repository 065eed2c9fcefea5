package commands

import (
	"context"

	"production/internal/core/domain/events"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/mobilerun"
)

type StartMobileRunCommandHandler struct {
	uowFactory MobileRunUoWFactory
	ids        kernel.IDGenerator
	clock      kernel.Clock
	events     events.Factory
}

func NewStartMobileRunCommandHandler(
	uowFactory MobileRunUoWFactory,
	ids kernel.IDGenerator,
	clock kernel.Clock,
	eventFactory events.Factory,
) StartMobileRunCommandHandler {
	return StartMobileRunCommandHandler{
		uowFactory: uowFactory,
		ids:        ids,
		clock:      clock,
		events:     eventFactory,
	}
}

// Handle opens a run after checking its calibration against the current time.
func (h StartMobileRunCommandHandler) Handle(ctx context.Context, command StartMobileRunCommand) (mobilerun.MobileRun, error) {
	if err := command.Validate(); err != nil {
		return mobilerun.MobileRun{}, err
	}

	run, err := mobilerun.NewMobileRun(h.ids, h.clock, command.Params())
	if err != nil {
		return mobilerun.MobileRun{}, err
	}
	event, err := h.events.MobileRunStarted(run, command.Envelope().Metadata())
	if err != nil {
		return mobilerun.MobileRun{}, err
	}

	uow := h.uowFactory.Create()
	err = inTransaction(ctx, uow, func() error {
		if err := uow.MobileRunRepository().Add(ctx, run); err != nil {
			return err
		}
		return uow.Outbox().Append(ctx, event)
	})
	if err != nil {
		return mobilerun.MobileRun{}, err
	}

	return run, nil
}
