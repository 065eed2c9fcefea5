package commands

import (
	"context"

	"production/internal/core/domain/events"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/mobilerun"
	"production/internal/pkg/errs"
)

type FinishMobileRunCommandHandler struct {
	updater mobileRunUpdater
}

func NewFinishMobileRunCommandHandler(
	uowFactory MobileRunUoWFactory,
	clock kernel.Clock,
	eventFactory events.Factory,
) FinishMobileRunCommandHandler {
	return FinishMobileRunCommandHandler{
		updater: mobileRunUpdater{uowFactory: uowFactory, clock: clock, events: eventFactory},
	}
}

func (h FinishMobileRunCommandHandler) Handle(ctx context.Context, command FinishMobileRunCommand) (mobilerun.MobileRun, error) {
	if err := command.Validate(); err != nil {
		return mobilerun.MobileRun{}, err
	}
	env := command.Envelope()
	endAt := h.updater.at(command.EndAt())
	return h.updater.update(ctx, env, command.MobileRunID(),
		func(r mobilerun.MobileRun) (mobilerun.MobileRun, error) {
			return r.Finish(endAt)
		},
		func(saved mobilerun.MobileRun) ([]events.Event, error) {
			return single(h.updater.events.MobileRunFinished(saved, env.Metadata()))
		},
	)
}

type UpdateCalibrationCheckCommandHandler struct {
	updater mobileRunUpdater
}

func NewUpdateCalibrationCheckCommandHandler(
	uowFactory MobileRunUoWFactory,
	clock kernel.Clock,
	eventFactory events.Factory,
) UpdateCalibrationCheckCommandHandler {
	return UpdateCalibrationCheckCommandHandler{
		updater: mobileRunUpdater{uowFactory: uowFactory, clock: clock, events: eventFactory},
	}
}

func (h UpdateCalibrationCheckCommandHandler) Handle(
	ctx context.Context,
	command UpdateCalibrationCheckCommand,
) (mobilerun.MobileRun, error) {
	if err := command.Validate(); err != nil {
		return mobilerun.MobileRun{}, err
	}
	env := command.Envelope()
	now := h.updater.clock.Now()
	return h.updater.update(ctx, env, command.MobileRunID(),
		func(r mobilerun.MobileRun) (mobilerun.MobileRun, error) {
			return r.UpdateCalibrationCheck(command.Check(), now)
		},
		func(saved mobilerun.MobileRun) ([]events.Event, error) {
			return single(h.updater.events.CalibrationChecked(saved, env.Metadata()))
		},
	)
}

type AddCleaningSequenceCommandHandler struct {
	updater mobileRunUpdater
	ids     kernel.IDGenerator
}

func NewAddCleaningSequenceCommandHandler(
	uowFactory MobileRunUoWFactory,
	ids kernel.IDGenerator,
	clock kernel.Clock,
	eventFactory events.Factory,
) AddCleaningSequenceCommandHandler {
	return AddCleaningSequenceCommandHandler{
		updater: mobileRunUpdater{uowFactory: uowFactory, clock: clock, events: eventFactory},
		ids:     ids,
	}
}

// Handle appends the sequence. A sequence recorded already ended publishes its
// cleaning event immediately; an open one publishes when it is ended.
func (h AddCleaningSequenceCommandHandler) Handle(
	ctx context.Context,
	command AddCleaningSequenceCommand,
) (mobilerun.MobileRun, error) {
	if err := command.Validate(); err != nil {
		return mobilerun.MobileRun{}, err
	}

	p := command.Params()
	p.ID = h.ids.NewID()
	if p.StartedAt.IsZero() {
		p.StartedAt = h.updater.clock.Now()
	}
	seq, err := mobilerun.NewCleaningSequence(p)
	if err != nil {
		return mobilerun.MobileRun{}, err
	}

	env := command.Envelope()
	return h.updater.update(ctx, env, command.MobileRunID(),
		func(r mobilerun.MobileRun) (mobilerun.MobileRun, error) {
			return r.AddCleaningSequence(seq)
		},
		func(saved mobilerun.MobileRun) ([]events.Event, error) {
			if seq.IsActive() {
				return nil, nil
			}
			return single(h.updater.events.CleaningPerformed(saved, seq, env.Metadata()))
		},
	)
}

type EndCleaningSequenceCommandHandler struct {
	updater mobileRunUpdater
}

func NewEndCleaningSequenceCommandHandler(
	uowFactory MobileRunUoWFactory,
	clock kernel.Clock,
	eventFactory events.Factory,
) EndCleaningSequenceCommandHandler {
	return EndCleaningSequenceCommandHandler{
		updater: mobileRunUpdater{uowFactory: uowFactory, clock: clock, events: eventFactory},
	}
}

func (h EndCleaningSequenceCommandHandler) Handle(
	ctx context.Context,
	command EndCleaningSequenceCommand,
) (mobilerun.MobileRun, error) {
	if err := command.Validate(); err != nil {
		return mobilerun.MobileRun{}, err
	}
	env := command.Envelope()
	endedAt := h.updater.at(command.EndedAt())
	return h.updater.update(ctx, env, command.MobileRunID(),
		func(r mobilerun.MobileRun) (mobilerun.MobileRun, error) {
			return r.EndCleaningSequence(command.SequenceID(), endedAt, command.Notes())
		},
		func(saved mobilerun.MobileRun) ([]events.Event, error) {
			for _, seq := range saved.CleaningSequences() {
				if seq.ID().IsEqual(command.SequenceID()) {
					return single(h.updater.events.CleaningPerformed(saved, seq, env.Metadata()))
				}
			}
			return nil, errs.NewObjectNotFoundError("cleaningSequence", command.SequenceID())
		},
	)
}
