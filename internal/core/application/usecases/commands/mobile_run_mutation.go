package commands

import (
	"context"
	"time"

	"production/internal/core/domain/events"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/mobilerun"
	"production/internal/core/ports"
)

type mobileRunUpdater struct {
	uowFactory MobileRunUoWFactory
	clock      kernel.Clock
	events     events.Factory
}

func (u mobileRunUpdater) update(
	ctx context.Context,
	env Envelope,
	id kernel.UUID,
	change func(mobilerun.MobileRun) (mobilerun.MobileRun, error),
	emit func(saved mobilerun.MobileRun) ([]events.Event, error),
) (mobilerun.MobileRun, error) {
	uow := u.uowFactory.Create()
	return mutation[mobilerun.MobileRun]{env: env, id: id, change: change, emit: emit}.run(ctx, uow,
		func() aggregateRepository[mobilerun.MobileRun] { return uow.MobileRunRepository() },
		func() ports.Outbox { return uow.Outbox() },
	)
}

func (u mobileRunUpdater) at(t *time.Time) time.Time {
	if t != nil {
		return *t
	}
	return u.clock.Now()
}
