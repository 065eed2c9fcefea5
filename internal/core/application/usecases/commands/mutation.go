package commands

import (
	"context"

	"production/internal/core/domain/events"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/ports"
)

type aggregateRepository[T any] interface {
	Get(ctx context.Context, tenantID, id kernel.UUID) (T, error)
	Update(ctx context.Context, aggregate T) (T, error)
}

// mutation loads an aggregate, applies a pure change, stores the result with
// optimistic concurrency and appends the resulting events to the outbox, all
// in one transaction.
type mutation[T any] struct {
	env    Envelope
	id     kernel.UUID
	change func(current T) (T, error)
	emit   func(saved T) ([]events.Event, error)
}

func (m mutation[T]) run(
	ctx context.Context,
	tx TxManager,
	repository func() aggregateRepository[T],
	outbox func() ports.Outbox,
) (T, error) {
	var saved T
	err := inTransaction(ctx, tx, func() error {
		repo := repository()

		current, err := repo.Get(ctx, m.env.TenantID(), m.id)
		if err != nil {
			return err
		}
		next, err := m.change(current)
		if err != nil {
			return err
		}
		if saved, err = repo.Update(ctx, next); err != nil {
			return err
		}

		if m.emit == nil {
			return nil
		}
		evts, err := m.emit(saved)
		if err != nil {
			return err
		}
		if len(evts) == 0 {
			return nil
		}
		return outbox().Append(ctx, evts...)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return saved, nil
}

func single(event events.Event, err error) ([]events.Event, error) {
	if err != nil {
		return nil, err
	}
	return []events.Event{event}, nil
}
