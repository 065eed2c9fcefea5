package commands

import (
	"context"

	"production/internal/core/ports"
)

type (
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	MixOrderRepoFactory interface {
		MixOrderRepository() ports.MixOrderRepository
	}

	BatchRepoFactory interface {
		BatchRepository() ports.BatchRepository
	}

	MobileRunRepoFactory interface {
		MobileRunRepository() ports.MobileRunRepository
	}

	OutboxFactory interface {
		Outbox() ports.Outbox
	}

	MixOrderUoW interface {
		TxManager
		MixOrderRepoFactory
		OutboxFactory
	}

	MixOrderUoWFactory interface {
		Create() MixOrderUoW
	}

	// BatchUoW also reads mix orders to check the originating order of a new batch.
	BatchUoW interface {
		TxManager
		BatchRepoFactory
		MixOrderRepoFactory
		OutboxFactory
	}

	BatchUoWFactory interface {
		Create() BatchUoW
	}

	MobileRunUoW interface {
		TxManager
		MobileRunRepoFactory
		OutboxFactory
	}

	MobileRunUoWFactory interface {
		Create() MobileRunUoW
	}

	OutboxUoW interface {
		TxManager
		OutboxFactory
	}

	OutboxUoWFactory interface {
		Create() OutboxUoW
	}
)

// inTransaction runs fn between Begin and Commit. Rollback is always attempted
// afterwards; after a successful commit it is a no-op.
func inTransaction(ctx context.Context, tx TxManager, fn func() error) error {
	if err := tx.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if err := fn(); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
