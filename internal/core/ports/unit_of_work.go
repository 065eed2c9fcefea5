package ports

import (
	"context"
)

// UnitOfWorkFactory hands out a fresh UnitOfWork per command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork spans one transaction. Aggregates saved through its
// repositories and events appended to its outbox become visible together on
// Commit. Outside Begin/Commit the repositories read from the pool.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	// Commit fails when no transaction is open.
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	MixOrderRepository() MixOrderRepository
	BatchRepository() BatchRepository
	MobileRunRepository() MobileRunRepository
	Outbox() Outbox
}
