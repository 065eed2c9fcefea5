// Package postgres provides the GORM-based Unit of Work that binds the mix
// order, batch and mobile run repositories and the event outbox to a single
// database transaction.
//
// Usage:
//
//	factory := NewGormUnitOfWorkFactory(db)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer uow.Rollback(ctx)
//
//	if err := uow.BatchRepository().Add(ctx, b); err != nil {
//	    return err
//	}
//	if err := uow.Outbox().Append(ctx, created); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Rollback after a successful Commit returns gorm.ErrInvalidTransaction,
// which deferred calls ignore.
package postgres

import (
	"context"

	"production/internal/adapters/out/postgres/batchrepo"
	"production/internal/adapters/out/postgres/mixorderrepo"
	"production/internal/adapters/out/postgres/mobilerunrepo"
	"production/internal/adapters/out/postgres/outboxrepo"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/ports"

	"gorm.io/gorm"
)

// TrackedAggregate is an aggregate added or updated during the unit of work.
type TrackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// CommitHook observes the aggregates written by a committed unit of work.
// It runs after the transaction is closed and cannot fail the commit.
type CommitHook func(ctx context.Context, tracked []TrackedAggregate)

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one connection pool.
type GormUnitOfWorkFactory struct {
	db    *gorm.DB
	hooks []CommitHook
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work instances.
//
// Example:
//
//	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
//	if err != nil {
//	    log.Fatal("failed to connect database")
//	}
//	factory := NewGormUnitOfWorkFactory(db, observeWrites)
func NewGormUnitOfWorkFactory(db *gorm.DB, hooks ...CommitHook) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db, hooks: hooks}
}

// Create produces a fresh unit of work with its own transaction state.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		hooks:             f.hooks,
		trackedAggregates: make([]TrackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one database transaction and remembers every
// aggregate its repositories wrote, so commit hooks can observe them.
// Instances are not safe for concurrent use.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	hooks             []CommitHook
	trackedAggregates []TrackedAggregate
}

// Begin opens a transaction. Calling it again while one is open is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit finalizes the transaction and then runs the commit hooks.
//
// Returns gorm.ErrInvalidTransaction if no transaction is active.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	if err != nil {
		uow.trackedAggregates = uow.trackedAggregates[:0]
		return err
	}

	tracked := uow.TrackedAggregates()
	uow.trackedAggregates = uow.trackedAggregates[:0]
	for _, hook := range uow.hooks {
		hook(ctx, tracked)
	}
	return nil
}

// Rollback discards the transaction and everything tracked in it.
//
// Returns gorm.ErrInvalidTransaction if no transaction is active.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

// MixOrderRepository returns a repository bound to the current transaction,
// or to the pool when none is active.
func (uow *GormUnitOfWork) MixOrderRepository() ports.MixOrderRepository {
	return mixorderrepo.NewGormMixOrderRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) BatchRepository() ports.BatchRepository {
	return batchrepo.NewGormBatchRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) MobileRunRepository() ports.MobileRunRepository {
	return mobilerunrepo.NewGormMobileRunRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) Outbox() ports.Outbox {
	return outboxrepo.NewGormOutbox(uow.conn())
}

// TrackAggregate registers an aggregate written within this unit of work.
// Repositories call it after a successful Add or Update.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, TrackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

// TrackedAggregates returns a copy of the aggregates tracked in the open transaction.
func (uow *GormUnitOfWork) TrackedAggregates() []TrackedAggregate {
	return append([]TrackedAggregate(nil), uow.trackedAggregates...)
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
