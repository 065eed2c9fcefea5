package commands_test

import (
	"context"
	"time"

	"production/internal/core/application/usecases/commands"
	"production/internal/core/domain/events"
	"production/internal/core/domain/model/batch"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/mixorder"
	"production/internal/core/domain/model/mobilerun"
	"production/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

// Update mocks echo their argument when the expectation returns nil as the snapshot.

type MockMixOrderRepository struct{ mock.Mock }

func (m *MockMixOrderRepository) Add(ctx context.Context, o mixorder.MixOrder) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockMixOrderRepository) Update(ctx context.Context, o mixorder.MixOrder) (mixorder.MixOrder, error) {
	args := m.Called(ctx, o)
	if args.Get(0) == nil {
		return o, args.Error(1)
	}
	return args.Get(0).(mixorder.MixOrder), args.Error(1)
}

func (m *MockMixOrderRepository) Get(ctx context.Context, tenantID, id kernel.UUID) (mixorder.MixOrder, error) {
	args := m.Called(ctx, tenantID, id)
	return args.Get(0).(mixorder.MixOrder), args.Error(1)
}

func (m *MockMixOrderRepository) Delete(ctx context.Context, tenantID, id kernel.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockMixOrderRepository) List(
	_ context.Context, _ kernel.UUID, _ ports.MixOrderFilter,
) ([]mixorder.MixOrder, error) {
	return nil, nil
}

type MockBatchRepository struct{ mock.Mock }

func (m *MockBatchRepository) Add(ctx context.Context, b batch.Batch) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBatchRepository) Update(ctx context.Context, b batch.Batch) (batch.Batch, error) {
	args := m.Called(ctx, b)
	if args.Get(0) == nil {
		return b, args.Error(1)
	}
	return args.Get(0).(batch.Batch), args.Error(1)
}

func (m *MockBatchRepository) Get(ctx context.Context, tenantID, id kernel.UUID) (batch.Batch, error) {
	args := m.Called(ctx, tenantID, id)
	return args.Get(0).(batch.Batch), args.Error(1)
}

func (m *MockBatchRepository) Delete(ctx context.Context, tenantID, id kernel.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockBatchRepository) List(_ context.Context, _ kernel.UUID, _ ports.BatchFilter) ([]batch.Batch, error) {
	return nil, nil
}

func (m *MockBatchRepository) ListChildren(_ context.Context, _, _ kernel.UUID) ([]batch.Batch, error) {
	return nil, nil
}

type MockMobileRunRepository struct{ mock.Mock }

func (m *MockMobileRunRepository) Add(ctx context.Context, r mobilerun.MobileRun) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockMobileRunRepository) Update(ctx context.Context, r mobilerun.MobileRun) (mobilerun.MobileRun, error) {
	args := m.Called(ctx, r)
	if args.Get(0) == nil {
		return r, args.Error(1)
	}
	return args.Get(0).(mobilerun.MobileRun), args.Error(1)
}

func (m *MockMobileRunRepository) Get(ctx context.Context, tenantID, id kernel.UUID) (mobilerun.MobileRun, error) {
	args := m.Called(ctx, tenantID, id)
	return args.Get(0).(mobilerun.MobileRun), args.Error(1)
}

func (m *MockMobileRunRepository) Delete(ctx context.Context, tenantID, id kernel.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockMobileRunRepository) List(
	_ context.Context, _ kernel.UUID, _ ports.MobileRunFilter,
) ([]mobilerun.MobileRun, error) {
	return nil, nil
}

func (m *MockMobileRunRepository) ListActive(_ context.Context) ([]mobilerun.MobileRun, error) {
	return nil, nil
}

type MockOutbox struct{ mock.Mock }

func (m *MockOutbox) Append(ctx context.Context, evts ...events.Event) error {
	args := m.Called(ctx, evts)
	return args.Error(0)
}

func (m *MockOutbox) FetchPending(ctx context.Context, limit int) ([]events.Event, error) {
	args := m.Called(ctx, limit)
	evts, _ := args.Get(0).([]events.Event)
	return evts, args.Error(1)
}

func (m *MockOutbox) MarkPublished(ctx context.Context, ids []kernel.UUID, at time.Time) error {
	args := m.Called(ctx, ids, at)
	return args.Error(0)
}

type MockPublisher struct{ mock.Mock }

func (m *MockPublisher) Publish(ctx context.Context, event events.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// MockUoW satisfies every unit of work interface of the commands package.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) MixOrderRepository() ports.MixOrderRepository {
	args := m.Called()
	return args.Get(0).(ports.MixOrderRepository)
}

func (m *MockUoW) BatchRepository() ports.BatchRepository {
	args := m.Called()
	return args.Get(0).(ports.BatchRepository)
}

func (m *MockUoW) MobileRunRepository() ports.MobileRunRepository {
	args := m.Called()
	return args.Get(0).(ports.MobileRunRepository)
}

func (m *MockUoW) Outbox() ports.Outbox {
	args := m.Called()
	return args.Get(0).(ports.Outbox)
}

type MockMixOrderUoWFactory struct{ mock.Mock }

func (m *MockMixOrderUoWFactory) Create() commands.MixOrderUoW {
	args := m.Called()
	return args.Get(0).(commands.MixOrderUoW)
}

type MockBatchUoWFactory struct{ mock.Mock }

func (m *MockBatchUoWFactory) Create() commands.BatchUoW {
	args := m.Called()
	return args.Get(0).(commands.BatchUoW)
}

type MockMobileRunUoWFactory struct{ mock.Mock }

func (m *MockMobileRunUoWFactory) Create() commands.MobileRunUoW {
	args := m.Called()
	return args.Get(0).(commands.MobileRunUoW)
}

type MockOutboxUoWFactory struct{ mock.Mock }

func (m *MockOutboxUoWFactory) Create() commands.OutboxUoW {
	args := m.Called()
	return args.Get(0).(commands.OutboxUoW)
}

func eventsOfType(eventType events.Type) any {
	return mock.MatchedBy(func(evts []events.Event) bool {
		return len(evts) == 1 && evts[0].EventType == eventType
	})
}
