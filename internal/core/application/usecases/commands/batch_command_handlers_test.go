package commands_test

import (
	"errors"
	"testing"

	"production/internal/core/application/usecases/commands"
	"production/internal/core/domain/events"
	"production/internal/core/domain/model/batch"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/mixorder"
	"production/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateBatchCommandHandler_Handle(t *testing.T) {
	t.Run("should create batch for existing mix order", func(t *testing.T) {
		ctx := t.Context()
		env := envelope(t)
		order := mixOrderIn(t, env)
		p := batchParams(env)
		p.MixOrderID = order.ID()
		cmd, err := commands.NewCreateBatchCommand(env, p)
		require.NoError(t, err)

		orders := new(MockMixOrderRepository)
		batches := new(MockBatchRepository)
		outbox := new(MockOutbox)
		uow := new(MockUoW)
		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("MixOrderRepository").Return(orders).Once(),
			orders.On("Get", ctx, env.TenantID(), order.ID()).Return(order, nil).Once(),
			uow.On("BatchRepository").Return(batches).Once(),
			batches.On("Add", ctx, mock.AnythingOfType("batch.Batch")).Return(nil).Once(),
			uow.On("Outbox").Return(outbox).Once(),
			outbox.On("Append", ctx, eventsOfType(events.BatchCreated)).Return(nil).Once(),
			uow.On("Commit", ctx).Return(nil).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)
		factory := new(MockBatchUoWFactory)
		factory.On("Create").Return(uow).Once()

		b, err := commands.NewCreateBatchCommandHandler(factory, kernel.RandomIDGenerator{}, eventFactory()).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, batch.Quarantine, b.Status())
		assert.Equal(t, env.TenantID(), b.TenantID())
		batches.AssertExpectations(t)
		outbox.AssertExpectations(t)
		uow.AssertExpectations(t)
	})

	t.Run("should fail when mix order is missing", func(t *testing.T) {
		ctx := t.Context()
		env := envelope(t)
		p := batchParams(env)
		cmd, err := commands.NewCreateBatchCommand(env, p)
		require.NoError(t, err)

		orders := new(MockMixOrderRepository)
		uow := new(MockUoW)
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("MixOrderRepository").Return(orders).Once()
		orders.On("Get", ctx, env.TenantID(), p.MixOrderID).
			Return(mixorder.MixOrder{}, errs.NewObjectNotFoundError("mixOrder", p.MixOrderID)).Once()
		uow.On("Rollback", ctx).Return(nil).Once()
		factory := new(MockBatchUoWFactory)
		factory.On("Create").Return(uow).Once()

		_, err = commands.NewCreateBatchCommandHandler(factory, kernel.RandomIDGenerator{}, eventFactory()).Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
		uow.AssertNotCalled(t, "BatchRepository")
	})

	t.Run("should reject invalid batch number before opening a transaction", func(t *testing.T) {
		env := envelope(t)
		p := batchParams(env)
		p.BatchNumber = "lot-1"
		cmd, err := commands.NewCreateBatchCommand(env, p)
		require.NoError(t, err)
		factory := new(MockBatchUoWFactory)

		_, err = commands.NewCreateBatchCommandHandler(factory, kernel.RandomIDGenerator{}, eventFactory()).Handle(t.Context(), cmd)

		require.ErrorIs(t, err, batch.ErrInvalidBatchNumberFormat)
		factory.AssertNotCalled(t, "Create")
	})
}

// expectBatchUpdate wires a transaction that loads current and stores the result.
// When eventType is set the handler is expected to append exactly that event.
func expectBatchUpdate(
	t *testing.T,
	env commands.Envelope,
	current batch.Batch,
	eventType events.Type,
) (*MockBatchUoWFactory, *MockUoW) {
	t.Helper()
	ctx := t.Context()
	repo := new(MockBatchRepository)
	uow := new(MockUoW)
	calls := []*mock.Call{
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("BatchRepository").Return(repo).Once(),
		repo.On("Get", ctx, env.TenantID(), current.ID()).Return(current, nil).Once(),
		repo.On("Update", ctx, mock.AnythingOfType("batch.Batch")).Return(nil, nil).Once(),
	}
	if eventType != "" {
		outbox := new(MockOutbox)
		calls = append(calls,
			uow.On("Outbox").Return(outbox).Once(),
			outbox.On("Append", ctx, eventsOfType(eventType)).Return(nil).Once(),
		)
	}
	calls = append(calls,
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	mock.InOrder(calls...)

	factory := new(MockBatchUoWFactory)
	factory.On("Create").Return(uow).Once()
	return factory, uow
}

func TestChangeBatchStatusCommandHandler_Handle(t *testing.T) {
	t.Run("should release completed batch", func(t *testing.T) {
		env := envelope(t)
		b := batchIn(t, env, true)
		cmd, err := commands.NewChangeBatchStatusCommand(env, b.ID(), commands.ReleaseBatch, "")
		require.NoError(t, err)
		factory, uow := expectBatchUpdate(t, env, b, events.BatchReleased)

		released, err := commands.NewChangeBatchStatusCommandHandler(factory, eventFactory()).Handle(t.Context(), cmd)

		require.NoError(t, err)
		assert.Equal(t, batch.Released, released.Status())
		uow.AssertExpectations(t)
	})

	t.Run("should reject with reason label", func(t *testing.T) {
		env := envelope(t)
		b := batchIn(t, env, false)
		cmd, err := commands.NewChangeBatchStatusCommand(env, b.ID(), commands.RejectBatch, "salmonella positive")
		require.NoError(t, err)
		factory, uow := expectBatchUpdate(t, env, b, events.BatchRejected)

		rejected, err := commands.NewChangeBatchStatusCommandHandler(factory, eventFactory()).Handle(t.Context(), cmd)

		require.NoError(t, err)
		assert.Equal(t, batch.Rejected, rejected.Status())
		assert.True(t, rejected.HasLabel("REJECTED: salmonella positive"))
		uow.AssertExpectations(t)
	})

	t.Run("should refuse release of unfinished batch", func(t *testing.T) {
		ctx := t.Context()
		env := envelope(t)
		b := batchIn(t, env, false)
		cmd, err := commands.NewChangeBatchStatusCommand(env, b.ID(), commands.ReleaseBatch, "")
		require.NoError(t, err)

		repo := new(MockBatchRepository)
		uow := new(MockUoW)
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("BatchRepository").Return(repo).Once()
		repo.On("Get", ctx, env.TenantID(), b.ID()).Return(b, nil).Once()
		uow.On("Rollback", ctx).Return(nil).Once()
		factory := new(MockBatchUoWFactory)
		factory.On("Create").Return(uow).Once()

		_, err = commands.NewChangeBatchStatusCommandHandler(factory, eventFactory()).Handle(ctx, cmd)

		require.ErrorIs(t, err, batch.ErrCannotRelease)
		uow.AssertExpectations(t)
	})
}

func TestCompleteBatchCommandHandler_Handle(t *testing.T) {
	env := envelope(t)
	b := batchIn(t, env, false)
	cmd, err := commands.NewCompleteBatchCommand(env, b.ID(), nil)
	require.NoError(t, err)
	factory, uow := expectBatchUpdate(t, env, b, "")

	completed, err := commands.NewCompleteBatchCommandHandler(factory, clock).Handle(t.Context(), cmd)

	require.NoError(t, err)
	require.NotNil(t, completed.EndAt())
	assert.Equal(t, now, *completed.EndAt())
	uow.AssertExpectations(t)
}

func TestAddBatchInputCommandHandler_Handle(t *testing.T) {
	env := envelope(t)
	b := batchIn(t, env, false)
	in, err := batch.NewInput(kernel.NewUUID(), 40, 41.5)
	require.NoError(t, err)
	cmd, err := commands.NewAddBatchInputCommand(env, b.ID(), in)
	require.NoError(t, err)
	factory, uow := expectBatchUpdate(t, env, b, "")

	updated, err := commands.NewAddBatchInputCommandHandler(factory).Handle(t.Context(), cmd)

	require.NoError(t, err)
	assert.InDelta(t, 141.5, updated.TotalInputKg(), 1e-9)
	uow.AssertExpectations(t)
}

func TestAddBatchOutputCommandHandler_Handle(t *testing.T) {
	t.Run("should add lot with generated id", func(t *testing.T) {
		env := envelope(t)
		b := batchIn(t, env, false)
		lotID := kernel.NewUUID()
		cmd, err := commands.NewAddBatchOutputCommand(env, b.ID(), commands.OutputLotParams{
			LotNumber:   "LOT-7",
			QtyKg:       104,
			Packing:     batch.Packing{Form: batch.Bag, Size: ptr(25.0), Unit: "kg"},
			Destination: batch.Inventory,
		})
		require.NoError(t, err)
		factory, uow := expectBatchUpdate(t, env, b, "")

		updated, err := commands.NewAddBatchOutputCommandHandler(factory, kernel.NewSequenceIDGenerator(lotID)).
			Handle(t.Context(), cmd)

		require.NoError(t, err)
		require.Len(t, updated.Outputs(), 1)
		assert.Equal(t, lotID, updated.Outputs()[0].ID())
		uow.AssertExpectations(t)
	})

	t.Run("should enforce mass balance", func(t *testing.T) {
		ctx := t.Context()
		env := envelope(t)
		b := batchIn(t, env, false)
		cmd, err := commands.NewAddBatchOutputCommand(env, b.ID(), commands.OutputLotParams{
			LotNumber:   "LOT-8",
			QtyKg:       106,
			Packing:     batch.Packing{Form: batch.Bulk},
			Destination: batch.DirectFarm,
		})
		require.NoError(t, err)

		repo := new(MockBatchRepository)
		uow := new(MockUoW)
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("BatchRepository").Return(repo).Once()
		repo.On("Get", ctx, env.TenantID(), b.ID()).Return(b, nil).Once()
		uow.On("Rollback", ctx).Return(nil).Once()
		factory := new(MockBatchUoWFactory)
		factory.On("Create").Return(uow).Once()

		_, err = commands.NewAddBatchOutputCommandHandler(factory, kernel.RandomIDGenerator{}).Handle(ctx, cmd)

		require.ErrorIs(t, err, batch.ErrMassBalanceViolation)
		uow.AssertNotCalled(t, "Commit", ctx)
	})
}

func TestChangeBatchLabelCommandHandler_Handle(t *testing.T) {
	env := envelope(t)
	b := batchIn(t, env, false)
	b, err := b.AddLabel("REWORK")
	require.NoError(t, err)

	cmd, err := commands.NewChangeBatchLabelCommand(env, b.ID(), "REWORK", true)
	require.NoError(t, err)
	factory, uow := expectBatchUpdate(t, env, b, "")

	updated, err := commands.NewChangeBatchLabelCommandHandler(factory).Handle(t.Context(), cmd)

	require.NoError(t, err)
	assert.False(t, updated.HasLabel("REWORK"))
	uow.AssertExpectations(t)

	_, err = commands.NewChangeBatchLabelCommand(env, b.ID(), "  ", false)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestAddParentBatchCommandHandler_Handle(t *testing.T) {
	t.Run("should link existing parent", func(t *testing.T) {
		ctx := t.Context()
		env := envelope(t)
		child := batchIn(t, env, false)
		parent := batchIn(t, env, true)
		cmd, err := commands.NewAddParentBatchCommand(env, child.ID(), parent.ID())
		require.NoError(t, err)

		repo := new(MockBatchRepository)
		uow := new(MockUoW)
		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("BatchRepository").Return(repo).Once(),
			repo.On("Get", ctx, env.TenantID(), child.ID()).Return(child, nil).Once(),
			repo.On("Get", ctx, env.TenantID(), parent.ID()).Return(parent, nil).Once(),
			repo.On("Update", ctx, mock.AnythingOfType("batch.Batch")).Return(nil, nil).Once(),
			uow.On("Commit", ctx).Return(nil).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)
		factory := new(MockBatchUoWFactory)
		factory.On("Create").Return(uow).Once()

		updated, err := commands.NewAddParentBatchCommandHandler(factory).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, []kernel.UUID{parent.ID()}, updated.ParentBatches())
		assert.True(t, updated.IsRework())
		uow.AssertExpectations(t)
	})

	t.Run("should fail for unknown parent", func(t *testing.T) {
		ctx := t.Context()
		env := envelope(t)
		child := batchIn(t, env, false)
		parentID := kernel.NewUUID()
		cmd, err := commands.NewAddParentBatchCommand(env, child.ID(), parentID)
		require.NoError(t, err)

		repo := new(MockBatchRepository)
		uow := new(MockUoW)
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("BatchRepository").Return(repo).Once()
		repo.On("Get", ctx, env.TenantID(), child.ID()).Return(child, nil).Once()
		repo.On("Get", ctx, env.TenantID(), parentID).
			Return(batch.Batch{}, errs.NewObjectNotFoundError("batch", parentID)).Once()
		uow.On("Rollback", ctx).Return(nil).Once()
		factory := new(MockBatchUoWFactory)
		factory.On("Create").Return(uow).Once()

		_, err = commands.NewAddParentBatchCommandHandler(factory).Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("should reject self link", func(t *testing.T) {
		ctx := t.Context()
		env := envelope(t)
		child := batchIn(t, env, false)
		cmd, err := commands.NewAddParentBatchCommand(env, child.ID(), child.ID())
		require.NoError(t, err)

		repo := new(MockBatchRepository)
		uow := new(MockUoW)
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("BatchRepository").Return(repo).Once()
		repo.On("Get", ctx, env.TenantID(), child.ID()).Return(child, nil).Once()
		uow.On("Rollback", ctx).Return(nil).Once()
		factory := new(MockBatchUoWFactory)
		factory.On("Create").Return(uow).Once()

		_, err = commands.NewAddParentBatchCommandHandler(factory).Handle(ctx, cmd)

		require.ErrorIs(t, err, batch.ErrSelfParent)
		assert.False(t, errors.Is(err, errs.ErrObjectNotFound))
	})
}
