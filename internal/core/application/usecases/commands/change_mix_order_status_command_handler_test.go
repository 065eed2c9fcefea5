package commands_test

import (
	"testing"

	"production/internal/core/application/usecases/commands"
	"production/internal/core/domain/events"
	"production/internal/core/domain/model/mixorder"
	"production/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestChangeMixOrderStatusCommandHandler_Handle(t *testing.T) {
	t.Run("should start staged order and publish event", func(t *testing.T) {
		ctx := t.Context()
		env := envelope(t)
		staged := mixOrderIn(t, env, mixorder.MixOrder.Stage)
		cmd, err := commands.NewChangeMixOrderStatusCommand(env, staged.ID(), commands.StartMixOrder, "")
		require.NoError(t, err)

		repo := new(MockMixOrderRepository)
		outbox := new(MockOutbox)
		uow := new(MockUoW)
		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("MixOrderRepository").Return(repo).Once(),
			repo.On("Get", ctx, env.TenantID(), staged.ID()).Return(staged, nil).Once(),
			repo.On("Update", ctx, mock.MatchedBy(func(o mixorder.MixOrder) bool {
				return o.Status() == mixorder.Running
			})).Return(nil, nil).Once(),
			uow.On("Outbox").Return(outbox).Once(),
			outbox.On("Append", ctx, eventsOfType(events.MixOrderStarted)).Return(nil).Once(),
			uow.On("Commit", ctx).Return(nil).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)
		factory := new(MockMixOrderUoWFactory)
		factory.On("Create").Return(uow).Once()

		h := commands.NewChangeMixOrderStatusCommandHandler(factory, clock, eventFactory())
		o, err := h.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, mixorder.Running, o.Status())
		assert.Equal(t, now, o.UpdatedAt())
		assert.Equal(t, "shift-lead@mill", o.UpdatedBy())
		repo.AssertExpectations(t)
		outbox.AssertExpectations(t)
		uow.AssertExpectations(t)
	})

	t.Run("should hold without publishing", func(t *testing.T) {
		ctx := t.Context()
		env := envelope(t)
		running := mixOrderIn(t, env, mixorder.MixOrder.Stage, mixorder.MixOrder.Start)
		cmd, err := commands.NewChangeMixOrderStatusCommand(env, running.ID(), commands.HoldMixOrder, " pellet press jam ")
		require.NoError(t, err)

		repo := new(MockMixOrderRepository)
		uow := new(MockUoW)
		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("MixOrderRepository").Return(repo).Once(),
			repo.On("Get", ctx, env.TenantID(), running.ID()).Return(running, nil).Once(),
			repo.On("Update", ctx, mock.AnythingOfType("mixorder.MixOrder")).Return(nil, nil).Once(),
			uow.On("Commit", ctx).Return(nil).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)
		factory := new(MockMixOrderUoWFactory)
		factory.On("Create").Return(uow).Once()

		h := commands.NewChangeMixOrderStatusCommandHandler(factory, clock, eventFactory())
		o, err := h.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, mixorder.Hold, o.Status())
		assert.Equal(t, "HOLD: pellet press jam", o.Notes())
		uow.AssertExpectations(t)
		uow.AssertNotCalled(t, "Outbox")
	})

	t.Run("should reject illegal transition", func(t *testing.T) {
		ctx := t.Context()
		env := envelope(t)
		draft := mixOrderIn(t, env)
		cmd, err := commands.NewChangeMixOrderStatusCommand(env, draft.ID(), commands.CompleteMixOrder, "")
		require.NoError(t, err)

		repo := new(MockMixOrderRepository)
		uow := new(MockUoW)
		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("MixOrderRepository").Return(repo).Once(),
			repo.On("Get", ctx, env.TenantID(), draft.ID()).Return(draft, nil).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)
		factory := new(MockMixOrderUoWFactory)
		factory.On("Create").Return(uow).Once()

		h := commands.NewChangeMixOrderStatusCommandHandler(factory, clock, eventFactory())
		_, err = h.Handle(ctx, cmd)

		var transitionErr *errs.TransitionError
		require.ErrorAs(t, err, &transitionErr)
		assert.Equal(t, "complete", transitionErr.Operation)
		assert.Equal(t, "Draft", transitionErr.State)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		uow.AssertNotCalled(t, "Commit", ctx)
	})

	t.Run("should surface stale version", func(t *testing.T) {
		ctx := t.Context()
		env := envelope(t)
		draft := mixOrderIn(t, env)
		cmd, err := commands.NewChangeMixOrderStatusCommand(env, draft.ID(), commands.StageMixOrder, "")
		require.NoError(t, err)

		repo := new(MockMixOrderRepository)
		uow := new(MockUoW)
		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("MixOrderRepository").Return(repo).Once(),
			repo.On("Get", ctx, env.TenantID(), draft.ID()).Return(draft, nil).Once(),
			repo.On("Update", ctx, mock.AnythingOfType("mixorder.MixOrder")).
				Return(mixorder.MixOrder{}, errs.NewVersionIsInvalidError("version")).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)
		factory := new(MockMixOrderUoWFactory)
		factory.On("Create").Return(uow).Once()

		h := commands.NewChangeMixOrderStatusCommandHandler(factory, clock, eventFactory())
		_, err = h.Handle(ctx, cmd)

		assert.ErrorIs(t, err, errs.ErrVersionIsInvalid)
		uow.AssertExpectations(t)
	})

	t.Run("should propagate not found", func(t *testing.T) {
		ctx := t.Context()
		env := envelope(t)
		draft := mixOrderIn(t, env)
		cmd, err := commands.NewChangeMixOrderStatusCommand(env, draft.ID(), commands.AbortMixOrder, "")
		require.NoError(t, err)

		repo := new(MockMixOrderRepository)
		uow := new(MockUoW)
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("MixOrderRepository").Return(repo).Once()
		repo.On("Get", ctx, env.TenantID(), draft.ID()).
			Return(mixorder.MixOrder{}, errs.NewObjectNotFoundError("mixOrder", draft.ID())).Once()
		uow.On("Rollback", ctx).Return(nil).Once()
		factory := new(MockMixOrderUoWFactory)
		factory.On("Create").Return(uow).Once()

		h := commands.NewChangeMixOrderStatusCommandHandler(factory, clock, eventFactory())
		_, err = h.Handle(ctx, cmd)

		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}

func TestParseMixOrderAction(t *testing.T) {
	a, err := commands.ParseMixOrderAction(" Resume ")
	require.NoError(t, err)
	assert.Equal(t, commands.ResumeMixOrder, a)

	_, err = commands.ParseMixOrderAction("pause")
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
