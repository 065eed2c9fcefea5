package commands_test

import (
	"testing"
	"time"

	"production/internal/core/application/usecases/commands"
	"production/internal/core/domain/model/mixorder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// expectMixOrderUpdate wires a transaction that loads current and stores whatever the handler produced.
func expectMixOrderUpdate(t *testing.T, env commands.Envelope, current mixorder.MixOrder) (*MockMixOrderUoWFactory, *MockUoW) {
	t.Helper()
	ctx := t.Context()
	repo := new(MockMixOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("MixOrderRepository").Return(repo).Once(),
		repo.On("Get", ctx, env.TenantID(), current.ID()).Return(current, nil).Once(),
		repo.On("Update", ctx, mock.AnythingOfType("mixorder.MixOrder")).Return(nil, nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockMixOrderUoWFactory)
	factory.On("Create").Return(uow).Once()
	return factory, uow
}

func TestAddMixStepCommandHandler_Handle(t *testing.T) {
	env := envelope(t)
	running := mixOrderIn(t, env, mixorder.MixOrder.Stage, mixorder.MixOrder.Start)
	step, err := mixorder.NewStep(mixorder.StepWeigh, now.Add(-30*time.Minute), nil, "SCALE-2", nil)
	require.NoError(t, err)
	cmd, err := commands.NewAddMixStepCommand(env, running.ID(), step)
	require.NoError(t, err)
	factory, uow := expectMixOrderUpdate(t, env, running)

	o, err := commands.NewAddMixStepCommandHandler(factory, clock, eventFactory()).Handle(t.Context(), cmd)

	require.NoError(t, err)
	require.Len(t, o.Steps(), 1)
	assert.Equal(t, "SCALE-2", o.Steps()[0].EquipmentID())
	assert.Equal(t, now, o.UpdatedAt())
	uow.AssertExpectations(t)
	uow.AssertNotCalled(t, "Outbox")
}

func TestUpdateMixStepCommandHandler_Handle(t *testing.T) {
	env := envelope(t)
	step, err := mixorder.NewStep(mixorder.StepGrind, now.Add(-30*time.Minute), nil, "MILL-1", nil)
	require.NoError(t, err)
	withStep := mixOrderIn(t, env, func(o mixorder.MixOrder) (mixorder.MixOrder, error) { return o.AddStep(step) })
	cmd, err := commands.NewUpdateMixStepCommand(env, withStep.ID(), 0, mixorder.StepPatch{EquipmentID: ptr("MILL-2")})
	require.NoError(t, err)
	factory, uow := expectMixOrderUpdate(t, env, withStep)

	o, err := commands.NewUpdateMixStepCommandHandler(factory, clock, eventFactory()).Handle(t.Context(), cmd)

	require.NoError(t, err)
	assert.Equal(t, "MILL-2", o.Steps()[0].EquipmentID())
	uow.AssertExpectations(t)
}

func TestEndMixStepCommandHandler_Handle(t *testing.T) {
	t.Run("should end step at clock time when no end given", func(t *testing.T) {
		env := envelope(t)
		step, err := mixorder.NewStep(mixorder.StepMix, now.Add(-10*time.Minute), nil, "MIXER-1", nil)
		require.NoError(t, err)
		withStep := mixOrderIn(t, env, func(o mixorder.MixOrder) (mixorder.MixOrder, error) { return o.AddStep(step) })
		actuals := &mixorder.Actuals{MassKg: ptr(1795.5), EnergyKWh: ptr(12.0)}
		cmd, err := commands.NewEndMixStepCommand(env, withStep.ID(), 0, nil, actuals)
		require.NoError(t, err)
		factory, uow := expectMixOrderUpdate(t, env, withStep)

		o, err := commands.NewEndMixStepCommandHandler(factory, clock, eventFactory()).Handle(t.Context(), cmd)

		require.NoError(t, err)
		ended := o.Steps()[0]
		require.NotNil(t, ended.EndedAt())
		assert.Equal(t, now, *ended.EndedAt())
		assert.InDelta(t, 1795.5, o.TotalMassKg(), 1e-9)
		uow.AssertExpectations(t)
	})

	t.Run("should reject negative index", func(t *testing.T) {
		_, err := commands.NewEndMixStepCommand(envelope(t), mixOrderIn(t, envelope(t)).ID(), -1, nil, nil)
		require.Error(t, err)
	})
}

func TestDeleteMixOrderCommandHandler_Handle(t *testing.T) {
	t.Run("should delete draft", func(t *testing.T) {
		ctx := t.Context()
		env := envelope(t)
		draft := mixOrderIn(t, env)
		cmd, err := commands.NewDeleteMixOrderCommand(env, draft.ID())
		require.NoError(t, err)

		repo := new(MockMixOrderRepository)
		uow := new(MockUoW)
		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("MixOrderRepository").Return(repo).Once(),
			repo.On("Get", ctx, env.TenantID(), draft.ID()).Return(draft, nil).Once(),
			repo.On("Delete", ctx, env.TenantID(), draft.ID()).Return(nil).Once(),
			uow.On("Commit", ctx).Return(nil).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)
		factory := new(MockMixOrderUoWFactory)
		factory.On("Create").Return(uow).Once()

		err = commands.NewDeleteMixOrderCommandHandler(factory).Handle(ctx, cmd)

		require.NoError(t, err)
		repo.AssertExpectations(t)
		uow.AssertExpectations(t)
	})

	t.Run("should keep staged order", func(t *testing.T) {
		ctx := t.Context()
		env := envelope(t)
		staged := mixOrderIn(t, env, mixorder.MixOrder.Stage)
		cmd, err := commands.NewDeleteMixOrderCommand(env, staged.ID())
		require.NoError(t, err)

		repo := new(MockMixOrderRepository)
		uow := new(MockUoW)
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("MixOrderRepository").Return(repo).Once()
		repo.On("Get", ctx, env.TenantID(), staged.ID()).Return(staged, nil).Once()
		uow.On("Rollback", ctx).Return(nil).Once()
		factory := new(MockMixOrderUoWFactory)
		factory.On("Create").Return(uow).Once()

		err = commands.NewDeleteMixOrderCommandHandler(factory).Handle(ctx, cmd)

		require.ErrorIs(t, err, mixorder.ErrCannotDelete)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
	})
}
