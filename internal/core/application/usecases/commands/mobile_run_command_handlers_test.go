package commands_test

import (
	"testing"
	"time"

	"production/internal/core/application/usecases/commands"
	"production/internal/core/domain/events"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/mobilerun"
	"production/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func expectMobileRunUpdate(
	t *testing.T,
	env commands.Envelope,
	current mobilerun.MobileRun,
	eventType events.Type,
) (*MockMobileRunUoWFactory, *MockUoW) {
	t.Helper()
	ctx := t.Context()
	repo := new(MockMobileRunRepository)
	uow := new(MockUoW)
	calls := []*mock.Call{
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("MobileRunRepository").Return(repo).Once(),
		repo.On("Get", ctx, env.TenantID(), current.ID()).Return(current, nil).Once(),
		repo.On("Update", ctx, mock.AnythingOfType("mobilerun.MobileRun")).Return(nil, nil).Once(),
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

	factory := new(MockMobileRunUoWFactory)
	factory.On("Create").Return(uow).Once()
	return factory, uow
}

func TestStartMobileRunCommandHandler_Handle(t *testing.T) {
	t.Run("should start run at clock time", func(t *testing.T) {
		ctx := t.Context()
		env := envelope(t)
		cmd, err := commands.NewStartMobileRunCommand(env, mobileRunParams(t))
		require.NoError(t, err)

		repo := new(MockMobileRunRepository)
		outbox := new(MockOutbox)
		uow := new(MockUoW)
		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("MobileRunRepository").Return(repo).Once(),
			repo.On("Add", ctx, mock.AnythingOfType("mobilerun.MobileRun")).Return(nil).Once(),
			uow.On("Outbox").Return(outbox).Once(),
			outbox.On("Append", ctx, eventsOfType(events.MobileRunStarted)).Return(nil).Once(),
			uow.On("Commit", ctx).Return(nil).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)
		factory := new(MockMobileRunUoWFactory)
		factory.On("Create").Return(uow).Once()

		h := commands.NewStartMobileRunCommandHandler(factory, kernel.RandomIDGenerator{}, clock, eventFactory())
		run, err := h.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, now, run.StartAt())
		assert.Equal(t, mobilerun.Generator, run.PowerSource())
		assert.True(t, run.IsActive())
		uow.AssertExpectations(t)
	})

	t.Run("should refuse calibration dated in the future", func(t *testing.T) {
		p := mobileRunParams(t)
		p.Calibration.Date = now.Add(24 * time.Hour)
		cmd, err := commands.NewStartMobileRunCommand(envelope(t), p)
		require.NoError(t, err)
		factory := new(MockMobileRunUoWFactory)

		h := commands.NewStartMobileRunCommandHandler(factory, kernel.RandomIDGenerator{}, clock, eventFactory())
		_, err = h.Handle(t.Context(), cmd)

		require.ErrorIs(t, err, mobilerun.ErrCalibrationInFuture)
		factory.AssertNotCalled(t, "Create")
	})
}

func TestFinishMobileRunCommandHandler_Handle(t *testing.T) {
	env := envelope(t)
	run := mobileRunIn(t, env)
	cmd, err := commands.NewFinishMobileRunCommand(env, run.ID(), nil)
	require.NoError(t, err)
	factory, uow := expectMobileRunUpdate(t, env, run, events.MobileRunFinished)

	finished, err := commands.NewFinishMobileRunCommandHandler(factory, clock, eventFactory()).Handle(t.Context(), cmd)

	require.NoError(t, err)
	require.NotNil(t, finished.EndAt())
	assert.Equal(t, now, *finished.EndAt())
	assert.InDelta(t, 3.0, finished.DurationHours(now), 1e-9)
	uow.AssertExpectations(t)
}

func TestUpdateCalibrationCheckCommandHandler_Handle(t *testing.T) {
	env := envelope(t)
	run := mobileRunIn(t, env)
	check := mobilerun.CalibrationCheck{
		ScaleOK:     true,
		MoistureOK:  false,
		Date:        now.Add(-time.Minute),
		ValidatedBy: "qa-1",
		Notes:       "moisture probe drift",
	}
	cmd, err := commands.NewUpdateCalibrationCheckCommand(env, run.ID(), check)
	require.NoError(t, err)
	factory, uow := expectMobileRunUpdate(t, env, run, events.CalibrationChecked)

	updated, err := commands.NewUpdateCalibrationCheckCommandHandler(factory, clock, eventFactory()).Handle(t.Context(), cmd)

	require.NoError(t, err)
	assert.False(t, updated.CalibrationCheck().IsValid())
	assert.Equal(t, "qa-1", updated.CalibrationCheck().ValidatedBy)
	uow.AssertExpectations(t)
}

func TestAddCleaningSequenceCommandHandler_Handle(t *testing.T) {
	t.Run("should open sequence without publishing", func(t *testing.T) {
		env := envelope(t)
		run := mobileRunIn(t, env)
		seqID := kernel.NewUUID()
		cmd, err := commands.NewAddCleaningSequenceCommand(env, run.ID(), mobilerun.CleaningSequenceParams{
			Type:        mobilerun.DryClean,
			ValidatedBy: "operator-3",
		})
		require.NoError(t, err)
		factory, uow := expectMobileRunUpdate(t, env, run, "")

		h := commands.NewAddCleaningSequenceCommandHandler(factory, kernel.NewSequenceIDGenerator(seqID), clock, eventFactory())
		updated, err := h.Handle(t.Context(), cmd)

		require.NoError(t, err)
		active := updated.ActiveCleaningSequences()
		require.Len(t, active, 1)
		assert.Equal(t, seqID, active[0].ID())
		assert.Equal(t, now, active[0].StartedAt())
		uow.AssertExpectations(t)
		uow.AssertNotCalled(t, "Outbox")
	})

	t.Run("should publish flush recorded as finished", func(t *testing.T) {
		env := envelope(t)
		run := mobileRunIn(t, env)
		cmd, err := commands.NewAddCleaningSequenceCommand(env, run.ID(), mobilerun.CleaningSequenceParams{
			Type:            mobilerun.Flush,
			StartedAt:       now.Add(-40 * time.Minute),
			EndedAt:         ptr(now.Add(-20 * time.Minute)),
			UsedMaterialSKU: "WHEAT-FLUSH",
			FlushMassKg:     ptr(250.0),
			ValidatedBy:     "operator-3",
		})
		require.NoError(t, err)
		factory, uow := expectMobileRunUpdate(t, env, run, events.FlushPerformed)

		h := commands.NewAddCleaningSequenceCommandHandler(factory, kernel.RandomIDGenerator{}, clock, eventFactory())
		updated, err := h.Handle(t.Context(), cmd)

		require.NoError(t, err)
		assert.InDelta(t, 250.0, updated.TotalFlushMassKg(), 1e-9)
		uow.AssertExpectations(t)
	})

	t.Run("should refuse second open sequence", func(t *testing.T) {
		ctx := t.Context()
		env := envelope(t)
		open, err := mobilerun.NewCleaningSequence(mobilerun.CleaningSequenceParams{
			ID:          kernel.NewUUID(),
			Type:        mobilerun.Vacuum,
			StartedAt:   now.Add(-time.Hour),
			ValidatedBy: "operator-3",
		})
		require.NoError(t, err)
		run, err := mobileRunIn(t, env).AddCleaningSequence(open)
		require.NoError(t, err)
		cmd, err := commands.NewAddCleaningSequenceCommand(env, run.ID(), mobilerun.CleaningSequenceParams{
			Type:        mobilerun.WetClean,
			ValidatedBy: "operator-3",
		})
		require.NoError(t, err)

		repo := new(MockMobileRunRepository)
		uow := new(MockUoW)
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("MobileRunRepository").Return(repo).Once()
		repo.On("Get", ctx, env.TenantID(), run.ID()).Return(run, nil).Once()
		uow.On("Rollback", ctx).Return(nil).Once()
		factory := new(MockMobileRunUoWFactory)
		factory.On("Create").Return(uow).Once()

		h := commands.NewAddCleaningSequenceCommandHandler(factory, kernel.RandomIDGenerator{}, clock, eventFactory())
		_, err = h.Handle(ctx, cmd)

		var transitionErr *errs.TransitionError
		require.ErrorAs(t, err, &transitionErr)
		assert.Equal(t, mobilerun.ErrActiveSequenceExists.Name, transitionErr.Name)
		uow.AssertExpectations(t)
	})
}

func TestEndCleaningSequenceCommandHandler_Handle(t *testing.T) {
	env := envelope(t)
	seqID := kernel.NewUUID()
	open, err := mobilerun.NewCleaningSequence(mobilerun.CleaningSequenceParams{
		ID:          seqID,
		Type:        mobilerun.WetClean,
		StartedAt:   now.Add(-time.Hour),
		ValidatedBy: "operator-3",
	})
	require.NoError(t, err)
	run, err := mobileRunIn(t, env).AddCleaningSequence(open)
	require.NoError(t, err)
	cmd, err := commands.NewEndCleaningSequenceCommand(env, run.ID(), seqID, nil, "rinsed twice")
	require.NoError(t, err)
	factory, uow := expectMobileRunUpdate(t, env, run, events.CleaningPerformed)

	updated, err := commands.NewEndCleaningSequenceCommandHandler(factory, clock, eventFactory()).Handle(t.Context(), cmd)

	require.NoError(t, err)
	last, ok := updated.LastCompletedCleaning()
	require.True(t, ok)
	assert.Equal(t, seqID, last.ID())
	assert.Equal(t, "rinsed twice", last.Notes())
	assert.Equal(t, now, *last.EndedAt())
	uow.AssertExpectations(t)
}
