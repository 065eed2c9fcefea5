package commands_test

import (
	"errors"
	"testing"

	"production/internal/core/application/usecases/commands"
	"production/internal/core/domain/events"
	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func pendingEvents(t *testing.T, n int) []events.Event {
	t.Helper()
	env := envelope(t)
	evts := make([]events.Event, 0, n)
	for range n {
		e, err := eventFactory().MixOrderCreated(mixOrderIn(t, env), env.Metadata())
		require.NoError(t, err)
		evts = append(evts, e)
	}
	return evts
}

func eventIDs(evts []events.Event) []kernel.UUID {
	ids := make([]kernel.UUID, 0, len(evts))
	for _, e := range evts {
		ids = append(ids, e.EventID)
	}
	return ids
}

func TestNewRelayOutboxCommand(t *testing.T) {
	_, err := commands.NewRelayOutboxCommand(0)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	cmd, err := commands.NewRelayOutboxCommand(25)
	require.NoError(t, err)
	assert.Equal(t, 25, cmd.Limit())
}

func TestRelayOutboxCommandHandler_Handle(t *testing.T) {
	t.Run("should publish and mark every pending event", func(t *testing.T) {
		ctx := t.Context()
		pending := pendingEvents(t, 3)
		cmd, err := commands.NewRelayOutboxCommand(10)
		require.NoError(t, err)

		outbox := new(MockOutbox)
		publisher := new(MockPublisher)
		uow := new(MockUoW)
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("Outbox").Return(outbox)
		outbox.On("FetchPending", ctx, 10).Return(pending, nil).Once()
		publisher.On("Publish", ctx, mock.AnythingOfType("events.Event")).Return(nil).Times(3)
		outbox.On("MarkPublished", ctx, eventIDs(pending), now).Return(nil).Once()
		uow.On("Commit", ctx).Return(nil).Once()
		uow.On("Rollback", ctx).Return(nil).Once()
		factory := new(MockOutboxUoWFactory)
		factory.On("Create").Return(uow).Once()

		h := commands.NewRelayOutboxCommandHandler(factory, publisher, clock)
		published, err := h.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, pending, published)
		outbox.AssertExpectations(t)
		publisher.AssertExpectations(t)
		uow.AssertExpectations(t)
	})

	t.Run("should mark events published before a failure and report it", func(t *testing.T) {
		ctx := t.Context()
		pending := pendingEvents(t, 3)
		cmd, err := commands.NewRelayOutboxCommand(10)
		require.NoError(t, err)
		busDown := errors.New("bus unavailable")

		outbox := new(MockOutbox)
		publisher := new(MockPublisher)
		uow := new(MockUoW)
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("Outbox").Return(outbox)
		outbox.On("FetchPending", ctx, 10).Return(pending, nil).Once()
		publisher.On("Publish", ctx, pending[0]).Return(nil).Once()
		publisher.On("Publish", ctx, pending[1]).Return(busDown).Once()
		outbox.On("MarkPublished", ctx, eventIDs(pending[:1]), now).Return(nil).Once()
		uow.On("Commit", ctx).Return(nil).Once()
		uow.On("Rollback", ctx).Return(nil).Once()
		factory := new(MockOutboxUoWFactory)
		factory.On("Create").Return(uow).Once()

		h := commands.NewRelayOutboxCommandHandler(factory, publisher, clock)
		published, err := h.Handle(ctx, cmd)

		require.ErrorIs(t, err, busDown)
		assert.Equal(t, pending[:1], published)
		publisher.AssertNotCalled(t, "Publish", ctx, pending[2])
		outbox.AssertExpectations(t)
	})

	t.Run("should commit without marking when nothing is pending", func(t *testing.T) {
		ctx := t.Context()
		cmd, err := commands.NewRelayOutboxCommand(10)
		require.NoError(t, err)

		outbox := new(MockOutbox)
		uow := new(MockUoW)
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("Outbox").Return(outbox)
		outbox.On("FetchPending", ctx, 10).Return(nil, nil).Once()
		uow.On("Commit", ctx).Return(nil).Once()
		uow.On("Rollback", ctx).Return(nil).Once()
		factory := new(MockOutboxUoWFactory)
		factory.On("Create").Return(uow).Once()

		h := commands.NewRelayOutboxCommandHandler(factory, new(MockPublisher), clock)
		published, err := h.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Empty(t, published)
		outbox.AssertNotCalled(t, "MarkPublished", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("should return fetch errors without publishing", func(t *testing.T) {
		ctx := t.Context()
		cmd, err := commands.NewRelayOutboxCommand(10)
		require.NoError(t, err)
		dbDown := errors.New("connection refused")

		outbox := new(MockOutbox)
		uow := new(MockUoW)
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("Outbox").Return(outbox)
		outbox.On("FetchPending", ctx, 10).Return(nil, dbDown).Once()
		uow.On("Rollback", ctx).Return(nil).Once()
		factory := new(MockOutboxUoWFactory)
		factory.On("Create").Return(uow).Once()

		publisher := new(MockPublisher)
		h := commands.NewRelayOutboxCommandHandler(factory, publisher, clock)
		_, err = h.Handle(ctx, cmd)

		require.ErrorIs(t, err, dbDown)
		uow.AssertNotCalled(t, "Commit", mock.Anything)
		publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})
}
