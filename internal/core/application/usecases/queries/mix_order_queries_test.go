package queries_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"production/internal/core/application/usecases/queries"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/mixorder"
	"production/internal/core/ports"
	"production/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)

func newMixOrder(t *testing.T, tenantID kernel.UUID, number string) mixorder.MixOrder {
	t.Helper()
	o, err := mixorder.NewMixOrder(kernel.RandomIDGenerator{}, kernel.FixedClock{At: now}, mixorder.Params{
		TenantID:    tenantID,
		OrderNumber: number,
		Type:        mixorder.Plant,
		RecipeID:    kernel.NewUUID(),
		TargetQtyKg: 1200,
		PlannedAt:   now.Add(time.Hour),
	})
	require.NoError(t, err)
	return o
}

func TestGetMixOrderQueryHandler(t *testing.T) {
	ctx := context.Background()
	tenantID := kernel.NewUUID()

	t.Run("returns the document", func(t *testing.T) {
		order := newMixOrder(t, tenantID, "MO-1")
		reader := new(MockMixOrderReader)
		reader.On("Get", ctx, tenantID, order.ID()).Return(order, nil)

		query, err := queries.NewGetMixOrderQuery(tenantID, order.ID())
		require.NoError(t, err)
		doc, err := queries.NewGetMixOrderQueryHandler(reader).Handle(ctx, query)

		require.NoError(t, err)
		assert.Equal(t, order.ToDocument(), doc)
	})

	t.Run("propagates not found", func(t *testing.T) {
		id := kernel.NewUUID()
		reader := new(MockMixOrderReader)
		reader.On("Get", ctx, tenantID, id).Return(mixorder.MixOrder{}, errs.NewObjectNotFoundError("mixOrder", id.String()))

		query, err := queries.NewGetMixOrderQuery(tenantID, id)
		require.NoError(t, err)
		_, err = queries.NewGetMixOrderQueryHandler(reader).Handle(ctx, query)

		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("rejects a zero query", func(t *testing.T) {
		_, err := queries.NewGetMixOrderQueryHandler(new(MockMixOrderReader)).Handle(ctx, queries.GetMixOrderQuery{})
		assert.ErrorIs(t, err, queries.ErrGetMixOrderQueryIsNotConstructed)
	})
}

func TestNewListMixOrdersQuery(t *testing.T) {
	tenantID := kernel.NewUUID()

	t.Run("normalizes the page", func(t *testing.T) {
		query, err := queries.NewListMixOrdersQuery(tenantID, ports.MixOrderFilter{Page: ports.Page{Limit: 10_000}})
		require.NoError(t, err)
		assert.Equal(t, ports.MaxPageLimit, query.Filter().Page.Limit)
	})

	t.Run("rejects an inverted window", func(t *testing.T) {
		from, to := now, now.Add(-time.Hour)
		_, err := queries.NewListMixOrdersQuery(tenantID, ports.MixOrderFilter{PlannedFrom: &from, PlannedTo: &to})
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects an unknown status", func(t *testing.T) {
		status := mixorder.Status(99)
		_, err := queries.NewListMixOrdersQuery(tenantID, ports.MixOrderFilter{Status: &status})
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("requires a tenant", func(t *testing.T) {
		_, err := queries.NewListMixOrdersQuery(kernel.UUID{}, ports.MixOrderFilter{})
		assert.Error(t, err)
	})
}

func TestListMixOrdersQueryHandler(t *testing.T) {
	ctx := context.Background()
	tenantID := kernel.NewUUID()
	first, second := newMixOrder(t, tenantID, "MO-1"), newMixOrder(t, tenantID, "MO-2")

	query, err := queries.NewListMixOrdersQuery(tenantID, ports.MixOrderFilter{})
	require.NoError(t, err)

	t.Run("maps every order", func(t *testing.T) {
		reader := new(MockMixOrderReader)
		reader.On("List", ctx, tenantID, query.Filter()).Return([]mixorder.MixOrder{first, second}, nil)

		docs, err := queries.NewListMixOrdersQueryHandler(reader).Handle(ctx, query)

		require.NoError(t, err)
		require.Len(t, docs, 2)
		assert.Equal(t, "MO-1", docs[0].OrderNumber)
		assert.Equal(t, "MO-2", docs[1].OrderNumber)
	})

	t.Run("propagates reader errors", func(t *testing.T) {
		reader := new(MockMixOrderReader)
		reader.On("List", ctx, tenantID, mock.Anything).Return([]mixorder.MixOrder(nil), errors.New("connection reset"))

		_, err := queries.NewListMixOrdersQueryHandler(reader).Handle(ctx, query)
		assert.EqualError(t, err, "connection reset")
	})
}
