package ports

import (
	"context"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/mixorder"
)

// MixOrderFilter narrows a tenant-scoped listing. Nil fields are ignored.
type MixOrderFilter struct {
	Status       *mixorder.Status
	Type         *mixorder.Type
	RecipeID     *kernel.UUID
	CustomerID   *kernel.UUID
	MobileUnitID *kernel.UUID
	PlannedFrom  *time.Time
	PlannedTo    *time.Time
	Page         Page
}

type MixOrderRepository interface {
	// Add persists a new mix order. The order number must be unique per tenant.
	Add(ctx context.Context, order mixorder.MixOrder) error

	// Update stores order if the persisted version still equals order.Version().
	// It returns the stored snapshot carrying the incremented version, or
	// errs.VersionIsInvalidError when another writer got there first.
	Update(ctx context.Context, order mixorder.MixOrder) (mixorder.MixOrder, error)

	// Get returns errs.ObjectNotFoundError when the order does not exist for the tenant.
	Get(ctx context.Context, tenantID, id kernel.UUID) (mixorder.MixOrder, error)

	Delete(ctx context.Context, tenantID, id kernel.UUID) error

	// List returns matching orders, newest planned first.
	List(ctx context.Context, tenantID kernel.UUID, filter MixOrderFilter) ([]mixorder.MixOrder, error)
}
