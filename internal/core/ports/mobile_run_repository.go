package ports

import (
	"context"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/mobilerun"
)

// MobileRunFilter narrows a tenant-scoped listing. Nil fields are ignored.
type MobileRunFilter struct {
	MobileUnitID *kernel.UUID
	ActiveOnly   bool
	Page         Page
}

type MobileRunRepository interface {
	Add(ctx context.Context, run mobilerun.MobileRun) error

	// Update follows the same optimistic concurrency contract as MixOrderRepository.Update.
	Update(ctx context.Context, run mobilerun.MobileRun) (mobilerun.MobileRun, error)

	Get(ctx context.Context, tenantID, id kernel.UUID) (mobilerun.MobileRun, error)

	Delete(ctx context.Context, tenantID, id kernel.UUID) error

	List(ctx context.Context, tenantID kernel.UUID, filter MobileRunFilter) ([]mobilerun.MobileRun, error)

	// ListActive returns unfinished runs of every tenant. It backs system jobs only.
	ListActive(ctx context.Context) ([]mobilerun.MobileRun, error)
}
