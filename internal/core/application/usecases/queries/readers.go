// Package queries contains the read side of the service: single aggregate
// lookups, tenant-scoped listings, statistics, batch genealogy and the
// changeover plan of a mobile run. Queries never modify state.
package queries

import (
	"context"

	"production/internal/core/domain/model/batch"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/mixorder"
	"production/internal/core/domain/model/mobilerun"
	"production/internal/core/ports"
)

type (
	MixOrderReader interface {
		Get(ctx context.Context, tenantID, id kernel.UUID) (mixorder.MixOrder, error)
		List(ctx context.Context, tenantID kernel.UUID, filter ports.MixOrderFilter) ([]mixorder.MixOrder, error)
	}

	BatchReader interface {
		Get(ctx context.Context, tenantID, id kernel.UUID) (batch.Batch, error)
		List(ctx context.Context, tenantID kernel.UUID, filter ports.BatchFilter) ([]batch.Batch, error)
		ListChildren(ctx context.Context, tenantID, id kernel.UUID) ([]batch.Batch, error)
	}

	MobileRunReader interface {
		Get(ctx context.Context, tenantID, id kernel.UUID) (mobilerun.MobileRun, error)
		List(ctx context.Context, tenantID kernel.UUID, filter ports.MobileRunFilter) ([]mobilerun.MobileRun, error)
	}
)
