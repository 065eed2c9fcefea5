package ports

import (
	"context"

	"production/internal/core/domain/model/batch"
	"production/internal/core/domain/model/kernel"
)

// BatchFilter narrows a tenant-scoped listing. Nil fields are ignored.
type BatchFilter struct {
	Status     *batch.Status
	MixOrderID *kernel.UUID
	Page       Page
}

type BatchRepository interface {
	// Add persists a new batch. The batch number must be unique per tenant.
	Add(ctx context.Context, b batch.Batch) error

	// Update follows the same optimistic concurrency contract as MixOrderRepository.Update.
	Update(ctx context.Context, b batch.Batch) (batch.Batch, error)

	Get(ctx context.Context, tenantID, id kernel.UUID) (batch.Batch, error)

	Delete(ctx context.Context, tenantID, id kernel.UUID) error

	List(ctx context.Context, tenantID kernel.UUID, filter BatchFilter) ([]batch.Batch, error)

	// ListChildren returns the batches that list id among their parent batches.
	ListChildren(ctx context.Context, tenantID, id kernel.UUID) ([]batch.Batch, error)
}
