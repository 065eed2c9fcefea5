package queries

import (
	"errors"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/guard"
)

var ErrGetBatchQueryIsNotConstructed = errors.New(
	"GetBatchQuery must be created via NewGetBatchQuery constructor",
)

type GetBatchQuery struct {
	tenantID kernel.UUID
	batchID  kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetBatchQuery(tenantID, batchID kernel.UUID) (GetBatchQuery, error) {
	if err := errors.Join(tenantID.Validate(), batchID.Validate()); err != nil {
		return GetBatchQuery{}, err
	}
	return GetBatchQuery{tenantID: tenantID, batchID: batchID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetBatchQuery) Validate() error {
	return q.guard.Validate(ErrGetBatchQueryIsNotConstructed)
}

func (q GetBatchQuery) TenantID() kernel.UUID {
	return q.tenantID
}

func (q GetBatchQuery) BatchID() kernel.UUID {
	return q.batchID
}
