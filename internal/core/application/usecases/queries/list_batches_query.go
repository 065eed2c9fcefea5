package queries

import (
	"errors"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/ports"
	"production/internal/pkg/guard"
)

var ErrListBatchesQueryIsNotConstructed = errors.New(
	"ListBatchesQuery must be created via NewListBatchesQuery constructor",
)

type ListBatchesQuery struct {
	tenantID kernel.UUID
	filter   ports.BatchFilter

	guard guard.ConstructorGuard
}

func NewListBatchesQuery(tenantID kernel.UUID, filter ports.BatchFilter) (ListBatchesQuery, error) {
	var errList []error
	errList = append(errList, tenantID.Validate())
	if filter.Status != nil {
		errList = append(errList, filter.Status.Validate())
	}
	if filter.MixOrderID != nil {
		errList = append(errList, filter.MixOrderID.Validate())
	}
	if err := errors.Join(errList...); err != nil {
		return ListBatchesQuery{}, err
	}

	filter.Page = filter.Page.Normalized()
	return ListBatchesQuery{tenantID: tenantID, filter: filter, guard: guard.NewConstructorGuard()}, nil
}

func (q ListBatchesQuery) Validate() error {
	return q.guard.Validate(ErrListBatchesQueryIsNotConstructed)
}

func (q ListBatchesQuery) TenantID() kernel.UUID {
	return q.tenantID
}

func (q ListBatchesQuery) Filter() ports.BatchFilter {
	return q.filter
}
