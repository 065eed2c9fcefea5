package queries

import (
	"errors"
	"fmt"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/ports"
	"production/internal/pkg/errs"
	"production/internal/pkg/guard"
)

var ErrListMixOrdersQueryIsNotConstructed = errors.New(
	"ListMixOrdersQuery must be created via NewListMixOrdersQuery constructor",
)

// ListMixOrdersQuery returns a page of the tenant's mix orders, newest planned first.
//
// Example:
//
//	status := mixorder.Running
//	query, err := NewListMixOrdersQuery(tenantID, ports.MixOrderFilter{Status: &status})
//	if err != nil {
//	    return err
//	}
//	orders, err := handler.Handle(ctx, query)
type ListMixOrdersQuery struct {
	tenantID kernel.UUID
	filter   ports.MixOrderFilter

	guard guard.ConstructorGuard
}

func NewListMixOrdersQuery(tenantID kernel.UUID, filter ports.MixOrderFilter) (ListMixOrdersQuery, error) {
	var errList []error
	errList = append(errList, tenantID.Validate())
	if filter.Status != nil {
		errList = append(errList, filter.Status.Validate())
	}
	if filter.Type != nil {
		errList = append(errList, filter.Type.Validate())
	}
	if filter.PlannedFrom != nil && filter.PlannedTo != nil && filter.PlannedTo.Before(*filter.PlannedFrom) {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("plannedTo",
			fmt.Errorf("%s is before plannedFrom", filter.PlannedTo.Format(time.RFC3339))))
	}
	if err := errors.Join(errList...); err != nil {
		return ListMixOrdersQuery{}, err
	}

	filter.Page = filter.Page.Normalized()
	return ListMixOrdersQuery{tenantID: tenantID, filter: filter, guard: guard.NewConstructorGuard()}, nil
}

func (q ListMixOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListMixOrdersQueryIsNotConstructed)
}

func (q ListMixOrdersQuery) TenantID() kernel.UUID {
	return q.tenantID
}

func (q ListMixOrdersQuery) Filter() ports.MixOrderFilter {
	return q.filter
}
