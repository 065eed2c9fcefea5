package queries

import (
	"errors"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/ports"
	"production/internal/pkg/guard"
)

var (
	ErrGetMobileRunQueryIsNotConstructed = errors.New(
		"GetMobileRunQuery must be created via NewGetMobileRunQuery constructor",
	)
	ErrListMobileRunsQueryIsNotConstructed = errors.New(
		"ListMobileRunsQuery must be created via NewListMobileRunsQuery constructor",
	)
)

type GetMobileRunQuery struct {
	tenantID    kernel.UUID
	mobileRunID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetMobileRunQuery(tenantID, mobileRunID kernel.UUID) (GetMobileRunQuery, error) {
	if err := errors.Join(tenantID.Validate(), mobileRunID.Validate()); err != nil {
		return GetMobileRunQuery{}, err
	}
	return GetMobileRunQuery{tenantID: tenantID, mobileRunID: mobileRunID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetMobileRunQuery) Validate() error {
	return q.guard.Validate(ErrGetMobileRunQueryIsNotConstructed)
}

func (q GetMobileRunQuery) TenantID() kernel.UUID {
	return q.tenantID
}

func (q GetMobileRunQuery) MobileRunID() kernel.UUID {
	return q.mobileRunID
}

type ListMobileRunsQuery struct {
	tenantID kernel.UUID
	filter   ports.MobileRunFilter

	guard guard.ConstructorGuard
}

func NewListMobileRunsQuery(tenantID kernel.UUID, filter ports.MobileRunFilter) (ListMobileRunsQuery, error) {
	var errList []error
	errList = append(errList, tenantID.Validate())
	if filter.MobileUnitID != nil {
		errList = append(errList, filter.MobileUnitID.Validate())
	}
	if err := errors.Join(errList...); err != nil {
		return ListMobileRunsQuery{}, err
	}

	filter.Page = filter.Page.Normalized()
	return ListMobileRunsQuery{tenantID: tenantID, filter: filter, guard: guard.NewConstructorGuard()}, nil
}

func (q ListMobileRunsQuery) Validate() error {
	return q.guard.Validate(ErrListMobileRunsQueryIsNotConstructed)
}

func (q ListMobileRunsQuery) TenantID() kernel.UUID {
	return q.tenantID
}

func (q ListMobileRunsQuery) Filter() ports.MobileRunFilter {
	return q.filter
}
