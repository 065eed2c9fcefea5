package queries

import (
	"errors"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/guard"
)

var ErrPlanChangeoverQueryIsNotConstructed = errors.New(
	"PlanChangeoverQuery must be created via NewPlanChangeoverQuery constructor",
)

// PlanChangeoverQuery asks whether a mobile unit must be cleaned before switching
// from a recipe of the given medication state to the next one.
type PlanChangeoverQuery struct {
	tenantID      kernel.UUID
	mobileRunID   kernel.UUID
	prevMedicated bool
	currMedicated bool

	guard guard.ConstructorGuard
}

func NewPlanChangeoverQuery(tenantID, mobileRunID kernel.UUID, prevMedicated, currMedicated bool) (PlanChangeoverQuery, error) {
	if err := errors.Join(tenantID.Validate(), mobileRunID.Validate()); err != nil {
		return PlanChangeoverQuery{}, err
	}
	return PlanChangeoverQuery{
		tenantID:      tenantID,
		mobileRunID:   mobileRunID,
		prevMedicated: prevMedicated,
		currMedicated: currMedicated,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (q PlanChangeoverQuery) Validate() error {
	return q.guard.Validate(ErrPlanChangeoverQueryIsNotConstructed)
}

func (q PlanChangeoverQuery) TenantID() kernel.UUID {
	return q.tenantID
}

func (q PlanChangeoverQuery) MobileRunID() kernel.UUID {
	return q.mobileRunID
}

func (q PlanChangeoverQuery) PrevMedicated() bool {
	return q.prevMedicated
}

func (q PlanChangeoverQuery) CurrMedicated() bool {
	return q.currMedicated
}
