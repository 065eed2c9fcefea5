package queries

import (
	"errors"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/guard"
)

var ErrGetMixOrderQueryIsNotConstructed = errors.New(
	"GetMixOrderQuery must be created via NewGetMixOrderQuery constructor",
)

type GetMixOrderQuery struct {
	tenantID   kernel.UUID
	mixOrderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetMixOrderQuery(tenantID, mixOrderID kernel.UUID) (GetMixOrderQuery, error) {
	if err := errors.Join(tenantID.Validate(), mixOrderID.Validate()); err != nil {
		return GetMixOrderQuery{}, err
	}
	return GetMixOrderQuery{tenantID: tenantID, mixOrderID: mixOrderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetMixOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetMixOrderQueryIsNotConstructed)
}

func (q GetMixOrderQuery) TenantID() kernel.UUID {
	return q.tenantID
}

func (q GetMixOrderQuery) MixOrderID() kernel.UUID {
	return q.mixOrderID
}
