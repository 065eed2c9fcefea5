package queries

import (
	"errors"

	"production/internal/pkg/errs"
	"production/internal/pkg/guard"
)

var ErrListExpiredCalibrationsQueryIsNotConstructed = errors.New(
	"ListExpiredCalibrationsQuery must be created via NewListExpiredCalibrationsQuery constructor",
)

// ListExpiredCalibrationsQuery selects active mobile runs of every tenant whose
// calibration check is older than MaxAgeDays.
type ListExpiredCalibrationsQuery struct {
	maxAgeDays int

	guard guard.ConstructorGuard
}

func NewListExpiredCalibrationsQuery(maxAgeDays int) (ListExpiredCalibrationsQuery, error) {
	if maxAgeDays <= 0 {
		return ListExpiredCalibrationsQuery{}, errs.NewValueIsOutOfRangeError("maxAgeDays", maxAgeDays, 1, "unbounded")
	}
	return ListExpiredCalibrationsQuery{maxAgeDays: maxAgeDays, guard: guard.NewConstructorGuard()}, nil
}

func (q ListExpiredCalibrationsQuery) Validate() error {
	return q.guard.Validate(ErrListExpiredCalibrationsQueryIsNotConstructed)
}

func (q ListExpiredCalibrationsQuery) MaxAgeDays() int {
	return q.maxAgeDays
}
