package queries

import (
	"errors"
	"fmt"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"
	"production/internal/pkg/guard"
)

var ErrGetMixOrderStatisticsQueryIsNotConstructed = errors.New(
	"GetMixOrderStatisticsQuery must be created via NewGetMixOrderStatisticsQuery constructor",
)

// GetMixOrderStatisticsQuery aggregates the tenant's mix orders, optionally
// restricted to a planned-at window [from, to).
type GetMixOrderStatisticsQuery struct {
	tenantID kernel.UUID
	from     *time.Time
	to       *time.Time

	guard guard.ConstructorGuard
}

func NewGetMixOrderStatisticsQuery(tenantID kernel.UUID, from, to *time.Time) (GetMixOrderStatisticsQuery, error) {
	if err := tenantID.Validate(); err != nil {
		return GetMixOrderStatisticsQuery{}, err
	}
	if from != nil && to != nil && to.Before(*from) {
		return GetMixOrderStatisticsQuery{}, errs.NewValueIsInvalidErrorWithCause("to",
			fmt.Errorf("%s is before from", to.Format(time.RFC3339)))
	}
	return GetMixOrderStatisticsQuery{
		tenantID: tenantID,
		from:     kernel.NormalizeOptionalTime(from),
		to:       kernel.NormalizeOptionalTime(to),
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (q GetMixOrderStatisticsQuery) Validate() error {
	return q.guard.Validate(ErrGetMixOrderStatisticsQueryIsNotConstructed)
}

func (q GetMixOrderStatisticsQuery) TenantID() kernel.UUID {
	return q.tenantID
}

func (q GetMixOrderStatisticsQuery) From() *time.Time {
	return kernel.NormalizeOptionalTime(q.from)
}

func (q GetMixOrderStatisticsQuery) To() *time.Time {
	return kernel.NormalizeOptionalTime(q.to)
}

// MixOrderStatistics is the read model returned by GetMixOrderStatisticsQueryHandler.
type MixOrderStatistics struct {
	Total            int64            `json:"total"`
	CountsByStatus   map[string]int64 `json:"countsByStatus"`
	TotalTargetQtyKg float64          `json:"totalTargetQtyKg"`
	// AverageCompletedDuration spans first step start to last step end over
	// completed orders whose step log is closed.
	AverageCompletedDuration time.Duration `json:"averageCompletedDurationNs"`
	CompletedWithDuration    int64         `json:"completedWithDuration"`
}
