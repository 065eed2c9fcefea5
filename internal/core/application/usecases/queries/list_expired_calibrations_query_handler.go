package queries

import (
	"context"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/mobilerun"
)

// ActiveMobileRunReader lists unfinished runs across tenants.
type ActiveMobileRunReader interface {
	ListActive(ctx context.Context) ([]mobilerun.MobileRun, error)
}

type ListExpiredCalibrationsQueryHandler struct {
	reader ActiveMobileRunReader
	clock  kernel.Clock
}

func NewListExpiredCalibrationsQueryHandler(reader ActiveMobileRunReader, clock kernel.Clock) ListExpiredCalibrationsQueryHandler {
	return ListExpiredCalibrationsQueryHandler{reader: reader, clock: clock}
}

func (h ListExpiredCalibrationsQueryHandler) Handle(
	ctx context.Context,
	query ListExpiredCalibrationsQuery,
) ([]mobilerun.MobileRun, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	runs, err := h.reader.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	now := h.clock.Now()
	expired := make([]mobilerun.MobileRun, 0)
	for _, run := range runs {
		if run.CalibrationCheck().IsExpired(now, query.MaxAgeDays()) {
			expired = append(expired, run)
		}
	}
	return expired, nil
}
