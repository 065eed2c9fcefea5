// Package outboxrepo stores domain events next to the aggregate writes that
// produced them and hands pending rows to the relay job.
package outboxrepo

import (
	"context"
	"time"

	"production/internal/core/domain/events"
	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormOutbox struct {
	db *gorm.DB
}

func NewGormOutbox(db *gorm.DB) *GormOutbox {
	return &GormOutbox{db: db}
}

func (o *GormOutbox) Append(ctx context.Context, evts ...events.Event) error {
	if len(evts) == 0 {
		return nil
	}

	dtos := make([]EventDTO, 0, len(evts))
	for _, e := range evts {
		if err := e.EventType.Validate(); err != nil {
			return err
		}
		dtos = append(dtos, fromDomain(e))
	}
	return o.db.WithContext(ctx).Create(&dtos).Error
}

// FetchPending locks the returned rows with FOR UPDATE SKIP LOCKED, so it is
// only meaningful inside a transaction.
func (o *GormOutbox) FetchPending(ctx context.Context, limit int) ([]events.Event, error) {
	if limit <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("limit", limit, 1, "unbounded")
	}

	var dtos []EventDTO
	err := o.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Where("published_at IS NULL").
		Order("occurred_at, id").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	evts := make([]events.Event, 0, len(dtos))
	for _, dto := range dtos {
		e, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		evts = append(evts, e)
	}
	return evts, nil
}

func (o *GormOutbox) MarkPublished(ctx context.Context, ids []kernel.UUID, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}

	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.Bytes())
	}
	return o.db.WithContext(ctx).
		Model(&EventDTO{}).
		Where("id IN ?", raw).
		Update("published_at", kernel.NormalizeTime(at)).Error
}
