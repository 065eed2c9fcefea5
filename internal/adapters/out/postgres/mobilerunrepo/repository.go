// Package mobilerunrepo persists mobile runs with GORM. Cleaning sequences are
// kept as a JSONB document on the run row.
package mobilerunrepo

import (
	"context"
	"errors"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/mobilerun"
	"production/internal/core/ports"
	"production/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormMobileRunRepository reads rows back through mobilerun.FromDocument, so
// stored calibration dates are bounded by the wall clock.
type GormMobileRunRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
	clock   kernel.Clock
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormMobileRunRepository(db *gorm.DB, tracker aggregateTracker) *GormMobileRunRepository {
	return &GormMobileRunRepository{
		db:      db,
		tracker: tracker,
		clock:   kernel.SystemClock{},
	}
}

func (r *GormMobileRunRepository) Add(ctx context.Context, aggregate mobilerun.MobileRun) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormMobileRunRepository) Update(ctx context.Context, aggregate mobilerun.MobileRun) (mobilerun.MobileRun, error) {
	if err := aggregate.Validate(); err != nil {
		return mobilerun.MobileRun{}, err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return mobilerun.MobileRun{}, err
	}
	dto.Version = aggregate.Version() + 1

	result := r.db.WithContext(ctx).Model(&MobileRunDTO{}).
		Where("id = ? AND tenant_id = ? AND version = ?", dto.ID, dto.TenantID, aggregate.Version()).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return mobilerun.MobileRun{}, result.Error
	}
	if result.RowsAffected == 0 {
		return mobilerun.MobileRun{}, r.missOrConflict(ctx, aggregate.TenantID(), aggregate.ID())
	}

	saved, err := toDomain(dto, r.clock.Now())
	if err != nil {
		return mobilerun.MobileRun{}, err
	}
	r.tracker.TrackAggregate(saved.ID(), saved)
	return saved, nil
}

func (r *GormMobileRunRepository) Get(ctx context.Context, tenantID, id kernel.UUID) (mobilerun.MobileRun, error) {
	if err := errors.Join(tenantID.Validate(), id.Validate()); err != nil {
		return mobilerun.MobileRun{}, err
	}

	var dto MobileRunDTO
	err := r.db.WithContext(ctx).First(&dto, "id = ? AND tenant_id = ?", id.Bytes(), tenantID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return mobilerun.MobileRun{}, errs.NewObjectNotFoundError("mobileRun", id.String())
		}
		return mobilerun.MobileRun{}, err
	}

	return toDomain(dto, r.clock.Now())
}

func (r *GormMobileRunRepository) Delete(ctx context.Context, tenantID, id kernel.UUID) error {
	if err := errors.Join(tenantID.Validate(), id.Validate()); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", id.Bytes(), tenantID.Bytes()).
		Delete(&MobileRunDTO{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("mobileRun", id.String())
	}
	return nil
}

func (r *GormMobileRunRepository) List(
	ctx context.Context,
	tenantID kernel.UUID,
	filter ports.MobileRunFilter,
) ([]mobilerun.MobileRun, error) {
	if err := tenantID.Validate(); err != nil {
		return nil, err
	}

	q := r.db.WithContext(ctx).Where("tenant_id = ?", tenantID.Bytes())
	if filter.MobileUnitID != nil {
		q = q.Where("mobile_unit_id = ?", filter.MobileUnitID.Bytes())
	}
	if filter.ActiveOnly {
		q = q.Where("end_at IS NULL")
	}

	page := filter.Page.Normalized()
	var dtos []MobileRunDTO
	if err := q.Order("start_at DESC, id").Limit(page.Limit).Offset(page.Offset).Find(&dtos).Error; err != nil {
		return nil, err
	}
	return toDomainAll(dtos, r.clock.Now())
}

// ListActive is not tenant-scoped.
func (r *GormMobileRunRepository) ListActive(ctx context.Context) ([]mobilerun.MobileRun, error) {
	var dtos []MobileRunDTO
	if err := r.db.WithContext(ctx).Where("end_at IS NULL").Order("start_at, id").Find(&dtos).Error; err != nil {
		return nil, err
	}
	return toDomainAll(dtos, r.clock.Now())
}

func (r *GormMobileRunRepository) missOrConflict(ctx context.Context, tenantID, id kernel.UUID) error {
	var count int64
	err := r.db.WithContext(ctx).Model(&MobileRunDTO{}).
		Where("id = ? AND tenant_id = ?", id.Bytes(), tenantID.Bytes()).
		Count(&count).Error
	switch {
	case err != nil:
		return err
	case count == 0:
		return errs.NewObjectNotFoundError("mobileRun", id.String())
	default:
		return errs.NewVersionIsInvalidError("mobileRun " + id.String())
	}
}

func toDomainAll(dtos []MobileRunDTO, now time.Time) ([]mobilerun.MobileRun, error) {
	runs := make([]mobilerun.MobileRun, 0, len(dtos))
	for _, dto := range dtos {
		run, err := toDomain(dto, now)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, nil
}
