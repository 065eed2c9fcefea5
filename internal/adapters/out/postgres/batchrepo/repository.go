// Package batchrepo persists batch aggregates with GORM. Inputs and output
// lots live in child tables that are replaced as a whole on update.
package batchrepo

import (
	"context"
	"errors"

	"production/internal/core/domain/model/batch"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/ports"
	"production/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormBatchRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormBatchRepository(db *gorm.DB, tracker aggregateTracker) *GormBatchRepository {
	return &GormBatchRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormBatchRepository) Add(ctx context.Context, aggregate batch.Batch) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes the batch if the stored version still matches. Child rows are
// rewritten in the same statement batch, so callers must run it inside a transaction.
func (r *GormBatchRepository) Update(ctx context.Context, aggregate batch.Batch) (batch.Batch, error) {
	if err := aggregate.Validate(); err != nil {
		return batch.Batch{}, err
	}

	dto := fromDomain(aggregate)
	dto.Version = aggregate.Version() + 1
	db := r.db.WithContext(ctx)

	result := db.Model(&BatchDTO{}).
		Where("id = ? AND tenant_id = ? AND version = ?", dto.ID, dto.TenantID, aggregate.Version()).
		Select("*").Omit(clause.Associations).
		Updates(&dto)
	if result.Error != nil {
		return batch.Batch{}, result.Error
	}
	if result.RowsAffected == 0 {
		return batch.Batch{}, r.missOrConflict(ctx, aggregate.TenantID(), aggregate.ID())
	}

	if err := replaceChildren(db, dto); err != nil {
		return batch.Batch{}, err
	}

	saved, err := toDomain(dto)
	if err != nil {
		return batch.Batch{}, err
	}
	r.tracker.TrackAggregate(saved.ID(), saved)
	return saved, nil
}

func (r *GormBatchRepository) Get(ctx context.Context, tenantID, id kernel.UUID) (batch.Batch, error) {
	if err := errors.Join(tenantID.Validate(), id.Validate()); err != nil {
		return batch.Batch{}, err
	}

	var dto BatchDTO
	err := preloadChildren(r.db.WithContext(ctx)).
		First(&dto, "id = ? AND tenant_id = ?", id.Bytes(), tenantID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return batch.Batch{}, errs.NewObjectNotFoundError("batch", id.String())
		}
		return batch.Batch{}, err
	}

	return toDomain(dto)
}

func (r *GormBatchRepository) Delete(ctx context.Context, tenantID, id kernel.UUID) error {
	if err := errors.Join(tenantID.Validate(), id.Validate()); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", id.Bytes(), tenantID.Bytes()).
		Delete(&BatchDTO{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("batch", id.String())
	}
	return nil
}

func (r *GormBatchRepository) List(ctx context.Context, tenantID kernel.UUID, filter ports.BatchFilter) ([]batch.Batch, error) {
	if err := tenantID.Validate(); err != nil {
		return nil, err
	}

	q := preloadChildren(r.db.WithContext(ctx)).Where("tenant_id = ?", tenantID.Bytes())
	if filter.Status != nil {
		q = q.Where("status = ?", filter.Status.String())
	}
	if filter.MixOrderID != nil {
		q = q.Where("mix_order_id = ?", filter.MixOrderID.Bytes())
	}

	page := filter.Page.Normalized()
	var dtos []BatchDTO
	if err := q.Order("start_at DESC, id").Limit(page.Limit).Offset(page.Offset).Find(&dtos).Error; err != nil {
		return nil, err
	}
	return toDomainAll(dtos)
}

func (r *GormBatchRepository) ListChildren(ctx context.Context, tenantID, id kernel.UUID) ([]batch.Batch, error) {
	if err := errors.Join(tenantID.Validate(), id.Validate()); err != nil {
		return nil, err
	}

	var dtos []BatchDTO
	err := preloadChildren(r.db.WithContext(ctx)).
		Where("tenant_id = ? AND ? = ANY(parent_batches)", tenantID.Bytes(), id.String()).
		Order("start_at, id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}
	return toDomainAll(dtos)
}

func (r *GormBatchRepository) missOrConflict(ctx context.Context, tenantID, id kernel.UUID) error {
	var count int64
	err := r.db.WithContext(ctx).Model(&BatchDTO{}).
		Where("id = ? AND tenant_id = ?", id.Bytes(), tenantID.Bytes()).
		Count(&count).Error
	switch {
	case err != nil:
		return err
	case count == 0:
		return errs.NewObjectNotFoundError("batch", id.String())
	default:
		return errs.NewVersionIsInvalidError("batch " + id.String())
	}
}

func preloadChildren(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Inputs", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Preload("Outputs", func(db *gorm.DB) *gorm.DB { return db.Order("position") })
}

func replaceChildren(db *gorm.DB, dto BatchDTO) error {
	if err := db.Where("batch_id = ?", dto.ID).Delete(&InputDTO{}).Error; err != nil {
		return err
	}
	if err := db.Where("batch_id = ?", dto.ID).Delete(&OutputLotDTO{}).Error; err != nil {
		return err
	}
	if len(dto.Inputs) > 0 {
		if err := db.Create(&dto.Inputs).Error; err != nil {
			return err
		}
	}
	if len(dto.Outputs) > 0 {
		if err := db.Create(&dto.Outputs).Error; err != nil {
			return err
		}
	}
	return nil
}

func toDomainAll(dtos []BatchDTO) ([]batch.Batch, error) {
	batches := make([]batch.Batch, 0, len(dtos))
	for _, dto := range dtos {
		b, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		batches = append(batches, b)
	}
	return batches, nil
}
