package mixorderrepo

import (
	"context"
	"errors"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/mixorder"
	"production/internal/core/ports"
	"production/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormMixOrderRepository implements ports.MixOrderRepository using GORM.
type GormMixOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormMixOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormMixOrderRepository {
	return &GormMixOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new mix order.
func (r *GormMixOrderRepository) Add(ctx context.Context, aggregate mixorder.MixOrder) error {
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

// Update writes the order if the stored version still matches and returns it with the next version.
func (r *GormMixOrderRepository) Update(ctx context.Context, aggregate mixorder.MixOrder) (mixorder.MixOrder, error) {
	if err := aggregate.Validate(); err != nil {
		return mixorder.MixOrder{}, err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return mixorder.MixOrder{}, err
	}
	dto.Version = aggregate.Version() + 1

	result := r.db.WithContext(ctx).Model(&MixOrderDTO{}).
		Where("id = ? AND tenant_id = ? AND version = ?", dto.ID, dto.TenantID, aggregate.Version()).
		Select("*").Omit(clause.Associations).
		Updates(&dto)
	if result.Error != nil {
		return mixorder.MixOrder{}, result.Error
	}
	if result.RowsAffected == 0 {
		return mixorder.MixOrder{}, r.missOrConflict(ctx, aggregate.TenantID(), aggregate.ID())
	}

	saved, err := toDomain(dto)
	if err != nil {
		return mixorder.MixOrder{}, err
	}
	r.tracker.TrackAggregate(saved.ID(), saved)
	return saved, nil
}

// Get retrieves an order of the tenant by ID.
func (r *GormMixOrderRepository) Get(ctx context.Context, tenantID, id kernel.UUID) (mixorder.MixOrder, error) {
	if err := errors.Join(tenantID.Validate(), id.Validate()); err != nil {
		return mixorder.MixOrder{}, err
	}

	var dto MixOrderDTO
	err := r.db.WithContext(ctx).First(&dto, "id = ? AND tenant_id = ?", id.Bytes(), tenantID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return mixorder.MixOrder{}, errs.NewObjectNotFoundError("mixOrder", id.String())
		}
		return mixorder.MixOrder{}, err
	}

	return toDomain(dto)
}

func (r *GormMixOrderRepository) Delete(ctx context.Context, tenantID, id kernel.UUID) error {
	if err := errors.Join(tenantID.Validate(), id.Validate()); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", id.Bytes(), tenantID.Bytes()).
		Delete(&MixOrderDTO{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("mixOrder", id.String())
	}
	return nil
}

// List returns the tenant's orders matching filter, latest planned first.
func (r *GormMixOrderRepository) List(
	ctx context.Context,
	tenantID kernel.UUID,
	filter ports.MixOrderFilter,
) ([]mixorder.MixOrder, error) {
	if err := tenantID.Validate(); err != nil {
		return nil, err
	}

	q := r.db.WithContext(ctx).Where("tenant_id = ?", tenantID.Bytes())
	if filter.Status != nil {
		q = q.Where("status = ?", filter.Status.String())
	}
	if filter.Type != nil {
		q = q.Where("type = ?", filter.Type.String())
	}
	if filter.RecipeID != nil {
		q = q.Where("recipe_id = ?", filter.RecipeID.Bytes())
	}
	if filter.CustomerID != nil {
		q = q.Where("customer_id = ?", filter.CustomerID.Bytes())
	}
	if filter.MobileUnitID != nil {
		q = q.Where("mobile_unit_id = ?", filter.MobileUnitID.Bytes())
	}
	if filter.PlannedFrom != nil {
		q = q.Where("planned_at >= ?", *filter.PlannedFrom)
	}
	if filter.PlannedTo != nil {
		q = q.Where("planned_at < ?", *filter.PlannedTo)
	}

	page := filter.Page.Normalized()
	var dtos []MixOrderDTO
	if err := q.Order("planned_at DESC, id").Limit(page.Limit).Offset(page.Offset).Find(&dtos).Error; err != nil {
		return nil, err
	}

	orders := make([]mixorder.MixOrder, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}

func (r *GormMixOrderRepository) missOrConflict(ctx context.Context, tenantID, id kernel.UUID) error {
	var count int64
	err := r.db.WithContext(ctx).Model(&MixOrderDTO{}).
		Where("id = ? AND tenant_id = ?", id.Bytes(), tenantID.Bytes()).
		Count(&count).Error
	switch {
	case err != nil:
		return err
	case count == 0:
		return errs.NewObjectNotFoundError("mixOrder", id.String())
	default:
		return errs.NewVersionIsInvalidError("mixOrder " + id.String())
	}
}
