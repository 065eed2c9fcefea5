// Package mixorderrepo persists mix order aggregates with GORM. Scalar
// attributes map to columns that back the filtered listings and statistics;
// the step log is stored as a JSONB document.
package mixorderrepo

import (
	"encoding/json"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/mixorder"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// MixOrderDTO is the row shape of the mix_orders table.
type MixOrderDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:ux_mix_orders_tenant_number,priority:1;index:ix_mix_orders_tenant_status,priority:1"`
	OrderNumber  string    `gorm:"type:varchar(64);not null;uniqueIndex:ux_mix_orders_tenant_number,priority:2"`
	Type         string    `gorm:"type:varchar(16);not null"`
	RecipeID     uuid.UUID `gorm:"type:uuid;not null;index"`
	TargetQtyKg  float64   `gorm:"not null"`
	PlannedAt    time.Time `gorm:"not null;index"`
	LocationLat  *float64
	LocationLng  *float64
	CustomerID   *uuid.UUID     `gorm:"type:uuid;index"`
	MobileUnitID *uuid.UUID     `gorm:"type:uuid;index"`
	Status       string         `gorm:"type:varchar(16);not null;index:ix_mix_orders_tenant_status,priority:2"`
	Notes        string         `gorm:"type:text"`
	Steps        datatypes.JSON `gorm:"type:jsonb;not null"`
	// FirstStepAt and LastStepEndedAt are derived from Steps for duration statistics.
	FirstStepAt     *time.Time
	LastStepEndedAt *time.Time
	CreatedAt       time.Time `gorm:"not null;autoCreateTime:false"`
	UpdatedAt       time.Time `gorm:"not null;autoUpdateTime:false"`
	CreatedBy       string    `gorm:"type:varchar(255)"`
	UpdatedBy       string    `gorm:"type:varchar(255)"`
	Version         int       `gorm:"not null"`
}

func (MixOrderDTO) TableName() string {
	return "mix_orders"
}

func fromDomain(o mixorder.MixOrder) (MixOrderDTO, error) {
	doc := o.ToDocument()
	steps, err := json.Marshal(doc.Steps)
	if err != nil {
		return MixOrderDTO{}, err
	}

	dto := MixOrderDTO{
		ID:           o.ID().Bytes(),
		TenantID:     o.TenantID().Bytes(),
		OrderNumber:  o.OrderNumber(),
		Type:         doc.Type,
		RecipeID:     o.RecipeID().Bytes(),
		TargetQtyKg:  o.TargetQtyKg(),
		PlannedAt:    o.PlannedAt(),
		CustomerID:   optionalBytes(o.CustomerID()),
		MobileUnitID: optionalBytes(o.MobileUnitID()),
		Status:       doc.Status,
		Notes:        o.Notes(),
		Steps:        datatypes.JSON(steps),
		CreatedAt:    o.CreatedAt(),
		UpdatedAt:    o.UpdatedAt(),
		CreatedBy:    o.CreatedBy(),
		UpdatedBy:    o.UpdatedBy(),
		Version:      o.Version(),
	}
	if loc := o.Location(); loc != nil {
		lat, lng := loc.Lat(), loc.Lng()
		dto.LocationLat, dto.LocationLng = &lat, &lng
	}
	if n := len(doc.Steps); n > 0 {
		first := doc.Steps[0].StartedAt
		dto.FirstStepAt = &first
		dto.LastStepEndedAt = doc.Steps[n-1].EndedAt
	}
	return dto, nil
}

func toDomain(dto MixOrderDTO) (mixorder.MixOrder, error) {
	var steps []mixorder.StepDocument
	if len(dto.Steps) > 0 {
		if err := json.Unmarshal(dto.Steps, &steps); err != nil {
			return mixorder.MixOrder{}, err
		}
	}

	doc := mixorder.Document{
		ID:           dto.ID.String(),
		TenantID:     dto.TenantID.String(),
		OrderNumber:  dto.OrderNumber,
		Type:         dto.Type,
		RecipeID:     dto.RecipeID.String(),
		TargetQtyKg:  dto.TargetQtyKg,
		PlannedAt:    dto.PlannedAt,
		CustomerID:   optionalString(dto.CustomerID),
		MobileUnitID: optionalString(dto.MobileUnitID),
		Status:       dto.Status,
		Notes:        dto.Notes,
		Steps:        steps,
		CreatedAt:    dto.CreatedAt,
		UpdatedAt:    dto.UpdatedAt,
		CreatedBy:    dto.CreatedBy,
		UpdatedBy:    dto.UpdatedBy,
		Version:      dto.Version,
	}
	if dto.LocationLat != nil && dto.LocationLng != nil {
		doc.Location = &kernel.GeoPointDocument{Lat: *dto.LocationLat, Lng: *dto.LocationLng}
	}
	return mixorder.FromDocument(doc)
}

func optionalBytes(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func optionalString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}
