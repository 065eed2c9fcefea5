package mobilerunrepo

import (
	"encoding/json"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/mobilerun"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type MobileRunDTO struct {
	ID                uuid.UUID      `gorm:"type:uuid;primaryKey"`
	TenantID          uuid.UUID      `gorm:"type:uuid;not null;index"`
	MobileUnitID      uuid.UUID      `gorm:"type:uuid;not null;index"`
	VehicleID         *uuid.UUID     `gorm:"type:uuid"`
	OperatorID        uuid.UUID      `gorm:"type:uuid;not null"`
	SiteCustomerID    uuid.UUID      `gorm:"type:uuid;not null"`
	SiteLat           float64        `gorm:"not null"`
	SiteLng           float64        `gorm:"not null"`
	PowerSource       string         `gorm:"type:varchar(16);not null"`
	Calibration       CalibrationDTO `gorm:"embedded;embeddedPrefix:calibration_"`
	StartAt           time.Time      `gorm:"not null"`
	EndAt             *time.Time     `gorm:"index"`
	CleaningSequences datatypes.JSON `gorm:"type:jsonb;not null"`
	Version           int            `gorm:"not null"`
}

func (MobileRunDTO) TableName() string {
	return "mobile_runs"
}

type CalibrationDTO struct {
	ScaleOK       bool
	MoistureOK    bool
	TemperatureOK bool
	Date          time.Time
	ValidatedBy   string `gorm:"type:varchar(255)"`
	Notes         string `gorm:"type:text"`
}

func fromDomain(r mobilerun.MobileRun) (MobileRunDTO, error) {
	doc := r.ToDocument()
	sequences, err := json.Marshal(doc.CleaningSequences)
	if err != nil {
		return MobileRunDTO{}, err
	}

	var vehicleID *uuid.UUID
	if v := r.VehicleID(); v != nil {
		raw := v.Bytes()
		vehicleID = &raw
	}
	site := r.Site()
	check := r.CalibrationCheck()

	return MobileRunDTO{
		ID:             r.ID().Bytes(),
		TenantID:       r.TenantID().Bytes(),
		MobileUnitID:   r.MobileUnitID().Bytes(),
		VehicleID:      vehicleID,
		OperatorID:     r.OperatorID().Bytes(),
		SiteCustomerID: site.CustomerID.Bytes(),
		SiteLat:        site.Location.Lat(),
		SiteLng:        site.Location.Lng(),
		PowerSource:    doc.PowerSource,
		Calibration: CalibrationDTO{
			ScaleOK:       check.ScaleOK,
			MoistureOK:    check.MoistureOK,
			TemperatureOK: check.TemperatureOK,
			Date:          check.Date,
			ValidatedBy:   check.ValidatedBy,
			Notes:         check.Notes,
		},
		StartAt:           r.StartAt(),
		EndAt:             r.EndAt(),
		CleaningSequences: datatypes.JSON(sequences),
		Version:           r.Version(),
	}, nil
}

func toDomain(dto MobileRunDTO, now time.Time) (mobilerun.MobileRun, error) {
	var sequences []mobilerun.CleaningSequenceDocument
	if len(dto.CleaningSequences) > 0 {
		if err := json.Unmarshal(dto.CleaningSequences, &sequences); err != nil {
			return mobilerun.MobileRun{}, err
		}
	}

	var vehicleID *string
	if dto.VehicleID != nil {
		s := dto.VehicleID.String()
		vehicleID = &s
	}

	return mobilerun.FromDocument(mobilerun.Document{
		ID:           dto.ID.String(),
		TenantID:     dto.TenantID.String(),
		MobileUnitID: dto.MobileUnitID.String(),
		VehicleID:    vehicleID,
		OperatorID:   dto.OperatorID.String(),
		Site: mobilerun.SiteDocument{
			CustomerID: dto.SiteCustomerID.String(),
			Location:   kernel.GeoPointDocument{Lat: dto.SiteLat, Lng: dto.SiteLng},
		},
		PowerSource: dto.PowerSource,
		CalibrationCheck: mobilerun.CalibrationCheckDocument{
			ScaleOK:       dto.Calibration.ScaleOK,
			MoistureOK:    dto.Calibration.MoistureOK,
			TemperatureOK: dto.Calibration.TemperatureOK,
			Date:          dto.Calibration.Date,
			ValidatedBy:   dto.Calibration.ValidatedBy,
			Notes:         dto.Calibration.Notes,
		},
		StartAt:           dto.StartAt,
		EndAt:             dto.EndAt,
		CleaningSequences: sequences,
		Version:           dto.Version,
	}, now)
}
