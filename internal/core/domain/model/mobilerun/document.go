package mobilerun

import (
	"encoding/json"
	"errors"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"
)

// Document is the persisted/transmitted JSON shape of a mobile run.
type Document struct {
	ID                string                     `json:"id"`
	TenantID          string                     `json:"tenantId"`
	MobileUnitID      string                     `json:"mobileUnitId"`
	VehicleID         *string                    `json:"vehicleId,omitempty"`
	OperatorID        string                     `json:"operatorId"`
	Site              SiteDocument               `json:"site"`
	PowerSource       string                     `json:"powerSource"`
	CalibrationCheck  CalibrationCheckDocument   `json:"calibrationCheck"`
	StartAt           time.Time                  `json:"startAt"`
	EndAt             *time.Time                 `json:"endAt,omitempty"`
	CleaningSequences []CleaningSequenceDocument `json:"cleaningSequences"`
	Version           int                        `json:"version"`
}

type SiteDocument struct {
	CustomerID string                  `json:"customerId"`
	Location   kernel.GeoPointDocument `json:"location"`
}

type CalibrationCheckDocument struct {
	ScaleOK       bool      `json:"scaleOk"`
	MoistureOK    bool      `json:"moistureOk"`
	TemperatureOK bool      `json:"temperatureOk"`
	Date          time.Time `json:"date"`
	ValidatedBy   string    `json:"validatedBy"`
	Notes         string    `json:"notes,omitempty"`
}

type CleaningSequenceDocument struct {
	ID              string     `json:"id"`
	Type            string     `json:"type"`
	StartedAt       time.Time  `json:"startedAt"`
	EndedAt         *time.Time `json:"endedAt,omitempty"`
	UsedMaterialSKU string     `json:"usedMaterialSku,omitempty"`
	FlushMassKg     *float64   `json:"flushMassKg,omitempty"`
	ValidatedBy     string     `json:"validatedBy"`
	Notes           string     `json:"notes,omitempty"`
}

func (c CalibrationCheck) ToDocument() CalibrationCheckDocument {
	return CalibrationCheckDocument{
		ScaleOK:       c.ScaleOK,
		MoistureOK:    c.MoistureOK,
		TemperatureOK: c.TemperatureOK,
		Date:          c.Date,
		ValidatedBy:   c.ValidatedBy,
		Notes:         c.Notes,
	}
}

func CalibrationCheckFromDocument(doc CalibrationCheckDocument) CalibrationCheck {
	return CalibrationCheck{
		ScaleOK:       doc.ScaleOK,
		MoistureOK:    doc.MoistureOK,
		TemperatureOK: doc.TemperatureOK,
		Date:          doc.Date,
		ValidatedBy:   doc.ValidatedBy,
		Notes:         doc.Notes,
	}
}

func (s CleaningSequence) ToDocument() CleaningSequenceDocument {
	return CleaningSequenceDocument{
		ID:              s.id.String(),
		Type:            string(s.cleaningType),
		StartedAt:       s.startedAt,
		EndedAt:         s.EndedAt(),
		UsedMaterialSKU: s.usedMaterialSKU,
		FlushMassKg:     s.FlushMassKg(),
		ValidatedBy:     s.validatedBy,
		Notes:           s.notes,
	}
}

// CleaningSequenceFromDocument builds a CleaningSequence from its JSON shape.
func CleaningSequenceFromDocument(doc CleaningSequenceDocument) (CleaningSequence, error) {
	id, err := kernel.UUIDFromString(doc.ID)
	if err != nil {
		return CleaningSequence{}, errs.NewValueIsInvalidErrorWithCause("cleaning sequence id", err)
	}
	return NewCleaningSequence(CleaningSequenceParams{
		ID:              id,
		Type:            CleaningType(doc.Type),
		StartedAt:       doc.StartedAt,
		EndedAt:         doc.EndedAt,
		UsedMaterialSKU: doc.UsedMaterialSKU,
		FlushMassKg:     doc.FlushMassKg,
		ValidatedBy:     doc.ValidatedBy,
		Notes:           doc.Notes,
	})
}

func (r MobileRun) ToDocument() Document {
	sequences := make([]CleaningSequenceDocument, 0, len(r.cleaningSequences))
	for _, s := range r.cleaningSequences {
		sequences = append(sequences, s.ToDocument())
	}
	return Document{
		ID:           r.id.String(),
		TenantID:     r.tenantID.String(),
		MobileUnitID: r.mobileUnitID.String(),
		VehicleID:    kernel.OptionalString(r.vehicleID),
		OperatorID:   r.operatorID.String(),
		Site: SiteDocument{
			CustomerID: r.site.CustomerID.String(),
			Location:   r.site.Location.ToDocument(),
		},
		PowerSource:       string(r.powerSource),
		CalibrationCheck:  r.calibration.ToDocument(),
		StartAt:           r.startAt,
		EndAt:             r.EndAt(),
		CleaningSequences: sequences,
		Version:           r.version,
	}
}

// FromDocument restores a run from its JSON shape. now bounds the calibration date.
func FromDocument(doc Document, now time.Time) (MobileRun, error) {
	id, idErr := kernel.UUIDFromString(doc.ID)
	tenantID, tenantErr := kernel.UUIDFromString(doc.TenantID)
	unitID, unitErr := kernel.UUIDFromString(doc.MobileUnitID)
	operatorID, operatorErr := kernel.UUIDFromString(doc.OperatorID)
	customerID, customerErr := kernel.UUIDFromString(doc.Site.CustomerID)
	vehicleID, vehicleErr := kernel.ParseOptionalUUID("vehicleId", doc.VehicleID)
	location, locationErr := kernel.GeoPointFromDocument(&doc.Site.Location)
	if err := errors.Join(
		fieldError("id", idErr),
		fieldError("tenantId", tenantErr),
		fieldError("mobileUnitId", unitErr),
		fieldError("operatorId", operatorErr),
		fieldError("site.customerId", customerErr),
		vehicleErr,
		locationErr,
	); err != nil {
		return MobileRun{}, err
	}

	sequences := make([]CleaningSequence, 0, len(doc.CleaningSequences))
	for _, raw := range doc.CleaningSequences {
		seq, err := CleaningSequenceFromDocument(raw)
		if err != nil {
			return MobileRun{}, err
		}
		sequences = append(sequences, seq)
	}

	return Restore(State{
		Params: Params{
			TenantID:     tenantID,
			MobileUnitID: unitID,
			VehicleID:    vehicleID,
			OperatorID:   operatorID,
			Site:         Site{CustomerID: customerID, Location: *location},
			PowerSource:  PowerSource(doc.PowerSource),
			Calibration:  CalibrationCheckFromDocument(doc.CalibrationCheck),
			StartAt:      doc.StartAt,
		},
		ID:                id,
		EndAt:             doc.EndAt,
		CleaningSequences: sequences,
		Version:           doc.Version,
	}, now)
}

func (r MobileRun) MarshalJSON() ([]byte, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(r.ToDocument())
}

// UnmarshalJSON bounds the calibration date by the wall clock.
func (r *MobileRun) UnmarshalJSON(data []byte) error {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	restored, err := FromDocument(doc, kernel.SystemClock{}.Now())
	if err != nil {
		return err
	}
	*r = restored
	return nil
}

func fieldError(name string, err error) error {
	if err == nil {
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause(name, err)
}
