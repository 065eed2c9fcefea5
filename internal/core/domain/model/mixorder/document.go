package mixorder

import (
	"encoding/json"
	"errors"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"
)

// Document is the persisted/transmitted JSON shape of a mix order.
type Document struct {
	ID           string                   `json:"id"`
	TenantID     string                   `json:"tenantId"`
	OrderNumber  string                   `json:"orderNumber"`
	Type         string                   `json:"type"`
	RecipeID     string                   `json:"recipeId"`
	TargetQtyKg  float64                  `json:"targetQtyKg"`
	PlannedAt    time.Time                `json:"plannedAt"`
	Location     *kernel.GeoPointDocument `json:"location,omitempty"`
	CustomerID   *string                  `json:"customerId,omitempty"`
	MobileUnitID *string                  `json:"mobileUnitId,omitempty"`
	Status       string                   `json:"status"`
	Notes        string                   `json:"notes,omitempty"`
	Steps        []StepDocument           `json:"steps"`
	CreatedAt    time.Time                `json:"createdAt"`
	UpdatedAt    time.Time                `json:"updatedAt"`
	CreatedBy    string                   `json:"createdBy,omitempty"`
	UpdatedBy    string                   `json:"updatedBy,omitempty"`
	Version      int                      `json:"version"`
}

// StepDocument is the JSON shape of a Step.
type StepDocument struct {
	Type        string           `json:"type"`
	StartedAt   time.Time        `json:"startedAt"`
	EndedAt     *time.Time       `json:"endedAt,omitempty"`
	EquipmentID string           `json:"equipmentId,omitempty"`
	Actuals     *ActualsDocument `json:"actuals,omitempty"`
}

// ActualsDocument is the JSON shape of Actuals.
type ActualsDocument struct {
	MassKg          *float64 `json:"massKg,omitempty"`
	TimeSec         *float64 `json:"timeSec,omitempty"`
	EnergyKWh       *float64 `json:"energyKWh,omitempty"`
	MoisturePercent *float64 `json:"moisturePercent,omitempty"`
}

func (o MixOrder) ToDocument() Document {
	var location *kernel.GeoPointDocument
	if o.location != nil {
		d := o.location.ToDocument()
		location = &d
	}

	steps := make([]StepDocument, 0, len(o.steps))
	for _, s := range o.steps {
		steps = append(steps, s.ToDocument())
	}

	return Document{
		ID:           o.id.String(),
		TenantID:     o.tenantID.String(),
		OrderNumber:  o.orderNumber,
		Type:         o.orderType.String(),
		RecipeID:     o.recipeID.String(),
		TargetQtyKg:  o.targetQtyKg,
		PlannedAt:    o.plannedAt,
		Location:     location,
		CustomerID:   kernel.OptionalString(o.customerID),
		MobileUnitID: kernel.OptionalString(o.mobileUnitID),
		Status:       o.status.String(),
		Notes:        o.notes,
		Steps:        steps,
		CreatedAt:    o.createdAt,
		UpdatedAt:    o.updatedAt,
		CreatedBy:    o.createdBy,
		UpdatedBy:    o.updatedBy,
		Version:      o.version,
	}
}

func (s Step) ToDocument() StepDocument {
	doc := StepDocument{
		Type:        string(s.stepType),
		StartedAt:   s.startedAt,
		EndedAt:     s.EndedAt(),
		EquipmentID: s.equipmentID,
	}
	if s.actuals != nil {
		a := s.actuals.clone()
		doc.Actuals = &ActualsDocument{
			MassKg:          a.MassKg,
			TimeSec:         a.TimeSec,
			EnergyKWh:       a.EnergyKWh,
			MoisturePercent: a.MoisturePercent,
		}
	}
	return doc
}

// StepFromDocument builds a Step from its JSON shape.
func StepFromDocument(doc StepDocument) (Step, error) {
	var actuals *Actuals
	if doc.Actuals != nil {
		actuals = &Actuals{
			MassKg:          doc.Actuals.MassKg,
			TimeSec:         doc.Actuals.TimeSec,
			EnergyKWh:       doc.Actuals.EnergyKWh,
			MoisturePercent: doc.Actuals.MoisturePercent,
		}
	}
	return NewStep(StepType(doc.Type), doc.StartedAt, doc.EndedAt, doc.EquipmentID, actuals)
}

// FromDocument restores a mix order from its JSON shape.
func FromDocument(doc Document) (MixOrder, error) {
	id, idErr := kernel.UUIDFromString(doc.ID)
	tenantID, tenantErr := kernel.UUIDFromString(doc.TenantID)
	recipeID, recipeErr := kernel.UUIDFromString(doc.RecipeID)
	orderType, typeErr := ParseType(doc.Type)
	status, statusErr := ParseStatus(doc.Status)
	location, locationErr := kernel.GeoPointFromDocument(doc.Location)
	customerID, customerErr := kernel.ParseOptionalUUID("customerId", doc.CustomerID)
	mobileUnitID, unitErr := kernel.ParseOptionalUUID("mobileUnitId", doc.MobileUnitID)

	if err := errors.Join(
		wrapField("id", idErr),
		wrapField("tenantId", tenantErr),
		wrapField("recipeId", recipeErr),
		typeErr, statusErr, locationErr, customerErr, unitErr,
	); err != nil {
		return MixOrder{}, err
	}

	steps := make([]Step, 0, len(doc.Steps))
	for _, sd := range doc.Steps {
		step, err := StepFromDocument(sd)
		if err != nil {
			return MixOrder{}, err
		}
		steps = append(steps, step)
	}

	return Restore(State{
		Params: Params{
			TenantID:     tenantID,
			OrderNumber:  doc.OrderNumber,
			Type:         orderType,
			RecipeID:     recipeID,
			TargetQtyKg:  doc.TargetQtyKg,
			PlannedAt:    doc.PlannedAt,
			Location:     location,
			CustomerID:   customerID,
			MobileUnitID: mobileUnitID,
			Notes:        doc.Notes,
			CreatedBy:    doc.CreatedBy,
		},
		ID:        id,
		Status:    status,
		Steps:     steps,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
		UpdatedBy: doc.UpdatedBy,
		Version:   doc.Version,
	})
}

func (o MixOrder) MarshalJSON() ([]byte, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(o.ToDocument())
}

func (o *MixOrder) UnmarshalJSON(data []byte) error {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	restored, err := FromDocument(doc)
	if err != nil {
		return err
	}
	*o = restored
	return nil
}

func wrapField(name string, err error) error {
	if err == nil {
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause(name, err)
}
