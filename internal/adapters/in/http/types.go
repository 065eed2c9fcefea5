package http

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

const (
	HeaderTenantID      = "X-Tenant-ID"
	HeaderActor         = "X-Actor"
	HeaderCorrelationID = "X-Correlation-ID"
)

// Error defines model for Error.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Actuals struct {
	MassKg          *float64 `json:"massKg,omitempty"`
	TimeSec         *float64 `json:"timeSec,omitempty"`
	EnergyKWh       *float64 `json:"energyKWh,omitempty"`
	MoisturePercent *float64 `json:"moisturePercent,omitempty"`
}

type CreateMixOrderRequest struct {
	OrderNumber  string              `json:"orderNumber"`
	Type         string              `json:"type"`
	RecipeId     openapi_types.UUID  `json:"recipeId"`
	TargetQtyKg  float64             `json:"targetQtyKg"`
	PlannedAt    time.Time           `json:"plannedAt"`
	Location     *GeoPoint           `json:"location,omitempty"`
	CustomerId   *openapi_types.UUID `json:"customerId,omitempty"`
	MobileUnitId *openapi_types.UUID `json:"mobileUnitId,omitempty"`
	Notes        string              `json:"notes,omitempty"`
}

type MixOrderTransitionRequest struct {
	Action string `json:"action"`
	Reason string `json:"reason,omitempty"`
}

type MixStep struct {
	Type        string     `json:"type"`
	StartedAt   time.Time  `json:"startedAt"`
	EndedAt     *time.Time `json:"endedAt,omitempty"`
	EquipmentId string     `json:"equipmentId,omitempty"`
	Actuals     *Actuals   `json:"actuals,omitempty"`
}

type MixStepPatchRequest struct {
	Type        *string    `json:"type,omitempty"`
	StartedAt   *time.Time `json:"startedAt,omitempty"`
	EndedAt     *time.Time `json:"endedAt,omitempty"`
	EquipmentId *string    `json:"equipmentId,omitempty"`
	Actuals     *Actuals   `json:"actuals,omitempty"`
}

type EndMixStepRequest struct {
	EndedAt *time.Time `json:"endedAt,omitempty"`
	Actuals *Actuals   `json:"actuals,omitempty"`
}

type BatchInput struct {
	IngredientLotId openapi_types.UUID `json:"ingredientLotId"`
	PlannedKg       float64            `json:"plannedKg"`
	ActualKg        float64            `json:"actualKg"`
}

type CreateBatchRequest struct {
	BatchNumber   string               `json:"batchNumber"`
	MixOrderId    openapi_types.UUID   `json:"mixOrderId"`
	ProducedQtyKg float64              `json:"producedQtyKg"`
	StartAt       time.Time            `json:"startAt"`
	EndAt         *time.Time           `json:"endAt,omitempty"`
	ParentBatches []openapi_types.UUID `json:"parentBatches,omitempty"`
	Labels        []string             `json:"labels,omitempty"`
	Inputs        []BatchInput         `json:"inputs,omitempty"`
}

type BatchTransitionRequest struct {
	Action string `json:"action"`
	Reason string `json:"reason,omitempty"`
}

type Packing struct {
	Form string   `json:"form"`
	Size *float64 `json:"size,omitempty"`
	Unit string   `json:"unit,omitempty"`
}

type AddBatchOutputRequest struct {
	LotNumber       string   `json:"lotNumber"`
	QtyKg           float64  `json:"qtyKg"`
	Packing         Packing  `json:"packing"`
	Destination     string   `json:"destination"`
	GmpPlusMarkings []string `json:"gmpPlusMarkings,omitempty"`
}

type AddParentBatchRequest struct {
	ParentBatchId openapi_types.UUID `json:"parentBatchId"`
}

type ChangeBatchLabelRequest struct {
	Label  string `json:"label"`
	Remove bool   `json:"remove,omitempty"`
}

type EndAtRequest struct {
	EndAt *time.Time `json:"endAt,omitempty"`
}

type Site struct {
	CustomerId openapi_types.UUID `json:"customerId"`
	Location   GeoPoint           `json:"location"`
}

type CalibrationCheck struct {
	ScaleOk       bool      `json:"scaleOk"`
	MoistureOk    bool      `json:"moistureOk"`
	TemperatureOk bool      `json:"temperatureOk"`
	Date          time.Time `json:"date"`
	ValidatedBy   string    `json:"validatedBy"`
	Notes         string    `json:"notes,omitempty"`
}

type StartMobileRunRequest struct {
	MobileUnitId     openapi_types.UUID  `json:"mobileUnitId"`
	VehicleId        *openapi_types.UUID `json:"vehicleId,omitempty"`
	OperatorId       openapi_types.UUID  `json:"operatorId"`
	Site             Site                `json:"site"`
	PowerSource      string              `json:"powerSource,omitempty"`
	CalibrationCheck CalibrationCheck    `json:"calibrationCheck"`
	StartAt          time.Time           `json:"startAt"`
}

type AddCleaningSequenceRequest struct {
	Type            string     `json:"type"`
	StartedAt       time.Time  `json:"startedAt"`
	EndedAt         *time.Time `json:"endedAt,omitempty"`
	UsedMaterialSku string     `json:"usedMaterialSku,omitempty"`
	FlushMassKg     *float64   `json:"flushMassKg,omitempty"`
	ValidatedBy     string     `json:"validatedBy"`
	Notes           string     `json:"notes,omitempty"`
}

type EndCleaningSequenceRequest struct {
	EndedAt *time.Time `json:"endedAt,omitempty"`
	Notes   string     `json:"notes,omitempty"`
}

type ChangeoverPlan struct {
	Required           bool       `json:"required"`
	CleaningType       string     `json:"cleaningType,omitempty"`
	Reason             string     `json:"reason"`
	LastCleaningAt     *time.Time `json:"lastCleaningAt,omitempty"`
	CalibrationAgeDays int        `json:"calibrationAgeDays"`
	CalibrationExpired bool       `json:"calibrationExpired"`
}
