package http

import (
	"errors"

	"production/internal/core/application/usecases/commands"
	"production/internal/core/domain/model/batch"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/mixorder"
	"production/internal/core/domain/model/mobilerun"
	"production/internal/core/ports"
	"production/internal/pkg/errs"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

func toUUID(name string, id openapi_types.UUID) (kernel.UUID, error) {
	parsed, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return parsed, nil
}

func toOptionalUUID(name string, id *openapi_types.UUID) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil
	}
	parsed, err := toUUID(name, *id)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func toEnvelope(headers RequestHeaders) (commands.Envelope, error) {
	tenantID, err := toUUID(HeaderTenantID, headers.TenantID)
	if err != nil {
		return commands.Envelope{}, err
	}
	correlationID, err := toOptionalUUID(HeaderCorrelationID, headers.CorrelationID)
	if err != nil {
		return commands.Envelope{}, err
	}
	var actor string
	if headers.Actor != nil {
		actor = *headers.Actor
	}
	return commands.NewEnvelope(tenantID, actor, correlationID)
}

func toGeoPoint(p *GeoPoint) (*kernel.GeoPoint, error) {
	if p == nil {
		return nil, nil
	}
	point, err := kernel.NewGeoPoint(p.Lat, p.Lng)
	if err != nil {
		return nil, err
	}
	return &point, nil
}

func toActuals(a *Actuals) *mixorder.Actuals {
	if a == nil {
		return nil
	}
	return &mixorder.Actuals{
		MassKg:          a.MassKg,
		TimeSec:         a.TimeSec,
		EnergyKWh:       a.EnergyKWh,
		MoisturePercent: a.MoisturePercent,
	}
}

func toMixOrderParams(env commands.Envelope, req CreateMixOrderRequest) (mixorder.Params, error) {
	orderType, typeErr := mixorder.ParseType(req.Type)
	recipeID, recipeErr := toUUID("recipeId", req.RecipeId)
	location, locationErr := toGeoPoint(req.Location)
	customerID, customerErr := toOptionalUUID("customerId", req.CustomerId)
	mobileUnitID, unitErr := toOptionalUUID("mobileUnitId", req.MobileUnitId)
	if err := errors.Join(typeErr, recipeErr, locationErr, customerErr, unitErr); err != nil {
		return mixorder.Params{}, err
	}

	return mixorder.Params{
		TenantID:     env.TenantID(),
		OrderNumber:  req.OrderNumber,
		Type:         orderType,
		RecipeID:     recipeID,
		TargetQtyKg:  req.TargetQtyKg,
		PlannedAt:    req.PlannedAt,
		Location:     location,
		CustomerID:   customerID,
		MobileUnitID: mobileUnitID,
		Notes:        req.Notes,
		CreatedBy:    env.Actor(),
	}, nil
}

func toStep(req MixStep) (mixorder.Step, error) {
	return mixorder.NewStep(mixorder.StepType(req.Type), req.StartedAt, req.EndedAt, req.EquipmentId, toActuals(req.Actuals))
}

func toStepPatch(req MixStepPatchRequest) mixorder.StepPatch {
	var stepType *mixorder.StepType
	if req.Type != nil {
		t := mixorder.StepType(*req.Type)
		stepType = &t
	}
	return mixorder.StepPatch{
		Type:        stepType,
		StartedAt:   req.StartedAt,
		EndedAt:     req.EndedAt,
		EquipmentID: req.EquipmentId,
		Actuals:     toActuals(req.Actuals),
	}
}

func toInput(req BatchInput) (batch.Input, error) {
	lotID, err := toUUID("ingredientLotId", req.IngredientLotId)
	if err != nil {
		return batch.Input{}, err
	}
	return batch.NewInput(lotID, req.PlannedKg, req.ActualKg)
}

func toBatchParams(env commands.Envelope, req CreateBatchRequest) (batch.Params, error) {
	mixOrderID, err := toUUID("mixOrderId", req.MixOrderId)
	if err != nil {
		return batch.Params{}, err
	}

	var errList []error
	parents := make([]kernel.UUID, 0, len(req.ParentBatches))
	for _, id := range req.ParentBatches {
		parent, err := toUUID("parentBatches", id)
		errList = append(errList, err)
		parents = append(parents, parent)
	}
	inputs := make([]batch.Input, 0, len(req.Inputs))
	for _, in := range req.Inputs {
		input, err := toInput(in)
		errList = append(errList, err)
		inputs = append(inputs, input)
	}
	if err := errors.Join(errList...); err != nil {
		return batch.Params{}, err
	}

	return batch.Params{
		TenantID:      env.TenantID(),
		BatchNumber:   req.BatchNumber,
		MixOrderID:    mixOrderID,
		ProducedQtyKg: req.ProducedQtyKg,
		StartAt:       req.StartAt,
		EndAt:         req.EndAt,
		ParentBatches: parents,
		Labels:        req.Labels,
		Inputs:        inputs,
	}, nil
}

func toOutputLotParams(req AddBatchOutputRequest) commands.OutputLotParams {
	return commands.OutputLotParams{
		LotNumber: req.LotNumber,
		QtyKg:     req.QtyKg,
		Packing: batch.Packing{
			Form: batch.PackingForm(req.Packing.Form),
			Size: req.Packing.Size,
			Unit: req.Packing.Unit,
		},
		Destination:     batch.Destination(req.Destination),
		GMPPlusMarkings: req.GmpPlusMarkings,
	}
}

func toCalibrationCheck(req CalibrationCheck) mobilerun.CalibrationCheck {
	return mobilerun.CalibrationCheck{
		ScaleOK:       req.ScaleOk,
		MoistureOK:    req.MoistureOk,
		TemperatureOK: req.TemperatureOk,
		Date:          req.Date,
		ValidatedBy:   req.ValidatedBy,
		Notes:         req.Notes,
	}
}

func toMobileRunParams(env commands.Envelope, req StartMobileRunRequest) (mobilerun.Params, error) {
	mobileUnitID, unitErr := toUUID("mobileUnitId", req.MobileUnitId)
	vehicleID, vehicleErr := toOptionalUUID("vehicleId", req.VehicleId)
	operatorID, operatorErr := toUUID("operatorId", req.OperatorId)
	customerID, customerErr := toUUID("site.customerId", req.Site.CustomerId)
	location, locationErr := kernel.NewGeoPoint(req.Site.Location.Lat, req.Site.Location.Lng)
	if err := errors.Join(unitErr, vehicleErr, operatorErr, customerErr, locationErr); err != nil {
		return mobilerun.Params{}, err
	}

	return mobilerun.Params{
		TenantID:     env.TenantID(),
		MobileUnitID: mobileUnitID,
		VehicleID:    vehicleID,
		OperatorID:   operatorID,
		Site:         mobilerun.Site{CustomerID: customerID, Location: location},
		PowerSource:  mobilerun.PowerSource(req.PowerSource),
		Calibration:  toCalibrationCheck(req.CalibrationCheck),
		StartAt:      req.StartAt,
	}, nil
}

func toCleaningSequenceParams(req AddCleaningSequenceRequest) mobilerun.CleaningSequenceParams {
	return mobilerun.CleaningSequenceParams{
		Type:            mobilerun.CleaningType(req.Type),
		StartedAt:       req.StartedAt,
		EndedAt:         req.EndedAt,
		UsedMaterialSKU: req.UsedMaterialSku,
		FlushMassKg:     req.FlushMassKg,
		ValidatedBy:     req.ValidatedBy,
		Notes:           req.Notes,
	}
}

func toPage(limit, offset *int) ports.Page {
	var page ports.Page
	if limit != nil {
		page.Limit = *limit
	}
	if offset != nil {
		page.Offset = *offset
	}
	return page
}
