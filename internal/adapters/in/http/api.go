package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// RequestHeaders are the header parameters shared by every operation.
type RequestHeaders struct {
	TenantID      openapi_types.UUID
	Actor         *string
	CorrelationID *openapi_types.UUID
}

type ListMixOrdersParams struct {
	Status       *string
	Type         *string
	RecipeId     *openapi_types.UUID
	CustomerId   *openapi_types.UUID
	MobileUnitId *openapi_types.UUID
	PlannedFrom  *time.Time
	PlannedTo    *time.Time
	Limit        *int
	Offset       *int
}

type GetMixOrderStatisticsParams struct {
	From *time.Time
	To   *time.Time
}

type ListBatchesParams struct {
	Status     *string
	MixOrderId *openapi_types.UUID
	Limit      *int
	Offset     *int
}

type GetBatchTraceabilityParams struct {
	Depth *int
}

type ListMobileRunsParams struct {
	MobileUnitId *openapi_types.UUID
	ActiveOnly   *bool
	Limit        *int
	Offset       *int
}

type PlanChangeoverParams struct {
	PrevMedicated bool
	CurrMedicated bool
}

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// (POST /mix-orders)
	CreateMixOrder(ctx echo.Context, headers RequestHeaders) error
	// (GET /mix-orders)
	ListMixOrders(ctx echo.Context, headers RequestHeaders, params ListMixOrdersParams) error
	// (GET /mix-orders/statistics)
	GetMixOrderStatistics(ctx echo.Context, headers RequestHeaders, params GetMixOrderStatisticsParams) error
	// (GET /mix-orders/{mixOrderId})
	GetMixOrder(ctx echo.Context, headers RequestHeaders, mixOrderId openapi_types.UUID) error
	// (DELETE /mix-orders/{mixOrderId})
	DeleteMixOrder(ctx echo.Context, headers RequestHeaders, mixOrderId openapi_types.UUID) error
	// (POST /mix-orders/{mixOrderId}/transitions)
	TransitionMixOrder(ctx echo.Context, headers RequestHeaders, mixOrderId openapi_types.UUID) error
	// (POST /mix-orders/{mixOrderId}/steps)
	AddMixStep(ctx echo.Context, headers RequestHeaders, mixOrderId openapi_types.UUID) error
	// (PATCH /mix-orders/{mixOrderId}/steps/{index})
	UpdateMixStep(ctx echo.Context, headers RequestHeaders, mixOrderId openapi_types.UUID, index int) error
	// (POST /mix-orders/{mixOrderId}/steps/{index}/end)
	EndMixStep(ctx echo.Context, headers RequestHeaders, mixOrderId openapi_types.UUID, index int) error

	// (POST /batches)
	CreateBatch(ctx echo.Context, headers RequestHeaders) error
	// (GET /batches)
	ListBatches(ctx echo.Context, headers RequestHeaders, params ListBatchesParams) error
	// (GET /batches/{batchId})
	GetBatch(ctx echo.Context, headers RequestHeaders, batchId openapi_types.UUID) error
	// (GET /batches/{batchId}/traceability)
	GetBatchTraceability(ctx echo.Context, headers RequestHeaders, batchId openapi_types.UUID, params GetBatchTraceabilityParams) error
	// (POST /batches/{batchId}/transitions)
	TransitionBatch(ctx echo.Context, headers RequestHeaders, batchId openapi_types.UUID) error
	// (POST /batches/{batchId}/complete)
	CompleteBatch(ctx echo.Context, headers RequestHeaders, batchId openapi_types.UUID) error
	// (POST /batches/{batchId}/inputs)
	AddBatchInput(ctx echo.Context, headers RequestHeaders, batchId openapi_types.UUID) error
	// (POST /batches/{batchId}/outputs)
	AddBatchOutput(ctx echo.Context, headers RequestHeaders, batchId openapi_types.UUID) error
	// (POST /batches/{batchId}/parents)
	AddParentBatch(ctx echo.Context, headers RequestHeaders, batchId openapi_types.UUID) error
	// (POST /batches/{batchId}/labels)
	ChangeBatchLabel(ctx echo.Context, headers RequestHeaders, batchId openapi_types.UUID) error

	// (POST /mobile-runs)
	StartMobileRun(ctx echo.Context, headers RequestHeaders) error
	// (GET /mobile-runs)
	ListMobileRuns(ctx echo.Context, headers RequestHeaders, params ListMobileRunsParams) error
	// (GET /mobile-runs/{mobileRunId})
	GetMobileRun(ctx echo.Context, headers RequestHeaders, mobileRunId openapi_types.UUID) error
	// (POST /mobile-runs/{mobileRunId}/finish)
	FinishMobileRun(ctx echo.Context, headers RequestHeaders, mobileRunId openapi_types.UUID) error
	// (PUT /mobile-runs/{mobileRunId}/calibration)
	UpdateCalibrationCheck(ctx echo.Context, headers RequestHeaders, mobileRunId openapi_types.UUID) error
	// (POST /mobile-runs/{mobileRunId}/cleaning-sequences)
	AddCleaningSequence(ctx echo.Context, headers RequestHeaders, mobileRunId openapi_types.UUID) error
	// (POST /mobile-runs/{mobileRunId}/cleaning-sequences/{sequenceId}/end)
	EndCleaningSequence(ctx echo.Context, headers RequestHeaders, mobileRunId openapi_types.UUID, sequenceId openapi_types.UUID) error
	// (GET /mobile-runs/{mobileRunId}/changeover-plan)
	PlanChangeover(ctx echo.Context, headers RequestHeaders, mobileRunId openapi_types.UUID, params PlanChangeoverParams) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func (w *ServerInterfaceWrapper) CreateMixOrder(ctx echo.Context) error {
	headers, err := bindHeaders(ctx)
	if err != nil {
		return err
	}
	return w.Handler.CreateMixOrder(ctx, headers)
}

func (w *ServerInterfaceWrapper) ListMixOrders(ctx echo.Context) error {
	headers, err := bindHeaders(ctx)
	if err != nil {
		return err
	}
	var params ListMixOrdersParams
	if err = bindQuery(ctx, "status", &params.Status); err != nil {
		return err
	}
	if err = bindQuery(ctx, "type", &params.Type); err != nil {
		return err
	}
	if err = bindQuery(ctx, "recipeId", &params.RecipeId); err != nil {
		return err
	}
	if err = bindQuery(ctx, "customerId", &params.CustomerId); err != nil {
		return err
	}
	if err = bindQuery(ctx, "mobileUnitId", &params.MobileUnitId); err != nil {
		return err
	}
	if err = bindQuery(ctx, "plannedFrom", &params.PlannedFrom); err != nil {
		return err
	}
	if err = bindQuery(ctx, "plannedTo", &params.PlannedTo); err != nil {
		return err
	}
	if err = bindQuery(ctx, "limit", &params.Limit); err != nil {
		return err
	}
	if err = bindQuery(ctx, "offset", &params.Offset); err != nil {
		return err
	}
	return w.Handler.ListMixOrders(ctx, headers, params)
}

func (w *ServerInterfaceWrapper) GetMixOrderStatistics(ctx echo.Context) error {
	headers, err := bindHeaders(ctx)
	if err != nil {
		return err
	}
	var params GetMixOrderStatisticsParams
	if err = bindQuery(ctx, "from", &params.From); err != nil {
		return err
	}
	if err = bindQuery(ctx, "to", &params.To); err != nil {
		return err
	}
	return w.Handler.GetMixOrderStatistics(ctx, headers, params)
}

func (w *ServerInterfaceWrapper) GetMixOrder(ctx echo.Context) error {
	return w.withID(ctx, "mixOrderId", w.Handler.GetMixOrder)
}

func (w *ServerInterfaceWrapper) DeleteMixOrder(ctx echo.Context) error {
	return w.withID(ctx, "mixOrderId", w.Handler.DeleteMixOrder)
}

func (w *ServerInterfaceWrapper) TransitionMixOrder(ctx echo.Context) error {
	return w.withID(ctx, "mixOrderId", w.Handler.TransitionMixOrder)
}

func (w *ServerInterfaceWrapper) AddMixStep(ctx echo.Context) error {
	return w.withID(ctx, "mixOrderId", w.Handler.AddMixStep)
}

func (w *ServerInterfaceWrapper) UpdateMixStep(ctx echo.Context) error {
	return w.withStepIndex(ctx, w.Handler.UpdateMixStep)
}

func (w *ServerInterfaceWrapper) EndMixStep(ctx echo.Context) error {
	return w.withStepIndex(ctx, w.Handler.EndMixStep)
}

func (w *ServerInterfaceWrapper) CreateBatch(ctx echo.Context) error {
	headers, err := bindHeaders(ctx)
	if err != nil {
		return err
	}
	return w.Handler.CreateBatch(ctx, headers)
}

func (w *ServerInterfaceWrapper) ListBatches(ctx echo.Context) error {
	headers, err := bindHeaders(ctx)
	if err != nil {
		return err
	}
	var params ListBatchesParams
	if err = bindQuery(ctx, "status", &params.Status); err != nil {
		return err
	}
	if err = bindQuery(ctx, "mixOrderId", &params.MixOrderId); err != nil {
		return err
	}
	if err = bindQuery(ctx, "limit", &params.Limit); err != nil {
		return err
	}
	if err = bindQuery(ctx, "offset", &params.Offset); err != nil {
		return err
	}
	return w.Handler.ListBatches(ctx, headers, params)
}

func (w *ServerInterfaceWrapper) GetBatch(ctx echo.Context) error {
	return w.withID(ctx, "batchId", w.Handler.GetBatch)
}

func (w *ServerInterfaceWrapper) GetBatchTraceability(ctx echo.Context) error {
	headers, err := bindHeaders(ctx)
	if err != nil {
		return err
	}
	batchId, err := bindPathUUID(ctx, "batchId")
	if err != nil {
		return err
	}
	var params GetBatchTraceabilityParams
	if err = bindQuery(ctx, "depth", &params.Depth); err != nil {
		return err
	}
	return w.Handler.GetBatchTraceability(ctx, headers, batchId, params)
}

func (w *ServerInterfaceWrapper) TransitionBatch(ctx echo.Context) error {
	return w.withID(ctx, "batchId", w.Handler.TransitionBatch)
}

func (w *ServerInterfaceWrapper) CompleteBatch(ctx echo.Context) error {
	return w.withID(ctx, "batchId", w.Handler.CompleteBatch)
}

func (w *ServerInterfaceWrapper) AddBatchInput(ctx echo.Context) error {
	return w.withID(ctx, "batchId", w.Handler.AddBatchInput)
}

func (w *ServerInterfaceWrapper) AddBatchOutput(ctx echo.Context) error {
	return w.withID(ctx, "batchId", w.Handler.AddBatchOutput)
}

func (w *ServerInterfaceWrapper) AddParentBatch(ctx echo.Context) error {
	return w.withID(ctx, "batchId", w.Handler.AddParentBatch)
}

func (w *ServerInterfaceWrapper) ChangeBatchLabel(ctx echo.Context) error {
	return w.withID(ctx, "batchId", w.Handler.ChangeBatchLabel)
}

func (w *ServerInterfaceWrapper) StartMobileRun(ctx echo.Context) error {
	headers, err := bindHeaders(ctx)
	if err != nil {
		return err
	}
	return w.Handler.StartMobileRun(ctx, headers)
}

func (w *ServerInterfaceWrapper) ListMobileRuns(ctx echo.Context) error {
	headers, err := bindHeaders(ctx)
	if err != nil {
		return err
	}
	var params ListMobileRunsParams
	if err = bindQuery(ctx, "mobileUnitId", &params.MobileUnitId); err != nil {
		return err
	}
	if err = bindQuery(ctx, "activeOnly", &params.ActiveOnly); err != nil {
		return err
	}
	if err = bindQuery(ctx, "limit", &params.Limit); err != nil {
		return err
	}
	if err = bindQuery(ctx, "offset", &params.Offset); err != nil {
		return err
	}
	return w.Handler.ListMobileRuns(ctx, headers, params)
}

func (w *ServerInterfaceWrapper) GetMobileRun(ctx echo.Context) error {
	return w.withID(ctx, "mobileRunId", w.Handler.GetMobileRun)
}

func (w *ServerInterfaceWrapper) FinishMobileRun(ctx echo.Context) error {
	return w.withID(ctx, "mobileRunId", w.Handler.FinishMobileRun)
}

func (w *ServerInterfaceWrapper) UpdateCalibrationCheck(ctx echo.Context) error {
	return w.withID(ctx, "mobileRunId", w.Handler.UpdateCalibrationCheck)
}

func (w *ServerInterfaceWrapper) AddCleaningSequence(ctx echo.Context) error {
	return w.withID(ctx, "mobileRunId", w.Handler.AddCleaningSequence)
}

func (w *ServerInterfaceWrapper) EndCleaningSequence(ctx echo.Context) error {
	headers, err := bindHeaders(ctx)
	if err != nil {
		return err
	}
	mobileRunId, err := bindPathUUID(ctx, "mobileRunId")
	if err != nil {
		return err
	}
	sequenceId, err := bindPathUUID(ctx, "sequenceId")
	if err != nil {
		return err
	}
	return w.Handler.EndCleaningSequence(ctx, headers, mobileRunId, sequenceId)
}

func (w *ServerInterfaceWrapper) PlanChangeover(ctx echo.Context) error {
	headers, err := bindHeaders(ctx)
	if err != nil {
		return err
	}
	mobileRunId, err := bindPathUUID(ctx, "mobileRunId")
	if err != nil {
		return err
	}
	var params PlanChangeoverParams
	if err = runtime.BindQueryParameter("form", true, true, "prevMedicated", ctx.QueryParams(), &params.PrevMedicated); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter prevMedicated: %s", err))
	}
	if err = runtime.BindQueryParameter("form", true, true, "currMedicated", ctx.QueryParams(), &params.CurrMedicated); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter currMedicated: %s", err))
	}
	return w.Handler.PlanChangeover(ctx, headers, mobileRunId, params)
}

func (w *ServerInterfaceWrapper) withID(
	ctx echo.Context,
	param string,
	handle func(echo.Context, RequestHeaders, openapi_types.UUID) error,
) error {
	headers, err := bindHeaders(ctx)
	if err != nil {
		return err
	}
	id, err := bindPathUUID(ctx, param)
	if err != nil {
		return err
	}
	return handle(ctx, headers, id)
}

func (w *ServerInterfaceWrapper) withStepIndex(
	ctx echo.Context,
	handle func(echo.Context, RequestHeaders, openapi_types.UUID, int) error,
) error {
	headers, err := bindHeaders(ctx)
	if err != nil {
		return err
	}
	mixOrderId, err := bindPathUUID(ctx, "mixOrderId")
	if err != nil {
		return err
	}
	var index int
	err = runtime.BindStyledParameterWithOptions("simple", "index", ctx.Param("index"), &index,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter index: %s", err))
	}
	return handle(ctx, headers, mixOrderId, index)
}

func bindPathUUID(ctx echo.Context, param string) (openapi_types.UUID, error) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", param, ctx.Param(param), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return id, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", param, err))
	}
	return id, nil
}

func bindQuery(ctx echo.Context, param string, dest any) error {
	if err := runtime.BindQueryParameter("form", true, false, param, ctx.QueryParams(), dest); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", param, err))
	}
	return nil
}

func bindHeaders(ctx echo.Context) (RequestHeaders, error) {
	var headers RequestHeaders
	values := ctx.Request().Header

	tenant, found := values[http.CanonicalHeaderKey(HeaderTenantID)]
	if !found {
		return headers, echo.NewHTTPError(http.StatusBadRequest,
			fmt.Sprintf("Header parameter %s is required, but not found", HeaderTenantID))
	}
	if err := bindHeader(HeaderTenantID, tenant, &headers.TenantID); err != nil {
		return headers, err
	}

	if actor, found := values[http.CanonicalHeaderKey(HeaderActor)]; found {
		var value string
		if err := bindHeader(HeaderActor, actor, &value); err != nil {
			return headers, err
		}
		headers.Actor = &value
	}

	if correlation, found := values[http.CanonicalHeaderKey(HeaderCorrelationID)]; found {
		var value openapi_types.UUID
		if err := bindHeader(HeaderCorrelationID, correlation, &value); err != nil {
			return headers, err
		}
		headers.CorrelationID = &value
	}
	return headers, nil
}

func bindHeader(name string, valueList []string, dest any) error {
	if n := len(valueList); n != 1 {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Expected one value for %s, got %d", name, n))
	}
	err := runtime.BindStyledParameterWithOptions("simple", name, valueList[0], dest,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationHeader, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	return nil
}

// EchoRouter is satisfied by *echo.Echo and *echo.Group.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlersWithBaseURL adds each server route to the router under baseURL.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	w := ServerInterfaceWrapper{Handler: si}

	router.POST(baseURL+"/mix-orders", w.CreateMixOrder)
	router.GET(baseURL+"/mix-orders", w.ListMixOrders)
	router.GET(baseURL+"/mix-orders/statistics", w.GetMixOrderStatistics)
	router.GET(baseURL+"/mix-orders/:mixOrderId", w.GetMixOrder)
	router.DELETE(baseURL+"/mix-orders/:mixOrderId", w.DeleteMixOrder)
	router.POST(baseURL+"/mix-orders/:mixOrderId/transitions", w.TransitionMixOrder)
	router.POST(baseURL+"/mix-orders/:mixOrderId/steps", w.AddMixStep)
	router.PATCH(baseURL+"/mix-orders/:mixOrderId/steps/:index", w.UpdateMixStep)
	router.POST(baseURL+"/mix-orders/:mixOrderId/steps/:index/end", w.EndMixStep)

	router.POST(baseURL+"/batches", w.CreateBatch)
	router.GET(baseURL+"/batches", w.ListBatches)
	router.GET(baseURL+"/batches/:batchId", w.GetBatch)
	router.GET(baseURL+"/batches/:batchId/traceability", w.GetBatchTraceability)
	router.POST(baseURL+"/batches/:batchId/transitions", w.TransitionBatch)
	router.POST(baseURL+"/batches/:batchId/complete", w.CompleteBatch)
	router.POST(baseURL+"/batches/:batchId/inputs", w.AddBatchInput)
	router.POST(baseURL+"/batches/:batchId/outputs", w.AddBatchOutput)
	router.POST(baseURL+"/batches/:batchId/parents", w.AddParentBatch)
	router.POST(baseURL+"/batches/:batchId/labels", w.ChangeBatchLabel)

	router.POST(baseURL+"/mobile-runs", w.StartMobileRun)
	router.GET(baseURL+"/mobile-runs", w.ListMobileRuns)
	router.GET(baseURL+"/mobile-runs/:mobileRunId", w.GetMobileRun)
	router.POST(baseURL+"/mobile-runs/:mobileRunId/finish", w.FinishMobileRun)
	router.PUT(baseURL+"/mobile-runs/:mobileRunId/calibration", w.UpdateCalibrationCheck)
	router.POST(baseURL+"/mobile-runs/:mobileRunId/cleaning-sequences", w.AddCleaningSequence)
	router.POST(baseURL+"/mobile-runs/:mobileRunId/cleaning-sequences/:sequenceId/end", w.EndCleaningSequence)
	router.GET(baseURL+"/mobile-runs/:mobileRunId/changeover-plan", w.PlanChangeover)
}
