package http

import (
	"bytes"
	"io"
	"net/http"

	"production/internal/core/application/usecases/commands"
	"production/internal/core/application/usecases/queries"
	"production/internal/core/domain/model/batch"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/mixorder"
	"production/internal/core/domain/model/mobilerun"
	"production/internal/core/ports"
	"production/internal/core/validation"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"go.uber.org/zap"
)

// CommandHandlers are the use cases that change state.
type CommandHandlers struct {
	CreateMixOrder         commands.CreateMixOrderCommandHandler
	ChangeMixOrderStatus   commands.ChangeMixOrderStatusCommandHandler
	DeleteMixOrder         commands.DeleteMixOrderCommandHandler
	AddMixStep             commands.AddMixStepCommandHandler
	UpdateMixStep          commands.UpdateMixStepCommandHandler
	EndMixStep             commands.EndMixStepCommandHandler
	CreateBatch            commands.CreateBatchCommandHandler
	ChangeBatchStatus      commands.ChangeBatchStatusCommandHandler
	CompleteBatch          commands.CompleteBatchCommandHandler
	AddBatchInput          commands.AddBatchInputCommandHandler
	AddBatchOutput         commands.AddBatchOutputCommandHandler
	AddParentBatch         commands.AddParentBatchCommandHandler
	ChangeBatchLabel       commands.ChangeBatchLabelCommandHandler
	StartMobileRun         commands.StartMobileRunCommandHandler
	FinishMobileRun        commands.FinishMobileRunCommandHandler
	UpdateCalibrationCheck commands.UpdateCalibrationCheckCommandHandler
	AddCleaningSequence    commands.AddCleaningSequenceCommandHandler
	EndCleaningSequence    commands.EndCleaningSequenceCommandHandler
}

// QueryHandlers are the read-side use cases.
type QueryHandlers struct {
	GetMixOrder           queries.GetMixOrderQueryHandler
	ListMixOrders         queries.ListMixOrdersQueryHandler
	GetMixOrderStatistics queries.GetMixOrderStatisticsQueryHandler
	GetBatch              queries.GetBatchQueryHandler
	ListBatches           queries.ListBatchesQueryHandler
	GetBatchTraceability  queries.GetBatchTraceabilityQueryHandler
	GetMobileRun          queries.GetMobileRunQueryHandler
	ListMobileRuns        queries.ListMobileRunsQueryHandler
	PlanChangeover        queries.PlanChangeoverQueryHandler
}

// Server implements the ServerInterface for handling HTTP requests.
// Request bodies are checked against the OpenAPI schemas before they reach a use case.
type Server struct {
	commands  CommandHandlers
	queries   QueryHandlers
	validator *validation.Validator
	logger    *zap.Logger
}

func NewServer(cmds CommandHandlers, qrs QueryHandlers, validator *validation.Validator, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{commands: cmds, queries: qrs, validator: validator, logger: logger}
}

var _ ServerInterface = (*Server)(nil)

// CreateMixOrder handles POST /api/v1/mix-orders.
func (s *Server) CreateMixOrder(ctx echo.Context, headers RequestHeaders) error {
	req, err := decode[CreateMixOrderRequest](s, ctx, validation.SchemaCreateMixOrderRequest)
	if err != nil {
		return s.fail(ctx, err)
	}
	env, err := toEnvelope(headers)
	if err != nil {
		return s.fail(ctx, err)
	}
	params, err := toMixOrderParams(env, req)
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewCreateMixOrderCommand(env, params)
	if err != nil {
		return s.fail(ctx, err)
	}

	order, err := s.commands.CreateMixOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, order.ToDocument())
}

// ListMixOrders handles GET /api/v1/mix-orders.
func (s *Server) ListMixOrders(ctx echo.Context, headers RequestHeaders, params ListMixOrdersParams) error {
	tenantID, err := toUUID(HeaderTenantID, headers.TenantID)
	if err != nil {
		return s.fail(ctx, err)
	}

	filter := ports.MixOrderFilter{
		PlannedFrom: params.PlannedFrom,
		PlannedTo:   params.PlannedTo,
		Page:        toPage(params.Limit, params.Offset),
	}
	if params.Status != nil {
		status, err := mixorder.ParseStatus(*params.Status)
		if err != nil {
			return s.fail(ctx, err)
		}
		filter.Status = &status
	}
	if params.Type != nil {
		orderType, err := mixorder.ParseType(*params.Type)
		if err != nil {
			return s.fail(ctx, err)
		}
		filter.Type = &orderType
	}
	if filter.RecipeID, err = toOptionalUUID("recipeId", params.RecipeId); err != nil {
		return s.fail(ctx, err)
	}
	if filter.CustomerID, err = toOptionalUUID("customerId", params.CustomerId); err != nil {
		return s.fail(ctx, err)
	}
	if filter.MobileUnitID, err = toOptionalUUID("mobileUnitId", params.MobileUnitId); err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewListMixOrdersQuery(tenantID, filter)
	if err != nil {
		return s.fail(ctx, err)
	}
	docs, err := s.queries.ListMixOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, docs)
}

// GetMixOrderStatistics handles GET /api/v1/mix-orders/statistics.
func (s *Server) GetMixOrderStatistics(ctx echo.Context, headers RequestHeaders, params GetMixOrderStatisticsParams) error {
	tenantID, err := toUUID(HeaderTenantID, headers.TenantID)
	if err != nil {
		return s.fail(ctx, err)
	}
	query, err := queries.NewGetMixOrderStatisticsQuery(tenantID, params.From, params.To)
	if err != nil {
		return s.fail(ctx, err)
	}
	stats, err := s.queries.GetMixOrderStatistics.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, stats)
}

// GetMixOrder handles GET /api/v1/mix-orders/{mixOrderId}.
func (s *Server) GetMixOrder(ctx echo.Context, headers RequestHeaders, mixOrderId openapi_types.UUID) error {
	tenantID, id, err := scoped(headers, "mixOrderId", mixOrderId)
	if err != nil {
		return s.fail(ctx, err)
	}
	query, err := queries.NewGetMixOrderQuery(tenantID, id)
	if err != nil {
		return s.fail(ctx, err)
	}
	doc, err := s.queries.GetMixOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, doc)
}

// DeleteMixOrder handles DELETE /api/v1/mix-orders/{mixOrderId}.
func (s *Server) DeleteMixOrder(ctx echo.Context, headers RequestHeaders, mixOrderId openapi_types.UUID) error {
	env, id, err := envelopeFor(headers, "mixOrderId", mixOrderId)
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewDeleteMixOrderCommand(env, id)
	if err != nil {
		return s.fail(ctx, err)
	}
	if err := s.commands.DeleteMixOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// TransitionMixOrder handles POST /api/v1/mix-orders/{mixOrderId}/transitions.
func (s *Server) TransitionMixOrder(ctx echo.Context, headers RequestHeaders, mixOrderId openapi_types.UUID) error {
	req, err := decode[MixOrderTransitionRequest](s, ctx, validation.SchemaMixOrderTransitionRequest)
	if err != nil {
		return s.fail(ctx, err)
	}
	env, id, err := envelopeFor(headers, "mixOrderId", mixOrderId)
	if err != nil {
		return s.fail(ctx, err)
	}
	action, err := commands.ParseMixOrderAction(req.Action)
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewChangeMixOrderStatusCommand(env, id, action, req.Reason)
	if err != nil {
		return s.fail(ctx, err)
	}
	return s.respondMixOrder(ctx)(s.commands.ChangeMixOrderStatus.Handle(ctx.Request().Context(), cmd))
}

// AddMixStep handles POST /api/v1/mix-orders/{mixOrderId}/steps.
func (s *Server) AddMixStep(ctx echo.Context, headers RequestHeaders, mixOrderId openapi_types.UUID) error {
	req, err := decode[MixStep](s, ctx, validation.SchemaMixStep)
	if err != nil {
		return s.fail(ctx, err)
	}
	env, id, err := envelopeFor(headers, "mixOrderId", mixOrderId)
	if err != nil {
		return s.fail(ctx, err)
	}
	step, err := toStep(req)
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewAddMixStepCommand(env, id, step)
	if err != nil {
		return s.fail(ctx, err)
	}
	return s.respondMixOrder(ctx)(s.commands.AddMixStep.Handle(ctx.Request().Context(), cmd))
}

// UpdateMixStep handles PATCH /api/v1/mix-orders/{mixOrderId}/steps/{index}.
func (s *Server) UpdateMixStep(ctx echo.Context, headers RequestHeaders, mixOrderId openapi_types.UUID, index int) error {
	req, err := decode[MixStepPatchRequest](s, ctx, validation.SchemaMixStepPatchRequest)
	if err != nil {
		return s.fail(ctx, err)
	}
	env, id, err := envelopeFor(headers, "mixOrderId", mixOrderId)
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewUpdateMixStepCommand(env, id, index, toStepPatch(req))
	if err != nil {
		return s.fail(ctx, err)
	}
	return s.respondMixOrder(ctx)(s.commands.UpdateMixStep.Handle(ctx.Request().Context(), cmd))
}

// EndMixStep handles POST /api/v1/mix-orders/{mixOrderId}/steps/{index}/end.
func (s *Server) EndMixStep(ctx echo.Context, headers RequestHeaders, mixOrderId openapi_types.UUID, index int) error {
	req, err := decode[EndMixStepRequest](s, ctx, validation.SchemaEndMixStepRequest)
	if err != nil {
		return s.fail(ctx, err)
	}
	env, id, err := envelopeFor(headers, "mixOrderId", mixOrderId)
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewEndMixStepCommand(env, id, index, req.EndedAt, toActuals(req.Actuals))
	if err != nil {
		return s.fail(ctx, err)
	}
	return s.respondMixOrder(ctx)(s.commands.EndMixStep.Handle(ctx.Request().Context(), cmd))
}

// CreateBatch handles POST /api/v1/batches.
func (s *Server) CreateBatch(ctx echo.Context, headers RequestHeaders) error {
	req, err := decode[CreateBatchRequest](s, ctx, validation.SchemaCreateBatchRequest)
	if err != nil {
		return s.fail(ctx, err)
	}
	env, err := toEnvelope(headers)
	if err != nil {
		return s.fail(ctx, err)
	}
	params, err := toBatchParams(env, req)
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewCreateBatchCommand(env, params)
	if err != nil {
		return s.fail(ctx, err)
	}

	b, err := s.commands.CreateBatch.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, b.ToDocument())
}

// ListBatches handles GET /api/v1/batches.
func (s *Server) ListBatches(ctx echo.Context, headers RequestHeaders, params ListBatchesParams) error {
	tenantID, err := toUUID(HeaderTenantID, headers.TenantID)
	if err != nil {
		return s.fail(ctx, err)
	}

	filter := ports.BatchFilter{Page: toPage(params.Limit, params.Offset)}
	if params.Status != nil {
		status, err := batch.ParseStatus(*params.Status)
		if err != nil {
			return s.fail(ctx, err)
		}
		filter.Status = &status
	}
	if filter.MixOrderID, err = toOptionalUUID("mixOrderId", params.MixOrderId); err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewListBatchesQuery(tenantID, filter)
	if err != nil {
		return s.fail(ctx, err)
	}
	docs, err := s.queries.ListBatches.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, docs)
}

// GetBatch handles GET /api/v1/batches/{batchId}.
func (s *Server) GetBatch(ctx echo.Context, headers RequestHeaders, batchId openapi_types.UUID) error {
	tenantID, id, err := scoped(headers, "batchId", batchId)
	if err != nil {
		return s.fail(ctx, err)
	}
	query, err := queries.NewGetBatchQuery(tenantID, id)
	if err != nil {
		return s.fail(ctx, err)
	}
	doc, err := s.queries.GetBatch.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, doc)
}

// GetBatchTraceability handles GET /api/v1/batches/{batchId}/traceability.
func (s *Server) GetBatchTraceability(
	ctx echo.Context,
	headers RequestHeaders,
	batchId openapi_types.UUID,
	params GetBatchTraceabilityParams,
) error {
	tenantID, id, err := scoped(headers, "batchId", batchId)
	if err != nil {
		return s.fail(ctx, err)
	}
	var depth int
	if params.Depth != nil {
		depth = *params.Depth
	}
	query, err := queries.NewGetBatchTraceabilityQuery(tenantID, id, depth)
	if err != nil {
		return s.fail(ctx, err)
	}
	trace, err := s.queries.GetBatchTraceability.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, trace)
}

// TransitionBatch handles POST /api/v1/batches/{batchId}/transitions.
func (s *Server) TransitionBatch(ctx echo.Context, headers RequestHeaders, batchId openapi_types.UUID) error {
	req, err := decode[BatchTransitionRequest](s, ctx, validation.SchemaBatchTransitionRequest)
	if err != nil {
		return s.fail(ctx, err)
	}
	env, id, err := envelopeFor(headers, "batchId", batchId)
	if err != nil {
		return s.fail(ctx, err)
	}
	action, err := commands.ParseBatchAction(req.Action)
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewChangeBatchStatusCommand(env, id, action, req.Reason)
	if err != nil {
		return s.fail(ctx, err)
	}
	return s.respondBatch(ctx)(s.commands.ChangeBatchStatus.Handle(ctx.Request().Context(), cmd))
}

// CompleteBatch handles POST /api/v1/batches/{batchId}/complete.
func (s *Server) CompleteBatch(ctx echo.Context, headers RequestHeaders, batchId openapi_types.UUID) error {
	req, err := decode[EndAtRequest](s, ctx, validation.SchemaEndAtRequest)
	if err != nil {
		return s.fail(ctx, err)
	}
	env, id, err := envelopeFor(headers, "batchId", batchId)
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewCompleteBatchCommand(env, id, req.EndAt)
	if err != nil {
		return s.fail(ctx, err)
	}
	return s.respondBatch(ctx)(s.commands.CompleteBatch.Handle(ctx.Request().Context(), cmd))
}

// AddBatchInput handles POST /api/v1/batches/{batchId}/inputs.
func (s *Server) AddBatchInput(ctx echo.Context, headers RequestHeaders, batchId openapi_types.UUID) error {
	req, err := decode[BatchInput](s, ctx, validation.SchemaBatchInput)
	if err != nil {
		return s.fail(ctx, err)
	}
	env, id, err := envelopeFor(headers, "batchId", batchId)
	if err != nil {
		return s.fail(ctx, err)
	}
	input, err := toInput(req)
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewAddBatchInputCommand(env, id, input)
	if err != nil {
		return s.fail(ctx, err)
	}
	return s.respondBatch(ctx)(s.commands.AddBatchInput.Handle(ctx.Request().Context(), cmd))
}

// AddBatchOutput handles POST /api/v1/batches/{batchId}/outputs.
func (s *Server) AddBatchOutput(ctx echo.Context, headers RequestHeaders, batchId openapi_types.UUID) error {
	req, err := decode[AddBatchOutputRequest](s, ctx, validation.SchemaAddBatchOutputRequest)
	if err != nil {
		return s.fail(ctx, err)
	}
	env, id, err := envelopeFor(headers, "batchId", batchId)
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewAddBatchOutputCommand(env, id, toOutputLotParams(req))
	if err != nil {
		return s.fail(ctx, err)
	}
	return s.respondBatch(ctx)(s.commands.AddBatchOutput.Handle(ctx.Request().Context(), cmd))
}

// AddParentBatch handles POST /api/v1/batches/{batchId}/parents.
func (s *Server) AddParentBatch(ctx echo.Context, headers RequestHeaders, batchId openapi_types.UUID) error {
	req, err := decode[AddParentBatchRequest](s, ctx, validation.SchemaAddParentBatchRequest)
	if err != nil {
		return s.fail(ctx, err)
	}
	env, id, err := envelopeFor(headers, "batchId", batchId)
	if err != nil {
		return s.fail(ctx, err)
	}
	parentID, err := toUUID("parentBatchId", req.ParentBatchId)
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewAddParentBatchCommand(env, id, parentID)
	if err != nil {
		return s.fail(ctx, err)
	}
	return s.respondBatch(ctx)(s.commands.AddParentBatch.Handle(ctx.Request().Context(), cmd))
}

// ChangeBatchLabel handles POST /api/v1/batches/{batchId}/labels.
func (s *Server) ChangeBatchLabel(ctx echo.Context, headers RequestHeaders, batchId openapi_types.UUID) error {
	req, err := decode[ChangeBatchLabelRequest](s, ctx, validation.SchemaChangeBatchLabelRequest)
	if err != nil {
		return s.fail(ctx, err)
	}
	env, id, err := envelopeFor(headers, "batchId", batchId)
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewChangeBatchLabelCommand(env, id, req.Label, req.Remove)
	if err != nil {
		return s.fail(ctx, err)
	}
	return s.respondBatch(ctx)(s.commands.ChangeBatchLabel.Handle(ctx.Request().Context(), cmd))
}

// StartMobileRun handles POST /api/v1/mobile-runs.
func (s *Server) StartMobileRun(ctx echo.Context, headers RequestHeaders) error {
	req, err := decode[StartMobileRunRequest](s, ctx, validation.SchemaStartMobileRunRequest)
	if err != nil {
		return s.fail(ctx, err)
	}
	env, err := toEnvelope(headers)
	if err != nil {
		return s.fail(ctx, err)
	}
	params, err := toMobileRunParams(env, req)
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewStartMobileRunCommand(env, params)
	if err != nil {
		return s.fail(ctx, err)
	}

	run, err := s.commands.StartMobileRun.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, run.ToDocument())
}

// ListMobileRuns handles GET /api/v1/mobile-runs.
func (s *Server) ListMobileRuns(ctx echo.Context, headers RequestHeaders, params ListMobileRunsParams) error {
	tenantID, err := toUUID(HeaderTenantID, headers.TenantID)
	if err != nil {
		return s.fail(ctx, err)
	}

	filter := ports.MobileRunFilter{
		ActiveOnly: params.ActiveOnly != nil && *params.ActiveOnly,
		Page:       toPage(params.Limit, params.Offset),
	}
	if filter.MobileUnitID, err = toOptionalUUID("mobileUnitId", params.MobileUnitId); err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewListMobileRunsQuery(tenantID, filter)
	if err != nil {
		return s.fail(ctx, err)
	}
	docs, err := s.queries.ListMobileRuns.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, docs)
}

// GetMobileRun handles GET /api/v1/mobile-runs/{mobileRunId}.
func (s *Server) GetMobileRun(ctx echo.Context, headers RequestHeaders, mobileRunId openapi_types.UUID) error {
	tenantID, id, err := scoped(headers, "mobileRunId", mobileRunId)
	if err != nil {
		return s.fail(ctx, err)
	}
	query, err := queries.NewGetMobileRunQuery(tenantID, id)
	if err != nil {
		return s.fail(ctx, err)
	}
	doc, err := s.queries.GetMobileRun.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, doc)
}

// FinishMobileRun handles POST /api/v1/mobile-runs/{mobileRunId}/finish.
func (s *Server) FinishMobileRun(ctx echo.Context, headers RequestHeaders, mobileRunId openapi_types.UUID) error {
	req, err := decode[EndAtRequest](s, ctx, validation.SchemaEndAtRequest)
	if err != nil {
		return s.fail(ctx, err)
	}
	env, id, err := envelopeFor(headers, "mobileRunId", mobileRunId)
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewFinishMobileRunCommand(env, id, req.EndAt)
	if err != nil {
		return s.fail(ctx, err)
	}
	return s.respondMobileRun(ctx)(s.commands.FinishMobileRun.Handle(ctx.Request().Context(), cmd))
}

// UpdateCalibrationCheck handles PUT /api/v1/mobile-runs/{mobileRunId}/calibration.
func (s *Server) UpdateCalibrationCheck(ctx echo.Context, headers RequestHeaders, mobileRunId openapi_types.UUID) error {
	req, err := decode[CalibrationCheck](s, ctx, validation.SchemaCalibrationCheck)
	if err != nil {
		return s.fail(ctx, err)
	}
	env, id, err := envelopeFor(headers, "mobileRunId", mobileRunId)
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewUpdateCalibrationCheckCommand(env, id, toCalibrationCheck(req))
	if err != nil {
		return s.fail(ctx, err)
	}
	return s.respondMobileRun(ctx)(s.commands.UpdateCalibrationCheck.Handle(ctx.Request().Context(), cmd))
}

// AddCleaningSequence handles POST /api/v1/mobile-runs/{mobileRunId}/cleaning-sequences.
func (s *Server) AddCleaningSequence(ctx echo.Context, headers RequestHeaders, mobileRunId openapi_types.UUID) error {
	req, err := decode[AddCleaningSequenceRequest](s, ctx, validation.SchemaAddCleaningSequenceRequest)
	if err != nil {
		return s.fail(ctx, err)
	}
	env, id, err := envelopeFor(headers, "mobileRunId", mobileRunId)
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewAddCleaningSequenceCommand(env, id, toCleaningSequenceParams(req))
	if err != nil {
		return s.fail(ctx, err)
	}
	return s.respondMobileRun(ctx)(s.commands.AddCleaningSequence.Handle(ctx.Request().Context(), cmd))
}

// EndCleaningSequence handles POST /api/v1/mobile-runs/{mobileRunId}/cleaning-sequences/{sequenceId}/end.
func (s *Server) EndCleaningSequence(
	ctx echo.Context,
	headers RequestHeaders,
	mobileRunId openapi_types.UUID,
	sequenceId openapi_types.UUID,
) error {
	req, err := decode[EndCleaningSequenceRequest](s, ctx, validation.SchemaEndCleaningSequenceRequest)
	if err != nil {
		return s.fail(ctx, err)
	}
	env, id, err := envelopeFor(headers, "mobileRunId", mobileRunId)
	if err != nil {
		return s.fail(ctx, err)
	}
	seqID, err := toUUID("sequenceId", sequenceId)
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewEndCleaningSequenceCommand(env, id, seqID, req.EndedAt, req.Notes)
	if err != nil {
		return s.fail(ctx, err)
	}
	return s.respondMobileRun(ctx)(s.commands.EndCleaningSequence.Handle(ctx.Request().Context(), cmd))
}

// PlanChangeover handles GET /api/v1/mobile-runs/{mobileRunId}/changeover-plan.
func (s *Server) PlanChangeover(
	ctx echo.Context,
	headers RequestHeaders,
	mobileRunId openapi_types.UUID,
	params PlanChangeoverParams,
) error {
	tenantID, id, err := scoped(headers, "mobileRunId", mobileRunId)
	if err != nil {
		return s.fail(ctx, err)
	}
	query, err := queries.NewPlanChangeoverQuery(tenantID, id, params.PrevMedicated, params.CurrMedicated)
	if err != nil {
		return s.fail(ctx, err)
	}
	plan, err := s.queries.PlanChangeover.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, ChangeoverPlan{
		Required:           plan.Required,
		CleaningType:       string(plan.CleaningType),
		Reason:             string(plan.Reason),
		LastCleaningAt:     plan.LastCleaningAt,
		CalibrationAgeDays: plan.CalibrationAgeDays,
		CalibrationExpired: plan.CalibrationExpired,
	})
}

func (s *Server) respondMixOrder(ctx echo.Context) func(mixorder.MixOrder, error) error {
	return func(order mixorder.MixOrder, err error) error {
		if err != nil {
			return s.fail(ctx, err)
		}
		return ctx.JSON(http.StatusOK, order.ToDocument())
	}
}

func (s *Server) respondBatch(ctx echo.Context) func(batch.Batch, error) error {
	return func(b batch.Batch, err error) error {
		if err != nil {
			return s.fail(ctx, err)
		}
		return ctx.JSON(http.StatusOK, b.ToDocument())
	}
}

func (s *Server) respondMobileRun(ctx echo.Context) func(mobilerun.MobileRun, error) error {
	return func(run mobilerun.MobileRun, err error) error {
		if err != nil {
			return s.fail(ctx, err)
		}
		return ctx.JSON(http.StatusOK, run.ToDocument())
	}
}

// decode reads the request body and validates it against schema. An empty
// body is treated as an empty object so optional bodies may be omitted.
func decode[T any](s *Server, ctx echo.Context, schema string) (T, error) {
	var zero T
	body, err := io.ReadAll(ctx.Request().Body)
	if err != nil {
		return zero, echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if len(bytes.TrimSpace(body)) == 0 {
		body = []byte("{}")
	}
	return validation.Decode[T](s.validator, schema, body)
}

func scoped(headers RequestHeaders, name string, id openapi_types.UUID) (kernel.UUID, kernel.UUID, error) {
	tenantID, err := toUUID(HeaderTenantID, headers.TenantID)
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, err
	}
	parsed, err := toUUID(name, id)
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, err
	}
	return tenantID, parsed, nil
}

func envelopeFor(headers RequestHeaders, name string, id openapi_types.UUID) (commands.Envelope, kernel.UUID, error) {
	env, err := toEnvelope(headers)
	if err != nil {
		return commands.Envelope{}, kernel.UUID{}, err
	}
	parsed, err := toUUID(name, id)
	if err != nil {
		return commands.Envelope{}, kernel.UUID{}, err
	}
	return env, parsed, nil
}
