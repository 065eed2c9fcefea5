package queries

import (
	"context"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/services"
)

type PlanChangeoverQueryHandler struct {
	reader  MobileRunReader
	planner services.ChangeoverPlanner
	clock   kernel.Clock
}

func NewPlanChangeoverQueryHandler(
	reader MobileRunReader,
	planner services.ChangeoverPlanner,
	clock kernel.Clock,
) PlanChangeoverQueryHandler {
	return PlanChangeoverQueryHandler{reader: reader, planner: planner, clock: clock}
}

func (h PlanChangeoverQueryHandler) Handle(ctx context.Context, query PlanChangeoverQuery) (services.ChangeoverPlan, error) {
	if err := query.Validate(); err != nil {
		return services.ChangeoverPlan{}, err
	}

	run, err := h.reader.Get(ctx, query.TenantID(), query.MobileRunID())
	if err != nil {
		return services.ChangeoverPlan{}, err
	}
	return h.planner.Plan(run, query.PrevMedicated(), query.CurrMedicated(), h.clock.Now())
}
