package cmd

import (
	"context"

	httpin "production/internal/adapters/in/http"
	"production/internal/adapters/out/postgres"
	"production/internal/adapters/out/publisher"
	"production/internal/core/application/usecases/commands"
	"production/internal/core/application/usecases/queries"
	"production/internal/core/domain/events"
	"production/internal/core/domain/model/batch"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/mixorder"
	"production/internal/core/domain/model/mobilerun"
	"production/internal/core/domain/services"
	"production/internal/core/validation"
	"production/internal/jobs"
	"production/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	registry   *prometheus.Registry
	metrics    *metrics.Metrics
	validator  *validation.Validator
	logger     *zap.Logger
	clock      kernel.Clock
	ids        kernel.IDGenerator
	events     events.Factory
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *zap.Logger) (*CompositionRoot, error) {
	validator, err := validation.New()
	if err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	clock := kernel.SystemClock{}
	ids := kernel.RandomIDGenerator{}
	return &CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB, observeWrites(m)),
		registry:   registry,
		metrics:    m,
		validator:  validator,
		logger:     logger,
		clock:      clock,
		ids:        ids,
		events:     events.NewFactory(ids, clock),
	}, nil
}

// observeWrites counts committed aggregate writes by kind and resulting status.
func observeWrites(m *metrics.Metrics) postgres.CommitHook {
	return func(_ context.Context, tracked []postgres.TrackedAggregate) {
		for _, t := range tracked {
			switch a := t.Aggregate.(type) {
			case mixorder.MixOrder:
				m.ObserveWrite("mix_order", a.Status().String())
			case batch.Batch:
				m.ObserveWrite("batch", a.Status().String())
			case mobilerun.MobileRun:
				status := "Finished"
				if a.IsActive() {
					status = "Active"
				}
				m.ObserveWrite("mobile_run", status)
			}
		}
	}
}

func (c *CompositionRoot) mixOrderUoWs() commands.MixOrderUoWFactory {
	return FuncMixOrderUoWFactory(func() commands.MixOrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) batchUoWs() commands.BatchUoWFactory {
	return FuncBatchUoWFactory(func() commands.BatchUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) mobileRunUoWs() commands.MobileRunUoWFactory {
	return FuncMobileRunUoWFactory(func() commands.MobileRunUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) outboxUoWs() commands.OutboxUoWFactory {
	return FuncOutboxUoWFactory(func() commands.OutboxUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCommandHandlers() httpin.CommandHandlers {
	mixOrders, batches, runs := c.mixOrderUoWs(), c.batchUoWs(), c.mobileRunUoWs()
	return httpin.CommandHandlers{
		CreateMixOrder:         commands.NewCreateMixOrderCommandHandler(mixOrders, c.ids, c.clock, c.events),
		ChangeMixOrderStatus:   commands.NewChangeMixOrderStatusCommandHandler(mixOrders, c.clock, c.events),
		DeleteMixOrder:         commands.NewDeleteMixOrderCommandHandler(mixOrders),
		AddMixStep:             commands.NewAddMixStepCommandHandler(mixOrders, c.clock, c.events),
		UpdateMixStep:          commands.NewUpdateMixStepCommandHandler(mixOrders, c.clock, c.events),
		EndMixStep:             commands.NewEndMixStepCommandHandler(mixOrders, c.clock, c.events),
		CreateBatch:            commands.NewCreateBatchCommandHandler(batches, c.ids, c.events),
		ChangeBatchStatus:      commands.NewChangeBatchStatusCommandHandler(batches, c.events),
		CompleteBatch:          commands.NewCompleteBatchCommandHandler(batches, c.clock),
		AddBatchInput:          commands.NewAddBatchInputCommandHandler(batches),
		AddBatchOutput:         commands.NewAddBatchOutputCommandHandler(batches, c.ids),
		AddParentBatch:         commands.NewAddParentBatchCommandHandler(batches),
		ChangeBatchLabel:       commands.NewChangeBatchLabelCommandHandler(batches),
		StartMobileRun:         commands.NewStartMobileRunCommandHandler(runs, c.ids, c.clock, c.events),
		FinishMobileRun:        commands.NewFinishMobileRunCommandHandler(runs, c.clock, c.events),
		UpdateCalibrationCheck: commands.NewUpdateCalibrationCheckCommandHandler(runs, c.clock, c.events),
		AddCleaningSequence:    commands.NewAddCleaningSequenceCommandHandler(runs, c.ids, c.clock, c.events),
		EndCleaningSequence:    commands.NewEndCleaningSequenceCommandHandler(runs, c.clock, c.events),
	}
}

// CreateQueryHandlers wires the read side to repositories bound to the pool.
func (c *CompositionRoot) CreateQueryHandlers() httpin.QueryHandlers {
	uow := c.uowFactory.Create()
	mixOrders, batches, runs := uow.MixOrderRepository(), uow.BatchRepository(), uow.MobileRunRepository()
	return httpin.QueryHandlers{
		GetMixOrder:           queries.NewGetMixOrderQueryHandler(mixOrders),
		ListMixOrders:         queries.NewListMixOrdersQueryHandler(mixOrders),
		GetMixOrderStatistics: queries.NewGetMixOrderStatisticsQueryHandler(c.gormDB),
		GetBatch:              queries.NewGetBatchQueryHandler(batches),
		ListBatches:           queries.NewListBatchesQueryHandler(batches),
		GetBatchTraceability:  queries.NewGetBatchTraceabilityQueryHandler(batches),
		GetMobileRun:          queries.NewGetMobileRunQueryHandler(runs),
		ListMobileRuns:        queries.NewListMobileRunsQueryHandler(runs),
		PlanChangeover: queries.NewPlanChangeoverQueryHandler(
			runs, services.NewChangeoverPlanner(c.config.CalibrationMaxAgeDays), c.clock),
	}
}

func (c *CompositionRoot) CreateRouter() *echo.Echo {
	server := httpin.NewServer(c.CreateCommandHandlers(), c.CreateQueryHandlers(), c.validator, c.logger.Named("http"))
	return httpin.NewRouter(server, httpin.RouterDeps{
		Validator: c.validator,
		Gatherer:  c.registry,
		Metrics:   c.metrics,
		Logger:    c.logger.Named("http"),
	})
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	relay := commands.NewRelayOutboxCommandHandler(
		c.outboxUoWs(), publisher.NewLogPublisher(c.logger.Named("publisher")), c.clock)
	expired := queries.NewListExpiredCalibrationsQueryHandler(c.uowFactory.Create().MobileRunRepository(), c.clock)

	return jobs.NewJobManager(
		jobs.NewOutboxRelayJob(relay, c.config.OutboxRelaySchedule, c.config.OutboxBatchSize, c.metrics, c.logger),
		jobs.NewCalibrationMonitorJob(
			expired, c.config.CalibrationCheckSchedule, c.config.CalibrationMaxAgeDays, c.metrics, c.logger),
	)
}

type FuncMixOrderUoWFactory func() commands.MixOrderUoW

func (f FuncMixOrderUoWFactory) Create() commands.MixOrderUoW {
	return f()
}

type FuncBatchUoWFactory func() commands.BatchUoW

func (f FuncBatchUoWFactory) Create() commands.BatchUoW {
	return f()
}

type FuncMobileRunUoWFactory func() commands.MobileRunUoW

func (f FuncMobileRunUoWFactory) Create() commands.MobileRunUoW {
	return f()
}

type FuncOutboxUoWFactory func() commands.OutboxUoW

func (f FuncOutboxUoWFactory) Create() commands.OutboxUoW {
	return f()
}
