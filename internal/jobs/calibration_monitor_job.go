package jobs

import (
	"context"

	"production/internal/core/application/usecases/queries"
	"production/internal/pkg/logger"
	"production/internal/pkg/metrics"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// CalibrationMonitorJob warns about active mobile runs whose calibration has
// expired. It only reports; blocking such runs is left to the operators.
type CalibrationMonitorJob struct {
	handler    queries.ListExpiredCalibrationsQueryHandler
	schedule   string
	maxAgeDays int
	cron       *cron.Cron
	metrics    *metrics.Metrics
	logger     *zap.Logger
}

func NewCalibrationMonitorJob(
	handler queries.ListExpiredCalibrationsQueryHandler,
	schedule string,
	maxAgeDays int,
	m *metrics.Metrics,
	base *zap.Logger,
) *CalibrationMonitorJob {
	log := logger.Named(base, "calibration_monitor_job")
	return &CalibrationMonitorJob{
		handler:    handler,
		schedule:   schedule,
		maxAgeDays: maxAgeDays,
		cron:       newCron(log),
		metrics:    m,
		logger:     log,
	}
}

func (j *CalibrationMonitorJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("calibration monitor job started", zap.String("schedule", j.schedule), zap.Int("maxAgeDays", j.maxAgeDays))
	return nil
}

func (j *CalibrationMonitorJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("calibration monitor job stopped")
}

// Run performs a single scan.
func (j *CalibrationMonitorJob) Run(ctx context.Context) {
	query, err := queries.NewListExpiredCalibrationsQuery(j.maxAgeDays)
	if err != nil {
		j.logger.Error("invalid calibration max age", zap.Error(err))
		return
	}

	expired, err := j.handler.Handle(ctx, query)
	if err != nil {
		j.logger.Error("calibration scan failed", zap.Error(err))
		return
	}

	if j.metrics != nil {
		j.metrics.SetExpiredCalibrations(len(expired))
	}
	for _, run := range expired {
		calibration := run.CalibrationCheck()
		j.logger.Warn("mobile run calibration expired",
			zap.String("tenantId", run.TenantID().String()),
			zap.String("mobileRunId", run.ID().String()),
			zap.String("mobileUnitId", run.MobileUnitID().String()),
			zap.Time("calibratedAt", calibration.Date),
			zap.Int("maxAgeDays", j.maxAgeDays),
		)
	}
}
