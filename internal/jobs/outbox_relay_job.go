package jobs

import (
	"context"

	"production/internal/core/application/usecases/commands"
	"production/internal/pkg/logger"
	"production/internal/pkg/metrics"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// OutboxRelayJob periodically hands pending outbox events to the publisher.
type OutboxRelayJob struct {
	handler   commands.RelayOutboxCommandHandler
	schedule  string
	batchSize int
	cron      *cron.Cron
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

func NewOutboxRelayJob(
	handler commands.RelayOutboxCommandHandler,
	schedule string,
	batchSize int,
	m *metrics.Metrics,
	base *zap.Logger,
) *OutboxRelayJob {
	log := logger.Named(base, "outbox_relay_job")
	return &OutboxRelayJob{
		handler:   handler,
		schedule:  schedule,
		batchSize: batchSize,
		cron:      newCron(log),
		metrics:   m,
		logger:    log,
	}
}

// Start registers the relay on its schedule and starts the scheduler.
func (j *OutboxRelayJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("outbox relay job started", zap.String("schedule", j.schedule), zap.Int("batchSize", j.batchSize))
	return nil
}

// Stop waits for a running relay to finish.
func (j *OutboxRelayJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("outbox relay job stopped")
}

// Run performs a single relay pass.
func (j *OutboxRelayJob) Run(ctx context.Context) {
	cmd, err := commands.NewRelayOutboxCommand(j.batchSize)
	if err != nil {
		j.logger.Error("invalid relay batch size", zap.Error(err))
		return
	}

	published, err := j.handler.Handle(ctx, cmd)
	for _, event := range published {
		if j.metrics != nil {
			j.metrics.ObservePublished(string(event.EventType))
		}
	}
	if len(published) > 0 {
		j.logger.Debug("outbox events relayed", zap.Int("count", len(published)))
	}
	if err != nil {
		if j.metrics != nil {
			j.metrics.ObservePublishFailure()
		}
		j.logger.Error("outbox relay failed", zap.Int("published", len(published)), zap.Error(err))
	}
}
