package jobs

import (
	"fmt"
)

// Job is a scheduled background task.
type Job interface {
	Start() error
	Stop()
}

// JobManager owns the lifecycle of the background jobs.
type JobManager struct {
	jobs    []namedJob
	started []namedJob
}

type namedJob struct {
	name string
	job  Job
}

// NewJobManager creates a job manager for the outbox relay and the calibration monitor.
func NewJobManager(outboxRelay *OutboxRelayJob, calibrationMonitor *CalibrationMonitorJob) *JobManager {
	return &JobManager{
		jobs: []namedJob{
			{name: "outbox relay", job: outboxRelay},
			{name: "calibration monitor", job: calibrationMonitor},
		},
	}
}

// StartAll starts the jobs in order. On failure the jobs started so far are
// stopped again.
func (jm *JobManager) StartAll() error {
	for _, nj := range jm.jobs {
		if err := nj.job.Start(); err != nil {
			jm.StopAll()
			return fmt.Errorf("failed to start %s job: %w", nj.name, err)
		}
		jm.started = append(jm.started, nj)
	}
	return nil
}

// StopAll stops the started jobs in reverse order, waiting for running passes.
func (jm *JobManager) StopAll() {
	for i := len(jm.started) - 1; i >= 0; i-- {
		jm.started[i].job.Stop()
	}
	jm.started = nil
}
