// Package jobs provides scheduled background tasks for the production service.
//
// Jobs are built on github.com/robfig/cron/v3 with second precision. Each job
// wraps one use case and runs it on a configurable schedule.
//
// # Available Jobs
//
// 1. OutboxRelayJob - publishes pending outbox events and marks them delivered
// 2. CalibrationMonitorJob - warns about active mobile runs with an expired calibration check
//
// # Usage
//
//	jobManager := jobs.NewJobManager(outboxRelayJob, calibrationMonitorJob)
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Failures are logged and counted, never retried inside a pass: the next
// scheduled pass picks up whatever is still pending. Overlapping passes of
// the same job are skipped.
package jobs
