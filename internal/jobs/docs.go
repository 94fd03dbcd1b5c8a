// Package jobs provides scheduled background tasks for the procurement system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the procurement service.
//
// # Available Jobs
//
// 1. RecurringOrderJob - Runs every minute to execute due recurring order templates
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(runRecurringHandler, "0 * * * * *", logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The recurring order job uses a six-field cron expression with seconds.
// The default "0 * * * * *" fires once per minute; templates that are not
// yet due are skipped by the command itself, so a finer schedule only
// changes how quickly a due template is picked up.
//
// # Error Handling
//
// - A failed template rolls back alone; the remaining due templates still run
// - Repeated failures are reported to administrators, throttled per template
// - Failed job starts will stop any already running jobs
package jobs
