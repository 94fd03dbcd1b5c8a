package jobs

import (
	"fmt"
	"log/slog"

	"procurement/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	recurringOrderJob *RecurringOrderJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command handlers as dependencies to wire up the job execution.
func NewJobManager(
	runRecurringHandler commands.RunRecurringOrdersCommandHandler,
	recurringCronSpec string,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		recurringOrderJob: NewRecurringOrderJob(runRecurringHandler, recurringCronSpec, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.recurringOrderJob.Start(); err != nil {
		return fmt.Errorf("failed to start recurring order job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.recurringOrderJob.Stop()
}
