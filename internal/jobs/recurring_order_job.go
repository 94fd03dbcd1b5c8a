package jobs

import (
	"context"
	"log/slog"
	"time"

	"procurement/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// RecurringOrderJob executes due recurring order templates on a schedule.
// Each tick runs the same command the manual trigger endpoint uses; a
// template that fails is isolated and retried on the next tick.
type RecurringOrderJob struct {
	handler  commands.RunRecurringOrdersCommandHandler
	cronSpec string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewRecurringOrderJob creates a new job for executing recurring order templates.
// cronSpec uses the six-field form with seconds, e.g. "0 * * * * *" for every minute.
func NewRecurringOrderJob(
	handler commands.RunRecurringOrdersCommandHandler,
	cronSpec string,
	logger *slog.Logger,
) *RecurringOrderJob {
	return &RecurringOrderJob{
		handler:  handler,
		cronSpec: cronSpec,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "recurring_order_job"),
	}
}

// Start begins the recurring order job on its configured schedule.
func (j *RecurringOrderJob) Start() error {
	_, err := j.cron.AddFunc(j.cronSpec, func() {
		ctx := context.Background()

		cmd, cmdErr := commands.NewRunRecurringOrdersCommand(time.Now().UTC())
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Recurring order job could not build command", "error", cmdErr)
			return
		}

		result, handleErr := j.handler.Handle(ctx, cmd)
		if handleErr != nil {
			j.logger.ErrorContext(ctx, "Recurring order job failed", "error", handleErr)
			return
		}

		if result.Succeeded > 0 || result.Failed > 0 {
			j.logger.InfoContext(ctx, "Recurring order run finished",
				"succeeded", result.Succeeded,
				"failed", result.Failed,
				"orders_created", result.OrdersCreated,
			)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Recurring order job started", "schedule", j.cronSpec)
	return nil
}

// Stop stops the recurring order job.
func (j *RecurringOrderJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Recurring order job stopped")
}
