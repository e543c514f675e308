package jobs

import (
	"context"
	"log/slog"
	"time"

	"cropflow/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// RecurringOrderJob manages the scheduled generation of orders from due
// recurring templates. Runs every minute; generation dates have whole-day
// granularity, so a tighter schedule would buy nothing.
type RecurringOrderJob struct {
	handler commands.GenerateRecurringOrdersCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewRecurringOrderJob creates a new job for generating recurring orders.
func NewRecurringOrderJob(handler commands.GenerateRecurringOrdersCommandHandler, logger *slog.Logger) *RecurringOrderJob {
	return &RecurringOrderJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "recurring_order_job"),
	}
}

// Start begins the recurring order job to run every minute.
func (j *RecurringOrderJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		ctx := context.Background()

		cmd, err := commands.NewGenerateRecurringOrdersCommand(time.Now())
		if err != nil {
			j.logger.ErrorContext(ctx, "Failed to build generate recurring orders command", "error", err)
			return
		}

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Recurring order job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Recurring order job started (running every minute)")
	return nil
}

// Stop stops the recurring order job.
func (j *RecurringOrderJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Recurring order job stopped")
}
