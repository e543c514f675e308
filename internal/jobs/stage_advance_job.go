package jobs

import (
	"context"
	"log/slog"
	"time"

	"cropflow/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// StageAdvanceJob manages the scheduled execution of due stage advancement
// tasks. Runs every second so crops move between stages close to their
// scheduled times.
type StageAdvanceJob struct {
	handler commands.ProcessDueTasksCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewStageAdvanceJob creates a new job for executing due tasks.
// The handler must be the shared instance from the composition root: the
// per-crop lock registry lives on it.
func NewStageAdvanceJob(handler commands.ProcessDueTasksCommandHandler, logger *slog.Logger) *StageAdvanceJob {
	return &StageAdvanceJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "stage_advance_job"),
	}
}

// Start begins the stage advance job to run every second.
func (j *StageAdvanceJob) Start() error {
	_, err := j.cron.AddFunc("* * * * * *", func() {
		ctx := context.Background()

		cmd, err := commands.NewProcessDueTasksCommand(time.Now())
		if err != nil {
			j.logger.ErrorContext(ctx, "Failed to build process due tasks command", "error", err)
			return
		}

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Stage advance job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Stage advance job started (running every second)")
	return nil
}

// Stop stops the stage advance job.
func (j *StageAdvanceJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Stage advance job stopped")
}
