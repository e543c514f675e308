package jobs

import (
	"fmt"
	"log/slog"

	"cropflow/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	stageAdvanceJob   *StageAdvanceJob
	recurringOrderJob *RecurringOrderJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command handlers as dependencies to wire up the job execution.
func NewJobManager(
	processDueTasksHandler commands.ProcessDueTasksCommandHandler,
	generateRecurringHandler commands.GenerateRecurringOrdersCommandHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		stageAdvanceJob:   NewStageAdvanceJob(processDueTasksHandler, logger),
		recurringOrderJob: NewRecurringOrderJob(generateRecurringHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.stageAdvanceJob.Start(); err != nil {
		return fmt.Errorf("failed to start stage advance job: %w", err)
	}

	if err := jm.recurringOrderJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.stageAdvanceJob.Stop()
		return fmt.Errorf("failed to start recurring order job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.stageAdvanceJob.Stop()
	jm.recurringOrderJob.Stop()
}
