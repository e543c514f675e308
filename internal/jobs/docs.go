// Package jobs provides scheduled background tasks for the production system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the growing schedule.
//
// # Available Jobs
//
// 1. StageAdvanceJob - Runs every second to execute due stage advancement tasks
// 2. RecurringOrderJob - Runs every minute to generate orders from due recurring templates
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(processDueTasksHandler, generateRecurringHandler, logger)
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
// The stage advance job uses the cron expression "* * * * * *" (every second)
// so crops move between stages close to their scheduled times. The recurring
// order job runs at "0 * * * * *" (every minute); generation dates are whole
// days, so a tighter schedule would buy nothing.
//
// # Error Handling
//
// - Both handlers absorb per-item failures internally and log them
// - A job only surfaces errors when a whole sweep cannot start
// - Failed job starts will stop any already running jobs
package jobs
