// Package jobs provides scheduled background tasks for the orders service.
//
// Jobs are built on github.com/robfig/cron/v3 with second precision.
//
// # Available Jobs
//
// OrderProgressionJob runs the progression sweep (ProgressOrdersCommand) on
// the schedule configured by PROGRESSION_SCHEDULE, for example
// "*/30 * * * * *" or "@every 1m". An empty schedule leaves the job disabled;
// the sweep can still be triggered through POST /api/orders/bulk-status-update.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(&progressHandler, cfg.ProgressionSchedule, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A sweep never aborts because of a single order: per-step failures are
// logged at warn level from the returned report. Overlapping ticks are
// skipped rather than queued.
package jobs
