package jobs

import (
	"fmt"
	"log/slog"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	orderProgressionJob *OrderProgressionJob
}

func NewJobManager(
	progressionHandler ProgressionHandler,
	progressionSchedule string,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		orderProgressionJob: NewOrderProgressionJob(progressionHandler, progressionSchedule, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.orderProgressionJob.Start(); err != nil {
		return fmt.Errorf("failed to start order progression job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs and waits for running ones to finish.
func (jm *JobManager) StopAll() {
	jm.orderProgressionJob.Stop()
}
