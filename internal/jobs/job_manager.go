package jobs

import (
	"fmt"
	"log/slog"
)

// Config holds the schedules of the background jobs.
type Config struct {
	RetrySchedule string
	RetryBatch    int
	Recorder      OutcomeRecorder
}

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	retryJob *RetryReschedulerJob
}

func NewJobManager(
	cfg Config,
	dueForRetry dueForRetryReader,
	transition statusTransitioner,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		retryJob: NewRetryReschedulerJob(dueForRetry, transition, cfg.RetrySchedule, cfg.RetryBatch, logger).
			WithRecorder(cfg.Recorder),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.retryJob.Start(); err != nil {
		return fmt.Errorf("failed to start retry rescheduler job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.retryJob.Stop()
}
