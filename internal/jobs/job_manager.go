package jobs

import "fmt"

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	orderRebroadcastJob *OrderRebroadcastJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(orderRebroadcastJob *OrderRebroadcastJob) *JobManager {
	return &JobManager{
		orderRebroadcastJob: orderRebroadcastJob,
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.orderRebroadcastJob.Start(); err != nil {
		return fmt.Errorf("failed to start order rebroadcast job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.orderRebroadcastJob.Stop()
}
