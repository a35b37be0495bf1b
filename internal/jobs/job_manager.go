package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"ecommerce/internal/core/application/usecases/commands"
	"ecommerce/internal/core/application/usecases/queries"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	pendingOrderSweepJob *PendingOrderSweepJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command and query handlers as dependencies to wire up job execution.
func NewJobManager(
	staleQuery queries.GetStalePendingOrdersQueryHandler,
	cancelHandler commands.CancelOrderCommandHandler,
	pendingOrderTTL time.Duration,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		pendingOrderSweepJob: NewPendingOrderSweepJob(staleQuery, cancelHandler, pendingOrderTTL, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.pendingOrderSweepJob.Start(); err != nil {
		return fmt.Errorf("failed to start pending order sweep job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.pendingOrderSweepJob.Stop()
}
