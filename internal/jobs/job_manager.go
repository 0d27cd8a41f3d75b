package jobs

import (
	"fmt"
	"log/slog"
)

const (
	EveryMinute = "@every 1m"
	Hourly      = "@hourly"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	occupancyRebuildJob *OccupancyRebuildJob
	lowStockAlertJob    *LowStockAlertJob
}

func NewJobManager(
	rebuilder OccupancyRebuilder,
	lowStock LowStockFinder,
	lowStockThreshold int,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		occupancyRebuildJob: NewOccupancyRebuildJob(rebuilder, EveryMinute, logger),
		lowStockAlertJob:    NewLowStockAlertJob(lowStock, lowStockThreshold, Hourly, logger),
	}
}

// StartAll starts all scheduled jobs. If one fails the ones already started
// are stopped again.
func (jm *JobManager) StartAll() error {
	if err := jm.occupancyRebuildJob.Start(); err != nil {
		return fmt.Errorf("failed to start occupancy rebuild job: %w", err)
	}

	if err := jm.lowStockAlertJob.Start(); err != nil {
		jm.occupancyRebuildJob.Stop()
		return fmt.Errorf("failed to start low stock alert job: %w", err)
	}

	return nil
}

// StopAll stops all jobs and waits for running ones to finish.
func (jm *JobManager) StopAll() {
	jm.lowStockAlertJob.Stop()
	jm.occupancyRebuildJob.Stop()
}
