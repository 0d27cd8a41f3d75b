package jobs

import (
	"context"
	"log/slog"

	"pos/internal/core/domain/model/kernel"

	"github.com/robfig/cron/v3"
)

// OccupancyRebuilder recomputes the occupied locations from stored orders.
type OccupancyRebuilder interface {
	RebuildOccupancy(ctx context.Context) ([]kernel.Location, error)
}

// OccupancyRebuildJob keeps the location board in line with the store, so
// orders changed by another terminal show up without a restart.
type OccupancyRebuildJob struct {
	rebuilder OccupancyRebuilder
	schedule  string
	cron      *cron.Cron
	logger    *slog.Logger
}

func NewOccupancyRebuildJob(rebuilder OccupancyRebuilder, schedule string, logger *slog.Logger) *OccupancyRebuildJob {
	return &OccupancyRebuildJob{
		rebuilder: rebuilder,
		schedule:  schedule,
		cron:      cron.New(),
		logger:    logger.With("component", "occupancy_rebuild_job"),
	}
}

// Run performs a single rebuild.
func (j *OccupancyRebuildJob) Run(ctx context.Context) {
	occupied, err := j.rebuilder.RebuildOccupancy(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Occupancy rebuild failed", "error", err)
		return
	}
	j.logger.DebugContext(ctx, "Occupancy rebuilt", "occupied", len(occupied))
}

func (j *OccupancyRebuildJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		j.Run(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Occupancy rebuild job started", "schedule", j.schedule)
	return nil
}

func (j *OccupancyRebuildJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Occupancy rebuild job stopped")
}
