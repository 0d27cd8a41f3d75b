// Package jobs provides scheduled background tasks for the point-of-sale
// terminal.
//
// Jobs run on github.com/robfig/cron/v3 schedules.
//
// # Available Jobs
//
// 1. OccupancyRebuildJob - every minute, recomputes occupied locations from stored orders
// 2. LowStockAlertJob - hourly, logs a warning for each product at or under the threshold
//
// # Usage
//
//	jobManager := jobs.NewJobManager(sess, lowStockHandler, cfg.LowStockThreshold, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Failures are logged and the job waits for its next tick. Each Run method
// can also be called directly, which is what the tests do.
package jobs
