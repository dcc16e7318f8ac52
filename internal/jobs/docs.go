// Package jobs provides scheduled background tasks for the dispatch service.
//
// Jobs run on github.com/robfig/cron/v3 with a seconds field in the
// schedule.
//
// # Available Jobs
//
// 1. OrderStatsJob - counts stored orders per status and exports them as the
// dispatch_orders_by_status gauge (default every 15 seconds)
//
// # Usage
//
//	jobManager := jobs.NewJobManager(getOrderStatsHandler, cfg.StatsJobSchedule, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed run is logged and retried on the next tick. A job that fails to
// start stops the jobs started before it.
package jobs
