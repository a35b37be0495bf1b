// Package jobs provides scheduled background tasks for the order lifecycle.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. PendingOrderSweepJob - Runs every minute to cancel Pending orders that
// outlived the payment window, returning their reserved stock.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(staleQueryHandler, cancelHandler, ttl, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// The sweep ignores state-transition failures: an order paid between the
// query and the cancel is a race, not an error. Everything else is logged.
package jobs
