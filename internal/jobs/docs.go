// Package jobs provides scheduled background tasks for the repair-order
// service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for order coordination.
//
// # Available Jobs
//
// 1. OrderRebroadcastJob - Periodically re-announces open orders that no
// contractor has accepted, so they surface again in contractor channels.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required collaborators
//	jobManager := jobs.NewJobManager(rebroadcastJob)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A rebroadcast failure for one order is logged and does not stop the
// sweep; the order is picked up again on the next tick.
package jobs
