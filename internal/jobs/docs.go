// Package jobs provides scheduled background tasks for the shipping service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
// Jobs are external collaborators of the core: they only read through query
// handlers and change state through command handlers.
//
// # Available Jobs
//
// 1. RetryReschedulerJob - Moves failed deliveries whose next attempt date has
// passed to rescheduled, on behalf of the system actor
//
// # Usage
//
//	jobManager := jobs.NewJobManager(jobs.Config{RetrySchedule: cfg.RetrySchedule},
//		dueForRetryHandler, transitionHandler, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Schedules use the six field cron format with seconds. The default retry
// schedule "0 */5 * * * *" runs every five minutes.
//
// # Error Handling
//
// - A package that changed since it was read (conflict or wrong status) is
// skipped and picked up again on the next tick if still due
// - Any other failure is logged and the tick moves on to the next package
// - A failed job start stops any already running jobs
package jobs
