package route

import (
	"time"

	"shipping/internal/core/domain/model/kernel"
)

// DomainEvent is a fact recorded by the Route while it changes.
type DomainEvent interface {
	EventType() string
	OccurredAt() time.Time
}

// StopRef names the packages handled at one stop.
type StopRef struct {
	Order      int
	Action     Action
	PackageIDs []kernel.UUID
}

// StartedEvent is recorded when the vehicle leaves.
type StartedEvent struct {
	RouteID   kernel.UUID
	BranchID  kernel.UUID
	Stops     []StopRef
	StartedAt time.Time
}

func (e StartedEvent) EventType() string     { return "route.started" }
func (e StartedEvent) OccurredAt() time.Time { return e.StartedAt }

// StopCompletedEvent is recorded when a stop is completed.
type StopCompletedEvent struct {
	RouteID     kernel.UUID
	Index       int
	Action      Action
	Completed   []kernel.UUID
	Failed      []kernel.UUID
	CompletedAt time.Time
}

func (e StopCompletedEvent) EventType() string     { return "route.stop-completed" }
func (e StopCompletedEvent) OccurredAt() time.Time { return e.CompletedAt }

// StopFailedEvent is recorded when a stop could not be served. Skipped holds
// the packages passed over without an attempt.
type StopFailedEvent struct {
	RouteID  kernel.UUID
	Index    int
	Action   Action
	Reason   string
	Failed   []kernel.UUID
	Skipped  []kernel.UUID
	FailedAt time.Time
}

func (e StopFailedEvent) EventType() string     { return "route.stop-failed" }
func (e StopFailedEvent) OccurredAt() time.Time { return e.FailedAt }

// StopSkippedEvent is recorded when a stop was passed over, either explicitly
// or because the route was completed before reaching it.
type StopSkippedEvent struct {
	RouteID   kernel.UUID
	Index     int
	Action    Action
	Reason    string
	Packages  []kernel.UUID
	SkippedAt time.Time
}

func (e StopSkippedEvent) EventType() string     { return "route.stop-skipped" }
func (e StopSkippedEvent) OccurredAt() time.Time { return e.SkippedAt }

// CompletedEvent is recorded when the route is closed.
type CompletedEvent struct {
	RouteID           kernel.UUID
	CompletedStops    int
	FailedStops       int
	SkippedStops      int
	OnTimePerformance float64
	CompletedAt       time.Time
}

func (e CompletedEvent) EventType() string     { return "route.completed" }
func (e CompletedEvent) OccurredAt() time.Time { return e.CompletedAt }

// CancelledEvent is recorded when the route is abandoned.
type CancelledEvent struct {
	RouteID     kernel.UUID
	Reason      string
	CancelledAt time.Time
}

func (e CancelledEvent) EventType() string     { return "route.cancelled" }
func (e CancelledEvent) OccurredAt() time.Time { return e.CancelledAt }
