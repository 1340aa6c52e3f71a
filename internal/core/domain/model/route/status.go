package route

import (
	"fmt"

	"shipping/internal/pkg/errs"
)

// Status is the lifecycle state of a route.
//
// State transitions:
//
//	planned ──> assigned ──> active <──> paused
//	   │                       │           │
//	   └──────> active         └───────────┴──> completed
//
// Any non-terminal status may also move to cancelled.
//
// Status is persisted by its string value.
type Status string

const (
	// Planned is the initial status of a route produced by the optimizer.
	Planned Status = "planned"

	// Assigned means a vehicle and a deliverer were attached to the route.
	Assigned Status = "assigned"

	// Active means the route is being driven.
	Active Status = "active"

	// Paused is a temporary stop of an active route.
	Paused Status = "paused"

	// Completed is final: every stop was resolved or skipped.
	Completed Status = "completed"

	// Cancelled is final: the route was abandoned.
	Cancelled Status = "cancelled"
)

// Validate rejects values outside the route status enumeration.
func (s Status) Validate() error {
	switch s {
	case Planned, Assigned, Active, Paused, Completed, Cancelled:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid route status", string(s)))
	}
}

func (s Status) String() string {
	return string(s)
}

// IsTerminal reports whether the route is completed or cancelled.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

// isPrepared reports whether the route has not been started yet.
func (s Status) isPrepared() bool {
	return s == Planned || s == Assigned
}

// Assign transitions the status to Assigned.
//
// Valid transitions:
//   - Planned -> Assigned (first assignment)
//   - Assigned -> Assigned (reassignment before start)
func (s Status) Assign() (Status, error) {
	if !s.isPrepared() {
		return "", s.refuse("assign route")
	}
	return Assigned, nil
}

// Start transitions a planned or assigned route to Active.
func (s Status) Start() (Status, error) {
	if !s.isPrepared() {
		return "", s.refuse("start route")
	}
	return Active, nil
}

// Pause transitions Active to Paused. Pausing anything else is an error,
// not a no-op.
func (s Status) Pause() (Status, error) {
	if s != Active {
		return "", s.refuse("pause route")
	}
	return Paused, nil
}

// Resume transitions Paused back to Active.
func (s Status) Resume() (Status, error) {
	if s != Paused {
		return "", s.refuse("resume route")
	}
	return Active, nil
}

// Complete transitions an active or paused route to Completed.
func (s Status) Complete() (Status, error) {
	if s != Active && s != Paused {
		return "", s.refuse("complete route")
	}
	return Completed, nil
}

// Cancel transitions any non-terminal route to Cancelled.
func (s Status) Cancel() (Status, error) {
	if s.IsTerminal() {
		return "", s.refuse("cancel route")
	}
	return Cancelled, nil
}

func (s Status) refuse(operation string) error {
	return errs.NewPreconditionFailedError(operation, fmt.Sprintf("route is %s", s))
}

// StopStatus is the state of a single stop.
type StopStatus string

const (
	StopPending    StopStatus = "pending"
	StopArrived    StopStatus = "arrived"
	StopInProgress StopStatus = "in_progress"
	StopCompleted  StopStatus = "completed"
	StopFailed     StopStatus = "failed"
	StopSkipped    StopStatus = "skipped"
)

// Validate rejects values outside the stop status enumeration.
func (s StopStatus) Validate() error {
	switch s {
	case StopPending, StopArrived, StopInProgress, StopCompleted, StopFailed, StopSkipped:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("stopStatus", fmt.Errorf("%q is not a valid stop status", string(s)))
	}
}

// IsResolved reports whether the stop was completed, failed or skipped.
func (s StopStatus) IsResolved() bool {
	return s == StopCompleted || s == StopFailed || s == StopSkipped
}

// Action is what happens at a stop.
type Action string

const (
	ActionPickup   Action = "pickup"
	ActionDelivery Action = "delivery"
	ActionTransfer Action = "transfer"
	ActionService  Action = "service"
)

// Validate rejects values outside the action enumeration.
func (a Action) Validate() error {
	switch a {
	case ActionPickup, ActionDelivery, ActionTransfer, ActionService:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("action", fmt.Errorf("%q is not a valid stop action", string(a)))
	}
}
