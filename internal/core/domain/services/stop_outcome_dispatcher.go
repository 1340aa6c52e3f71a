package services

import (
	"fmt"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/parcel"
	"shipping/internal/core/domain/model/route"
)

// Transition is one package status change derived from a route event.
type Transition struct {
	PackageID       kernel.UUID
	Status          parcel.Status
	Notes           string
	NextAttemptDate *time.Time
}

// StopOutcomeDispatcher maps route progress to package transitions.
//
// Mapping:
//   - route started: delivery packages go out_for_delivery, transfer packages
//     go in_transit_to_branch
//   - delivery stop: completed packages are delivered, failed ones are
//     failed_delivery, skipped ones are rescheduled for the next day
//   - pickup stop: completed packages are accepted
//   - transfer stop: completed packages reach their destination branch
//   - service stops and every other outcome leave packages alone
//
// Example usage:
//
//	dispatcher := NewStopOutcomeDispatcher()
//	for _, tr := range dispatcher.Plan(r.DomainEvents()) {
//	    p, _ := repo.Get(ctx, tr.PackageID)
//	    applied, err := dispatcher.Apply(p, tr, actor)
//	    ...
//	}
type StopOutcomeDispatcher struct{}

// NewStopOutcomeDispatcher creates a new StopOutcomeDispatcher.
func NewStopOutcomeDispatcher() StopOutcomeDispatcher {
	return StopOutcomeDispatcher{}
}

// Plan lists the transitions implied by events, in event order.
func (d StopOutcomeDispatcher) Plan(events []route.DomainEvent) []Transition {
	var out []Transition
	for _, event := range events {
		switch e := event.(type) {
		case route.StartedEvent:
			for _, stop := range e.Stops {
				switch stop.Action {
				case route.ActionDelivery:
					out = appendAll(out, stop.PackageIDs, parcel.OutForDelivery, "route started", nil)
				case route.ActionTransfer:
					out = appendAll(out, stop.PackageIDs, parcel.InTransitToBranch, "route started", nil)
				}
			}
		case route.StopCompletedEvent:
			notes := fmt.Sprintf("stop %d completed", e.Index+1)
			switch e.Action {
			case route.ActionDelivery:
				out = appendAll(out, e.Completed, parcel.Delivered, notes, nil)
				out = appendAll(out, e.Failed, parcel.FailedDelivery, notes, nil)
			case route.ActionPickup:
				out = appendAll(out, e.Completed, parcel.Accepted, notes, nil)
			case route.ActionTransfer:
				out = appendAll(out, e.Completed, parcel.AtDestinationBranch, notes, nil)
			}
		case route.StopFailedEvent:
			if e.Action == route.ActionDelivery {
				next := e.FailedAt.Add(parcel.DefaultRetryDelay)
				out = appendAll(out, e.Failed, parcel.FailedDelivery, e.Reason, nil)
				out = appendAll(out, e.Skipped, parcel.Rescheduled, e.Reason, &next)
			}
		case route.StopSkippedEvent:
			if e.Action == route.ActionDelivery {
				next := e.SkippedAt.Add(parcel.DefaultRetryDelay)
				out = appendAll(out, e.Packages, parcel.Rescheduled, e.Reason, &next)
			}
		}
	}
	return out
}

// Apply performs tr on p. It reports false without error when p is already
// terminal or already in the target status, so a replayed outcome is harmless.
// A repeated failed_delivery is not skipped because it consumes an attempt.
func (d StopOutcomeDispatcher) Apply(p *parcel.Parcel, tr Transition, actor *kernel.UUID) (bool, error) {
	if err := p.Validate(); err != nil {
		return false, err
	}
	if !p.ID().IsEqual(tr.PackageID) {
		return false, fmt.Errorf("transition for package %s applied to %s", tr.PackageID, p.ID())
	}
	if p.IsTerminal() {
		return false, nil
	}
	if p.Status() == tr.Status && tr.Status != parcel.FailedDelivery {
		return false, nil
	}

	err := p.TransitionStatus(tr.Status, actor, parcel.TransitionOptions{
		Notes:           tr.Notes,
		NextAttemptDate: tr.NextAttemptDate,
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

func appendAll(out []Transition, ids []kernel.UUID, status parcel.Status, notes string, next *time.Time) []Transition {
	for _, id := range ids {
		out = append(out, Transition{PackageID: id, Status: status, Notes: notes, NextAttemptDate: next})
	}
	return out
}
