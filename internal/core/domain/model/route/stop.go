package route

import (
	"errors"
	"fmt"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
)

// StopPlan is one stop as produced by the route optimizer.
type StopPlan struct {
	Order           int
	Action          Action
	PackageIDs      []kernel.UUID
	Address         *kernel.Address
	EstimatedTravel time.Duration
	Notes           string
}

// Stop is a visit of the route. Its position in Route.Stops is its index.
type Stop struct {
	order             int
	action            Action
	packageIDs        []kernel.UUID
	address           *kernel.Address
	estimatedTravel   time.Duration
	status            StopStatus
	expectedArrival   *time.Time
	actualArrival     *time.Time
	resolvedAt        *time.Time
	completedPackages []kernel.UUID
	failedPackages    []kernel.UUID
	skippedPackages   []kernel.UUID
	notes             string
}

func newStop(plan StopPlan) (Stop, error) {
	var travelErr error
	if plan.EstimatedTravel < 0 {
		travelErr = errs.NewValueIsOutOfRangeError("estimatedTravel", plan.EstimatedTravel, 0, "unlimited")
	}
	var addressErr error
	if plan.Address != nil {
		addressErr = plan.Address.Validate()
	}

	if err := errors.Join(plan.Action.Validate(), travelErr, addressErr, validateIDs(plan.PackageIDs)); err != nil {
		return Stop{}, fmt.Errorf("stop %d: %w", plan.Order, err)
	}

	return Stop{
		order:           plan.Order,
		action:          plan.Action,
		packageIDs:      union(nil, plan.PackageIDs),
		address:         plan.Address,
		estimatedTravel: plan.EstimatedTravel,
		status:          StopPending,
		notes:           plan.Notes,
	}, nil
}

// StopState is the persisted state of a stop.
type StopState struct {
	Order             int
	Action            Action
	PackageIDs        []kernel.UUID
	Address           *kernel.Address
	EstimatedTravel   time.Duration
	Status            StopStatus
	ExpectedArrival   *time.Time
	ActualArrival     *time.Time
	ResolvedAt        *time.Time
	CompletedPackages []kernel.UUID
	FailedPackages    []kernel.UUID
	SkippedPackages   []kernel.UUID
	Notes             string
}

func restoreStop(s StopState) (Stop, error) {
	if err := errors.Join(s.Action.Validate(), s.Status.Validate()); err != nil {
		return Stop{}, fmt.Errorf("stop %d: %w", s.Order, err)
	}
	return Stop{
		order:             s.Order,
		action:            s.Action,
		packageIDs:        clone(s.PackageIDs),
		address:           s.Address,
		estimatedTravel:   s.EstimatedTravel,
		status:            s.Status,
		expectedArrival:   s.ExpectedArrival,
		actualArrival:     s.ActualArrival,
		resolvedAt:        s.ResolvedAt,
		completedPackages: clone(s.CompletedPackages),
		failedPackages:    clone(s.FailedPackages),
		skippedPackages:   clone(s.SkippedPackages),
		notes:             s.Notes,
	}, nil
}

// Getters return copies of the package id slices. A package of the stop appears
// in at most one of CompletedPackages, FailedPackages and SkippedPackages.
func (s Stop) Order() int                       { return s.order }
func (s Stop) Action() Action                   { return s.action }
func (s Stop) PackageIDs() []kernel.UUID        { return clone(s.packageIDs) }
func (s Stop) Address() *kernel.Address         { return s.address }
func (s Stop) EstimatedTravel() time.Duration   { return s.estimatedTravel }
func (s Stop) Status() StopStatus               { return s.status }
func (s Stop) ExpectedArrival() *time.Time      { return s.expectedArrival }
func (s Stop) ActualArrival() *time.Time        { return s.actualArrival }
func (s Stop) ResolvedAt() *time.Time           { return s.resolvedAt }
func (s Stop) CompletedPackages() []kernel.UUID { return clone(s.completedPackages) }
func (s Stop) FailedPackages() []kernel.UUID    { return clone(s.failedPackages) }
func (s Stop) SkippedPackages() []kernel.UUID   { return clone(s.skippedPackages) }
func (s Stop) Notes() string                    { return s.notes }

// isOnTime reports whether the stop was reached within tolerance of its
// expected arrival, and false for stops missing either timestamp.
func (s Stop) isOnTime(tolerance time.Duration) (onTime, measured bool) {
	if s.expectedArrival == nil || s.actualArrival == nil {
		return false, false
	}
	return s.actualArrival.Sub(*s.expectedArrival) <= tolerance, true
}

func (s *Stop) prime(now time.Time) {
	s.status = StopPending
	expected := now.Add(s.estimatedTravel)
	s.expectedArrival = &expected
}

func (s *Stop) resolve(status StopStatus, notes string, now time.Time) {
	s.status = status
	s.resolvedAt = &now
	if s.actualArrival == nil && status != StopSkipped {
		s.actualArrival = &now
	}
	if notes != "" {
		s.notes = notes
	}
}

// checkOwnership rejects ids that are not carried by this stop.
func (s Stop) checkOwnership(ids []kernel.UUID) error {
	for _, id := range ids {
		if !contains(s.packageIDs, id) {
			return errs.NewValueIsInvalidErrorWithCause("packageIds",
				fmt.Errorf("package %s is not part of stop %d", id, s.order))
		}
	}
	return nil
}

// pendingPackages returns the stop packages without a recorded outcome.
func (s Stop) pendingPackages() []kernel.UUID {
	var out []kernel.UUID
	for _, id := range s.packageIDs {
		if !s.hasOutcome(id) {
			out = append(out, id)
		}
	}
	return out
}

func (s Stop) hasOutcome(id kernel.UUID) bool {
	return contains(s.completedPackages, id) || contains(s.failedPackages, id) || contains(s.skippedPackages, id)
}

func validateIDs(ids []kernel.UUID) error {
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("packageIds", err)
		}
	}
	return nil
}

func contains(ids []kernel.UUID, id kernel.UUID) bool {
	for _, candidate := range ids {
		if candidate.IsEqual(id) {
			return true
		}
	}
	return false
}

// union appends the ids of add missing from base, keeping first-seen order.
func union(base, add []kernel.UUID) []kernel.UUID {
	out := clone(base)
	for _, id := range add {
		if !contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}

func clone(ids []kernel.UUID) []kernel.UUID {
	if ids == nil {
		return nil
	}
	return append([]kernel.UUID(nil), ids...)
}
