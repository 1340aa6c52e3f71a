package route

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

// OnTimeTolerance is how late a stop may be reached and still count as on time.
const OnTimeTolerance = 15 * time.Minute

// ErrRouteIsNotConstructed is returned for a Route not built by NewRoute or RestoreRoute.
var ErrRouteIsNotConstructed = errors.New("Route must be created via NewRoute constructor")

// Route is a planned trip of one vehicle from a branch through ordered stops.
//
// Route follows these invariants:
//   - stops are sorted by their unique order value
//   - completedStops + failedStops + skippedStops never exceeds len(stops)
//   - stops below currentStopIndex are resolved, the others are not
type Route struct {
	id                kernel.UUID
	branchID          kernel.UUID
	vehicleID         *kernel.UUID
	delivererID       *kernel.UUID
	transporterID     *kernel.UUID
	status            Status
	scheduledStart    time.Time
	scheduledEnd      time.Time
	actualStart       *time.Time
	actualEnd         *time.Time
	actualTime        time.Duration
	stops             []Stop
	currentStopIndex  int
	completedStops    int
	failedStops       int
	skippedStops      int
	onTimePerformance float64
	notes             string
	cancelReason      string
	createdAt         time.Time
	updatedAt         time.Time
	version           int

	domainEvents []DomainEvent
	guard        guard.ConstructorGuard
}

// NewRoute creates a planned route. plans may arrive in any order; a repeated
// order value rejects the whole route.
func NewRoute(id, branchID kernel.UUID, scheduledStart, scheduledEnd time.Time, plans []StopPlan) (*Route, error) {
	var scheduleErr error
	if scheduledStart.IsZero() || scheduledEnd.IsZero() {
		scheduleErr = errs.NewValueIsRequiredError("schedule")
	} else if scheduledEnd.Before(scheduledStart) {
		scheduleErr = errs.NewValueIsInvalidErrorWithCause("scheduledEnd", errors.New("ends before it starts"))
	}

	var branchErr error
	if err := branchID.Validate(); err != nil {
		branchErr = errs.NewValueIsRequiredErrorWithCause("branchId", err)
	}

	stops, stopsErr := buildStops(plans)

	if err := errors.Join(id.Validate(), branchErr, scheduleErr, stopsErr); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &Route{
		id:             id,
		branchID:       branchID,
		status:         Planned,
		scheduledStart: scheduledStart,
		scheduledEnd:   scheduledEnd,
		stops:          stops,
		createdAt:      now,
		updatedAt:      now,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func buildStops(plans []StopPlan) ([]Stop, error) {
	if len(plans) == 0 {
		return nil, errs.NewValueIsRequiredError("stops")
	}

	seen := make(map[int]struct{}, len(plans))
	stops := make([]Stop, 0, len(plans))
	var problems []error
	for _, plan := range plans {
		if _, dup := seen[plan.Order]; dup {
			problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
				"stops", fmt.Errorf("order %d is used by more than one stop", plan.Order)))
			continue
		}
		seen[plan.Order] = struct{}{}

		stop, err := newStop(plan)
		if err != nil {
			problems = append(problems, err)
			continue
		}
		stops = append(stops, stop)
	}
	if err := errors.Join(problems...); err != nil {
		return nil, err
	}

	slices.SortFunc(stops, func(a, b Stop) int { return a.order - b.order })
	return stops, nil
}

// State is the persisted state of a route.
type State struct {
	ID                kernel.UUID
	BranchID          kernel.UUID
	VehicleID         *kernel.UUID
	DelivererID       *kernel.UUID
	TransporterID     *kernel.UUID
	Status            Status
	ScheduledStart    time.Time
	ScheduledEnd      time.Time
	ActualStart       *time.Time
	ActualEnd         *time.Time
	ActualTime        time.Duration
	Stops             []StopState
	CurrentStopIndex  int
	CompletedStops    int
	FailedStops       int
	SkippedStops      int
	OnTimePerformance float64
	Notes             string
	CancelReason      string
	CreatedAt         time.Time
	UpdatedAt         time.Time
	Version           int
}

// RestoreRoute rebuilds a Route from persisted state.
func RestoreRoute(s State) (*Route, error) {
	if err := errors.Join(s.ID.Validate(), s.BranchID.Validate(), s.Status.Validate()); err != nil {
		return nil, err
	}

	stops := make([]Stop, 0, len(s.Stops))
	for _, st := range s.Stops {
		stop, err := restoreStop(st)
		if err != nil {
			return nil, err
		}
		stops = append(stops, stop)
	}
	slices.SortFunc(stops, func(a, b Stop) int { return a.order - b.order })

	if s.CurrentStopIndex < 0 || s.CurrentStopIndex > len(stops) {
		return nil, errs.NewValueIsOutOfRangeError("currentStopIndex", s.CurrentStopIndex, 0, len(stops))
	}
	if resolved := s.CompletedStops + s.FailedStops + s.SkippedStops; resolved > len(stops) {
		return nil, errs.NewValueIsOutOfRangeError("resolvedStops", resolved, 0, len(stops))
	}

	return &Route{
		id:                s.ID,
		branchID:          s.BranchID,
		vehicleID:         s.VehicleID,
		delivererID:       s.DelivererID,
		transporterID:     s.TransporterID,
		status:            s.Status,
		scheduledStart:    s.ScheduledStart,
		scheduledEnd:      s.ScheduledEnd,
		actualStart:       s.ActualStart,
		actualEnd:         s.ActualEnd,
		actualTime:        s.ActualTime,
		stops:             stops,
		currentStopIndex:  s.CurrentStopIndex,
		completedStops:    s.CompletedStops,
		failedStops:       s.FailedStops,
		skippedStops:      s.SkippedStops,
		onTimePerformance: s.OnTimePerformance,
		notes:             s.Notes,
		cancelReason:      s.CancelReason,
		createdAt:         s.CreatedAt,
		updatedAt:         s.UpdatedAt,
		version:           s.Version,
		guard:             guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the route was built through a constructor.
func (r *Route) Validate() error {
	if r == nil {
		return ErrRouteIsNotConstructed
	}
	return r.guard.Validate(ErrRouteIsNotConstructed)
}

// ID returns the route's unique identifier.
func (r *Route) ID() kernel.UUID {
	return r.id
}

// BranchID returns the branch the route departs from.
func (r *Route) BranchID() kernel.UUID {
	return r.branchID
}

// VehicleID returns the assigned vehicle, or nil before Assign.
func (r *Route) VehicleID() *kernel.UUID {
	return r.vehicleID
}

// DelivererID returns the assigned deliverer, or nil before Assign.
func (r *Route) DelivererID() *kernel.UUID {
	return r.delivererID
}

// TransporterID returns the optional transporter set by Assign.
func (r *Route) TransporterID() *kernel.UUID {
	return r.transporterID
}

// Status returns the lifecycle state of the route.
//
// Example:
//
//	r, _ := NewRoute(id, branchID, start, end, plans)
//	status := r.Status()  // Planned
//	_ = r.Assign(vehicleID, delivererID, nil, now)
//	status = r.Status()   // Assigned
func (r *Route) Status() Status {
	return r.status
}

// ScheduledStart returns the planned departure time.
func (r *Route) ScheduledStart() time.Time {
	return r.scheduledStart
}

// ScheduledEnd returns the planned return time.
func (r *Route) ScheduledEnd() time.Time {
	return r.scheduledEnd
}

// ActualStart returns when Start was called, or nil.
func (r *Route) ActualStart() *time.Time {
	return r.actualStart
}

// ActualEnd returns when Complete was called, or nil.
func (r *Route) ActualEnd() *time.Time {
	return r.actualEnd
}

// ActualTime is the time between start and completion; zero until the route
// is completed.
func (r *Route) ActualTime() time.Duration {
	return r.actualTime
}

// CurrentStopIndex returns the index of the stop being worked. It equals
// len(Stops()) once every stop is resolved.
//
// Example:
//
//	_ = r.Start(now)
//	i := r.CurrentStopIndex()  // 0
//	_ = r.SkipStop(0, "road closed", now)
//	i = r.CurrentStopIndex()   // 1
func (r *Route) CurrentStopIndex() int {
	return r.currentStopIndex
}

// CompletedStops counts stops resolved as completed.
func (r *Route) CompletedStops() int {
	return r.completedStops
}

// FailedStops counts stops resolved as failed.
func (r *Route) FailedStops() int {
	return r.failedStops
}

// SkippedStops counts stops passed over, including those skipped by Complete.
func (r *Route) SkippedStops() int {
	return r.skippedStops
}

// OnTimePerformance is the share of arrived stops reached within
// OnTimeTolerance, from 0 to 1. It is computed by Complete.
func (r *Route) OnTimePerformance() float64 {
	return r.onTimePerformance
}

func (r *Route) Notes() string {
	return r.notes
}

func (r *Route) CancelReason() string {
	return r.cancelReason
}

func (r *Route) CreatedAt() time.Time {
	return r.createdAt
}

func (r *Route) UpdatedAt() time.Time {
	return r.updatedAt
}

// Version returns the optimistic lock value the route was loaded with.
func (r *Route) Version() int {
	return r.version
}

// DomainEvents returns a copy of the events raised since the last clear.
func (r *Route) DomainEvents() []DomainEvent {
	return slices.Clone(r.domainEvents)
}

// ClearDomainEvents drops the raised events once they have been dispatched.
func (r *Route) ClearDomainEvents() {
	r.domainEvents = nil
}

// Stops returns a copy of the stops in route order. Mutating the copy does
// not affect the route.
func (r *Route) Stops() []Stop {
	return slices.Clone(r.stops)
}

// PackageIDs returns every package carried by the route, without repeats.
func (r *Route) PackageIDs() []kernel.UUID {
	var out []kernel.UUID
	for _, stop := range r.stops {
		out = union(out, stop.packageIDs)
	}
	return out
}

// CurrentStop returns the stop to be resolved next; false past the last stop.
func (r *Route) CurrentStop() (Stop, bool) {
	return r.stopAt(r.currentStopIndex)
}

// NextStop returns the stop after the current one; false when there is none.
func (r *Route) NextStop() (Stop, bool) {
	return r.stopAt(r.currentStopIndex + 1)
}

// ProgressPercentage is the share of resolved stops, in percent.
func (r *Route) ProgressPercentage() float64 {
	if len(r.stops) == 0 {
		return 0
	}
	resolved := r.completedStops + r.failedStops + r.skippedStops
	return float64(resolved) / float64(len(r.stops)) * 100
}

// Assign attaches the vehicle and people driving the route.
func (r *Route) Assign(vehicleID, delivererID kernel.UUID, transporterID *kernel.UUID, now time.Time) error {
	var transporterErr error
	if transporterID != nil {
		transporterErr = transporterID.Validate()
	}
	if err := errors.Join(vehicleID.Validate(), delivererID.Validate(), transporterErr); err != nil {
		return err
	}

	next, err := r.status.Assign()
	if err != nil {
		return err
	}

	r.vehicleID = &vehicleID
	r.delivererID = &delivererID
	if transporterID != nil {
		t := *transporterID
		r.transporterID = &t
	}
	r.status = next
	r.updatedAt = now
	return nil
}

// Start puts the route on the road and primes the first stop.
func (r *Route) Start(now time.Time) error {
	next, err := r.status.Start()
	if err != nil {
		return err
	}
	if len(r.stops) == 0 {
		return errs.NewPreconditionFailedError("start route", "route has no stops")
	}

	r.status = next
	r.actualStart = &now
	r.currentStopIndex = 0
	r.stops[0].prime(now)
	r.updatedAt = now

	refs := make([]StopRef, 0, len(r.stops))
	for _, stop := range r.stops {
		refs = append(refs, StopRef{Order: stop.order, Action: stop.action, PackageIDs: clone(stop.packageIDs)})
	}
	r.raise(StartedEvent{RouteID: r.id, BranchID: r.branchID, Stops: refs, StartedAt: now})
	return nil
}

// ArriveAtStop records the arrival time at the current stop.
func (r *Route) ArriveAtStop(index int, now time.Time) error {
	stop, err := r.currentFor("arrive at stop", index)
	if err != nil {
		return err
	}
	if stop.status != StopPending {
		return errs.NewPreconditionFailedError("arrive at stop", fmt.Sprintf("stop %d is %s", index, stop.status))
	}

	stop.status = StopArrived
	stop.actualArrival = &now
	r.updatedAt = now
	return nil
}

// CompleteStop resolves the current stop as completed, recording which of its
// packages were handed over and which were not. Package ids are unioned with
// outcomes already recorded; an id may not be both completed and failed.
func (r *Route) CompleteStop(index int, completed, failed []kernel.UUID, notes string, now time.Time) error {
	const op = "complete stop"

	stop, err := r.currentFor(op, index)
	if err != nil {
		return err
	}
	if err = errors.Join(validateIDs(completed), validateIDs(failed)); err != nil {
		return err
	}
	if err = errors.Join(stop.checkOwnership(completed), stop.checkOwnership(failed)); err != nil {
		return err
	}

	allCompleted := union(stop.completedPackages, completed)
	allFailed := union(stop.failedPackages, failed)
	for _, id := range allCompleted {
		if contains(allFailed, id) {
			return errs.NewValueIsInvalidErrorWithCause("packageIds",
				fmt.Errorf("package %s is reported both completed and failed", id))
		}
	}

	stop.completedPackages = allCompleted
	stop.failedPackages = allFailed
	stop.resolve(StopCompleted, strings.TrimSpace(notes), now)
	r.completedStops++
	r.raise(StopCompletedEvent{
		RouteID:     r.id,
		Index:       index,
		Action:      stop.action,
		Completed:   clone(allCompleted),
		Failed:      clone(allFailed),
		CompletedAt: now,
	})
	r.advance(now)
	return nil
}

// FailStop resolves the current stop as failed. skipped lists the packages of
// the stop that were passed over without an attempt; every other package still
// without an outcome is recorded as failed.
func (r *Route) FailStop(index int, reason string, skipped []kernel.UUID, now time.Time) error {
	const op = "fail stop"

	stop, err := r.currentFor(op, index)
	if err != nil {
		return err
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return errs.NewValueIsRequiredError("reason")
	}
	if err = errors.Join(validateIDs(skipped), stop.checkOwnership(skipped)); err != nil {
		return err
	}
	for _, id := range skipped {
		if contains(stop.completedPackages, id) || contains(stop.failedPackages, id) {
			return errs.NewValueIsInvalidErrorWithCause("packageIds",
				fmt.Errorf("package %s already has an outcome", id))
		}
	}

	stop.skippedPackages = union(stop.skippedPackages, skipped)
	stop.failedPackages = union(stop.failedPackages, stop.pendingPackages())
	stop.resolve(StopFailed, reason, now)
	r.failedStops++
	r.raise(StopFailedEvent{
		RouteID:  r.id,
		Index:    index,
		Action:   stop.action,
		Reason:   reason,
		Failed:   clone(stop.failedPackages),
		Skipped:  clone(stop.skippedPackages),
		FailedAt: now,
	})
	r.advance(now)
	return nil
}

// SkipStop passes over the current stop.
func (r *Route) SkipStop(index int, reason string, now time.Time) error {
	stop, err := r.currentFor("skip stop", index)
	if err != nil {
		return err
	}

	r.skip(index, stop, strings.TrimSpace(reason), now)
	r.advance(now)
	return nil
}

// Pause halts an active route.
func (r *Route) Pause(now time.Time) error {
	next, err := r.status.Pause()
	if err != nil {
		return err
	}
	r.status = next
	r.updatedAt = now
	return nil
}

// Resume continues a paused route.
func (r *Route) Resume(now time.Time) error {
	next, err := r.status.Resume()
	if err != nil {
		return err
	}
	r.status = next
	r.updatedAt = now
	return nil
}

// Cancel abandons the route. Stops keep the state they had.
func (r *Route) Cancel(reason string, now time.Time) error {
	next, err := r.status.Cancel()
	if err != nil {
		return err
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return errs.NewValueIsRequiredError("reason")
	}

	r.status = next
	r.cancelReason = reason
	r.updatedAt = now
	r.raise(CancelledEvent{RouteID: r.id, Reason: reason, CancelledAt: now})
	return nil
}

// Complete closes the route. Stops not reached yet are skipped. The actual
// time and the on-time performance are computed here.
func (r *Route) Complete(notes string, now time.Time) error {
	next, err := r.status.Complete()
	if err != nil {
		return err
	}

	for i := r.currentStopIndex; i < len(r.stops); i++ {
		r.skip(i, &r.stops[i], "route completed before the stop was reached", now)
	}
	r.currentStopIndex = len(r.stops)

	r.status = next
	r.notes = strings.TrimSpace(notes)
	r.actualEnd = &now
	if r.actualStart != nil {
		r.actualTime = now.Sub(*r.actualStart)
	}
	r.onTimePerformance = r.measureOnTime()
	r.updatedAt = now

	r.raise(CompletedEvent{
		RouteID:           r.id,
		CompletedStops:    r.completedStops,
		FailedStops:       r.failedStops,
		SkippedStops:      r.skippedStops,
		OnTimePerformance: r.onTimePerformance,
		CompletedAt:       now,
	})
	return nil
}

// ReorderStops rearranges the stops of a route that has not started.
// newOrder lists the current order values in their new sequence; it must name
// every stop exactly once. Stops are then renumbered 1..n.
func (r *Route) ReorderStops(newOrder []int, now time.Time) error {
	if !r.status.isPrepared() {
		return r.status.refuse("reorder stops")
	}
	if len(newOrder) != len(r.stops) {
		return errs.NewValueIsInvalidErrorWithCause("newOrder",
			fmt.Errorf("%d positions given for %d stops", len(newOrder), len(r.stops)))
	}

	byOrder := make(map[int]Stop, len(r.stops))
	for _, stop := range r.stops {
		byOrder[stop.order] = stop
	}

	reordered := make([]Stop, 0, len(newOrder))
	for i, order := range newOrder {
		stop, ok := byOrder[order]
		if !ok {
			return errs.NewValueIsInvalidErrorWithCause("newOrder",
				fmt.Errorf("order %d is unknown or repeated", order))
		}
		delete(byOrder, order)
		stop.order = i + 1
		reordered = append(reordered, stop)
	}

	r.stops = reordered
	r.updatedAt = now
	return nil
}

func (r *Route) currentFor(op string, index int) (*Stop, error) {
	if r.status != Active {
		return nil, r.status.refuse(op)
	}
	if index != r.currentStopIndex {
		return nil, errs.NewPreconditionFailedError(op,
			fmt.Sprintf("stop %d is not the current stop %d", index, r.currentStopIndex))
	}
	if index >= len(r.stops) {
		return nil, errs.NewPreconditionFailedError(op, "route has no stop left")
	}
	return &r.stops[index], nil
}

func (r *Route) skip(index int, stop *Stop, reason string, now time.Time) {
	stop.skippedPackages = union(stop.skippedPackages, stop.pendingPackages())
	stop.resolve(StopSkipped, reason, now)
	r.skippedStops++
	r.raise(StopSkippedEvent{
		RouteID:   r.id,
		Index:     index,
		Action:    stop.action,
		Reason:    reason,
		Packages:  clone(stop.skippedPackages),
		SkippedAt: now,
	})
}

func (r *Route) advance(now time.Time) {
	r.currentStopIndex++
	if r.currentStopIndex < len(r.stops) {
		r.stops[r.currentStopIndex].prime(now)
	}
	r.updatedAt = now
}

func (r *Route) measureOnTime() float64 {
	var onTime, measured int
	for _, stop := range r.stops {
		ok, counted := stop.isOnTime(OnTimeTolerance)
		if !counted {
			continue
		}
		measured++
		if ok {
			onTime++
		}
	}
	if measured == 0 {
		return 0
	}
	return float64(onTime) / float64(measured)
}

func (r *Route) stopAt(i int) (Stop, bool) {
	if i < 0 || i >= len(r.stops) {
		return Stop{}, false
	}
	return r.stops[i], true
}

func (r *Route) raise(event DomainEvent) {
	r.domainEvents = append(r.domainEvents, event)
}
