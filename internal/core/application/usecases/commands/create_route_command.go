package commands

import (
	"errors"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/route"
	"shipping/internal/pkg/guard"
)

var ErrCreateRouteCommandIsNotConstructed = errors.New(
	"CreateRouteCommand must be created via NewCreateRouteCommand constructor",
)

// CreateRouteCommand stores a route planned by the external optimizer. Stops
// arrive as an ordered list that is taken as is.
type CreateRouteCommand struct { //nolint:recvcheck //using for validation
	routeID        kernel.UUID
	branchID       kernel.UUID
	scheduledStart time.Time
	scheduledEnd   time.Time
	stops          []route.StopPlan

	guard guard.ConstructorGuard
}

func NewCreateRouteCommand(
	routeID, branchID kernel.UUID,
	scheduledStart, scheduledEnd time.Time,
	stops []route.StopPlan,
) (CreateRouteCommand, error) {
	if err := errors.Join(requiredID("routeId", routeID), requiredID("branchId", branchID)); err != nil {
		return CreateRouteCommand{}, err
	}

	return CreateRouteCommand{
		routeID:        routeID,
		branchID:       branchID,
		scheduledStart: scheduledStart,
		scheduledEnd:   scheduledEnd,
		stops:          append([]route.StopPlan(nil), stops...),
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (c CreateRouteCommand) Validate() error {
	return c.guard.Validate(ErrCreateRouteCommandIsNotConstructed)
}

func (c CreateRouteCommand) RouteID() kernel.UUID      { return c.routeID }
func (c CreateRouteCommand) BranchID() kernel.UUID     { return c.branchID }
func (c CreateRouteCommand) ScheduledStart() time.Time { return c.scheduledStart }
func (c CreateRouteCommand) ScheduledEnd() time.Time   { return c.scheduledEnd }
func (c CreateRouteCommand) Stops() []route.StopPlan   { return append([]route.StopPlan(nil), c.stops...) }
