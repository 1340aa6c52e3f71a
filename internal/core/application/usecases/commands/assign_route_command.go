package commands

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/guard"
)

var ErrAssignRouteCommandIsNotConstructed = errors.New(
	"AssignRouteCommand must be created via NewAssignRouteCommand constructor",
)

// AssignRouteCommand attaches a vehicle, a deliverer and optionally a
// transporter to a route that has not started.
type AssignRouteCommand struct { //nolint:recvcheck //using for validation
	routeID       kernel.UUID
	vehicleID     kernel.UUID
	delivererID   kernel.UUID
	transporterID *kernel.UUID

	guard guard.ConstructorGuard
}

func NewAssignRouteCommand(routeID, vehicleID, delivererID kernel.UUID, transporterID *kernel.UUID) (AssignRouteCommand, error) {
	cmd := AssignRouteCommand{guard: guard.NewConstructorGuard()}

	var transporterErr error
	cmd.transporterID, transporterErr = optionalActor(transporterID)
	if err := errors.Join(
		requiredID("routeId", routeID),
		requiredID("vehicleId", vehicleID),
		requiredID("delivererId", delivererID),
		transporterErr,
	); err != nil {
		return AssignRouteCommand{}, err
	}
	cmd.routeID = routeID
	cmd.vehicleID = vehicleID
	cmd.delivererID = delivererID

	return cmd, nil
}

func (c AssignRouteCommand) Validate() error {
	return c.guard.Validate(ErrAssignRouteCommandIsNotConstructed)
}

func (c AssignRouteCommand) RouteID() kernel.UUID        { return c.routeID }
func (c AssignRouteCommand) VehicleID() kernel.UUID      { return c.vehicleID }
func (c AssignRouteCommand) DelivererID() kernel.UUID    { return c.delivererID }
func (c AssignRouteCommand) TransporterID() *kernel.UUID { return c.transporterID }
