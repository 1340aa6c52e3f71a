package commands

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/guard"
)

var ErrPauseRouteCommandIsNotConstructed = errors.New(
	"PauseRouteCommand must be created via NewPauseRouteCommand constructor",
)

type PauseRouteCommand struct { //nolint:recvcheck //using for validation
	routeID kernel.UUID
	actor   *kernel.UUID

	guard guard.ConstructorGuard
}

func NewPauseRouteCommand(routeID kernel.UUID, actor *kernel.UUID) (PauseRouteCommand, error) {
	cmd := PauseRouteCommand{guard: guard.NewConstructorGuard()}

	var actorErr error
	cmd.actor, actorErr = optionalActor(actor)
	if err := errors.Join(requiredID("routeId", routeID), actorErr); err != nil {
		return PauseRouteCommand{}, err
	}
	cmd.routeID = routeID

	return cmd, nil
}

func (c PauseRouteCommand) Validate() error {
	return c.guard.Validate(ErrPauseRouteCommandIsNotConstructed)
}

func (c PauseRouteCommand) RouteID() kernel.UUID { return c.routeID }
func (c PauseRouteCommand) Actor() *kernel.UUID  { return c.actor }
