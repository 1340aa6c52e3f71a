package commands

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/guard"
)

var ErrStartRouteCommandIsNotConstructed = errors.New(
	"StartRouteCommand must be created via NewStartRouteCommand constructor",
)

type StartRouteCommand struct { //nolint:recvcheck //using for validation
	routeID kernel.UUID
	actor   *kernel.UUID

	guard guard.ConstructorGuard
}

func NewStartRouteCommand(routeID kernel.UUID, actor *kernel.UUID) (StartRouteCommand, error) {
	cmd := StartRouteCommand{guard: guard.NewConstructorGuard()}

	var actorErr error
	cmd.actor, actorErr = optionalActor(actor)
	if err := errors.Join(requiredID("routeId", routeID), actorErr); err != nil {
		return StartRouteCommand{}, err
	}
	cmd.routeID = routeID

	return cmd, nil
}

func (c StartRouteCommand) Validate() error {
	return c.guard.Validate(ErrStartRouteCommandIsNotConstructed)
}

func (c StartRouteCommand) RouteID() kernel.UUID { return c.routeID }
func (c StartRouteCommand) Actor() *kernel.UUID  { return c.actor }
