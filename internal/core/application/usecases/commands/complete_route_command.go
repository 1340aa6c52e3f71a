package commands

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/guard"
)

var ErrCompleteRouteCommandIsNotConstructed = errors.New(
	"CompleteRouteCommand must be created via NewCompleteRouteCommand constructor",
)

type CompleteRouteCommand struct { //nolint:recvcheck //using for validation
	routeID kernel.UUID
	notes   string
	actor   *kernel.UUID

	guard guard.ConstructorGuard
}

func NewCompleteRouteCommand(routeID kernel.UUID, notes string, actor *kernel.UUID) (CompleteRouteCommand, error) {
	cmd := CompleteRouteCommand{notes: notes, guard: guard.NewConstructorGuard()}

	var actorErr error
	cmd.actor, actorErr = optionalActor(actor)
	if err := errors.Join(requiredID("routeId", routeID), actorErr); err != nil {
		return CompleteRouteCommand{}, err
	}
	cmd.routeID = routeID

	return cmd, nil
}

func (c CompleteRouteCommand) Validate() error {
	return c.guard.Validate(ErrCompleteRouteCommandIsNotConstructed)
}

func (c CompleteRouteCommand) RouteID() kernel.UUID { return c.routeID }
func (c CompleteRouteCommand) Notes() string        { return c.notes }
func (c CompleteRouteCommand) Actor() *kernel.UUID  { return c.actor }
