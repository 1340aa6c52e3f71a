package commands

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/guard"
)

var ErrResumeRouteCommandIsNotConstructed = errors.New(
	"ResumeRouteCommand must be created via NewResumeRouteCommand constructor",
)

type ResumeRouteCommand struct { //nolint:recvcheck //using for validation
	routeID kernel.UUID
	actor   *kernel.UUID

	guard guard.ConstructorGuard
}

func NewResumeRouteCommand(routeID kernel.UUID, actor *kernel.UUID) (ResumeRouteCommand, error) {
	cmd := ResumeRouteCommand{guard: guard.NewConstructorGuard()}

	var actorErr error
	cmd.actor, actorErr = optionalActor(actor)
	if err := errors.Join(requiredID("routeId", routeID), actorErr); err != nil {
		return ResumeRouteCommand{}, err
	}
	cmd.routeID = routeID

	return cmd, nil
}

func (c ResumeRouteCommand) Validate() error {
	return c.guard.Validate(ErrResumeRouteCommandIsNotConstructed)
}

func (c ResumeRouteCommand) RouteID() kernel.UUID { return c.routeID }
func (c ResumeRouteCommand) Actor() *kernel.UUID  { return c.actor }
