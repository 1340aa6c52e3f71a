package commands

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/guard"
)

var ErrCancelRouteCommandIsNotConstructed = errors.New(
	"CancelRouteCommand must be created via NewCancelRouteCommand constructor",
)

type CancelRouteCommand struct { //nolint:recvcheck //using for validation
	routeID kernel.UUID
	reason  string
	actor   *kernel.UUID

	guard guard.ConstructorGuard
}

func NewCancelRouteCommand(routeID kernel.UUID, reason string, actor *kernel.UUID) (CancelRouteCommand, error) {
	cmd := CancelRouteCommand{reason: reason, guard: guard.NewConstructorGuard()}

	var actorErr error
	cmd.actor, actorErr = optionalActor(actor)
	if err := errors.Join(requiredID("routeId", routeID), actorErr); err != nil {
		return CancelRouteCommand{}, err
	}
	cmd.routeID = routeID

	return cmd, nil
}

func (c CancelRouteCommand) Validate() error {
	return c.guard.Validate(ErrCancelRouteCommandIsNotConstructed)
}

func (c CancelRouteCommand) RouteID() kernel.UUID { return c.routeID }
func (c CancelRouteCommand) Reason() string       { return c.reason }
func (c CancelRouteCommand) Actor() *kernel.UUID  { return c.actor }
