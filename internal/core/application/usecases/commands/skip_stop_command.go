package commands

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/guard"
)

var ErrSkipStopCommandIsNotConstructed = errors.New(
	"SkipStopCommand must be created via NewSkipStopCommand constructor",
)

type SkipStopCommand struct { //nolint:recvcheck //using for validation
	routeID   kernel.UUID
	stopIndex int
	reason    string
	actor     *kernel.UUID

	guard guard.ConstructorGuard
}

func NewSkipStopCommand(routeID kernel.UUID, stopIndex int, reason string, actor *kernel.UUID) (SkipStopCommand, error) {
	cmd := SkipStopCommand{stopIndex: stopIndex, reason: reason, guard: guard.NewConstructorGuard()}

	var actorErr error
	cmd.actor, actorErr = optionalActor(actor)
	if err := errors.Join(requiredID("routeId", routeID), validStopIndex(stopIndex), actorErr); err != nil {
		return SkipStopCommand{}, err
	}
	cmd.routeID = routeID

	return cmd, nil
}

func (c SkipStopCommand) Validate() error {
	return c.guard.Validate(ErrSkipStopCommandIsNotConstructed)
}

func (c SkipStopCommand) RouteID() kernel.UUID { return c.routeID }
func (c SkipStopCommand) StopIndex() int       { return c.stopIndex }
func (c SkipStopCommand) Reason() string       { return c.reason }
func (c SkipStopCommand) Actor() *kernel.UUID  { return c.actor }
