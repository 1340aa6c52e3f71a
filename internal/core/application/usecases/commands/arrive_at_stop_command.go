package commands

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

var ErrArriveAtStopCommandIsNotConstructed = errors.New(
	"ArriveAtStopCommand must be created via NewArriveAtStopCommand constructor",
)

type ArriveAtStopCommand struct { //nolint:recvcheck //using for validation
	routeID   kernel.UUID
	stopIndex int
	actor     *kernel.UUID

	guard guard.ConstructorGuard
}

func NewArriveAtStopCommand(routeID kernel.UUID, stopIndex int, actor *kernel.UUID) (ArriveAtStopCommand, error) {
	cmd := ArriveAtStopCommand{stopIndex: stopIndex, guard: guard.NewConstructorGuard()}

	var actorErr error
	cmd.actor, actorErr = optionalActor(actor)
	if err := errors.Join(requiredID("routeId", routeID), validStopIndex(stopIndex), actorErr); err != nil {
		return ArriveAtStopCommand{}, err
	}
	cmd.routeID = routeID

	return cmd, nil
}

func (c ArriveAtStopCommand) Validate() error {
	return c.guard.Validate(ErrArriveAtStopCommandIsNotConstructed)
}

func (c ArriveAtStopCommand) RouteID() kernel.UUID { return c.routeID }
func (c ArriveAtStopCommand) StopIndex() int       { return c.stopIndex }
func (c ArriveAtStopCommand) Actor() *kernel.UUID  { return c.actor }

func validStopIndex(index int) error {
	if index < 0 {
		return errs.NewValueIsOutOfRangeError("stopIndex", index, 0, "unlimited")
	}
	return nil
}
