package commands

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/guard"
)

var ErrCompleteStopCommandIsNotConstructed = errors.New(
	"CompleteStopCommand must be created via NewCompleteStopCommand constructor",
)

// CompleteStopCommand reports the outcome of the current stop: which of its
// packages were served and which were not.
type CompleteStopCommand struct { //nolint:recvcheck //using for validation
	routeID   kernel.UUID
	stopIndex int
	completed []kernel.UUID
	failed    []kernel.UUID
	notes     string
	actor     *kernel.UUID

	guard guard.ConstructorGuard
}

func NewCompleteStopCommand(
	routeID kernel.UUID,
	stopIndex int,
	completed, failed []kernel.UUID,
	notes string,
	actor *kernel.UUID,
) (CompleteStopCommand, error) {
	cmd := CompleteStopCommand{
		stopIndex: stopIndex,
		completed: append([]kernel.UUID(nil), completed...),
		failed:    append([]kernel.UUID(nil), failed...),
		notes:     notes,
		guard:     guard.NewConstructorGuard(),
	}

	var actorErr error
	cmd.actor, actorErr = optionalActor(actor)
	if err := errors.Join(requiredID("routeId", routeID), validStopIndex(stopIndex), actorErr); err != nil {
		return CompleteStopCommand{}, err
	}
	cmd.routeID = routeID

	return cmd, nil
}

func (c CompleteStopCommand) Validate() error {
	return c.guard.Validate(ErrCompleteStopCommandIsNotConstructed)
}

func (c CompleteStopCommand) RouteID() kernel.UUID     { return c.routeID }
func (c CompleteStopCommand) StopIndex() int           { return c.stopIndex }
func (c CompleteStopCommand) Completed() []kernel.UUID { return append([]kernel.UUID(nil), c.completed...) }
func (c CompleteStopCommand) Failed() []kernel.UUID    { return append([]kernel.UUID(nil), c.failed...) }
func (c CompleteStopCommand) Notes() string            { return c.notes }
func (c CompleteStopCommand) Actor() *kernel.UUID      { return c.actor }
