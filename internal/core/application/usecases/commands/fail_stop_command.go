package commands

import (
	"errors"
	"strings"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

var ErrFailStopCommandIsNotConstructed = errors.New(
	"FailStopCommand must be created via NewFailStopCommand constructor",
)

// FailStopCommand reports that the current stop could not be served. Packages
// listed as skipped are passed over; the rest of the stop is failed.
type FailStopCommand struct { //nolint:recvcheck //using for validation
	routeID   kernel.UUID
	stopIndex int
	reason    string
	skipped   []kernel.UUID
	actor     *kernel.UUID

	guard guard.ConstructorGuard
}

func NewFailStopCommand(
	routeID kernel.UUID,
	stopIndex int,
	reason string,
	skipped []kernel.UUID,
	actor *kernel.UUID,
) (FailStopCommand, error) {
	cmd := FailStopCommand{
		stopIndex: stopIndex,
		reason:    strings.TrimSpace(reason),
		skipped:   append([]kernel.UUID(nil), skipped...),
		guard:     guard.NewConstructorGuard(),
	}

	var reasonErr error
	if cmd.reason == "" {
		reasonErr = errs.NewValueIsRequiredError("reason")
	}
	var actorErr error
	cmd.actor, actorErr = optionalActor(actor)
	if err := errors.Join(requiredID("routeId", routeID), validStopIndex(stopIndex), reasonErr, actorErr); err != nil {
		return FailStopCommand{}, err
	}
	cmd.routeID = routeID

	return cmd, nil
}

func (c FailStopCommand) Validate() error {
	return c.guard.Validate(ErrFailStopCommandIsNotConstructed)
}

func (c FailStopCommand) RouteID() kernel.UUID   { return c.routeID }
func (c FailStopCommand) StopIndex() int         { return c.stopIndex }
func (c FailStopCommand) Reason() string         { return c.reason }
func (c FailStopCommand) Skipped() []kernel.UUID { return append([]kernel.UUID(nil), c.skipped...) }
func (c FailStopCommand) Actor() *kernel.UUID    { return c.actor }
