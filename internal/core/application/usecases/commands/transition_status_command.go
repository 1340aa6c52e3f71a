package commands

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/parcel"
	"shipping/internal/pkg/guard"
)

var ErrTransitionStatusCommandIsNotConstructed = errors.New(
	"TransitionStatusCommand must be created via NewTransitionStatusCommand constructor",
)

// TransitionStatusCommand moves a package to a new status. BranchID, Notes
// and NextAttemptDate in opts are optional.
type TransitionStatusCommand struct { //nolint:recvcheck //using for validation
	packageID kernel.UUID
	status    parcel.Status
	actor     *kernel.UUID
	opts      parcel.TransitionOptions

	guard guard.ConstructorGuard
}

func NewTransitionStatusCommand(
	packageID kernel.UUID,
	status parcel.Status,
	actor *kernel.UUID,
	opts parcel.TransitionOptions,
) (TransitionStatusCommand, error) {
	cmd := TransitionStatusCommand{
		status: status,
		opts:   opts,
		guard:  guard.NewConstructorGuard(),
	}

	var actorErr error
	cmd.actor, actorErr = optionalActor(actor)
	if err := errors.Join(
		requiredID("packageId", packageID),
		status.Validate(),
		actorErr,
	); err != nil {
		return TransitionStatusCommand{}, err
	}
	cmd.packageID = packageID

	return cmd, nil
}

func (c TransitionStatusCommand) Validate() error {
	return c.guard.Validate(ErrTransitionStatusCommandIsNotConstructed)
}

func (c TransitionStatusCommand) PackageID() kernel.UUID            { return c.packageID }
func (c TransitionStatusCommand) Status() parcel.Status             { return c.status }
func (c TransitionStatusCommand) Actor() *kernel.UUID               { return c.actor }
func (c TransitionStatusCommand) Options() parcel.TransitionOptions { return c.opts }
