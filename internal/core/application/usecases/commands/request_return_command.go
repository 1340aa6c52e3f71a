package commands

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/guard"
)

var ErrRequestReturnCommandIsNotConstructed = errors.New(
	"RequestReturnCommand must be created via NewRequestReturnCommand constructor",
)

type RequestReturnCommand struct { //nolint:recvcheck //using for validation
	packageID kernel.UUID
	reason    string
	actor     *kernel.UUID

	guard guard.ConstructorGuard
}

func NewRequestReturnCommand(packageID kernel.UUID, reason string, actor *kernel.UUID) (RequestReturnCommand, error) {
	cmd := RequestReturnCommand{reason: reason, guard: guard.NewConstructorGuard()}

	var actorErr error
	cmd.actor, actorErr = optionalActor(actor)
	if err := errors.Join(requiredID("packageId", packageID), actorErr); err != nil {
		return RequestReturnCommand{}, err
	}
	cmd.packageID = packageID

	return cmd, nil
}

func (c RequestReturnCommand) Validate() error {
	return c.guard.Validate(ErrRequestReturnCommandIsNotConstructed)
}

func (c RequestReturnCommand) PackageID() kernel.UUID { return c.packageID }
func (c RequestReturnCommand) Reason() string         { return c.reason }
func (c RequestReturnCommand) Actor() *kernel.UUID    { return c.actor }
