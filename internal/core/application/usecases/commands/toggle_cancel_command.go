package commands

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/guard"
)

var ErrToggleCancelCommandIsNotConstructed = errors.New(
	"ToggleCancelCommand must be created via NewToggleCancelCommand constructor",
)

// ToggleCancelCommand cancels an active package or reactivates a cancelled one.
type ToggleCancelCommand struct { //nolint:recvcheck //using for validation
	packageID kernel.UUID
	actor     *kernel.UUID
	notes     string

	guard guard.ConstructorGuard
}

func NewToggleCancelCommand(packageID kernel.UUID, actor *kernel.UUID, notes string) (ToggleCancelCommand, error) {
	cmd := ToggleCancelCommand{notes: notes, guard: guard.NewConstructorGuard()}

	var actorErr error
	cmd.actor, actorErr = optionalActor(actor)
	if err := errors.Join(requiredID("packageId", packageID), actorErr); err != nil {
		return ToggleCancelCommand{}, err
	}
	cmd.packageID = packageID

	return cmd, nil
}

func (c ToggleCancelCommand) Validate() error {
	return c.guard.Validate(ErrToggleCancelCommandIsNotConstructed)
}

func (c ToggleCancelCommand) PackageID() kernel.UUID { return c.packageID }
func (c ToggleCancelCommand) Actor() *kernel.UUID    { return c.actor }
func (c ToggleCancelCommand) Notes() string          { return c.notes }
