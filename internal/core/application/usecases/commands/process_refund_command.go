package commands

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrProcessRefundCommandIsNotConstructed = errors.New(
	"ProcessRefundCommand must be created via NewProcessRefundCommand constructor",
)

type ProcessRefundCommand struct { //nolint:recvcheck //using for validation
	packageID kernel.UUID
	amount    decimal.Decimal
	actor     *kernel.UUID

	guard guard.ConstructorGuard
}

func NewProcessRefundCommand(packageID kernel.UUID, amount decimal.Decimal, actor *kernel.UUID) (ProcessRefundCommand, error) {
	cmd := ProcessRefundCommand{amount: amount, guard: guard.NewConstructorGuard()}

	var actorErr error
	cmd.actor, actorErr = optionalActor(actor)
	if err := errors.Join(requiredID("packageId", packageID), actorErr); err != nil {
		return ProcessRefundCommand{}, err
	}
	cmd.packageID = packageID

	return cmd, nil
}

func (c ProcessRefundCommand) Validate() error {
	return c.guard.Validate(ErrProcessRefundCommandIsNotConstructed)
}

func (c ProcessRefundCommand) PackageID() kernel.UUID  { return c.packageID }
func (c ProcessRefundCommand) Amount() decimal.Decimal { return c.amount }
func (c ProcessRefundCommand) Actor() *kernel.UUID     { return c.actor }
