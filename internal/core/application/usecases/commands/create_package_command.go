package commands

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/parcel"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

var ErrCreatePackageCommandIsNotConstructed = errors.New(
	"CreatePackageCommand must be created via NewCreatePackageCommand constructor",
)

// CreatePackageCommand registers a package at its origin branch.
//
// Example:
//
//	cmd, err := NewCreatePackageCommand(kernel.NewUUID(), parcel.Intake{
//	    ClientID:       clientID,
//	    OriginBranchID: branchID,
//	    RecipientName:  "Ana Gómez",
//	    Destination:    address,
//	    Weight:         decimal.NewFromFloat(2.5),
//	    TotalPrice:     decimal.NewFromInt(3200),
//	    PaymentMethod:  parcel.PaymentCard,
//	}, &operatorID)
//	if err != nil {
//	    return err
//	}
//	result, err := handler.Handle(ctx, cmd)
type CreatePackageCommand struct { //nolint:recvcheck //using for validation
	packageID kernel.UUID
	intake    parcel.Intake
	actor     *kernel.UUID

	guard guard.ConstructorGuard
}

func NewCreatePackageCommand(packageID kernel.UUID, intake parcel.Intake, actor *kernel.UUID) (CreatePackageCommand, error) {
	cmd := CreatePackageCommand{
		intake: intake,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setPackageID(packageID),
		cmd.setActor(actor),
	); err != nil {
		return CreatePackageCommand{}, err
	}

	return cmd, nil
}

func (c CreatePackageCommand) Validate() error {
	return c.guard.Validate(ErrCreatePackageCommandIsNotConstructed)
}

func (c CreatePackageCommand) PackageID() kernel.UUID { return c.packageID }
func (c CreatePackageCommand) Intake() parcel.Intake  { return c.intake }
func (c CreatePackageCommand) Actor() *kernel.UUID    { return c.actor }

func (c *CreatePackageCommand) setPackageID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("packageId", err)
	}
	c.packageID = id
	return nil
}

func (c *CreatePackageCommand) setActor(actor *kernel.UUID) error {
	var err error
	c.actor, err = optionalActor(actor)
	return err
}

// optionalActor copies actor. nil stands for the system.
func optionalActor(actor *kernel.UUID) (*kernel.UUID, error) {
	if actor == nil {
		return nil, nil
	}
	if err := actor.Validate(); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("actor", err)
	}
	a := *actor
	return &a, nil
}

func requiredID(param string, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause(param, err)
	}
	return nil
}
