package commands

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/parcel"
	"shipping/internal/pkg/guard"
)

var ErrRecordPaymentCommandIsNotConstructed = errors.New(
	"RecordPaymentCommand must be created via NewRecordPaymentCommand constructor",
)

type RecordPaymentCommand struct { //nolint:recvcheck //using for validation
	packageID kernel.UUID
	method    parcel.PaymentMethod

	guard guard.ConstructorGuard
}

func NewRecordPaymentCommand(packageID kernel.UUID, method parcel.PaymentMethod) (RecordPaymentCommand, error) {
	if err := errors.Join(requiredID("packageId", packageID), method.Validate()); err != nil {
		return RecordPaymentCommand{}, err
	}

	return RecordPaymentCommand{
		packageID: packageID,
		method:    method,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c RecordPaymentCommand) Validate() error {
	return c.guard.Validate(ErrRecordPaymentCommandIsNotConstructed)
}

func (c RecordPaymentCommand) PackageID() kernel.UUID       { return c.packageID }
func (c RecordPaymentCommand) Method() parcel.PaymentMethod { return c.method }
