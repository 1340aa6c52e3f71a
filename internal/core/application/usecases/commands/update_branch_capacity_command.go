package commands

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

var ErrUpdateBranchCapacityCommandIsNotConstructed = errors.New(
	"UpdateBranchCapacityCommand must be created via NewUpdateBranchCapacityCommand constructor",
)

type UpdateBranchCapacityCommand struct { //nolint:recvcheck //using for validation
	branchID      kernel.UUID
	capacityLimit *int

	guard guard.ConstructorGuard
}

func NewUpdateBranchCapacityCommand(branchID kernel.UUID, capacityLimit *int) (UpdateBranchCapacityCommand, error) {
	cmd := UpdateBranchCapacityCommand{guard: guard.NewConstructorGuard()}

	var limitErr error
	if capacityLimit != nil && *capacityLimit < 0 {
		limitErr = errs.NewValueIsOutOfRangeError("capacityLimit", *capacityLimit, 0, "unlimited")
	}
	if err := errors.Join(requiredID("branchId", branchID), limitErr); err != nil {
		return UpdateBranchCapacityCommand{}, err
	}

	cmd.branchID = branchID
	if capacityLimit != nil {
		limit := *capacityLimit
		cmd.capacityLimit = &limit
	}

	return cmd, nil
}

func (c UpdateBranchCapacityCommand) Validate() error {
	return c.guard.Validate(ErrUpdateBranchCapacityCommandIsNotConstructed)
}

func (c UpdateBranchCapacityCommand) BranchID() kernel.UUID { return c.branchID }

func (c UpdateBranchCapacityCommand) CapacityLimit() *int {
	if c.capacityLimit == nil {
		return nil
	}
	limit := *c.capacityLimit
	return &limit
}
