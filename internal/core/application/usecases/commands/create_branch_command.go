package commands

import (
	"errors"
	"strings"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

var ErrCreateBranchCommandIsNotConstructed = errors.New(
	"CreateBranchCommand must be created via NewCreateBranchCommand constructor",
)

// CreateBranchCommand registers a branch in the ledger. A nil capacity limit
// means the branch admits without bound.
type CreateBranchCommand struct { //nolint:recvcheck //using for validation
	branchID      kernel.UUID
	companyID     kernel.UUID
	name          string
	capacityLimit *int

	guard guard.ConstructorGuard
}

func NewCreateBranchCommand(
	branchID, companyID kernel.UUID,
	name string,
	capacityLimit *int,
) (CreateBranchCommand, error) {
	cmd := CreateBranchCommand{guard: guard.NewConstructorGuard()}

	name = strings.TrimSpace(name)
	var nameErr, limitErr error
	if name == "" {
		nameErr = errs.NewValueIsRequiredError("name")
	}
	if capacityLimit != nil && *capacityLimit < 0 {
		limitErr = errs.NewValueIsOutOfRangeError("capacityLimit", *capacityLimit, 0, "unlimited")
	}
	if err := errors.Join(
		requiredID("branchId", branchID),
		requiredID("companyId", companyID),
		nameErr,
		limitErr,
	); err != nil {
		return CreateBranchCommand{}, err
	}

	cmd.branchID = branchID
	cmd.companyID = companyID
	cmd.name = name
	if capacityLimit != nil {
		limit := *capacityLimit
		cmd.capacityLimit = &limit
	}

	return cmd, nil
}

func (c CreateBranchCommand) Validate() error {
	return c.guard.Validate(ErrCreateBranchCommandIsNotConstructed)
}

func (c CreateBranchCommand) BranchID() kernel.UUID  { return c.branchID }
func (c CreateBranchCommand) CompanyID() kernel.UUID { return c.companyID }
func (c CreateBranchCommand) Name() string           { return c.name }

func (c CreateBranchCommand) CapacityLimit() *int {
	if c.capacityLimit == nil {
		return nil
	}
	limit := *c.capacityLimit
	return &limit
}
