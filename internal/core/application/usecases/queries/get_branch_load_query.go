package queries

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

var ErrGetBranchLoadQueryIsNotConstructed = errors.New(
	"GetBranchLoadQuery must be created via NewGetBranchLoadQuery constructor",
)

// GetBranchLoadQuery reads the ledger of every branch of a company.
type GetBranchLoadQuery struct {
	companyID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetBranchLoadQuery(companyID kernel.UUID) (GetBranchLoadQuery, error) {
	if err := companyID.Validate(); err != nil {
		return GetBranchLoadQuery{}, errs.NewValueIsRequiredErrorWithCause("companyId", err)
	}
	return GetBranchLoadQuery{companyID: companyID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetBranchLoadQuery) Validate() error {
	return q.guard.Validate(ErrGetBranchLoadQueryIsNotConstructed)
}

// BranchLoadResponse is a snapshot of one branch. CapacityLimit and Available
// are nil for an unlimited branch.
type BranchLoadResponse struct {
	ID                    kernel.UUID
	Name                  string
	Status                string
	CapacityLimit         *int
	CurrentLoad           int
	Available             *int
	IsFull                bool
	UtilizationPercentage float64
}
