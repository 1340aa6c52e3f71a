package ports

import (
	"context"

	"shipping/internal/core/domain/model/branch"
	"shipping/internal/core/domain/model/kernel"
)

// BranchRepository is the branch capacity ledger. Load changes are atomic
// conditional updates in storage, never read-modify-write in memory.
type BranchRepository interface {
	Add(ctx context.Context, aggregate *branch.Branch) error

	Get(ctx context.Context, id kernel.UUID) (*branch.Branch, error)

	// TryAdmit adds one package to the load of branch id. It fails with a
	// not-found error for an unknown branch, and with a precondition error
	// wrapping branch.ErrBranchInactive or branch.ErrBranchAtCapacity otherwise.
	TryAdmit(ctx context.Context, id kernel.UUID) error

	// Release removes one package from the load, never going below zero.
	Release(ctx context.Context, id kernel.UUID) error

	// UpdateCapacity sets a new limit (nil for unlimited). A limit below the
	// current load fails with a precondition error wrapping branch.ErrCapacityBelowLoad.
	UpdateCapacity(ctx context.Context, id kernel.UUID, limit *int) error
}
