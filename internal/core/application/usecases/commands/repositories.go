// Package commands contains the operations that change state: package intake
// and lifecycle, route execution and branch capacity. Every handler validates
// its command, opens one unit of work, mutates aggregates through their own
// methods and commits. Route handlers also carry the consequences of a route
// event over to the packages it touches inside the same unit of work.
package commands

import (
	"context"

	"shipping/internal/core/ports"
)

// Unit of Work interfaces narrow ports.UnitOfWork to what each handler touches.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	ParcelRepoFactory interface {
		ParcelRepository() ports.ParcelRepository
	}

	RouteRepoFactory interface {
		RouteRepository() ports.RouteRepository
	}

	BranchRepoFactory interface {
		BranchRepository() ports.BranchRepository
	}

	UserRepoFactory interface {
		UserRepository() ports.UserRepository
	}

	// ParcelUoW serves package lifecycle commands. The branch ledger is
	// needed because leaving the network gives back a branch admission.
	ParcelUoW interface {
		TxManager
		ParcelRepoFactory
		BranchRepoFactory
	}

	ParcelUoWFactory interface {
		Create() ParcelUoW
	}

	// IntakeUoW serves package creation: admission, client touch and insert.
	IntakeUoW interface {
		TxManager
		ParcelRepoFactory
		BranchRepoFactory
		UserRepoFactory
	}

	IntakeUoWFactory interface {
		Create() IntakeUoW
	}

	// RouteUoW serves route commands and the package cascade they trigger.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   r, err := uow.RouteRepository().Get(ctx, routeID)
	//   // ... mutate the route, then update the packages it reports on
	//   err = uow.Commit(ctx)
	RouteUoW interface {
		TxManager
		RouteRepoFactory
		ParcelRepoFactory
		BranchRepoFactory
	}

	RouteUoWFactory interface {
		Create() RouteUoW
	}

	// BranchUoW serves branch ledger administration.
	BranchUoW interface {
		TxManager
		BranchRepoFactory
	}

	BranchUoWFactory interface {
		Create() BranchUoW
	}
)
