package commands

import (
	"context"
	"log/slog"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/parcel"
	"shipping/internal/core/ports"
)

// parcelExecutor runs one mutation of a stored parcel inside a unit of work.
type parcelExecutor struct {
	uowFactory ParcelUoWFactory
	logger     *slog.Logger
}

func newParcelExecutor(uowFactory ParcelUoWFactory, logger *slog.Logger) parcelExecutor {
	if logger == nil {
		logger = slog.Default()
	}
	return parcelExecutor{uowFactory: uowFactory, logger: logger.With("component", "package-commands")}
}

// run loads the parcel, applies mutate, persists it and gives back any branch
// admission the mutation released.
func (e parcelExecutor) run(ctx context.Context, op string, id kernel.UUID, mutate func(*parcel.Parcel) error) error {
	uow := e.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.ParcelRepository()
	p, err := repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if err = mutate(p); err != nil {
		return err
	}
	if err = repo.Update(ctx, p); err != nil {
		return err
	}
	if err = releaseAdmissions(ctx, uow, p.DomainEvents()); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	logParcel(ctx, e.logger, op, p)
	return nil
}

// releaseAdmissions hands back every branch slot released by the events.
// The ledger is only opened when there is something to release.
func releaseAdmissions(ctx context.Context, uow BranchRepoFactory, events []parcel.DomainEvent) error {
	var branches ports.BranchRepository
	for _, event := range events {
		released, ok := event.(parcel.AdmissionReleasedEvent)
		if !ok {
			continue
		}
		if branches == nil {
			branches = uow.BranchRepository()
		}
		if err := branches.Release(ctx, released.BranchID); err != nil {
			return err
		}
	}
	return nil
}

func logParcel(ctx context.Context, logger *slog.Logger, op string, p *parcel.Parcel) {
	events := p.DomainEvents()
	types := make([]string, 0, len(events))
	for _, event := range events {
		types = append(types, event.EventType())
	}
	logger.InfoContext(ctx, op,
		"package_id", p.ID().String(),
		"tracking_id", p.TrackingID(),
		"status", p.Status().String(),
		"events", types,
	)
	p.ClearDomainEvents()
}
