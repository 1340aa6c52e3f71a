package commands

import (
	"context"
	"log/slog"

	"shipping/internal/core/domain/model/route"
)

type CreateRouteCommandHandler struct {
	uowFactory RouteUoWFactory
	logger     *slog.Logger
}

func NewCreateRouteCommandHandler(uowFactory RouteUoWFactory, logger *slog.Logger) CreateRouteCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return CreateRouteCommandHandler{uowFactory: uowFactory, logger: logger.With("component", "route-commands")}
}

// Handle builds the route in planned status and stores it with its package index.
// Every package named by a stop must exist; an unknown one fails with ObjectNotFound.
func (h CreateRouteCommandHandler) Handle(ctx context.Context, cmd CreateRouteCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	r, err := route.NewRoute(cmd.RouteID(), cmd.BranchID(), cmd.ScheduledStart(), cmd.ScheduledEnd(), cmd.Stops())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	parcels := uow.ParcelRepository()
	for _, id := range r.PackageIDs() {
		if _, err = parcels.Get(ctx, id); err != nil {
			return err
		}
	}

	if err = uow.RouteRepository().Add(ctx, r); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.logger.InfoContext(ctx, "route created",
		"route_id", r.ID().String(),
		"branch_id", r.BranchID().String(),
		"stops", len(r.Stops()),
	)
	return nil
}
