package commands

import (
	"context"
	"log/slog"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/route"
	"shipping/internal/core/domain/services"
)

// routeExecutor runs one mutation of a stored route and applies the package
// transitions it implies, all in one unit of work.
type routeExecutor struct {
	uowFactory RouteUoWFactory
	dispatcher services.StopOutcomeDispatcher
	logger     *slog.Logger
}

func newRouteExecutor(uowFactory RouteUoWFactory, logger *slog.Logger) routeExecutor {
	if logger == nil {
		logger = slog.Default()
	}
	return routeExecutor{
		uowFactory: uowFactory,
		dispatcher: services.NewStopOutcomeDispatcher(),
		logger:     logger.With("component", "route-commands"),
	}
}

func (e routeExecutor) run(
	ctx context.Context,
	op string,
	id kernel.UUID,
	actor *kernel.UUID,
	mutate func(*route.Route) error,
) error {
	uow := e.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	routes := uow.RouteRepository()
	r, err := routes.Get(ctx, id)
	if err != nil {
		return err
	}
	if err = mutate(r); err != nil {
		return err
	}
	if err = routes.Update(ctx, r); err != nil {
		return err
	}

	changed, err := e.cascade(ctx, uow, r.DomainEvents(), actor)
	if err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	e.logger.InfoContext(ctx, op,
		"route_id", r.ID().String(),
		"status", r.Status().String(),
		"current_stop", r.CurrentStopIndex(),
		"packages_changed", changed,
	)
	r.ClearDomainEvents()
	return nil
}

// cascade applies the planned transitions. Transitions are grouped per
// package so each parcel is loaded and updated once per command.
func (e routeExecutor) cascade(ctx context.Context, uow RouteUoW, events []route.DomainEvent, actor *kernel.UUID) (int, error) {
	plan := e.dispatcher.Plan(events)
	if len(plan) == 0 {
		return 0, nil
	}

	var order []kernel.UUID
	grouped := make(map[kernel.UUID][]services.Transition)
	for _, tr := range plan {
		if _, seen := grouped[tr.PackageID]; !seen {
			order = append(order, tr.PackageID)
		}
		grouped[tr.PackageID] = append(grouped[tr.PackageID], tr)
	}

	parcels := uow.ParcelRepository()
	changed := 0
	for _, id := range order {
		p, err := parcels.Get(ctx, id)
		if err != nil {
			return 0, err
		}

		applied := false
		for _, tr := range grouped[id] {
			ok, applyErr := e.dispatcher.Apply(p, tr, actor)
			if applyErr != nil {
				return 0, applyErr
			}
			applied = applied || ok
		}
		if !applied {
			continue
		}

		if err = parcels.Update(ctx, p); err != nil {
			return 0, err
		}
		if err = releaseAdmissions(ctx, uow, p.DomainEvents()); err != nil {
			return 0, err
		}
		changed++
	}

	return changed, nil
}
