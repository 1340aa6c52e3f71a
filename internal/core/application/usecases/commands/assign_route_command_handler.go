package commands

import (
	"context"
	"log/slog"
	"time"

	"shipping/internal/core/domain/model/route"
)

type AssignRouteCommandHandler struct {
	exec routeExecutor
}

func NewAssignRouteCommandHandler(uowFactory RouteUoWFactory, logger *slog.Logger) AssignRouteCommandHandler {
	return AssignRouteCommandHandler{exec: newRouteExecutor(uowFactory, logger)}
}

func (h AssignRouteCommandHandler) Handle(ctx context.Context, cmd AssignRouteCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.exec.run(ctx, "route assigned", cmd.RouteID(), nil, func(r *route.Route) error {
		return r.Assign(cmd.VehicleID(), cmd.DelivererID(), cmd.TransporterID(), time.Now().UTC())
	})
}
