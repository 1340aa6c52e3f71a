package commands

import (
	"context"
	"log/slog"
	"time"

	"shipping/internal/core/domain/model/route"
)

type ReorderStopsCommandHandler struct {
	exec routeExecutor
}

func NewReorderStopsCommandHandler(uowFactory RouteUoWFactory, logger *slog.Logger) ReorderStopsCommandHandler {
	return ReorderStopsCommandHandler{exec: newRouteExecutor(uowFactory, logger)}
}

func (h ReorderStopsCommandHandler) Handle(ctx context.Context, cmd ReorderStopsCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.exec.run(ctx, "stops reordered", cmd.RouteID(), nil, func(r *route.Route) error {
		return r.ReorderStops(cmd.NewOrder(), time.Now().UTC())
	})
}
