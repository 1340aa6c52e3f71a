package commands

import (
	"context"
	"log/slog"
	"time"

	"shipping/internal/core/domain/model/route"
)

// StartRouteCommandHandler puts a planned or assigned route on
// the road.
// Delivery packages go out for delivery and transfer packages go in transit.
type StartRouteCommandHandler struct {
	exec routeExecutor
}

func NewStartRouteCommandHandler(uowFactory RouteUoWFactory, logger *slog.Logger) StartRouteCommandHandler {
	return StartRouteCommandHandler{exec: newRouteExecutor(uowFactory, logger)}
}

func (h StartRouteCommandHandler) Handle(ctx context.Context, cmd StartRouteCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.exec.run(ctx, "route started", cmd.RouteID(), cmd.Actor(), func(r *route.Route) error {
		return r.Start(time.Now().UTC())
	})
}
