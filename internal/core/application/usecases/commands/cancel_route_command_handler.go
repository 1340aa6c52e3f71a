package commands

import (
	"context"
	"log/slog"
	"time"

	"shipping/internal/core/domain/model/route"
)

type CancelRouteCommandHandler struct {
	exec routeExecutor
}

func NewCancelRouteCommandHandler(uowFactory RouteUoWFactory, logger *slog.Logger) CancelRouteCommandHandler {
	return CancelRouteCommandHandler{exec: newRouteExecutor(uowFactory, logger)}
}

// Handle cancels a route that has not finished yet. Packages keep their
// current status.
func (h CancelRouteCommandHandler) Handle(ctx context.Context, cmd CancelRouteCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.exec.run(ctx, "route cancelled", cmd.RouteID(), cmd.Actor(), func(r *route.Route) error {
		return r.Cancel(cmd.Reason(), time.Now().UTC())
	})
}
