package commands

import (
	"context"
	"log/slog"
	"time"

	"shipping/internal/core/domain/model/route"
)

// CompleteRouteCommandHandler closes an active route. Stops that were never
// reached are marked skipped, and their delivery packages are rescheduled.
type CompleteRouteCommandHandler struct {
	exec routeExecutor
}

func NewCompleteRouteCommandHandler(uowFactory RouteUoWFactory, logger *slog.Logger) CompleteRouteCommandHandler {
	return CompleteRouteCommandHandler{exec: newRouteExecutor(uowFactory, logger)}
}

func (h CompleteRouteCommandHandler) Handle(ctx context.Context, cmd CompleteRouteCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.exec.run(ctx, "route completed", cmd.RouteID(), cmd.Actor(), func(r *route.Route) error {
		return r.Complete(cmd.Notes(), time.Now().UTC())
	})
}
