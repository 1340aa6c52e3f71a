package commands

import (
	"context"
	"log/slog"
	"time"

	"shipping/internal/core/domain/model/route"
)

// PauseRouteCommandHandler halts an active route.
type PauseRouteCommandHandler struct {
	exec routeExecutor
}

func NewPauseRouteCommandHandler(uowFactory RouteUoWFactory, logger *slog.Logger) PauseRouteCommandHandler {
	return PauseRouteCommandHandler{exec: newRouteExecutor(uowFactory, logger)}
}

func (h PauseRouteCommandHandler) Handle(ctx context.Context, cmd PauseRouteCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.exec.run(ctx, "route paused", cmd.RouteID(), cmd.Actor(), func(r *route.Route) error {
		return r.Pause(time.Now().UTC())
	})
}
