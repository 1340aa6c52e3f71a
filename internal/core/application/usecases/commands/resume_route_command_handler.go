package commands

import (
	"context"
	"log/slog"
	"time"

	"shipping/internal/core/domain/model/route"
)

// ResumeRouteCommandHandler continues a paused route.
type ResumeRouteCommandHandler struct {
	exec routeExecutor
}

func NewResumeRouteCommandHandler(uowFactory RouteUoWFactory, logger *slog.Logger) ResumeRouteCommandHandler {
	return ResumeRouteCommandHandler{exec: newRouteExecutor(uowFactory, logger)}
}

func (h ResumeRouteCommandHandler) Handle(ctx context.Context, cmd ResumeRouteCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.exec.run(ctx, "route resumed", cmd.RouteID(), cmd.Actor(), func(r *route.Route) error {
		return r.Resume(time.Now().UTC())
	})
}
