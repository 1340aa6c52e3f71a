package commands

import (
	"context"
	"log/slog"
	"time"

	"shipping/internal/core/domain/model/route"
)

// FailStopCommandHandler resolves the current stop as failed. Failed packages
// of a delivery stop consume a delivery attempt; skipped ones are rescheduled.
type FailStopCommandHandler struct {
	exec routeExecutor
}

func NewFailStopCommandHandler(uowFactory RouteUoWFactory, logger *slog.Logger) FailStopCommandHandler {
	return FailStopCommandHandler{exec: newRouteExecutor(uowFactory, logger)}
}

func (h FailStopCommandHandler) Handle(ctx context.Context, cmd FailStopCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.exec.run(ctx, "stop failed", cmd.RouteID(), cmd.Actor(), func(r *route.Route) error {
		return r.FailStop(cmd.StopIndex(), cmd.Reason(), cmd.Skipped(), time.Now().UTC())
	})
}
