package commands

import (
	"context"
	"log/slog"
	"time"

	"shipping/internal/core/domain/model/route"
)

// CompleteStopCommandHandler resolves the current stop as completed and moves
// its packages: delivered or failed_delivery for a delivery stop, accepted for
// a pickup, at_destination_branch for a transfer.
type CompleteStopCommandHandler struct {
	exec routeExecutor
}

func NewCompleteStopCommandHandler(uowFactory RouteUoWFactory, logger *slog.Logger) CompleteStopCommandHandler {
	return CompleteStopCommandHandler{exec: newRouteExecutor(uowFactory, logger)}
}

func (h CompleteStopCommandHandler) Handle(ctx context.Context, cmd CompleteStopCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.exec.run(ctx, "stop completed", cmd.RouteID(), cmd.Actor(), func(r *route.Route) error {
		return r.CompleteStop(cmd.StopIndex(), cmd.Completed(), cmd.Failed(), cmd.Notes(), time.Now().UTC())
	})
}
