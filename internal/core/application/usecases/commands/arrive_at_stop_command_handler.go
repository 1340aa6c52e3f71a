package commands

import (
	"context"
	"log/slog"
	"time"

	"shipping/internal/core/domain/model/route"
)

// ArriveAtStopCommandHandler records the arrival time used for on-time performance.
type ArriveAtStopCommandHandler struct {
	exec routeExecutor
}

func NewArriveAtStopCommandHandler(uowFactory RouteUoWFactory, logger *slog.Logger) ArriveAtStopCommandHandler {
	return ArriveAtStopCommandHandler{exec: newRouteExecutor(uowFactory, logger)}
}

func (h ArriveAtStopCommandHandler) Handle(ctx context.Context, cmd ArriveAtStopCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.exec.run(ctx, "arrived at stop", cmd.RouteID(), cmd.Actor(), func(r *route.Route) error {
		return r.ArriveAtStop(cmd.StopIndex(), time.Now().UTC())
	})
}
