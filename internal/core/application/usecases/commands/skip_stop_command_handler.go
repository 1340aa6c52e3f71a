package commands

import (
	"context"
	"log/slog"
	"time"

	"shipping/internal/core/domain/model/route"
)

// SkipStopCommandHandler passes over the current stop. Delivery packages on a
// skipped stop are rescheduled for the next day.
type SkipStopCommandHandler struct {
	exec routeExecutor
}

func NewSkipStopCommandHandler(uowFactory RouteUoWFactory, logger *slog.Logger) SkipStopCommandHandler {
	return SkipStopCommandHandler{exec: newRouteExecutor(uowFactory, logger)}
}

func (h SkipStopCommandHandler) Handle(ctx context.Context, cmd SkipStopCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.exec.run(ctx, "stop skipped", cmd.RouteID(), cmd.Actor(), func(r *route.Route) error {
		return r.SkipStop(cmd.StopIndex(), cmd.Reason(), time.Now().UTC())
	})
}
