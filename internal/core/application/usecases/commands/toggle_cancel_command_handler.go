package commands

import (
	"context"
	"log/slog"

	"shipping/internal/core/domain/model/parcel"
)

// ToggleCancelCommandHandler flips a package between cancelled and pending.
// Reactivation does not take a new branch slot.
type ToggleCancelCommandHandler struct {
	exec parcelExecutor
}

func NewToggleCancelCommandHandler(uowFactory ParcelUoWFactory, logger *slog.Logger) ToggleCancelCommandHandler {
	return ToggleCancelCommandHandler{exec: newParcelExecutor(uowFactory, logger)}
}

func (h ToggleCancelCommandHandler) Handle(ctx context.Context, cmd ToggleCancelCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.exec.run(ctx, "package cancellation toggled", cmd.PackageID(), func(p *parcel.Parcel) error {
		return p.ToggleCancel(cmd.Actor(), cmd.Notes())
	})
}
