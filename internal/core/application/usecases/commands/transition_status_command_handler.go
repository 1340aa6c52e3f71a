package commands

import (
	"context"
	"log/slog"

	"shipping/internal/core/domain/model/parcel"
)

// TransitionStatusCommandHandler applies a manual or system status change.
// Reaching delivered or returned frees the package's branch slot in the same
// transaction.
type TransitionStatusCommandHandler struct {
	exec parcelExecutor
}

func NewTransitionStatusCommandHandler(uowFactory ParcelUoWFactory, logger *slog.Logger) TransitionStatusCommandHandler {
	return TransitionStatusCommandHandler{exec: newParcelExecutor(uowFactory, logger)}
}

func (h TransitionStatusCommandHandler) Handle(ctx context.Context, cmd TransitionStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.exec.run(ctx, "package status changed", cmd.PackageID(), func(p *parcel.Parcel) error {
		return p.TransitionStatus(cmd.Status(), cmd.Actor(), cmd.Options())
	})
}
