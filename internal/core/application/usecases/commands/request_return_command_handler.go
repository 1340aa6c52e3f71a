package commands

import (
	"context"
	"log/slog"

	"shipping/internal/core/domain/model/parcel"
)

// RequestReturnCommandHandler sends a package back to its sender and frees
// its branch slot.
type RequestReturnCommandHandler struct {
	exec parcelExecutor
}

func NewRequestReturnCommandHandler(uowFactory ParcelUoWFactory, logger *slog.Logger) RequestReturnCommandHandler {
	return RequestReturnCommandHandler{exec: newParcelExecutor(uowFactory, logger)}
}

func (h RequestReturnCommandHandler) Handle(ctx context.Context, cmd RequestReturnCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.exec.run(ctx, "package return requested", cmd.PackageID(), func(p *parcel.Parcel) error {
		return p.RequestReturn(cmd.Reason(), cmd.Actor())
	})
}
