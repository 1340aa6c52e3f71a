package commands

import (
	"context"
	"log/slog"

	"shipping/internal/core/domain/model/parcel"
)

type ProcessRefundCommandHandler struct {
	exec parcelExecutor
}

func NewProcessRefundCommandHandler(uowFactory ParcelUoWFactory, logger *slog.Logger) ProcessRefundCommandHandler {
	return ProcessRefundCommandHandler{exec: newParcelExecutor(uowFactory, logger)}
}

// Handle refunds a returned, paid package. The amount may not exceed its price.
func (h ProcessRefundCommandHandler) Handle(ctx context.Context, cmd ProcessRefundCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.exec.run(ctx, "package refund processed", cmd.PackageID(), func(p *parcel.Parcel) error {
		return p.ProcessRefund(cmd.Amount(), cmd.Actor())
	})
}
