package commands

import (
	"context"
	"log/slog"

	"shipping/internal/core/domain/model/parcel"
)

type RecordPaymentCommandHandler struct {
	exec parcelExecutor
}

func NewRecordPaymentCommandHandler(uowFactory ParcelUoWFactory, logger *slog.Logger) RecordPaymentCommandHandler {
	return RecordPaymentCommandHandler{exec: newParcelExecutor(uowFactory, logger)}
}

func (h RecordPaymentCommandHandler) Handle(ctx context.Context, cmd RecordPaymentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.exec.run(ctx, "package payment recorded", cmd.PackageID(), func(p *parcel.Parcel) error {
		return p.RecordPayment(cmd.Method())
	})
}
