package commands

import (
	"context"
	"log/slog"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/parcel"
)

// CreatePackageResult identifies the package just registered.
type CreatePackageResult struct {
	PackageID  kernel.UUID
	TrackingID string
}

// CreatePackageCommandHandler admits a package at its origin branch, touches
// the client record and stores the package. Any failure leaves all three
// untouched.
type CreatePackageCommandHandler struct {
	uowFactory IntakeUoWFactory
	logger     *slog.Logger
}

func NewCreatePackageCommandHandler(uowFactory IntakeUoWFactory, logger *slog.Logger) CreatePackageCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return CreatePackageCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With("component", "package-commands"),
	}
}

// Handle validates the intake before touching storage, so a rejected package
// never takes a branch slot.
func (h CreatePackageCommandHandler) Handle(ctx context.Context, cmd CreatePackageCommand) (CreatePackageResult, error) {
	if err := cmd.Validate(); err != nil {
		return CreatePackageResult{}, err
	}

	p, err := parcel.NewParcel(cmd.PackageID(), cmd.Intake(), cmd.Actor())
	if err != nil {
		return CreatePackageResult{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return CreatePackageResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.BranchRepository().TryAdmit(ctx, p.OriginBranchID()); err != nil {
		return CreatePackageResult{}, err
	}
	if err = uow.UserRepository().RecordShipment(ctx, p.ClientID(), time.Now().UTC()); err != nil {
		return CreatePackageResult{}, err
	}
	if err = uow.ParcelRepository().Add(ctx, p); err != nil {
		return CreatePackageResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return CreatePackageResult{}, err
	}

	logParcel(ctx, h.logger, "package created", p)
	return CreatePackageResult{PackageID: p.ID(), TrackingID: p.TrackingID()}, nil
}
