package commands

import (
	"context"
	"log/slog"
)

type UpdateBranchCapacityCommandHandler struct {
	uowFactory BranchUoWFactory
	logger     *slog.Logger
}

func NewUpdateBranchCapacityCommandHandler(
	uowFactory BranchUoWFactory,
	logger *slog.Logger,
) UpdateBranchCapacityCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return UpdateBranchCapacityCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With("component", "branch-commands"),
	}
}

// Handle changes the limit in place. A limit below the current load is
// rejected by the ledger.
func (h UpdateBranchCapacityCommandHandler) Handle(ctx context.Context, cmd UpdateBranchCapacityCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.BranchRepository().UpdateCapacity(ctx, cmd.BranchID(), cmd.CapacityLimit()); err != nil {
		return err
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	attrs := []any{"branch_id", cmd.BranchID().String()}
	if limit := cmd.CapacityLimit(); limit != nil {
		attrs = append(attrs, "capacity_limit", *limit)
	}
	h.logger.InfoContext(ctx, "branch capacity updated", attrs...)
	return nil
}
