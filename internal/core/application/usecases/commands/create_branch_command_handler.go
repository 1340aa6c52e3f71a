package commands

import (
	"context"
	"log/slog"

	"shipping/internal/core/domain/model/branch"
)

type CreateBranchCommandHandler struct {
	uowFactory BranchUoWFactory
	logger     *slog.Logger
}

func NewCreateBranchCommandHandler(uowFactory BranchUoWFactory, logger *slog.Logger) CreateBranchCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return CreateBranchCommandHandler{uowFactory: uowFactory, logger: logger.With("component", "branch-commands")}
}

// Handle stores a new active branch with an empty load.
func (h CreateBranchCommandHandler) Handle(ctx context.Context, cmd CreateBranchCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	b, err := branch.NewBranch(cmd.BranchID(), cmd.CompanyID(), cmd.Name(), cmd.CapacityLimit())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.BranchRepository().Add(ctx, b); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.logger.InfoContext(ctx, "branch created",
		"branch_id", b.ID().String(),
		"company_id", b.CompanyID().String(),
	)
	return nil
}
