package commands

import (
	"context"
	"log/slog"

	"shipping/internal/core/domain/model/parcel"
)

// ResolveIssueCommandHandler closes an issue. Closing the last open one
// releases a damaged, lost or on-hold package to its destination branch.
type ResolveIssueCommandHandler struct {
	exec parcelExecutor
}

func NewResolveIssueCommandHandler(uowFactory ParcelUoWFactory, logger *slog.Logger) ResolveIssueCommandHandler {
	return ResolveIssueCommandHandler{exec: newParcelExecutor(uowFactory, logger)}
}

func (h ResolveIssueCommandHandler) Handle(ctx context.Context, cmd ResolveIssueCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.exec.run(ctx, "package issue resolved", cmd.PackageID(), func(p *parcel.Parcel) error {
		return p.ResolveIssue(cmd.IssueID(), cmd.Resolution(), cmd.Actor())
	})
}
