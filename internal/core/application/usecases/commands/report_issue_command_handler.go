package commands

import (
	"context"
	"log/slog"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/parcel"
)

// ReportIssueCommandHandler records an issue and returns its id.
type ReportIssueCommandHandler struct {
	exec parcelExecutor
}

func NewReportIssueCommandHandler(uowFactory ParcelUoWFactory, logger *slog.Logger) ReportIssueCommandHandler {
	return ReportIssueCommandHandler{exec: newParcelExecutor(uowFactory, logger)}
}

func (h ReportIssueCommandHandler) Handle(ctx context.Context, cmd ReportIssueCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	var issueID kernel.UUID
	err := h.exec.run(ctx, "package issue reported", cmd.PackageID(), func(p *parcel.Parcel) error {
		issue, err := p.ReportIssue(cmd.IssueType(), cmd.Description(), cmd.Priority(), cmd.Actor())
		if err != nil {
			return err
		}
		issueID = issue.ID()
		return nil
	})
	if err != nil {
		return kernel.UUID{}, err
	}

	return issueID, nil
}
