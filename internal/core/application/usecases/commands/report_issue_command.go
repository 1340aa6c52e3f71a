package commands

import (
	"errors"
	"strings"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/parcel"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

var ErrReportIssueCommandIsNotConstructed = errors.New(
	"ReportIssueCommand must be created via NewReportIssueCommand constructor",
)

// ReportIssueCommand records an exception against a package. An empty
// priority defaults to medium.
type ReportIssueCommand struct { //nolint:recvcheck //using for validation
	packageID   kernel.UUID
	issueType   parcel.IssueType
	description string
	priority    parcel.Priority
	actor       *kernel.UUID

	guard guard.ConstructorGuard
}

func NewReportIssueCommand(
	packageID kernel.UUID,
	issueType parcel.IssueType,
	description string,
	priority parcel.Priority,
	actor *kernel.UUID,
) (ReportIssueCommand, error) {
	if priority == "" {
		priority = parcel.PriorityMedium
	}
	cmd := ReportIssueCommand{
		issueType:   issueType,
		description: strings.TrimSpace(description),
		priority:    priority,
		guard:       guard.NewConstructorGuard(),
	}

	var descErr error
	if cmd.description == "" {
		descErr = errs.NewValueIsRequiredError("description")
	}
	var actorErr error
	cmd.actor, actorErr = optionalActor(actor)
	if err := errors.Join(
		requiredID("packageId", packageID),
		issueType.Validate(),
		priority.Validate(),
		descErr,
		actorErr,
	); err != nil {
		return ReportIssueCommand{}, err
	}
	cmd.packageID = packageID

	return cmd, nil
}

func (c ReportIssueCommand) Validate() error {
	return c.guard.Validate(ErrReportIssueCommandIsNotConstructed)
}

func (c ReportIssueCommand) PackageID() kernel.UUID      { return c.packageID }
func (c ReportIssueCommand) IssueType() parcel.IssueType { return c.issueType }
func (c ReportIssueCommand) Description() string         { return c.description }
func (c ReportIssueCommand) Priority() parcel.Priority   { return c.priority }
func (c ReportIssueCommand) Actor() *kernel.UUID         { return c.actor }
