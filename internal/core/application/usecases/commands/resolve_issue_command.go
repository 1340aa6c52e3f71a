package commands

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/guard"
)

var ErrResolveIssueCommandIsNotConstructed = errors.New(
	"ResolveIssueCommand must be created via NewResolveIssueCommand constructor",
)

type ResolveIssueCommand struct { //nolint:recvcheck //using for validation
	packageID  kernel.UUID
	issueID    kernel.UUID
	resolution string
	actor      *kernel.UUID

	guard guard.ConstructorGuard
}

func NewResolveIssueCommand(packageID, issueID kernel.UUID, resolution string, actor *kernel.UUID) (ResolveIssueCommand, error) {
	cmd := ResolveIssueCommand{resolution: resolution, guard: guard.NewConstructorGuard()}

	var actorErr error
	cmd.actor, actorErr = optionalActor(actor)
	if err := errors.Join(
		requiredID("packageId", packageID),
		requiredID("issueId", issueID),
		actorErr,
	); err != nil {
		return ResolveIssueCommand{}, err
	}
	cmd.packageID = packageID
	cmd.issueID = issueID

	return cmd, nil
}

func (c ResolveIssueCommand) Validate() error {
	return c.guard.Validate(ErrResolveIssueCommandIsNotConstructed)
}

func (c ResolveIssueCommand) PackageID() kernel.UUID { return c.packageID }
func (c ResolveIssueCommand) IssueID() kernel.UUID   { return c.issueID }
func (c ResolveIssueCommand) Resolution() string     { return c.resolution }
func (c ResolveIssueCommand) Actor() *kernel.UUID    { return c.actor }
