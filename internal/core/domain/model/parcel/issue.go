package parcel

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

// ErrIssueIsNotConstructed is returned for an Issue not built by its constructors.
var ErrIssueIsNotConstructed = errors.New("Issue must be created via ReportIssue or RestoreIssue")

// IssueType classifies a reported exception.
type IssueType string

const (
	IssueDamage              IssueType = "damage"
	IssueLost                IssueType = "lost"
	IssueDelay               IssueType = "delay"
	IssueCustomerUnavailable IssueType = "customer_unavailable"
	IssueWrongAddress        IssueType = "wrong_address"
	IssueOther               IssueType = "other"
)

// Validate rejects values outside the issue type enumeration.
func (t IssueType) Validate() error {
	switch t {
	case IssueDamage, IssueLost, IssueDelay, IssueCustomerUnavailable, IssueWrongAddress, IssueOther:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("type", fmt.Errorf("%q is not a valid issue type", string(t)))
	}
}

// forcedStatus returns the status a parcel is moved to when an issue of type t
// is reported, and false when the type leaves the status alone.
func (t IssueType) forcedStatus() (Status, bool) {
	switch t {
	case IssueDamage:
		return Damaged, true
	case IssueLost:
		return Lost, true
	case IssueDelay, IssueCustomerUnavailable:
		return OnHold, true
	default:
		return "", false
	}
}

// Priority orders issues for the people resolving them.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Validate rejects values outside the priority enumeration.
func (p Priority) Validate() error {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("priority", fmt.Errorf("%q is not a valid priority", string(p)))
	}
}

// Issue is an exception reported against one parcel. It is identified by a
// generated id; its position in the parcel's issue list only reflects
// reporting order. An issue is only ever mutated by its resolution.
type Issue struct {
	id          kernel.UUID
	issueType   IssueType
	description string
	priority    Priority
	reportedBy  *kernel.UUID
	reportedAt  time.Time
	resolved    bool
	resolvedAt  *time.Time
	resolvedBy  *kernel.UUID
	resolution  string
	guard       guard.ConstructorGuard
}

func newIssue(issueType IssueType, description string, priority Priority, reportedBy *kernel.UUID, at time.Time) (*Issue, error) {
	if priority == "" {
		priority = PriorityMedium
	}

	description = strings.TrimSpace(description)
	var descErr error
	if description == "" {
		descErr = errs.NewValueIsRequiredError("description")
	}

	if err := errors.Join(issueType.Validate(), priority.Validate(), descErr, validateActor(reportedBy)); err != nil {
		return nil, err
	}

	return &Issue{
		id:          kernel.NewUUID(),
		issueType:   issueType,
		description: description,
		priority:    priority,
		reportedBy:  copyID(reportedBy),
		reportedAt:  at,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// RestoreIssue rebuilds an Issue from persisted state.
func RestoreIssue(
	id kernel.UUID,
	issueType IssueType,
	description string,
	priority Priority,
	reportedBy *kernel.UUID,
	reportedAt time.Time,
	resolvedAt *time.Time,
	resolvedBy *kernel.UUID,
	resolution string,
) (*Issue, error) {
	if err := errors.Join(id.Validate(), issueType.Validate(), priority.Validate()); err != nil {
		return nil, err
	}

	return &Issue{
		id:          id,
		issueType:   issueType,
		description: description,
		priority:    priority,
		reportedBy:  copyID(reportedBy),
		reportedAt:  reportedAt,
		resolved:    resolvedAt != nil,
		resolvedAt:  copyTime(resolvedAt),
		resolvedBy:  copyID(resolvedBy),
		resolution:  resolution,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the issue was built through a constructor.
func (i *Issue) Validate() error {
	if i == nil {
		return ErrIssueIsNotConstructed
	}
	return i.guard.Validate(ErrIssueIsNotConstructed)
}

func (i *Issue) ID() kernel.UUID          { return i.id }
func (i *Issue) Type() IssueType          { return i.issueType }
func (i *Issue) Description() string      { return i.description }
func (i *Issue) Priority() Priority       { return i.priority }
func (i *Issue) ReportedBy() *kernel.UUID { return copyID(i.reportedBy) }
func (i *Issue) ReportedAt() time.Time    { return i.reportedAt }
func (i *Issue) IsResolved() bool         { return i.resolved }
func (i *Issue) ResolvedAt() *time.Time   { return copyTime(i.resolvedAt) }
func (i *Issue) ResolvedBy() *kernel.UUID { return copyID(i.resolvedBy) }
func (i *Issue) Resolution() string       { return i.resolution }

func (i *Issue) resolve(resolution string, actor *kernel.UUID, at time.Time) error {
	if i.resolved {
		return errs.NewPreconditionFailedError("resolve issue", fmt.Sprintf("issue %s is already resolved", i.id))
	}
	resolution = strings.TrimSpace(resolution)
	if resolution == "" {
		return errs.NewValueIsRequiredError("resolution")
	}

	i.resolved = true
	i.resolvedAt = &at
	i.resolvedBy = copyID(actor)
	i.resolution = resolution
	return nil
}
