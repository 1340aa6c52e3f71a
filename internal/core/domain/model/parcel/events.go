package parcel

import (
	"time"

	"shipping/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// DomainEvent is a fact recorded by the aggregate while it changes.
type DomainEvent interface {
	EventType() string
	OccurredAt() time.Time
}

// CreatedEvent is recorded when a parcel enters the network.
type CreatedEvent struct {
	PackageID  kernel.UUID
	TrackingID string
	BranchID   kernel.UUID
	CreatedAt  time.Time
}

func (e CreatedEvent) EventType() string     { return "package.created" }
func (e CreatedEvent) OccurredAt() time.Time { return e.CreatedAt }

// StatusChangedEvent is recorded for every status change.
type StatusChangedEvent struct {
	PackageID kernel.UUID
	From      Status
	To        Status
	ActorID   *kernel.UUID
	ChangedAt time.Time
}

func (e StatusChangedEvent) EventType() string     { return "package.status-changed" }
func (e StatusChangedEvent) OccurredAt() time.Time { return e.ChangedAt }

// AdmissionReleasedEvent asks the branch ledger to give back the slot the
// parcel held in BranchID. It is recorded at most once per admission.
type AdmissionReleasedEvent struct {
	PackageID  kernel.UUID
	BranchID   kernel.UUID
	ReleasedAt time.Time
}

func (e AdmissionReleasedEvent) EventType() string     { return "package.admission-released" }
func (e AdmissionReleasedEvent) OccurredAt() time.Time { return e.ReleasedAt }

// IssueReportedEvent is recorded when an exception is reported.
type IssueReportedEvent struct {
	PackageID  kernel.UUID
	IssueID    kernel.UUID
	Type       IssueType
	Priority   Priority
	ReportedAt time.Time
}

func (e IssueReportedEvent) EventType() string     { return "package.issue-reported" }
func (e IssueReportedEvent) OccurredAt() time.Time { return e.ReportedAt }

// IssueResolvedEvent is recorded when an exception is resolved.
type IssueResolvedEvent struct {
	PackageID  kernel.UUID
	IssueID    kernel.UUID
	ResolvedAt time.Time
}

func (e IssueResolvedEvent) EventType() string     { return "package.issue-resolved" }
func (e IssueResolvedEvent) OccurredAt() time.Time { return e.ResolvedAt }

// ReturnedEvent is recorded when a parcel becomes a return.
type ReturnedEvent struct {
	PackageID  kernel.UUID
	Reason     string
	ReturnedAt time.Time
}

func (e ReturnedEvent) EventType() string     { return "package.returned" }
func (e ReturnedEvent) OccurredAt() time.Time { return e.ReturnedAt }

// RefundProcessedEvent is recorded when the refund of a return is paid out.
type RefundProcessedEvent struct {
	PackageID  kernel.UUID
	Amount     decimal.Decimal
	RefundedAt time.Time
}

func (e RefundProcessedEvent) EventType() string     { return "package.refund-processed" }
func (e RefundProcessedEvent) OccurredAt() time.Time { return e.RefundedAt }
