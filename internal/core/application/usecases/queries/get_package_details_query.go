// Package queries contains the read side: package details with history and
// issues, route details, packages waiting for a retry, branch load and the
// routes carrying a package. Handlers read straight from the tables through raw
// SQL and return flat read models; route details are projected from the loaded
// route so its stop outcomes and progress match the aggregate.
package queries

import (
	"errors"
	"strings"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetPackageDetailsQueryIsNotConstructed = errors.New(
	"GetPackageDetailsQuery must be created via NewGetPackageDetailsQuery or NewGetPackageByTrackingIDQuery",
)

// GetPackageDetailsQuery looks a package up by id or by tracking id.
//
// Example:
//
//	query, err := NewGetPackageByTrackingIDQuery("PKG-3F9A12C0B7")
//	if err != nil {
//	    return err
//	}
//	details, err := handler.Handle(ctx, query)
type GetPackageDetailsQuery struct {
	packageID  *kernel.UUID
	trackingID string

	guard guard.ConstructorGuard
}

func NewGetPackageDetailsQuery(packageID kernel.UUID) (GetPackageDetailsQuery, error) {
	if err := packageID.Validate(); err != nil {
		return GetPackageDetailsQuery{}, errs.NewValueIsRequiredErrorWithCause("packageId", err)
	}
	return GetPackageDetailsQuery{packageID: &packageID, guard: guard.NewConstructorGuard()}, nil
}

func NewGetPackageByTrackingIDQuery(trackingID string) (GetPackageDetailsQuery, error) {
	trackingID = strings.ToUpper(strings.TrimSpace(trackingID))
	if trackingID == "" {
		return GetPackageDetailsQuery{}, errs.NewValueIsRequiredError("trackingId")
	}
	return GetPackageDetailsQuery{trackingID: trackingID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetPackageDetailsQuery) Validate() error {
	return q.guard.Validate(ErrGetPackageDetailsQueryIsNotConstructed)
}

// PackageDetailsResponse is the full read model of one package.
type PackageDetailsResponse struct {
	ID                  kernel.UUID
	TrackingID          string
	ClientID            kernel.UUID
	OriginBranchID      kernel.UUID
	CurrentBranchID     *kernel.UUID
	DestinationBranchID *kernel.UUID
	RecipientName       string
	RecipientPhone      string
	Street              string
	City                string
	DeliveryType        string
	Status              string
	Weight              decimal.Decimal
	TotalPrice          decimal.Decimal
	PaymentMethod       string
	PaymentStatus       string
	AttemptCount        int
	MaxAttempts         int
	RemainingAttempts   int
	NextAttemptDate     *time.Time
	DeliveredAt         *time.Time
	IsReturn            bool
	ReturnReason        string
	RefundStatus        string
	RefundAmount        decimal.Decimal
	OpenIssues          int
	Version             int
	CreatedAt           time.Time
	UpdatedAt           time.Time
	History             []TrackingEntry
	Issues              []IssueEntry
}

// TrackingEntry is one line of the tracking history, oldest first.
type TrackingEntry struct {
	Status    string
	BranchID  *kernel.UUID
	UserID    *kernel.UUID
	Notes     string
	Timestamp time.Time
}

// IssueEntry is an issue in display order. Resolved is false while ResolvedAt is nil.
type IssueEntry struct {
	ID          kernel.UUID
	Type        string
	Description string
	Priority    string
	ReportedBy  *kernel.UUID
	ReportedAt  time.Time
	Resolved    bool
	ResolvedAt  *time.Time
	ResolvedBy  *kernel.UUID
	Resolution  string
}
