package queries

import (
	"errors"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

var ErrGetPackagesDueForRetryQueryIsNotConstructed = errors.New(
	"GetPackagesDueForRetryQuery must be created via NewGetPackagesDueForRetryQuery constructor",
)

const maxRetryPage = 500

// GetPackagesDueForRetryQuery lists failed deliveries whose next attempt date
// is not after AsOf, oldest first.
type GetPackagesDueForRetryQuery struct {
	asOf  time.Time
	limit int

	guard guard.ConstructorGuard
}

func NewGetPackagesDueForRetryQuery(asOf time.Time, limit int) (GetPackagesDueForRetryQuery, error) {
	if limit <= 0 || limit > maxRetryPage {
		return GetPackagesDueForRetryQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, maxRetryPage)
	}
	if asOf.IsZero() {
		return GetPackagesDueForRetryQuery{}, errs.NewValueIsRequiredError("asOf")
	}
	return GetPackagesDueForRetryQuery{asOf: asOf.UTC(), limit: limit, guard: guard.NewConstructorGuard()}, nil
}

func (q GetPackagesDueForRetryQuery) Validate() error {
	return q.guard.Validate(ErrGetPackagesDueForRetryQueryIsNotConstructed)
}

func (q GetPackagesDueForRetryQuery) AsOf() time.Time { return q.asOf }
func (q GetPackagesDueForRetryQuery) Limit() int      { return q.limit }

type PackageDueForRetryResponse struct {
	ID              kernel.UUID
	TrackingID      string
	CurrentBranchID *kernel.UUID
	AttemptCount    int
	MaxAttempts     int
	NextAttemptDate time.Time
}
