package queries

import (
	"errors"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

var ErrGetPackageRoutesQueryIsNotConstructed = errors.New(
	"GetPackageRoutesQuery must be created via NewGetPackageRoutesQuery constructor",
)

// GetPackageRoutesQuery lists the routes that carry a package. Finished and
// cancelled routes are included only when IncludeClosed is set.
type GetPackageRoutesQuery struct {
	packageID     kernel.UUID
	includeClosed bool

	guard guard.ConstructorGuard
}

func NewGetPackageRoutesQuery(packageID kernel.UUID, includeClosed bool) (GetPackageRoutesQuery, error) {
	if err := packageID.Validate(); err != nil {
		return GetPackageRoutesQuery{}, errs.NewValueIsRequiredErrorWithCause("packageId", err)
	}
	return GetPackageRoutesQuery{
		packageID:     packageID,
		includeClosed: includeClosed,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (q GetPackageRoutesQuery) Validate() error {
	return q.guard.Validate(ErrGetPackageRoutesQueryIsNotConstructed)
}

type PackageRouteResponse struct {
	RouteID          kernel.UUID
	BranchID         kernel.UUID
	Status           string
	ScheduledStart   time.Time
	ScheduledEnd     time.Time
	CurrentStopIndex int
	TotalStops       int
	StopPosition     int
	StopAction       string
	StopStatus       string
}
