package queries

import (
	"errors"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

var ErrGetRouteDetailsQueryIsNotConstructed = errors.New(
	"GetRouteDetailsQuery must be created via NewGetRouteDetailsQuery constructor",
)

type GetRouteDetailsQuery struct {
	routeID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetRouteDetailsQuery(routeID kernel.UUID) (GetRouteDetailsQuery, error) {
	if err := routeID.Validate(); err != nil {
		return GetRouteDetailsQuery{}, errs.NewValueIsRequiredErrorWithCause("routeId", err)
	}
	return GetRouteDetailsQuery{routeID: routeID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetRouteDetailsQuery) Validate() error {
	return q.guard.Validate(ErrGetRouteDetailsQueryIsNotConstructed)
}

// RouteDetailsResponse is the full read model of one route. CurrentStop and
// NextStop are nil once the route has moved past its last stop.
type RouteDetailsResponse struct {
	ID                 kernel.UUID
	BranchID           kernel.UUID
	VehicleID          *kernel.UUID
	DelivererID        *kernel.UUID
	TransporterID      *kernel.UUID
	Status             string
	ScheduledStart     time.Time
	ScheduledEnd       time.Time
	ActualStart        *time.Time
	ActualEnd          *time.Time
	ActualTime         time.Duration
	CurrentStopIndex   int
	CompletedStops     int
	FailedStops        int
	SkippedStops       int
	TotalStops         int
	ProgressPercentage float64
	OnTimePerformance  float64
	Notes              string
	CancelReason       string
	Version            int
	CreatedAt          time.Time
	UpdatedAt          time.Time
	Stops              []RouteStopEntry
	CurrentStop        *RouteStopEntry
	NextStop           *RouteStopEntry
}

// RouteStopEntry is one stop in route order with the outcome of each package.
type RouteStopEntry struct {
	Position          int
	Order             int
	Action            string
	Status            string
	PackageIDs        []kernel.UUID
	Street            string
	City              string
	EstimatedTravel   time.Duration
	ExpectedArrival   *time.Time
	ActualArrival     *time.Time
	ResolvedAt        *time.Time
	CompletedPackages []kernel.UUID
	FailedPackages    []kernel.UUID
	SkippedPackages   []kernel.UUID
	Notes             string
}
