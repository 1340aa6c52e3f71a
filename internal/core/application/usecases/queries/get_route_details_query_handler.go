package queries

import (
	"context"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/route"
)

// RouteReader loads a route aggregate with its stops.
type RouteReader interface {
	Get(ctx context.Context, id kernel.UUID) (*route.Route, error)
}

type GetRouteDetailsQueryHandler struct {
	routes RouteReader
}

func NewGetRouteDetailsQueryHandler(routes RouteReader) GetRouteDetailsQueryHandler {
	return GetRouteDetailsQueryHandler{routes: routes}
}

// Handle returns the route with every stop and its package outcomes, or an
// ObjectNotFound error.
func (h GetRouteDetailsQueryHandler) Handle(ctx context.Context, query GetRouteDetailsQuery) (RouteDetailsResponse, error) {
	if err := query.Validate(); err != nil {
		return RouteDetailsResponse{}, err
	}

	r, err := h.routes.Get(ctx, query.routeID)
	if err != nil {
		return RouteDetailsResponse{}, err
	}

	stops := r.Stops()
	details := RouteDetailsResponse{
		ID:                 r.ID(),
		BranchID:           r.BranchID(),
		VehicleID:          r.VehicleID(),
		DelivererID:        r.DelivererID(),
		TransporterID:      r.TransporterID(),
		Status:             r.Status().String(),
		ScheduledStart:     r.ScheduledStart(),
		ScheduledEnd:       r.ScheduledEnd(),
		ActualStart:        r.ActualStart(),
		ActualEnd:          r.ActualEnd(),
		ActualTime:         r.ActualTime(),
		CurrentStopIndex:   r.CurrentStopIndex(),
		CompletedStops:     r.CompletedStops(),
		FailedStops:        r.FailedStops(),
		SkippedStops:       r.SkippedStops(),
		TotalStops:         len(stops),
		ProgressPercentage: r.ProgressPercentage(),
		OnTimePerformance:  r.OnTimePerformance(),
		Notes:              r.Notes(),
		CancelReason:       r.CancelReason(),
		Version:            r.Version(),
		CreatedAt:          r.CreatedAt(),
		UpdatedAt:          r.UpdatedAt(),
		Stops:              make([]RouteStopEntry, 0, len(stops)),
	}
	for i, stop := range stops {
		details.Stops = append(details.Stops, stopEntry(i, stop))
	}

	if stop, ok := r.CurrentStop(); ok {
		entry := stopEntry(r.CurrentStopIndex(), stop)
		details.CurrentStop = &entry
	}
	if stop, ok := r.NextStop(); ok {
		entry := stopEntry(r.CurrentStopIndex()+1, stop)
		details.NextStop = &entry
	}

	return details, nil
}

func stopEntry(position int, stop route.Stop) RouteStopEntry {
	entry := RouteStopEntry{
		Position:          position,
		Order:             stop.Order(),
		Action:            string(stop.Action()),
		Status:            string(stop.Status()),
		PackageIDs:        stop.PackageIDs(),
		EstimatedTravel:   stop.EstimatedTravel(),
		ExpectedArrival:   stop.ExpectedArrival(),
		ActualArrival:     stop.ActualArrival(),
		ResolvedAt:        stop.ResolvedAt(),
		CompletedPackages: stop.CompletedPackages(),
		FailedPackages:    stop.FailedPackages(),
		SkippedPackages:   stop.SkippedPackages(),
		Notes:             stop.Notes(),
	}
	if addr := stop.Address(); addr != nil {
		entry.Street = addr.Street()
		entry.City = addr.City()
	}
	return entry
}
