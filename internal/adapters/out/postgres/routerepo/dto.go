// Package routerepo persists routes, their stops and the route to package index.
package routerepo

import (
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/route"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// RouteDTO is the "routes" row.
type RouteDTO struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey"`
	BranchID          uuid.UUID  `gorm:"type:uuid;index;not null"`
	VehicleID         *uuid.UUID `gorm:"type:uuid"`
	DelivererID       *uuid.UUID `gorm:"type:uuid"`
	TransporterID     *uuid.UUID `gorm:"type:uuid"`
	Status            string     `gorm:"type:varchar(16);index;not null"`
	ScheduledStart    time.Time  `gorm:"not null"`
	ScheduledEnd      time.Time  `gorm:"not null"`
	ActualStart       *time.Time
	ActualEnd         *time.Time
	ActualSeconds     int64 `gorm:"not null;default:0"`
	CurrentStopIndex  int   `gorm:"not null;default:0"`
	CompletedStops    int   `gorm:"not null;default:0"`
	FailedStops       int   `gorm:"not null;default:0"`
	SkippedStops      int   `gorm:"not null;default:0"`
	OnTimePerformance float64
	Notes             string             `gorm:"type:text"`
	CancelReason      string             `gorm:"type:text"`
	Stops             []StopDTO          `gorm:"foreignKey:RouteID;constraint:OnDelete:CASCADE"`
	Packages          []RoutePackageDTO  `gorm:"foreignKey:RouteID;constraint:OnDelete:CASCADE"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
	Version           int `gorm:"not null;default:1"`
}

func (RouteDTO) TableName() string {
	return "routes"
}

// StopDTO is keyed by the stop's position in execution order.
type StopDTO struct {
	RouteID                uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Position               int            `gorm:"primaryKey;autoIncrement:false"`
	StopOrder              int            `gorm:"not null"`
	Action                 string         `gorm:"type:varchar(16);not null"`
	PackageIDs             pq.StringArray `gorm:"type:text[];not null"`
	Address                StopAddressDTO `gorm:"embedded;embeddedPrefix:addr_"`
	EstimatedTravelSeconds int64          `gorm:"not null;default:0"`
	Status                 string         `gorm:"type:varchar(16);not null"`
	ExpectedArrival        *time.Time
	ActualArrival          *time.Time
	ResolvedAt             *time.Time
	CompletedPackages      pq.StringArray `gorm:"type:text[]"`
	FailedPackages         pq.StringArray `gorm:"type:text[]"`
	SkippedPackages        pq.StringArray `gorm:"type:text[]"`
	Notes                  string         `gorm:"type:text"`
}

func (StopDTO) TableName() string {
	return "route_stops"
}

// StopAddressDTO is empty (no street) when the stop has no address.
type StopAddressDTO struct {
	Street     string
	City       string
	State      string
	PostalCode string
	Lat        *float64
	Lng        *float64
}

// RoutePackageDTO indexes which routes carry a package.
type RoutePackageDTO struct {
	RouteID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	PackageID uuid.UUID `gorm:"type:uuid;primaryKey;index"`
}

func (RoutePackageDTO) TableName() string {
	return "route_packages"
}

func fromDomain(r *route.Route) RouteDTO {
	id := r.ID().Bytes()
	dto := RouteDTO{
		ID:                id,
		BranchID:          r.BranchID().Bytes(),
		VehicleID:         rawID(r.VehicleID()),
		DelivererID:       rawID(r.DelivererID()),
		TransporterID:     rawID(r.TransporterID()),
		Status:            string(r.Status()),
		ScheduledStart:    r.ScheduledStart(),
		ScheduledEnd:      r.ScheduledEnd(),
		ActualStart:       r.ActualStart(),
		ActualEnd:         r.ActualEnd(),
		ActualSeconds:     int64(r.ActualTime() / time.Second),
		CurrentStopIndex:  r.CurrentStopIndex(),
		CompletedStops:    r.CompletedStops(),
		FailedStops:       r.FailedStops(),
		SkippedStops:      r.SkippedStops(),
		OnTimePerformance: r.OnTimePerformance(),
		Notes:             r.Notes(),
		CancelReason:      r.CancelReason(),
		CreatedAt:         r.CreatedAt(),
		UpdatedAt:         r.UpdatedAt(),
		Version:           r.Version(),
	}

	for i, stop := range r.Stops() {
		stopDTO := StopDTO{
			RouteID:                id,
			Position:               i,
			StopOrder:              stop.Order(),
			Action:                 string(stop.Action()),
			PackageIDs:             kernel.UUIDStrings(stop.PackageIDs()),
			EstimatedTravelSeconds: int64(stop.EstimatedTravel() / time.Second),
			Status:                 string(stop.Status()),
			ExpectedArrival:        stop.ExpectedArrival(),
			ActualArrival:          stop.ActualArrival(),
			ResolvedAt:             stop.ResolvedAt(),
			CompletedPackages:      kernel.UUIDStrings(stop.CompletedPackages()),
			FailedPackages:         kernel.UUIDStrings(stop.FailedPackages()),
			SkippedPackages:        kernel.UUIDStrings(stop.SkippedPackages()),
			Notes:                  stop.Notes(),
		}
		if addr := stop.Address(); addr != nil {
			stopDTO.Address = StopAddressDTO{
				Street:     addr.Street(),
				City:       addr.City(),
				State:      addr.State(),
				PostalCode: addr.PostalCode(),
			}
			if point := addr.Point(); point != nil {
				lat, lng := point.Lat(), point.Lng()
				stopDTO.Address.Lat, stopDTO.Address.Lng = &lat, &lng
			}
		}
		dto.Stops = append(dto.Stops, stopDTO)
	}

	for _, packageID := range r.PackageIDs() {
		dto.Packages = append(dto.Packages, RoutePackageDTO{RouteID: id, PackageID: packageID.Bytes()})
	}

	return dto
}

// columns lists what an update writes to the routes row.
func (dto RouteDTO) columns() map[string]any {
	return map[string]any{
		"vehicle_id":          dto.VehicleID,
		"deliverer_id":        dto.DelivererID,
		"transporter_id":      dto.TransporterID,
		"status":              dto.Status,
		"scheduled_start":     dto.ScheduledStart,
		"scheduled_end":       dto.ScheduledEnd,
		"actual_start":        dto.ActualStart,
		"actual_end":          dto.ActualEnd,
		"actual_seconds":      dto.ActualSeconds,
		"current_stop_index":  dto.CurrentStopIndex,
		"completed_stops":     dto.CompletedStops,
		"failed_stops":        dto.FailedStops,
		"skipped_stops":       dto.SkippedStops,
		"on_time_performance": dto.OnTimePerformance,
		"notes":               dto.Notes,
		"cancel_reason":       dto.CancelReason,
		"updated_at":          dto.UpdatedAt,
		"version":             dto.Version,
	}
}

func toDomain(dto RouteDTO) (*route.Route, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	branchID, err := kernel.UUIDFromBytes(dto.BranchID[:])
	if err != nil {
		return nil, err
	}
	vehicleID, err := domainID(dto.VehicleID)
	if err != nil {
		return nil, err
	}
	delivererID, err := domainID(dto.DelivererID)
	if err != nil {
		return nil, err
	}
	transporterID, err := domainID(dto.TransporterID)
	if err != nil {
		return nil, err
	}

	stops := make([]route.StopState, 0, len(dto.Stops))
	for _, stopDTO := range dto.Stops {
		stop, stopErr := stopToDomain(stopDTO)
		if stopErr != nil {
			return nil, stopErr
		}
		stops = append(stops, stop)
	}

	return route.RestoreRoute(route.State{
		ID:                id,
		BranchID:          branchID,
		VehicleID:         vehicleID,
		DelivererID:       delivererID,
		TransporterID:     transporterID,
		Status:            route.Status(dto.Status),
		ScheduledStart:    dto.ScheduledStart,
		ScheduledEnd:      dto.ScheduledEnd,
		ActualStart:       dto.ActualStart,
		ActualEnd:         dto.ActualEnd,
		ActualTime:        time.Duration(dto.ActualSeconds) * time.Second,
		Stops:             stops,
		CurrentStopIndex:  dto.CurrentStopIndex,
		CompletedStops:    dto.CompletedStops,
		FailedStops:       dto.FailedStops,
		SkippedStops:      dto.SkippedStops,
		OnTimePerformance: dto.OnTimePerformance,
		Notes:             dto.Notes,
		CancelReason:      dto.CancelReason,
		CreatedAt:         dto.CreatedAt,
		UpdatedAt:         dto.UpdatedAt,
		Version:           dto.Version,
	})
}

func stopToDomain(dto StopDTO) (route.StopState, error) {
	packageIDs, err := kernel.UUIDsFromStrings(dto.PackageIDs)
	if err != nil {
		return route.StopState{}, err
	}
	completed, err := kernel.UUIDsFromStrings(dto.CompletedPackages)
	if err != nil {
		return route.StopState{}, err
	}
	failed, err := kernel.UUIDsFromStrings(dto.FailedPackages)
	if err != nil {
		return route.StopState{}, err
	}
	skipped, err := kernel.UUIDsFromStrings(dto.SkippedPackages)
	if err != nil {
		return route.StopState{}, err
	}

	var address *kernel.Address
	if dto.Address.Street != "" {
		var point *kernel.GeoPoint
		if dto.Address.Lat != nil && dto.Address.Lng != nil {
			p, pointErr := kernel.NewGeoPoint(*dto.Address.Lat, *dto.Address.Lng)
			if pointErr != nil {
				return route.StopState{}, pointErr
			}
			point = &p
		}
		a, addrErr := kernel.NewAddress(dto.Address.Street, dto.Address.City, dto.Address.State, dto.Address.PostalCode, point)
		if addrErr != nil {
			return route.StopState{}, addrErr
		}
		address = &a
	}

	return route.StopState{
		Order:             dto.StopOrder,
		Action:            route.Action(dto.Action),
		PackageIDs:        packageIDs,
		Address:           address,
		EstimatedTravel:   time.Duration(dto.EstimatedTravelSeconds) * time.Second,
		Status:            route.StopStatus(dto.Status),
		ExpectedArrival:   dto.ExpectedArrival,
		ActualArrival:     dto.ActualArrival,
		ResolvedAt:        dto.ResolvedAt,
		CompletedPackages: completed,
		FailedPackages:    failed,
		SkippedPackages:   skipped,
		Notes:             dto.Notes,
	}, nil
}

func rawID(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func domainID(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromBytes(raw[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}
