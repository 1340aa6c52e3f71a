package routerepo

import (
	"context"
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/route"
	"shipping/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormRouteRepository implements ports.RouteRepository using GORM.
type GormRouteRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormRouteRepository creates a new GORM route repository.
func NewGormRouteRepository(db *gorm.DB, tracker aggregateTracker) *GormRouteRepository {
	return &GormRouteRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new route with its stops and package index.
func (r *GormRouteRepository) Add(ctx context.Context, aggregate *route.Route) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if dto.Version == 0 {
		dto.Version = 1
	}
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return errs.NewInfrastructureError("add route", err)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes the route row under the loaded version and upserts every stop.
// The package index never changes after creation.
func (r *GormRouteRepository) Update(ctx context.Context, aggregate *route.Route) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	db := r.db.WithContext(ctx)
	dto := fromDomain(aggregate)
	columns := dto.columns()
	columns["version"] = aggregate.Version() + 1

	result := db.Model(&RouteDTO{}).
		Where("id = ? AND version = ?", dto.ID, aggregate.Version()).
		Updates(columns)
	if result.Error != nil {
		return errs.NewInfrastructureError("update route", result.Error)
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := db.Model(&RouteDTO{}).Where("id = ?", dto.ID).Count(&count).Error; err != nil {
			return errs.NewInfrastructureError("update route", err)
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("route", aggregate.ID().String())
		}
		return errs.NewConflictError("route", aggregate.ID().String())
	}

	if len(dto.Stops) > 0 {
		if err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "route_id"}, {Name: "position"}},
			UpdateAll: true,
		}).Create(&dto.Stops).Error; err != nil {
			return errs.NewInfrastructureError("save route stops", err)
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a route by ID.
func (r *GormRouteRepository) Get(ctx context.Context, id kernel.UUID) (*route.Route, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto RouteDTO
	if err := r.withStops(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("route", id.String())
		}
		return nil, errs.NewInfrastructureError("get route", err)
	}

	return toDomain(dto)
}

func (r *GormRouteRepository) withStops(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Stops", func(db *gorm.DB) *gorm.DB { return db.Order("position") })
}
