package parcelrepo

import (
	"context"
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/parcel"
	"shipping/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormParcelRepository implements ports.ParcelRepository using GORM.
type GormParcelRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormParcelRepository creates a new GORM parcel repository.
func NewGormParcelRepository(db *gorm.DB, tracker aggregateTracker) *GormParcelRepository {
	return &GormParcelRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new parcel together with its issues and tracking history.
func (r *GormParcelRepository) Add(ctx context.Context, aggregate *parcel.Parcel) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if dto.Version == 0 {
		dto.Version = 1
	}
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return errs.NewInfrastructureError("add package", err)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes the parcel row guarded by the version it was loaded with,
// appends new tracking events and upserts issues.
func (r *GormParcelRepository) Update(ctx context.Context, aggregate *parcel.Parcel) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	db := r.db.WithContext(ctx)
	dto := fromDomain(aggregate)
	columns := dto.columns()
	columns["version"] = aggregate.Version() + 1

	result := db.Model(&ParcelDTO{}).
		Where("id = ? AND version = ?", dto.ID, aggregate.Version()).
		Updates(columns)
	if result.Error != nil {
		return errs.NewInfrastructureError("update package", result.Error)
	}
	if result.RowsAffected == 0 {
		return r.classifyMiss(ctx, aggregate.ID())
	}

	if len(dto.Events) > 0 {
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&dto.Events).Error; err != nil {
			return errs.NewInfrastructureError("append tracking events", err)
		}
	}
	if len(dto.Issues) > 0 {
		if err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"position", "resolved_at", "resolved_by", "resolution"}),
		}).Create(&dto.Issues).Error; err != nil {
			return errs.NewInfrastructureError("save issues", err)
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a parcel by ID.
func (r *GormParcelRepository) Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ParcelDTO
	if err := r.withChildren(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("package", id.String())
		}
		return nil, errs.NewInfrastructureError("get package", err)
	}

	return toDomain(dto)
}

func (r *GormParcelRepository) withChildren(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Issues", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Preload("Events", func(db *gorm.DB) *gorm.DB { return db.Order("sequence") })
}

// classifyMiss tells a missing parcel apart from a stale version.
func (r *GormParcelRepository) classifyMiss(ctx context.Context, id kernel.UUID) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&ParcelDTO{}).Where("id = ?", id.Bytes()).Count(&count).Error; err != nil {
		return errs.NewInfrastructureError("update package", err)
	}
	if count == 0 {
		return errs.NewObjectNotFoundError("package", id.String())
	}
	return errs.NewConflictError("package", id.String())
}
