package branchrepo

import (
	"context"
	"errors"
	"fmt"

	"shipping/internal/core/domain/model/branch"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormBranchRepository implements ports.BranchRepository using GORM.
type GormBranchRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormBranchRepository creates a new GORM branch repository.
func NewGormBranchRepository(db *gorm.DB, tracker aggregateTracker) *GormBranchRepository {
	return &GormBranchRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new branch.
func (r *GormBranchRepository) Add(ctx context.Context, aggregate *branch.Branch) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if dto.Version == 0 {
		dto.Version = 1
	}
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return errs.NewInfrastructureError("add branch", err)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a branch by ID.
func (r *GormBranchRepository) Get(ctx context.Context, id kernel.UUID) (*branch.Branch, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto BranchDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("branch", id.String())
		}
		return nil, errs.NewInfrastructureError("get branch", err)
	}

	return toDomain(dto)
}

// TryAdmit increments the load in a single conditional UPDATE. When no row
// matches, the branch is read back to tell the caller why.
func (r *GormBranchRepository) TryAdmit(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&BranchDTO{}).
		Where("id = ? AND status = ? AND (capacity_limit IS NULL OR current_load < capacity_limit)",
			id.Bytes(), string(branch.Active)).
		Updates(map[string]any{
			"current_load": gorm.Expr("current_load + 1"),
			"version":      gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return errs.NewInfrastructureError("admit package", result.Error)
	}
	if result.RowsAffected == 1 {
		return nil
	}

	b, err := r.Get(ctx, id)
	if err != nil {
		return err
	}
	if err = b.CheckAdmission(); err != nil {
		return err
	}
	return errs.NewConflictErrorWithCause("branch", id.String(), errors.New("load changed during admission"))
}

// Release decrements the load, stopping at zero.
func (r *GormBranchRepository) Release(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&BranchDTO{}).
		Where("id = ? AND current_load > 0", id.Bytes()).
		Updates(map[string]any{
			"current_load": gorm.Expr("current_load - 1"),
			"version":      gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return errs.NewInfrastructureError("release package", result.Error)
	}
	if result.RowsAffected == 1 {
		return nil
	}

	// Nothing to release, or no such branch.
	_, err := r.Get(ctx, id)
	return err
}

// UpdateCapacity replaces the limit unless it is below the current load.
func (r *GormBranchRepository) UpdateCapacity(ctx context.Context, id kernel.UUID, limit *int) error {
	if err := id.Validate(); err != nil {
		return err
	}
	if limit != nil && *limit < 0 {
		return errs.NewValueIsInvalidErrorWithCause("capacityLimit", fmt.Errorf("%d is negative", *limit))
	}

	query := r.db.WithContext(ctx).Model(&BranchDTO{}).Where("id = ?", id.Bytes())
	if limit != nil {
		query = query.Where("current_load <= ?", *limit)
	}
	result := query.Updates(map[string]any{
		"capacity_limit": limit,
		"version":        gorm.Expr("version + 1"),
	})
	if result.Error != nil {
		return errs.NewInfrastructureError("update capacity", result.Error)
	}
	if result.RowsAffected == 1 {
		return nil
	}

	b, err := r.Get(ctx, id)
	if err != nil {
		return err
	}
	if err = b.UpdateCapacity(limit); err != nil {
		return err
	}
	return errs.NewConflictErrorWithCause("branch", id.String(), errors.New("load changed during capacity update"))
}
