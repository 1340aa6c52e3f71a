package userrepo

import (
	"context"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormUserRepository implements ports.UserRepository using GORM.
type GormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// RecordShipment bumps the client's shipment counter.
func (r *GormUserRepository) RecordShipment(ctx context.Context, clientID kernel.UUID, at time.Time) error {
	if err := clientID.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&UserDTO{}).
		Where("id = ?", clientID.Bytes()).
		Updates(map[string]any{
			"shipment_count":   gorm.Expr("shipment_count + 1"),
			"last_shipment_at": at,
		})
	if result.Error != nil {
		return errs.NewInfrastructureError("record shipment", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("client", clientID.String())
	}
	return nil
}
