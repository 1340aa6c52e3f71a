package postgres

import (
	"shipping/internal/adapters/out/postgres/branchrepo"
	"shipping/internal/adapters/out/postgres/parcelrepo"
	"shipping/internal/adapters/out/postgres/routerepo"
	"shipping/internal/adapters/out/postgres/userrepo"

	"gorm.io/gorm"
)

// AutoMigrate creates or updates every table the repositories use.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&branchrepo.BranchDTO{},
		&userrepo.UserDTO{},
		&parcelrepo.ParcelDTO{},
		&parcelrepo.IssueDTO{},
		&parcelrepo.TrackingEventDTO{},
		&routerepo.RouteDTO{},
		&routerepo.StopDTO{},
		&routerepo.RoutePackageDTO{},
	)
}
