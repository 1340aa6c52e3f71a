// Package userrepo touches the user records kept by the identity system.
// Only the shipment columns are written here.
package userrepo

import (
	"time"

	"github.com/google/uuid"
)

type UserDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name           string    `gorm:"type:varchar(255)"`
	Email          string    `gorm:"type:varchar(255)"`
	ShipmentCount  int       `gorm:"not null;default:0"`
	LastShipmentAt *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (UserDTO) TableName() string {
	return "users"
}
