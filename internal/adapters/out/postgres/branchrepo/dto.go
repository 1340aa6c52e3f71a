// Package branchrepo persists the branch capacity ledger.
package branchrepo

import (
	"time"

	"shipping/internal/core/domain/model/branch"
	"shipping/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// BranchDTO is the row of a branch. current_load is only ever changed by
// conditional increments and decrements.
type BranchDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID     uuid.UUID `gorm:"type:uuid;index;not null"`
	Name          string    `gorm:"not null"`
	Status        string    `gorm:"type:varchar(16);not null"`
	CapacityLimit *int
	CurrentLoad   int `gorm:"not null;default:0;check:chk_branches_current_load,current_load >= 0"`
	Version       int `gorm:"not null;default:1"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName overrides GORM's default naming.
func (BranchDTO) TableName() string {
	return "branches"
}

func fromDomain(b *branch.Branch) BranchDTO {
	return BranchDTO{
		ID:            b.ID().Bytes(),
		CompanyID:     b.CompanyID().Bytes(),
		Name:          b.Name(),
		Status:        string(b.Status()),
		CapacityLimit: b.CapacityLimit(),
		CurrentLoad:   b.CurrentLoad(),
		Version:       b.Version(),
	}
}

func toDomain(dto BranchDTO) (*branch.Branch, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	companyID, err := kernel.UUIDFromBytes(dto.CompanyID[:])
	if err != nil {
		return nil, err
	}

	return branch.RestoreBranch(id, companyID, dto.Name, branch.Status(dto.Status),
		dto.CapacityLimit, dto.CurrentLoad, dto.Version)
}
