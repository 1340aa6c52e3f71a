package queries

import (
	"context"

	"shipping/internal/core/domain/model/branch"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetBranchLoadQueryHandler struct {
	db *gorm.DB
}

func NewGetBranchLoadQueryHandler(db *gorm.DB) GetBranchLoadQueryHandler {
	return GetBranchLoadQueryHandler{db: db}
}

// Handle returns the branches ordered by name. Derived figures come from the
// branch rules so they match what admission decides.
func (h GetBranchLoadQueryHandler) Handle(ctx context.Context, query GetBranchLoadQuery) ([]BranchLoadResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, name, status, capacity_limit, current_load, version
		FROM branches
		WHERE company_id = ?
		ORDER BY name
	`, query.companyID.Bytes()).Rows()
	if err != nil {
		return nil, errs.NewInfrastructureError("read branch load", err)
	}
	defer rows.Close()

	loads := make([]BranchLoadResponse, 0)
	for rows.Next() {
		var id uuid.UUID
		var name, status string
		var limit *int
		var load, version int

		if err = rows.Scan(&id, &name, &status, &limit, &load, &version); err != nil {
			return nil, errs.NewInfrastructureError("read branch load", err)
		}
		branchID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}

		b, restoreErr := branch.RestoreBranch(branchID, query.companyID, name, branch.Status(status), limit, load, version)
		if restoreErr != nil {
			return nil, restoreErr
		}

		item := BranchLoadResponse{
			ID:                    b.ID(),
			Name:                  b.Name(),
			Status:                b.Status().String(),
			CapacityLimit:         b.CapacityLimit(),
			CurrentLoad:           b.CurrentLoad(),
			IsFull:                b.IsFull(),
			UtilizationPercentage: b.UtilizationPercentage(),
		}
		if available, limited := b.AvailableCapacity(); limited {
			item.Available = &available
		}
		loads = append(loads, item)
	}
	if err = rows.Err(); err != nil {
		return nil, errs.NewInfrastructureError("read branch load", err)
	}

	return loads, nil
}
