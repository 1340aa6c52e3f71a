package queries

import (
	"context"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetPackagesDueForRetryQueryHandler struct {
	db *gorm.DB
}

func NewGetPackagesDueForRetryQueryHandler(db *gorm.DB) GetPackagesDueForRetryQueryHandler {
	return GetPackagesDueForRetryQueryHandler{db: db}
}

func (h GetPackagesDueForRetryQueryHandler) Handle(
	ctx context.Context,
	query GetPackagesDueForRetryQuery,
) ([]PackageDueForRetryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, tracking_id, current_branch_id, attempt_count, max_attempts, next_attempt_date
		FROM packages
		WHERE status = 'failed_delivery' AND next_attempt_date <= ?
		ORDER BY next_attempt_date, id
		LIMIT ?
	`, query.asOf, query.limit).Rows()
	if err != nil {
		return nil, errs.NewInfrastructureError("read packages due for retry", err)
	}
	defer rows.Close()

	due := make([]PackageDueForRetryResponse, 0)
	for rows.Next() {
		var item PackageDueForRetryResponse
		var id uuid.UUID
		var branchID uuid.NullUUID

		err = rows.Scan(&id, &item.TrackingID, &branchID, &item.AttemptCount, &item.MaxAttempts, &item.NextAttemptDate)
		if err != nil {
			return nil, errs.NewInfrastructureError("read packages due for retry", err)
		}
		if item.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if item.CurrentBranchID, err = optionalID(branchID); err != nil {
			return nil, err
		}
		due = append(due, item)
	}
	if err = rows.Err(); err != nil {
		return nil, errs.NewInfrastructureError("read packages due for retry", err)
	}

	return due, nil
}
