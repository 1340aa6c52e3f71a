package queries

import (
	"context"
	"database/sql"
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const packageDetailsSelect = `
	SELECT
		id, tracking_id, client_id, origin_branch_id, current_branch_id, destination_branch_id,
		recipient_name, recipient_phone, dest_street, dest_city, delivery_type, status,
		weight, total_price, payment_method, payment_status,
		attempt_count, max_attempts, next_attempt_date, delivered_at,
		return_is_return, return_reason, return_refund_status, return_refund_amount,
		version, created_at, updated_at
	FROM packages`

type GetPackageDetailsQueryHandler struct {
	db *gorm.DB
}

func NewGetPackageDetailsQueryHandler(db *gorm.DB) GetPackageDetailsQueryHandler {
	return GetPackageDetailsQueryHandler{db: db}
}

// Handle returns the package with its tracking history and issues, or an
// ObjectNotFound error.
func (h GetPackageDetailsQueryHandler) Handle(ctx context.Context, query GetPackageDetailsQuery) (PackageDetailsResponse, error) {
	if err := query.Validate(); err != nil {
		return PackageDetailsResponse{}, err
	}

	db := h.db.WithContext(ctx)

	var row *sql.Row
	var lookup any
	if query.packageID != nil {
		lookup = query.packageID.String()
		row = db.Raw(packageDetailsSelect+" WHERE id = ?", query.packageID.Bytes()).Row()
	} else {
		lookup = query.trackingID
		row = db.Raw(packageDetailsSelect+" WHERE tracking_id = ?", query.trackingID).Row()
	}

	details, err := scanPackageDetails(row)
	if errors.Is(err, sql.ErrNoRows) {
		return PackageDetailsResponse{}, errs.NewObjectNotFoundError("package", lookup)
	}
	if err != nil {
		return PackageDetailsResponse{}, errs.NewInfrastructureError("read package", err)
	}

	if details.History, err = h.history(ctx, details.ID); err != nil {
		return PackageDetailsResponse{}, err
	}
	if details.Issues, err = h.issues(ctx, details.ID); err != nil {
		return PackageDetailsResponse{}, err
	}
	for _, issue := range details.Issues {
		if !issue.Resolved {
			details.OpenIssues++
		}
	}
	details.RemainingAttempts = max(details.MaxAttempts-details.AttemptCount, 0)

	return details, nil
}

func scanPackageDetails(row *sql.Row) (PackageDetailsResponse, error) {
	var d PackageDetailsResponse
	var id, clientID, originID uuid.UUID
	var currentID, destinationID uuid.NullUUID

	err := row.Scan(
		&id, &d.TrackingID, &clientID, &originID, &currentID, &destinationID,
		&d.RecipientName, &d.RecipientPhone, &d.Street, &d.City, &d.DeliveryType, &d.Status,
		&d.Weight, &d.TotalPrice, &d.PaymentMethod, &d.PaymentStatus,
		&d.AttemptCount, &d.MaxAttempts, &d.NextAttemptDate, &d.DeliveredAt,
		&d.IsReturn, &d.ReturnReason, &d.RefundStatus, &d.RefundAmount,
		&d.Version, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return PackageDetailsResponse{}, err
	}

	ids, err := domainIDs(id, clientID, originID)
	if err != nil {
		return PackageDetailsResponse{}, err
	}
	d.ID, d.ClientID, d.OriginBranchID = ids[0], ids[1], ids[2]
	if d.CurrentBranchID, err = optionalID(currentID); err != nil {
		return PackageDetailsResponse{}, err
	}
	if d.DestinationBranchID, err = optionalID(destinationID); err != nil {
		return PackageDetailsResponse{}, err
	}
	return d, nil
}

func (h GetPackageDetailsQueryHandler) history(ctx context.Context, packageID kernel.UUID) ([]TrackingEntry, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT status, branch_id, user_id, notes, timestamp
		FROM package_tracking_events
		WHERE package_id = ?
		ORDER BY sequence
	`, packageID.Bytes()).Rows()
	if err != nil {
		return nil, errs.NewInfrastructureError("read tracking history", err)
	}
	defer rows.Close()

	history := make([]TrackingEntry, 0)
	for rows.Next() {
		var entry TrackingEntry
		var branchID, userID uuid.NullUUID
		if err = rows.Scan(&entry.Status, &branchID, &userID, &entry.Notes, &entry.Timestamp); err != nil {
			return nil, errs.NewInfrastructureError("read tracking history", err)
		}
		if entry.BranchID, err = optionalID(branchID); err != nil {
			return nil, err
		}
		if entry.UserID, err = optionalID(userID); err != nil {
			return nil, err
		}
		history = append(history, entry)
	}
	if err = rows.Err(); err != nil {
		return nil, errs.NewInfrastructureError("read tracking history", err)
	}
	return history, nil
}

func (h GetPackageDetailsQueryHandler) issues(ctx context.Context, packageID kernel.UUID) ([]IssueEntry, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, type, description, priority, reported_by, reported_at, resolved_at, resolved_by, resolution
		FROM package_issues
		WHERE package_id = ?
		ORDER BY position
	`, packageID.Bytes()).Rows()
	if err != nil {
		return nil, errs.NewInfrastructureError("read issues", err)
	}
	defer rows.Close()

	issues := make([]IssueEntry, 0)
	for rows.Next() {
		var entry IssueEntry
		var id uuid.UUID
		var reportedBy, resolvedBy uuid.NullUUID
		err = rows.Scan(&id, &entry.Type, &entry.Description, &entry.Priority,
			&reportedBy, &entry.ReportedAt, &entry.ResolvedAt, &resolvedBy, &entry.Resolution)
		if err != nil {
			return nil, errs.NewInfrastructureError("read issues", err)
		}
		if entry.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if entry.ReportedBy, err = optionalID(reportedBy); err != nil {
			return nil, err
		}
		if entry.ResolvedBy, err = optionalID(resolvedBy); err != nil {
			return nil, err
		}
		entry.Resolved = entry.ResolvedAt != nil
		issues = append(issues, entry)
	}
	if err = rows.Err(); err != nil {
		return nil, errs.NewInfrastructureError("read issues", err)
	}
	return issues, nil
}
