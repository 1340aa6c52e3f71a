package queries

import (
	"context"

	"shipping/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetPackageRoutesQueryHandler struct {
	db *gorm.DB
}

func NewGetPackageRoutesQueryHandler(db *gorm.DB) GetPackageRoutesQueryHandler {
	return GetPackageRoutesQueryHandler{db: db}
}

// Handle joins the route index with the stop that holds the package.
func (h GetPackageRoutesQueryHandler) Handle(ctx context.Context, query GetPackageRoutesQuery) ([]PackageRouteResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `
		SELECT
			r.id, r.branch_id, r.status, r.scheduled_start, r.scheduled_end, r.current_stop_index,
			(SELECT count(*) FROM route_stops c WHERE c.route_id = r.id) AS total_stops,
			s.position, s.action, s.status
		FROM route_packages rp
		JOIN routes r ON r.id = rp.route_id
		JOIN route_stops s ON s.route_id = r.id AND ? = ANY(s.package_ids)
		WHERE rp.package_id = ?`
	args := []any{query.packageID.String(), query.packageID.Bytes()}
	if !query.includeClosed {
		sql += ` AND r.status NOT IN ('completed', 'cancelled')`
	}
	sql += ` ORDER BY r.scheduled_start, s.position`

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, errs.NewInfrastructureError("read package routes", err)
	}
	defer rows.Close()

	routes := make([]PackageRouteResponse, 0)
	for rows.Next() {
		var item PackageRouteResponse
		var routeID, branchID uuid.UUID

		err = rows.Scan(&routeID, &branchID, &item.Status, &item.ScheduledStart, &item.ScheduledEnd,
			&item.CurrentStopIndex, &item.TotalStops, &item.StopPosition, &item.StopAction, &item.StopStatus)
		if err != nil {
			return nil, errs.NewInfrastructureError("read package routes", err)
		}
		ids, idErr := domainIDs(routeID, branchID)
		if idErr != nil {
			return nil, idErr
		}
		item.RouteID, item.BranchID = ids[0], ids[1]
		routes = append(routes, item)
	}
	if err = rows.Err(); err != nil {
		return nil, errs.NewInfrastructureError("read package routes", err)
	}

	return routes, nil
}
