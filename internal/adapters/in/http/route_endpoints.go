package http

import (
	"net/http"

	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/application/usecases/queries"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/route"

	"github.com/labstack/echo/v4"
)

// CreateRoute handles POST /api/v1/routes. Stops arrive already sequenced.
func (s *Server) CreateRoute(c echo.Context) error {
	var req createRouteRequest
	if err := s.bind(c, &req); err != nil {
		return s.fail(c, err)
	}
	branchID, err := parseID("branchId", req.BranchID)
	if err != nil {
		return s.fail(c, err)
	}
	plans := make([]route.StopPlan, 0, len(req.Stops))
	for _, stop := range req.Stops {
		plan, planErr := stop.toPlan()
		if planErr != nil {
			return s.fail(c, planErr)
		}
		plans = append(plans, plan)
	}

	routeID := kernel.NewUUID()
	cmd, err := commands.NewCreateRouteCommand(routeID, branchID, req.ScheduledStart, req.ScheduledEnd, plans)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.h.CreateRoute.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusCreated, createdResponse{ID: routeID.String()})
}

// GetRoute handles GET /api/v1/routes/:id.
func (s *Server) GetRoute(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}
	query, err := queries.NewGetRouteDetailsQuery(id)
	if err != nil {
		return s.fail(c, err)
	}
	details, err := s.h.GetRouteDetails.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, toRouteResponse(details))
}

// AssignRoute handles POST /api/v1/routes/:id/assign.
func (s *Server) AssignRoute(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}
	var req assignRouteRequest
	if err = s.bind(c, &req); err != nil {
		return s.fail(c, err)
	}
	vehicleID, err := parseID("vehicleId", req.VehicleID)
	if err != nil {
		return s.fail(c, err)
	}
	delivererID, err := parseID("delivererId", req.DelivererID)
	if err != nil {
		return s.fail(c, err)
	}
	transporterID, err := optionalID("transporterId", req.TransporterID)
	if err != nil {
		return s.fail(c, err)
	}
	cmd, err := commands.NewAssignRouteCommand(id, vehicleID, delivererID, transporterID)
	return dispatch(s, c, s.h.AssignRoute, cmd, err)
}

// StartRoute handles POST /api/v1/routes/:id/start.
func (s *Server) StartRoute(c echo.Context) error {
	id, actor, err := target(c, "id")
	if err != nil {
		return s.fail(c, err)
	}
	cmd, err := commands.NewStartRouteCommand(id, actor)
	return dispatch(s, c, s.h.StartRoute, cmd, err)
}

// PauseRoute handles POST /api/v1/routes/:id/pause.
func (s *Server) PauseRoute(c echo.Context) error {
	id, actor, err := target(c, "id")
	if err != nil {
		return s.fail(c, err)
	}
	cmd, err := commands.NewPauseRouteCommand(id, actor)
	return dispatch(s, c, s.h.PauseRoute, cmd, err)
}

// ResumeRoute handles POST /api/v1/routes/:id/resume.
func (s *Server) ResumeRoute(c echo.Context) error {
	id, actor, err := target(c, "id")
	if err != nil {
		return s.fail(c, err)
	}
	cmd, err := commands.NewResumeRouteCommand(id, actor)
	return dispatch(s, c, s.h.ResumeRoute, cmd, err)
}

// CancelRoute handles POST /api/v1/routes/:id/cancel.
func (s *Server) CancelRoute(c echo.Context) error {
	id, actor, err := target(c, "id")
	if err != nil {
		return s.fail(c, err)
	}
	var req reasonRequest
	if err = s.bind(c, &req); err != nil {
		return s.fail(c, err)
	}
	cmd, err := commands.NewCancelRouteCommand(id, req.Reason, actor)
	return dispatch(s, c, s.h.CancelRoute, cmd, err)
}

// CompleteRoute handles POST /api/v1/routes/:id/complete.
func (s *Server) CompleteRoute(c echo.Context) error {
	id, actor, err := target(c, "id")
	if err != nil {
		return s.fail(c, err)
	}
	var req notesRequest
	if err = s.bind(c, &req); err != nil {
		return s.fail(c, err)
	}
	cmd, err := commands.NewCompleteRouteCommand(id, req.Notes, actor)
	return dispatch(s, c, s.h.CompleteRoute, cmd, err)
}

// ReorderStops handles PUT /api/v1/routes/:id/stops/order.
func (s *Server) ReorderStops(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}
	var req reorderStopsRequest
	if err = s.bind(c, &req); err != nil {
		return s.fail(c, err)
	}
	cmd, err := commands.NewReorderStopsCommand(id, req.Order)
	return dispatch(s, c, s.h.ReorderStops, cmd, err)
}

// ArriveAtStop handles POST /api/v1/routes/:id/stops/:index/arrive.
func (s *Server) ArriveAtStop(c echo.Context) error {
	id, index, actor, err := stopTarget(c)
	if err != nil {
		return s.fail(c, err)
	}
	cmd, err := commands.NewArriveAtStopCommand(id, index, actor)
	return dispatch(s, c, s.h.ArriveAtStop, cmd, err)
}

// CompleteStop handles POST /api/v1/routes/:id/stops/:index/complete.
func (s *Server) CompleteStop(c echo.Context) error {
	id, index, actor, err := stopTarget(c)
	if err != nil {
		return s.fail(c, err)
	}
	var req completeStopRequest
	if err = s.bind(c, &req); err != nil {
		return s.fail(c, err)
	}
	completed, err := parseIDs("completedPackageIds", req.CompletedPackageIDs)
	if err != nil {
		return s.fail(c, err)
	}
	failed, err := parseIDs("failedPackageIds", req.FailedPackageIDs)
	if err != nil {
		return s.fail(c, err)
	}
	cmd, err := commands.NewCompleteStopCommand(id, index, completed, failed, req.Notes, actor)
	return dispatch(s, c, s.h.CompleteStop, cmd, err)
}

// FailStop handles POST /api/v1/routes/:id/stops/:index/fail.
func (s *Server) FailStop(c echo.Context) error {
	id, index, actor, err := stopTarget(c)
	if err != nil {
		return s.fail(c, err)
	}
	var req failStopRequest
	if err = s.bind(c, &req); err != nil {
		return s.fail(c, err)
	}
	skipped, err := parseIDs("skippedPackageIds", req.SkippedPackageIDs)
	if err != nil {
		return s.fail(c, err)
	}
	cmd, err := commands.NewFailStopCommand(id, index, req.Reason, skipped, actor)
	return dispatch(s, c, s.h.FailStop, cmd, err)
}

// SkipStop handles POST /api/v1/routes/:id/stops/:index/skip.
func (s *Server) SkipStop(c echo.Context) error {
	id, index, actor, err := stopTarget(c)
	if err != nil {
		return s.fail(c, err)
	}
	var req skipStopRequest
	if err = s.bind(c, &req); err != nil {
		return s.fail(c, err)
	}
	cmd, err := commands.NewSkipStopCommand(id, index, req.Reason, actor)
	return dispatch(s, c, s.h.SkipStop, cmd, err)
}

func stopTarget(c echo.Context) (kernel.UUID, int, *kernel.UUID, error) {
	id, actor, err := target(c, "id")
	if err != nil {
		return kernel.UUID{}, 0, nil, err
	}
	index, err := pathIndex(c)
	if err != nil {
		return kernel.UUID{}, 0, nil, err
	}
	return id, index, actor, nil
}
