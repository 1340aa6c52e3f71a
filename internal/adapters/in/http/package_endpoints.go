package http

import (
	"net/http"
	"strconv"
	"time"

	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/application/usecases/queries"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/parcel"
	"shipping/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const defaultRetryPage = 100

// CreatePackage handles POST /api/v1/packages.
func (s *Server) CreatePackage(c echo.Context) error {
	var req createPackageRequest
	if err := s.bind(c, &req); err != nil {
		return s.fail(c, err)
	}
	actor, err := actorFrom(c)
	if err != nil {
		return s.fail(c, err)
	}
	intake, err := req.toIntake(s.defaultMaxAttempts)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewCreatePackageCommand(kernel.NewUUID(), intake, actor)
	if err != nil {
		return s.fail(c, err)
	}
	result, err := s.h.CreatePackage.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusCreated, createdResponse{
		ID:         result.PackageID.String(),
		TrackingID: result.TrackingID,
	})
}

// GetPackage handles GET /api/v1/packages/:id.
func (s *Server) GetPackage(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}
	query, err := queries.NewGetPackageDetailsQuery(id)
	if err != nil {
		return s.fail(c, err)
	}
	return s.packageDetails(c, query)
}

// TrackPackage handles GET /api/v1/tracking/:trackingId.
func (s *Server) TrackPackage(c echo.Context) error {
	query, err := queries.NewGetPackageByTrackingIDQuery(c.Param("trackingId"))
	if err != nil {
		return s.fail(c, err)
	}
	return s.packageDetails(c, query)
}

func (s *Server) packageDetails(c echo.Context, query queries.GetPackageDetailsQuery) error {
	details, err := s.h.GetPackageDetails.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, toPackageResponse(details))
}

// GetPackageRoutes handles GET /api/v1/packages/:id/routes?includeClosed=true.
func (s *Server) GetPackageRoutes(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}
	includeClosed := false
	if raw := c.QueryParam("includeClosed"); raw != "" {
		if includeClosed, err = strconv.ParseBool(raw); err != nil {
			return s.fail(c, errs.NewValueIsInvalidErrorWithCause("includeClosed", err))
		}
	}

	query, err := queries.NewGetPackageRoutesQuery(id, includeClosed)
	if err != nil {
		return s.fail(c, err)
	}
	rows, err := s.h.GetPackageRoutes.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	response := make([]packageRouteResponse, len(rows))
	for i, r := range rows {
		response[i] = packageRouteResponse{
			RouteID:          r.RouteID.String(),
			BranchID:         r.BranchID.String(),
			Status:           r.Status,
			ScheduledStart:   r.ScheduledStart,
			ScheduledEnd:     r.ScheduledEnd,
			CurrentStopIndex: r.CurrentStopIndex,
			TotalStops:       r.TotalStops,
			StopPosition:     r.StopPosition,
			StopAction:       r.StopAction,
			StopStatus:       r.StopStatus,
		}
	}
	return c.JSON(http.StatusOK, response)
}

// GetPackagesDueForRetry handles GET /api/v1/packages/due-for-retry?asOf=&limit=.
// asOf defaults to now and is read as RFC 3339.
func (s *Server) GetPackagesDueForRetry(c echo.Context) error {
	asOf := s.now().UTC()
	if raw := c.QueryParam("asOf"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return s.fail(c, errs.NewValueIsInvalidErrorWithCause("asOf", err))
		}
		asOf = parsed
	}
	limit := defaultRetryPage
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return s.fail(c, errs.NewValueIsInvalidErrorWithCause("limit", err))
		}
		limit = parsed
	}

	query, err := queries.NewGetPackagesDueForRetryQuery(asOf, limit)
	if err != nil {
		return s.fail(c, err)
	}
	rows, err := s.h.GetPackagesDueForRetry.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	response := make([]dueForRetryResponse, len(rows))
	for i, r := range rows {
		response[i] = dueForRetryResponse{
			ID:              r.ID.String(),
			TrackingID:      r.TrackingID,
			CurrentBranchID: idString(r.CurrentBranchID),
			AttemptCount:    r.AttemptCount,
			MaxAttempts:     r.MaxAttempts,
			NextAttemptDate: r.NextAttemptDate,
		}
	}
	return c.JSON(http.StatusOK, response)
}

// TransitionStatus handles POST /api/v1/packages/:id/status.
func (s *Server) TransitionStatus(c echo.Context) error {
	id, actor, err := target(c, "id")
	if err != nil {
		return s.fail(c, err)
	}
	var req transitionStatusRequest
	if err = s.bind(c, &req); err != nil {
		return s.fail(c, err)
	}
	branchID, err := optionalID("branchId", req.BranchID)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewTransitionStatusCommand(id, parcel.Status(req.Status), actor, parcel.TransitionOptions{
		BranchID:        branchID,
		Notes:           req.Notes,
		NextAttemptDate: req.NextAttemptDate,
	})
	return dispatch(s, c, s.h.TransitionStatus, cmd, err)
}

// ToggleCancel handles POST /api/v1/packages/:id/cancel. Calling it on a
// cancelled package reactivates it.
func (s *Server) ToggleCancel(c echo.Context) error {
	id, actor, err := target(c, "id")
	if err != nil {
		return s.fail(c, err)
	}
	var req notesRequest
	if err = s.bind(c, &req); err != nil {
		return s.fail(c, err)
	}
	cmd, err := commands.NewToggleCancelCommand(id, actor, req.Notes)
	return dispatch(s, c, s.h.ToggleCancel, cmd, err)
}

// ReportIssue handles POST /api/v1/packages/:id/issues.
func (s *Server) ReportIssue(c echo.Context) error {
	id, actor, err := target(c, "id")
	if err != nil {
		return s.fail(c, err)
	}
	var req reportIssueRequest
	if err = s.bind(c, &req); err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewReportIssueCommand(
		id,
		parcel.IssueType(req.Type),
		req.Description,
		parcel.Priority(req.Priority),
		actor,
	)
	if err != nil {
		return s.fail(c, err)
	}
	issueID, err := s.h.ReportIssue.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusCreated, createdResponse{ID: issueID.String()})
}

// ResolveIssue handles POST /api/v1/packages/:id/issues/:issueId/resolve.
func (s *Server) ResolveIssue(c echo.Context) error {
	id, actor, err := target(c, "id")
	if err != nil {
		return s.fail(c, err)
	}
	issueID, err := pathID(c, "issueId")
	if err != nil {
		return s.fail(c, err)
	}
	var req resolveIssueRequest
	if err = s.bind(c, &req); err != nil {
		return s.fail(c, err)
	}
	cmd, err := commands.NewResolveIssueCommand(id, issueID, req.Resolution, actor)
	return dispatch(s, c, s.h.ResolveIssue, cmd, err)
}

// RequestReturn handles POST /api/v1/packages/:id/return.
func (s *Server) RequestReturn(c echo.Context) error {
	id, actor, err := target(c, "id")
	if err != nil {
		return s.fail(c, err)
	}
	var req reasonRequest
	if err = s.bind(c, &req); err != nil {
		return s.fail(c, err)
	}
	cmd, err := commands.NewRequestReturnCommand(id, req.Reason, actor)
	return dispatch(s, c, s.h.RequestReturn, cmd, err)
}

// ProcessRefund handles POST /api/v1/packages/:id/refund.
func (s *Server) ProcessRefund(c echo.Context) error {
	id, actor, err := target(c, "id")
	if err != nil {
		return s.fail(c, err)
	}
	var req refundRequest
	if err = s.bind(c, &req); err != nil {
		return s.fail(c, err)
	}
	cmd, err := commands.NewProcessRefundCommand(id, req.Amount, actor)
	return dispatch(s, c, s.h.ProcessRefund, cmd, err)
}

// RecordPayment handles POST /api/v1/packages/:id/payment.
func (s *Server) RecordPayment(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}
	var req paymentRequest
	if err = s.bind(c, &req); err != nil {
		return s.fail(c, err)
	}
	cmd, err := commands.NewRecordPaymentCommand(id, parcel.PaymentMethod(req.Method))
	return dispatch(s, c, s.h.RecordPayment, cmd, err)
}

// target reads the aggregate id from the path and the actor from the headers.
func target(c echo.Context, param string) (kernel.UUID, *kernel.UUID, error) {
	id, err := pathID(c, param)
	if err != nil {
		return kernel.UUID{}, nil, err
	}
	actor, err := actorFrom(c)
	if err != nil {
		return kernel.UUID{}, nil, err
	}
	return id, actor, nil
}
