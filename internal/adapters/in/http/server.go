// Package http exposes the package, route and branch operations over REST.
//
// Every endpoint builds a command or query through its constructor, hands it
// to the matching application handler and maps the outcome to a status code.
// Request bodies are checked for shape by go-playground/validator before any
// command is built; the domain still owns every business rule.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/application/usecases/queries"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// ActorHeader carries the id of the user performing a mutation. Requests
// without it are recorded as done by the system.
const ActorHeader = "X-Actor-ID"

// CommandHandler handles a command that produces no value.
type CommandHandler[C any] interface {
	Handle(ctx context.Context, cmd C) error
}

// RequestHandler handles a command or query that produces a value.
type RequestHandler[Q, R any] interface {
	Handle(ctx context.Context, q Q) (R, error)
}

// Handlers groups the application handlers the server dispatches to.
type Handlers struct {
	CreatePackage    RequestHandler[commands.CreatePackageCommand, commands.CreatePackageResult]
	TransitionStatus CommandHandler[commands.TransitionStatusCommand]
	ToggleCancel     CommandHandler[commands.ToggleCancelCommand]
	ReportIssue      RequestHandler[commands.ReportIssueCommand, kernel.UUID]
	ResolveIssue     CommandHandler[commands.ResolveIssueCommand]
	RequestReturn    CommandHandler[commands.RequestReturnCommand]
	ProcessRefund    CommandHandler[commands.ProcessRefundCommand]
	RecordPayment    CommandHandler[commands.RecordPaymentCommand]

	CreateRoute   CommandHandler[commands.CreateRouteCommand]
	AssignRoute   CommandHandler[commands.AssignRouteCommand]
	StartRoute    CommandHandler[commands.StartRouteCommand]
	PauseRoute    CommandHandler[commands.PauseRouteCommand]
	ResumeRoute   CommandHandler[commands.ResumeRouteCommand]
	CancelRoute   CommandHandler[commands.CancelRouteCommand]
	CompleteRoute CommandHandler[commands.CompleteRouteCommand]
	ArriveAtStop  CommandHandler[commands.ArriveAtStopCommand]
	CompleteStop  CommandHandler[commands.CompleteStopCommand]
	FailStop      CommandHandler[commands.FailStopCommand]
	SkipStop      CommandHandler[commands.SkipStopCommand]
	ReorderStops  CommandHandler[commands.ReorderStopsCommand]

	CreateBranch         CommandHandler[commands.CreateBranchCommand]
	UpdateBranchCapacity CommandHandler[commands.UpdateBranchCapacityCommand]

	GetPackageDetails      RequestHandler[queries.GetPackageDetailsQuery, queries.PackageDetailsResponse]
	GetPackageRoutes       RequestHandler[queries.GetPackageRoutesQuery, []queries.PackageRouteResponse]
	GetRouteDetails        RequestHandler[queries.GetRouteDetailsQuery, queries.RouteDetailsResponse]
	GetPackagesDueForRetry RequestHandler[queries.GetPackagesDueForRetryQuery, []queries.PackageDueForRetryResponse]
	GetBranchLoad          RequestHandler[queries.GetBranchLoadQuery, []queries.BranchLoadResponse]
}

// Recorder receives request and rejection counts. *metrics.Metrics implements it.
type Recorder interface {
	RecordHTTPRequest(method, path string, status int, duration time.Duration)
	IncrementHTTPRequestsInFlight()
	DecrementHTTPRequestsInFlight()
	RecordRejection(kind string)
}

type noopRecorder struct{}

func (noopRecorder) RecordHTTPRequest(string, string, int, time.Duration) {}
func (noopRecorder) IncrementHTTPRequestsInFlight()                       {}
func (noopRecorder) DecrementHTTPRequestsInFlight()                       {}
func (noopRecorder) RecordRejection(string)                               {}

// Server maps HTTP requests to application use cases.
type Server struct {
	h                  Handlers
	recorder           Recorder
	logger             *slog.Logger
	validator          *requestValidator
	defaultMaxAttempts int
	now                func() time.Time
}

// NewServer creates a server over handlers. defaultMaxAttempts fills
// maxAttempts of new packages that do not set it; zero leaves the domain default.
func NewServer(h Handlers, recorder Recorder, logger *slog.Logger, defaultMaxAttempts int) *Server {
	if recorder == nil {
		recorder = noopRecorder{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		h:                  h,
		recorder:           recorder,
		logger:             logger.With("component", "http"),
		validator:          newRequestValidator(),
		defaultMaxAttempts: defaultMaxAttempts,
		now:                time.Now,
	}
}

// Register installs the validator, the metrics middleware and every route on e.
func (s *Server) Register(e *echo.Echo) {
	e.Validator = s.validator
	e.Use(s.observe)

	e.GET("/health", s.Health)

	api := e.Group("/api/v1")

	api.POST("/packages", s.CreatePackage)
	api.GET("/packages/due-for-retry", s.GetPackagesDueForRetry)
	api.GET("/packages/:id", s.GetPackage)
	api.GET("/packages/:id/routes", s.GetPackageRoutes)
	api.POST("/packages/:id/status", s.TransitionStatus)
	api.POST("/packages/:id/cancel", s.ToggleCancel)
	api.POST("/packages/:id/issues", s.ReportIssue)
	api.POST("/packages/:id/issues/:issueId/resolve", s.ResolveIssue)
	api.POST("/packages/:id/return", s.RequestReturn)
	api.POST("/packages/:id/refund", s.ProcessRefund)
	api.POST("/packages/:id/payment", s.RecordPayment)
	api.GET("/tracking/:trackingId", s.TrackPackage)

	api.POST("/routes", s.CreateRoute)
	api.GET("/routes/:id", s.GetRoute)
	api.POST("/routes/:id/assign", s.AssignRoute)
	api.POST("/routes/:id/start", s.StartRoute)
	api.POST("/routes/:id/pause", s.PauseRoute)
	api.POST("/routes/:id/resume", s.ResumeRoute)
	api.POST("/routes/:id/cancel", s.CancelRoute)
	api.POST("/routes/:id/complete", s.CompleteRoute)
	api.PUT("/routes/:id/stops/order", s.ReorderStops)
	api.POST("/routes/:id/stops/:index/arrive", s.ArriveAtStop)
	api.POST("/routes/:id/stops/:index/complete", s.CompleteStop)
	api.POST("/routes/:id/stops/:index/fail", s.FailStop)
	api.POST("/routes/:id/stops/:index/skip", s.SkipStop)

	api.POST("/branches", s.CreateBranch)
	api.PUT("/branches/:id/capacity", s.UpdateBranchCapacity)
	api.GET("/companies/:companyId/branches/load", s.GetBranchLoad)
}

// Health handles GET /health.
func (s *Server) Health(c echo.Context) error {
	return c.String(http.StatusOK, "Healthy")
}

// observe records duration and status of every request against its route template.
func (s *Server) observe(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		s.recorder.IncrementHTTPRequestsInFlight()
		defer s.recorder.DecrementHTTPRequestsInFlight()

		start := time.Now()
		err := next(c)
		if err != nil {
			c.Error(err)
		}
		s.recorder.RecordHTTPRequest(c.Request().Method, c.Path(), c.Response().Status, time.Since(start))
		return nil
	}
}

// bind decodes the request body into req and checks its shape.
func (s *Server) bind(c echo.Context, req any) error {
	if err := (&echo.DefaultBinder{}).BindBody(c, req); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("body", err)
	}
	return c.Validate(req)
}

func pathID(c echo.Context, name string) (kernel.UUID, error) {
	return parseID(name, c.Param(name))
}

func pathIndex(c echo.Context) (int, error) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause("index", err)
	}
	return index, nil
}

// actorFrom reads ActorHeader. A missing header yields the nil (system) actor.
func actorFrom(c echo.Context) (*kernel.UUID, error) {
	raw := c.Request().Header.Get(ActorHeader)
	if raw == "" {
		return nil, nil
	}
	return optionalID("actor", &raw)
}

// dispatch runs a command without a result and answers 204.
func dispatch[C any](s *Server, c echo.Context, h CommandHandler[C], cmd C, err error) error {
	if err != nil {
		return s.fail(c, err)
	}
	if err = h.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
