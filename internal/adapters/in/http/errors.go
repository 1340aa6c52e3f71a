package http

import (
	"errors"
	"net/http"

	"shipping/internal/core/domain/model/branch"
	"shipping/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// classify maps an error to a status code and a rejection kind.
func classify(err error) (int, string) {
	var verrs validator.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		return http.StatusBadRequest, "validation"
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, branch.ErrBranchAtCapacity):
		return http.StatusConflict, "branch_at_capacity"
	case errors.Is(err, errs.ErrConflict):
		return http.StatusConflict, "conflict"
	case errors.Is(err, errs.ErrPreconditionFailed):
		return http.StatusPreconditionFailed, "precondition_failed"
	case errors.Is(err, errs.ErrInfrastructure):
		return http.StatusServiceUnavailable, "infrastructure"
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest, "invalid_input"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

// fail writes err as an ErrorResponse. Server-side failures are logged and
// their details are kept out of the body.
func (s *Server) fail(c echo.Context, err error) error {
	status, kind := classify(err)
	s.recorder.RecordRejection(kind)

	body := ErrorResponse{Code: status, Message: err.Error()}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		body.Message = "validation failed"
		body.Fields = fieldErrors(verrs)
	}

	if status >= http.StatusInternalServerError {
		s.logger.ErrorContext(c.Request().Context(), "Request failed",
			"method", c.Request().Method,
			"path", c.Path(),
			"kind", kind,
			"error", err,
		)
		body.Message = http.StatusText(status)
	}

	return c.JSON(status, body)
}
