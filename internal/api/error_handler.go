package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/jobboard/job-portal/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Success bool     `json:"success"`
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their HTTP status codes.
//   - Logs unexpected errors without leaking details to the client.
//   - Renders {"success": false, "error": "<message>", "details": [...]}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	fail := func(code int, msg string, details ...string) (int, errorResponse) {
		return code, errorResponse{Error: msg, Details: details}
	}

	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return fail(http.StatusBadRequest, "Validation Error", ve.Messages()...)
	}
	var dup *domain.DuplicateKeyError
	if errors.As(err, &dup) {
		return fail(http.StatusBadRequest, "Duplicate Field", dup.Error())
	}

	// Query binding failures carry the offending parameter.
	var be *echo.BindingError
	if errors.As(err, &be) {
		return fail(http.StatusBadRequest, "Invalid query parameter",
			fmt.Sprintf("%s: %v", be.Field, be.Message))
	}

	// Echo's own errors (bind failures, 404 from router, middleware rejections).
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Code == http.StatusNotFound && errors.Is(err, echo.ErrNotFound) {
			return fail(http.StatusNotFound, "Route not found")
		}
		return fail(he.Code, fmt.Sprintf("%v", he.Message))
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return fail(http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, domain.ErrNotJobOwner):
		return fail(http.StatusUnauthorized, "Not authorized to modify this job")
	case errors.Is(err, domain.ErrUnauthorized):
		return fail(http.StatusUnauthorized, "Not authorized to access this route")
	case errors.Is(err, domain.ErrForbidden):
		return fail(http.StatusForbidden, "Access forbidden")
	case errors.Is(err, domain.ErrJobNotFound):
		return fail(http.StatusNotFound, "Job not found")
	case errors.Is(err, domain.ErrUserNotFound):
		return fail(http.StatusNotFound, "User not found")
	case errors.Is(err, domain.ErrInvalidResetToken):
		return fail(http.StatusBadRequest, "Invalid or expired reset token")
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
		Msg("unhandled error")

	return fail(http.StatusInternalServerError, "Server Error")
}
