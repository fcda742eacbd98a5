// Package apperr defines the error taxonomy shared by all domain services
// and the echo error handler that maps it onto HTTP responses.
package apperr

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

var (
	// ErrUnauthenticated means no valid session or token accompanied the request.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrForbidden means the caller is authenticated but lacks the role or ownership.
	ErrForbidden = errors.New("insufficient permissions")
	// ErrNotFound means the addressed resource does not exist.
	ErrNotFound = errors.New("resource not found")
	// ErrConflict covers duplicate registrations and repeated state transitions.
	ErrConflict = errors.New("conflicting state")
	// ErrStore wraps unexpected persistence failures; callers see a generic 500.
	ErrStore = errors.New("storage failure")
)

// ValidationError reports a malformed or missing input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validation builds a field-level validation error.
func Validation(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// Conflictf wraps ErrConflict with a caller-facing message.
func Conflictf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrConflict}, args...)...)
}

// NotFoundf wraps ErrNotFound with a resource description.
func NotFoundf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrNotFound}, args...)...)
}

// Storef wraps a persistence error so handlers surface it as an opaque 500.
func Storef(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrStore, op, err)
}

type response struct {
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// Status maps a taxonomy error to its HTTP status code.
func Status(err error) int {
	var ve *ValidationError
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// HTTPErrorHandler renders every error as a JSON {message} object.
// Store failures are logged with full detail and answered generically so
// internal state never leaks to the caller.
func HTTPErrorHandler(logger zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var he *echo.HTTPError
		if errors.As(err, &he) {
			msg := fmt.Sprintf("%v", he.Message)
			_ = c.JSON(he.Code, response{Message: msg})
			return
		}

		status := Status(err)
		resp := response{Message: err.Error()}

		var ve *ValidationError
		if errors.As(err, &ve) {
			resp = response{Message: ve.Message, Field: ve.Field}
		}

		if status == http.StatusInternalServerError {
			logger.Error().Err(err).
				Str("method", c.Request().Method).
				Str("path", c.Request().URL.Path).
				Msg("internal error")
			resp = response{Message: "internal server error"}
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(status)
			return
		}
		_ = c.JSON(status, resp)
	}
}
