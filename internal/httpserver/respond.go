package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kartbay/kartbay/internal/logging"
	"github.com/kartbay/kartbay/internal/service"
)

// Response is the envelope every endpoint returns.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func ok(c echo.Context, status int, message string, data any) error {
	return c.JSON(status, Response{Success: true, Message: message, Data: data})
}

func fail(c echo.Context, status int, message string) error {
	return c.JSON(status, Response{Success: false, Message: message})
}

// respondError maps service sentinels onto HTTP statuses. Anything
// unrecognized is logged and returned as an opaque 500.
func respondError(c echo.Context, handler string, err error) error {
	l := logging.FromContext(c.Request().Context()).With("handler", handler)

	switch {
	case errors.Is(err, service.ErrNotFound):
		l.Warn("request_failed", "status", 404, "error", err)
		return fail(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrUnauthorized):
		l.Warn("request_failed", "status", 401, "error", err)
		return fail(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrConflict):
		l.Warn("request_failed", "status", 409, "error", err)
		return fail(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidArgument),
		errors.Is(err, service.ErrUnavailable),
		errors.Is(err, service.ErrEmptyCart),
		errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, service.ErrAlreadyPaid),
		errors.Is(err, service.ErrVerificationFailed),
		errors.Is(err, service.ErrInvalidSignature):
		l.Warn("request_failed", "status", 400, "error", err)
		return fail(c, http.StatusBadRequest, err.Error())
	default:
		l.Error("request_failed", "status", 500, "error", err)
		return fail(c, http.StatusInternalServerError, "internal server error")
	}
}

// ErrorHandler renders errors that never reach a handler, such as auth
// middleware rejections and unmatched routes, in the same envelope the
// handlers use. Set it as the echo instance's HTTPErrorHandler.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	message := "internal server error"
	var he *echo.HTTPError
	if errors.As(err, &he) {
		status = he.Code
		if m, ok := he.Message.(string); ok {
			message = m
		} else {
			message = http.StatusText(status)
		}
	}
	if status >= http.StatusInternalServerError {
		logging.FromContext(c.Request().Context()).
			Error("request_failed", "status", status, "error", err)
		message = "internal server error"
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(status)
		return
	}
	_ = fail(c, status, message)
}

func bindError(c echo.Context, handler string, err error) error {
	logging.FromContext(c.Request().Context()).
		With("handler", handler).
		Warn("request_failed", "status", 400, "reason", "invalid body", "error", err)
	return fail(c, http.StatusBadRequest, "invalid request body")
}
