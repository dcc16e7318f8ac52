package http

import (
	"errors"
	"net/http"

	"dispatch/internal/generated/servers"
	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Messages returned for errors that have no caller-facing reason of their own.
const (
	MessageOrderNotFound        = "ORDER_NOT_FOUND"
	MessageOrderAlreadyExists   = "ORDER_ALREADY_EXISTS"
	MessageOrderVersionConflict = "ORDER_VERSION_CONFLICT"
	MessageInternalError        = "INTERNAL_ERROR"
)

// statusFor maps the error taxonomy onto HTTP. Lifecycle violations carry
// their reason to the caller verbatim.
func statusFor(err error) (int, string) {
	var violation *errs.PreconditionViolationError
	switch {
	case errors.As(err, &violation):
		return http.StatusUnprocessableEntity, violation.Reason
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound, MessageOrderNotFound
	case errors.Is(err, errs.ErrObjectAlreadyExists):
		return http.StatusConflict, MessageOrderAlreadyExists
	case errors.Is(err, errs.ErrVersionIsInvalid):
		return http.StatusConflict, MessageOrderVersionConflict
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrValueIsRequired):
		return http.StatusBadRequest, "Invalid order data: " + err.Error()
	default:
		return http.StatusInternalServerError, MessageInternalError
	}
}

func (s *Server) writeError(ctx echo.Context, err error) error {
	code, message := statusFor(err)
	if code == http.StatusInternalServerError {
		s.logger.ErrorContext(ctx.Request().Context(), "request failed",
			"method", ctx.Request().Method,
			"path", ctx.Path(),
			"error", err,
		)
	}

	return ctx.JSON(code, servers.Error{Code: code, Message: message})
}
