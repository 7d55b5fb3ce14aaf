package httperr

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// Map converts repo/infra errors into HTTP status errors.
// Keeps the handler layer clean by centralizing error mapping.
func Map(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "record not found")

	case errors.Is(err, context.DeadlineExceeded):
		return echo.NewHTTPError(http.StatusGatewayTimeout, "request timed out")

	case errors.Is(err, context.Canceled):
		return echo.NewHTTPError(http.StatusRequestTimeout, "request was canceled")

	case errors.Is(err, gorm.ErrDuplicatedKey):
		return echo.NewHTTPError(http.StatusConflict, "record already exists")

	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return echo.NewHTTPError(http.StatusConflict, "related record missing")

	default:
		// generic body; the caller logs the detail
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
}

// BadRequest creates a 400 error. Use in handlers for input validation.
func BadRequest(msg string) error {
	return echo.NewHTTPError(http.StatusBadRequest, msg)
}

// Unauthorized creates a 401 error.
func Unauthorized(msg string) error {
	return echo.NewHTTPError(http.StatusUnauthorized, msg)
}
