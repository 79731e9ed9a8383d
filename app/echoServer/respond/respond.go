// Package respond maps the service error taxonomy onto HTTP statuses, the
// single place wire codes are decided.
package respond

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"itemshare/util/apperr"
)

// Error logs err and writes the JSON error body for it. Self-booking and
// access denials deliberately answer 404 so callers cannot probe foreign
// bookings and items.
func Error(c echo.Context, log *slog.Logger, op string, err error) error {
	log.Error(op, "err", err)
	switch apperr.Code(err) {
	case apperr.ErrNotFound, apperr.ErrSelfBooking:
		return c.JSON(http.StatusNotFound, echo.Map{"message": err.Error()})
	case apperr.ErrForbidden:
		return c.JSON(http.StatusForbidden, echo.Map{"message": err.Error()})
	case apperr.ErrDuplicateEmail, apperr.ErrAlreadyDecided:
		return c.JSON(http.StatusConflict, echo.Map{"message": err.Error()})
	case apperr.ErrInvalidRange, apperr.ErrUnavailable, apperr.ErrInvalidState, apperr.ErrInvalidInput:
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
}
