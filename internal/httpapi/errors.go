package httpapi

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"taskflow/internal/apperr"
)

// writeError translates an error into a status code and a short message.
// Unclassified errors surface generically; nothing propagates upward.
func writeError(c echo.Context, err error) error {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return c.JSON(statusFor(appErr.Code), echo.Map{"message": appErr.Message})
	}
	c.Logger().Error(err)
	return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Internal server error"})
}

func statusFor(code apperr.Code) int {
	switch code {
	case apperr.CodeValidation, apperr.CodeConflict:
		return http.StatusBadRequest
	case apperr.CodeUnauthorized:
		return http.StatusUnauthorized
	case apperr.CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
