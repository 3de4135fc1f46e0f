package handlers

import (
	"errors"
	"net/http"

	"github.com/anonto42/devfeed/backend/internal/models"
	"github.com/labstack/echo/v4"
)

// bindAndValidate binds path, query and body into req and validates it
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	return c.Validate(req)
}

// httpError maps service errors onto HTTP errors. Unknown errors become a 500
// whose cause is kept as the internal error for the request log.
func httpError(err error) error {
	var he *echo.HTTPError
	switch {
	case errors.As(err, &he):
		return he
	case errors.Is(err, models.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, models.ErrPermissionDenied):
		return echo.NewHTTPError(http.StatusForbidden, "Permission denied")
	case errors.Is(err, models.ErrInvalidInput):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, models.ErrConflict):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, models.ErrUpstreamAuth):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error").SetInternal(err)
	}
}

func ok(c echo.Context, data any) error {
	return c.JSON(http.StatusOK, models.Envelope{Code: models.CodeSuccess, Data: data})
}

func created(c echo.Context, data any) error {
	return c.JSON(http.StatusCreated, models.Envelope{Code: models.CodeSuccess, Data: data})
}
