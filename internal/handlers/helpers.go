package handlers

import (
	"strconv"

	"github.com/MaximSupreme/api-final-yatube/internal/authz"
	"github.com/labstack/echo/v4"
)

// deniedError converts an authorization denial into the HTTP error the
// client sees. The reason string is the response message.
func deniedError(d authz.Decision) *echo.HTTPError {
	return echo.NewHTTPError(d.Reason.Status(), string(d.Reason))
}

// parseIDParam parses a numeric path parameter
func parseIDParam(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
