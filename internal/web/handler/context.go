package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// idParam parses the :id route segment. Upstream resource IDs are integer
// primary keys; anything else is a malformed URL, not a missing resource.
func idParam(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

// queryInt parses an optional integer query parameter, zero when absent or
// unparseable.
func queryInt(c echo.Context, name string) int {
	n, _ := strconv.Atoi(c.QueryParam(name))
	if n < 0 {
		return 0
	}
	return n
}

// queryBool parses an optional boolean query parameter, nil when absent.
func queryBool(c echo.Context, name string) *bool {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &b
}
