package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/reserveaqui/webgateway/internal/services"
)

// DashboardHandler aggregates the staff and owner landing-page data: the
// day's reservations and the occupancy report.
type DashboardHandler struct {
	reservations *services.ReservationService
}

func NewDashboardHandler(reservations *services.ReservationService) *DashboardHandler {
	return &DashboardHandler{reservations: reservations}
}

// Today lists the restaurant's reservations for the current day.
//
// @Summary      Today's reservations
// @Tags         dashboard
// @Produce      json
// @Param        restaurant  query  int  true  "Restaurant ID"
// @Success      200  {array}   domain.Reservation
// @Failure      400  {object}  map[string]string
// @Router       /staff/dashboard/today [get]
func (h *DashboardHandler) Today(c echo.Context) error {
	restaurantID := queryInt(c, "restaurant")
	if restaurantID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "restaurant is required")
	}

	reservations, err := h.reservations.Today(c.Request().Context(), restaurantID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reservations)
}

// Occupancy returns the upstream occupancy report for a date range. The
// report shape is owned by the upstream and forwarded as-is.
//
// @Summary      Occupancy report
// @Tags         dashboard
// @Produce      json
// @Param        restaurant  query  int     true   "Restaurant ID"
// @Param        from        query  string  false  "Range start (YYYY-MM-DD)"
// @Param        to          query  string  false  "Range end (YYYY-MM-DD)"
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  map[string]string
// @Router       /owner/reports/occupancy [get]
func (h *DashboardHandler) Occupancy(c echo.Context) error {
	restaurantID := queryInt(c, "restaurant")
	if restaurantID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "restaurant is required")
	}

	report, err := h.reservations.OccupancyReport(c.Request().Context(), restaurantID, c.QueryParam("from"), c.QueryParam("to"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, report)
}
