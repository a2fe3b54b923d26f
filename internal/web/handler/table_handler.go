package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/reserveaqui/webgateway/internal/services"
)

// TableHandler proxies table management and the availability check.
type TableHandler struct {
	tables *services.TableService
}

func NewTableHandler(tables *services.TableService) *TableHandler {
	return &TableHandler{tables: tables}
}

type createTableRequest struct {
	RestaurantID int `json:"restaurante" validate:"required,gt=0"`
	Number       int `json:"numero" validate:"required,gt=0"`
}

type availabilityRequest struct {
	RestaurantID int    `json:"restaurante" validate:"required,gt=0"`
	Date         string `json:"data_reserva" validate:"required,datetime=2006-01-02"`
	Time         string `json:"horario" validate:"required,datetime=15:04"`
	PartySize    int    `json:"quantidade_pessoas" validate:"required,gt=0"`
}

// List handles GET /staff/tables.
//
// @Summary      List tables
// @Tags         tables
// @Produce      json
// @Param        page        query  int     false  "Page number"
// @Param        restaurant  query  int     false  "Filter by restaurant"
// @Param        status      query  string  false  "Filter by status"
// @Success      200  {object}  domain.Page[domain.Table]
// @Router       /staff/tables [get]
func (h *TableHandler) List(c echo.Context) error {
	page, err := h.tables.List(c.Request().Context(), services.ListTablesParams{
		Page:         queryInt(c, "page"),
		RestaurantID: queryInt(c, "restaurant"),
		Status:       c.QueryParam("status"),
		Active:       queryBool(c, "active"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}

// Get handles GET /staff/tables/:id.
//
// @Summary      Get a table
// @Tags         tables
// @Produce      json
// @Param        id   path      int  true  "Table ID"
// @Success      200  {object}  domain.Table
// @Failure      404  {object}  map[string]string
// @Router       /staff/tables/{id} [get]
func (h *TableHandler) Get(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	table, err := h.tables.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, table)
}

// Create handles POST /owner/tables.
//
// @Summary      Create a table
// @Tags         tables
// @Accept       json
// @Produce      json
// @Param        body  body      createTableRequest  true  "Table details"
// @Success      201   {object}  domain.Table
// @Failure      400   {object}  map[string]string
// @Router       /owner/tables [post]
func (h *TableHandler) Create(c echo.Context) error {
	var req createTableRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	table, err := h.tables.Create(c.Request().Context(), req.RestaurantID, req.Number)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, table)
}

// Update handles PATCH /staff/tables/:id (status flips, renumbering).
//
// @Summary      Update a table
// @Tags         tables
// @Accept       json
// @Produce      json
// @Param        id    path      int                        true  "Table ID"
// @Param        body  body      services.UpdateTableInput  true  "Fields to change"
// @Success      200   {object}  domain.Table
// @Failure      404   {object}  map[string]string
// @Router       /staff/tables/{id} [patch]
func (h *TableHandler) Update(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var in services.UpdateTableInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	table, err := h.tables.Update(c.Request().Context(), id, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, table)
}

// Delete handles DELETE /owner/tables/:id.
//
// @Summary      Delete a table
// @Tags         tables
// @Param        id  path  int  true  "Table ID"
// @Success      204  "deleted"
// @Failure      404  {object}  map[string]string
// @Router       /owner/tables/{id} [delete]
func (h *TableHandler) Delete(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	if err := h.tables.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// CheckAvailability forwards the availability question and returns the
// upstream's verdict untouched.
//
// @Summary      Check table availability
// @Tags         tables
// @Accept       json
// @Produce      json
// @Param        body  body      availabilityRequest  true  "Desired slot"
// @Success      200   {object}  domain.Availability
// @Failure      400   {object}  map[string]string
// @Router       /availability [post]
func (h *TableHandler) CheckAvailability(c echo.Context) error {
	var req availabilityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	availability, err := h.tables.CheckAvailability(c.Request().Context(), services.AvailabilityInput{
		RestaurantID: req.RestaurantID,
		Date:         req.Date,
		Time:         req.Time,
		PartySize:    req.PartySize,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, availability)
}
