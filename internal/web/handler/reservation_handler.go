package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/reserveaqui/webgateway/internal/services"
)

// ReservationHandler proxies the reservation lifecycle: booking, browsing
// and the staff status transitions.
type ReservationHandler struct {
	reservations *services.ReservationService
}

func NewReservationHandler(reservations *services.ReservationService) *ReservationHandler {
	return &ReservationHandler{reservations: reservations}
}

type createReservationRequest struct {
	RestaurantID  int    `json:"restaurante" validate:"required,gt=0"`
	Date          string `json:"data_reserva" validate:"required,datetime=2006-01-02"`
	Time          string `json:"horario" validate:"required,datetime=15:04"`
	PartySize     int    `json:"quantidade_pessoas" validate:"required,gt=0"`
	CustomerName  string `json:"nome_cliente" validate:"required"`
	CustomerPhone string `json:"telefone_cliente" validate:"required"`
	CustomerEmail string `json:"email_cliente" validate:"omitempty,email"`
	Notes         string `json:"observacoes"`
}

type cancelReservationRequest struct {
	Reason string `json:"motivo"`
}

// List handles GET /staff/reservations with upstream filters passed through.
//
// @Summary      List reservations
// @Tags         reservations
// @Produce      json
// @Param        page        query  int     false  "Page number"
// @Param        restaurant  query  int     false  "Filter by restaurant"
// @Param        status      query  string  false  "Filter by status"
// @Param        date        query  string  false  "Filter by date (YYYY-MM-DD)"
// @Param        search      query  string  false  "Customer name or phone"
// @Success      200  {object}  domain.Page[domain.Reservation]
// @Router       /staff/reservations [get]
func (h *ReservationHandler) List(c echo.Context) error {
	page, err := h.reservations.List(c.Request().Context(), services.ListReservationsParams{
		Page:         queryInt(c, "page"),
		RestaurantID: queryInt(c, "restaurant"),
		Status:       c.QueryParam("status"),
		Date:         c.QueryParam("date"),
		Search:       c.QueryParam("search"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}

// Mine lists the calling customer's own reservations.
//
// @Summary      List my reservations
// @Tags         reservations
// @Produce      json
// @Param        page    query  int     false  "Page number"
// @Param        status  query  string  false  "Filter by status"
// @Success      200  {object}  domain.Page[domain.Reservation]
// @Router       /reservations [get]
func (h *ReservationHandler) Mine(c echo.Context) error {
	page, err := h.reservations.Mine(c.Request().Context(), queryInt(c, "page"), c.QueryParam("status"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}

// Get handles GET /reservations/:id. The upstream enforces ownership; the
// gateway forwards its 403/404 verbatim.
//
// @Summary      Get a reservation
// @Tags         reservations
// @Produce      json
// @Param        id   path      int  true  "Reservation ID"
// @Success      200  {object}  domain.Reservation
// @Failure      404  {object}  map[string]string
// @Router       /reservations/{id} [get]
func (h *ReservationHandler) Get(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	reservation, err := h.reservations.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reservation)
}

// Create books a reservation.
//
// @Summary      Book a reservation
// @Tags         reservations
// @Accept       json
// @Produce      json
// @Param        body  body      createReservationRequest  true  "Reservation details"
// @Success      201   {object}  domain.Reservation
// @Failure      400   {object}  map[string]string
// @Router       /reservations [post]
func (h *ReservationHandler) Create(c echo.Context) error {
	var req createReservationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	reservation, err := h.reservations.Create(c.Request().Context(), services.CreateReservationInput{
		RestaurantID:  req.RestaurantID,
		Date:          req.Date,
		Time:          req.Time,
		PartySize:     req.PartySize,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		CustomerEmail: req.CustomerEmail,
		Notes:         req.Notes,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, reservation)
}

// Update handles PATCH /reservations/:id with a sparse patch.
//
// @Summary      Update a reservation
// @Tags         reservations
// @Accept       json
// @Produce      json
// @Param        id    path      int                              true  "Reservation ID"
// @Param        body  body      services.UpdateReservationInput  true  "Fields to change"
// @Success      200   {object}  domain.Reservation
// @Failure      404   {object}  map[string]string
// @Router       /reservations/{id} [patch]
func (h *ReservationHandler) Update(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var in services.UpdateReservationInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	reservation, err := h.reservations.Update(c.Request().Context(), id, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reservation)
}

// Confirm moves a pending reservation to confirmed.
//
// @Summary      Confirm a reservation
// @Tags         reservations
// @Produce      json
// @Param        id   path      int  true  "Reservation ID"
// @Success      200  {object}  domain.Reservation
// @Failure      404  {object}  map[string]string
// @Router       /staff/reservations/{id}/confirm [post]
func (h *ReservationHandler) Confirm(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	reservation, err := h.reservations.Confirm(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reservation)
}

// Cancel cancels a reservation, optionally recording a reason.
//
// @Summary      Cancel a reservation
// @Tags         reservations
// @Accept       json
// @Produce      json
// @Param        id    path      int                       true   "Reservation ID"
// @Param        body  body      cancelReservationRequest  false  "Cancellation reason"
// @Success      200   {object}  domain.Reservation
// @Failure      404   {object}  map[string]string
// @Router       /reservations/{id}/cancel [post]
func (h *ReservationHandler) Cancel(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var req cancelReservationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	reservation, err := h.reservations.Cancel(c.Request().Context(), id, req.Reason)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reservation)
}

// Complete marks a confirmed reservation as finished.
//
// @Summary      Complete a reservation
// @Tags         reservations
// @Produce      json
// @Param        id   path      int  true  "Reservation ID"
// @Success      200  {object}  domain.Reservation
// @Failure      404  {object}  map[string]string
// @Router       /staff/reservations/{id}/complete [post]
func (h *ReservationHandler) Complete(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	reservation, err := h.reservations.Complete(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reservation)
}
