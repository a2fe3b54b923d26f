package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/reserveaqui/webgateway/internal/services"
)

// RestaurantHandler proxies restaurant browsing and management.
type RestaurantHandler struct {
	restaurants *services.RestaurantService
}

func NewRestaurantHandler(restaurants *services.RestaurantService) *RestaurantHandler {
	return &RestaurantHandler{restaurants: restaurants}
}

type restaurantRequest struct {
	Name        string `json:"nome" validate:"required"`
	Description string `json:"descricao"`
	Address     string `json:"endereco" validate:"required"`
	City        string `json:"cidade" validate:"required"`
	State       string `json:"estado" validate:"required,len=2"`
	PostalCode  string `json:"cep" validate:"required"`
	Phone       string `json:"telefone"`
	Email       string `json:"email" validate:"required,email"`
	TableCount  int    `json:"quantidade_mesas" validate:"omitempty,gt=0"`
}

// List handles GET /restaurants with the upstream's filters passed through.
//
// @Summary      List restaurants
// @Tags         restaurants
// @Produce      json
// @Param        page    query  int     false  "Page number"
// @Param        search  query  string  false  "Free-text search"
// @Param        city    query  string  false  "Filter by city"
// @Success      200  {object}  domain.Page[domain.Restaurant]
// @Router       /restaurants [get]
func (h *RestaurantHandler) List(c echo.Context) error {
	page, err := h.restaurants.List(c.Request().Context(), services.ListRestaurantsParams{
		Page:   queryInt(c, "page"),
		Search: c.QueryParam("search"),
		City:   c.QueryParam("city"),
		Active: queryBool(c, "active"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}

// Get handles GET /restaurants/:id.
//
// @Summary      Get a restaurant
// @Tags         restaurants
// @Produce      json
// @Param        id   path      int  true  "Restaurant ID"
// @Success      200  {object}  domain.Restaurant
// @Failure      404  {object}  map[string]string
// @Router       /restaurants/{id} [get]
func (h *RestaurantHandler) Get(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	restaurant, err := h.restaurants.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, restaurant)
}

// Mine lists the restaurants the logged-in owner administers.
//
// @Summary      List my restaurants
// @Tags         restaurants
// @Produce      json
// @Success      200  {array}  domain.Restaurant
// @Router       /owner/restaurants [get]
func (h *RestaurantHandler) Mine(c echo.Context) error {
	restaurants, err := h.restaurants.Mine(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, restaurants)
}

// Create handles POST /admin/restaurants.
//
// @Summary      Create a restaurant
// @Tags         restaurants
// @Accept       json
// @Produce      json
// @Param        body  body      restaurantRequest  true  "Restaurant details"
// @Success      201   {object}  domain.Restaurant
// @Failure      400   {object}  map[string]string
// @Router       /admin/restaurants [post]
func (h *RestaurantHandler) Create(c echo.Context) error {
	var req restaurantRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	restaurant, err := h.restaurants.Create(c.Request().Context(), services.RestaurantInput{
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		City:        req.City,
		State:       req.State,
		PostalCode:  req.PostalCode,
		Phone:       req.Phone,
		Email:       req.Email,
		TableCount:  req.TableCount,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, restaurant)
}

// Update handles PATCH /admin/restaurants/:id. The body is a sparse patch;
// absent fields stay untouched upstream.
//
// @Summary      Update a restaurant
// @Tags         restaurants
// @Accept       json
// @Produce      json
// @Param        id    path      int                             true  "Restaurant ID"
// @Param        body  body      services.UpdateRestaurantInput  true  "Fields to change"
// @Success      200   {object}  domain.Restaurant
// @Failure      404   {object}  map[string]string
// @Router       /admin/restaurants/{id} [patch]
func (h *RestaurantHandler) Update(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var in services.UpdateRestaurantInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	restaurant, err := h.restaurants.Update(c.Request().Context(), id, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, restaurant)
}

// Delete handles DELETE /admin/restaurants/:id.
//
// @Summary      Delete a restaurant
// @Tags         restaurants
// @Param        id  path  int  true  "Restaurant ID"
// @Success      204  "deleted"
// @Failure      404  {object}  map[string]string
// @Router       /admin/restaurants/{id} [delete]
func (h *RestaurantHandler) Delete(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	if err := h.restaurants.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
