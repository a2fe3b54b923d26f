package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/reserveaqui/webgateway/internal/domain"
	"github.com/reserveaqui/webgateway/internal/services"
)

// UserHandler proxies account administration. Every route behind it is
// guarded for system administrators.
type UserHandler struct {
	users *services.UserService
}

func NewUserHandler(users *services.UserService) *UserHandler {
	return &UserHandler{users: users}
}

type createUserRequest struct {
	Username     string `json:"username" validate:"required,min=3"`
	Name         string `json:"nome" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=6"`
	Role         string `json:"papel" validate:"omitempty,oneof=admin_sistema admin_secundario funcionario cliente"`
	RestaurantID int    `json:"restaurante" validate:"omitempty,gt=0"`
}

// List handles GET /admin/users.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Param        page        query  int     false  "Page number"
// @Param        search      query  string  false  "Name or email search"
// @Param        role        query  string  false  "Filter by role type"
// @Param        restaurant  query  int     false  "Filter by restaurant"
// @Success      200  {object}  domain.Page[domain.User]
// @Router       /admin/users [get]
func (h *UserHandler) List(c echo.Context) error {
	page, err := h.users.List(c.Request().Context(), services.ListUsersParams{
		Page:         queryInt(c, "page"),
		Search:       c.QueryParam("search"),
		Role:         c.QueryParam("role"),
		RestaurantID: queryInt(c, "restaurant"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}

// Get handles GET /admin/users/:id.
//
// @Summary      Get a user
// @Tags         users
// @Produce      json
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  domain.User
// @Failure      404  {object}  map[string]string
// @Router       /admin/users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	user, err := h.users.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Create handles POST /admin/users. Unlike self-service signup this can
// assign any role and bind staff to a restaurant.
//
// @Summary      Create a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      createUserRequest  true  "Account details"
// @Success      201   {object}  domain.User
// @Failure      400   {object}  map[string]string
// @Router       /admin/users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Role == "" {
		req.Role = domain.RoleCustomer
	}

	user, err := h.users.Create(c.Request().Context(), services.CreateUserInput{
		Username:     req.Username,
		Name:         req.Name,
		Email:        req.Email,
		Password:     req.Password,
		Role:         req.Role,
		RestaurantID: req.RestaurantID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, user)
}

// Update handles PATCH /admin/users/:id with a sparse patch.
//
// @Summary      Update a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id    path      int                       true  "User ID"
// @Param        body  body      services.UpdateUserInput  true  "Fields to change"
// @Success      200   {object}  domain.User
// @Failure      404   {object}  map[string]string
// @Router       /admin/users/{id} [patch]
func (h *UserHandler) Update(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var in services.UpdateUserInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	user, err := h.users.Update(c.Request().Context(), id, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Delete handles DELETE /admin/users/:id.
//
// @Summary      Delete a user
// @Tags         users
// @Param        id  path  int  true  "User ID"
// @Success      204  "deleted"
// @Failure      404  {object}  map[string]string
// @Router       /admin/users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	if err := h.users.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
