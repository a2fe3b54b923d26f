package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/reserveaqui/webgateway/internal/domain"
	"github.com/reserveaqui/webgateway/internal/services"
	"github.com/reserveaqui/webgateway/internal/session"
	"github.com/reserveaqui/webgateway/internal/web/middleware"
)

// AuthHandler exposes the session lifecycle: login, signup, logout and the
// password operations. All state lives in the session manager; the handler
// only shapes requests and responses.
type AuthHandler struct {
	sessions *session.Manager
}

func NewAuthHandler(sessions *session.Manager) *AuthHandler {
	return &AuthHandler{sessions: sessions}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"senha" validate:"required"`
}

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Name     string `json:"nome" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type changePasswordRequest struct {
	Current      string `json:"senha_atual" validate:"required"`
	New          string `json:"nova_senha" validate:"required,min=6"`
	Confirmation string `json:"confirmacao_senha" validate:"required,eqfield=New"`
}

type recoverPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type resetPasswordRequest struct {
	Token        string `json:"token" validate:"required"`
	New          string `json:"nova_senha" validate:"required,min=6"`
	Confirmation string `json:"confirmacao_senha" validate:"required,eqfield=New"`
}

type sessionResponse struct {
	User      *domain.User `json:"usuario"`
	LastError string       `json:"ultimo_erro,omitempty"`
}

type messageResponse struct {
	Message string `json:"mensagem"`
}

// Login authenticates the browser session against the upstream API.
//
// @Summary      Log in
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.sessions.Login(c.Request().Context(), middleware.SessionID(c), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sessionResponse{User: user})
}

// Register signs up a customer account and logs the session in.
//
// @Summary      Register
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Account details"
// @Success      201   {object}  sessionResponse
// @Failure      400   {object}  map[string]string
// @Router       /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.sessions.Register(c.Request().Context(), middleware.SessionID(c), services.RegisterInput{
		Username: req.Username,
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, sessionResponse{User: user})
}

// Logout drops the session's credentials. Purely local: upstream tokens are
// simply forgotten.
//
// @Summary      Log out
// @Tags         session
// @Produce      json
// @Success      200  {object}  messageResponse
// @Router       /logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.sessions.Logout(c.Request().Context(), middleware.SessionID(c)); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Sessão encerrada."})
}

// Session reports who the browser session is, resolving stored tokens when
// needed. An unauthenticated session is a 200 with a null user, not an
// error: the page decides what to show.
//
// @Summary      Current session
// @Tags         session
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	ctx := c.Request().Context()
	sid := middleware.SessionID(c)

	user, err := h.sessions.Current(ctx, sid)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sessionResponse{
		User:      user,
		LastError: h.sessions.LastError(ctx, sid),
	})
}

// ChangePassword updates the logged-in user's password.
//
// @Summary      Change password
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      changePasswordRequest  true  "Password change"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  map[string]string
// @Router       /password/change [post]
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	err := h.sessions.ChangePassword(c.Request().Context(), middleware.SessionID(c), req.Current, req.New)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Senha alterada com sucesso."})
}

// RecoverPassword asks the upstream to mail a reset token. The response is
// the same whether or not the address exists.
//
// @Summary      Request password reset
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      recoverPasswordRequest  true  "Account email"
// @Success      200   {object}  messageResponse
// @Router       /password/recover [post]
func (h *AuthHandler) RecoverPassword(c echo.Context) error {
	var req recoverPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	err := h.sessions.RequestPasswordReset(c.Request().Context(), middleware.SessionID(c), req.Email)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{
		Message: "Se o email existir, enviaremos instruções de recuperação.",
	})
}

// ResetPassword completes a recovery flow with the mailed token.
//
// @Summary      Reset password
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      resetPasswordRequest  true  "Reset token and new password"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  map[string]string
// @Router       /password/reset [post]
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	err := h.sessions.ResetPassword(c.Request().Context(), middleware.SessionID(c), req.Token, req.New)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Senha redefinida com sucesso."})
}

// ClearError discards the session's recorded error message once the page
// has shown it.
//
// @Summary      Clear session error
// @Tags         session
// @Produce      json
// @Success      204  "cleared"
// @Router       /session/error [delete]
func (h *AuthHandler) ClearError(c echo.Context) error {
	if err := h.sessions.ClearError(c.Request().Context(), middleware.SessionID(c)); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
