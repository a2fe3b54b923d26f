package web

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/reserveaqui/webgateway/internal/domain"
	"github.com/reserveaqui/webgateway/internal/upstream"
	"github.com/reserveaqui/webgateway/internal/web/middleware"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Sends expired sessions back to the login page (page navigation) or
//     401 (API consumers).
//   - Forwards upstream API errors with their status and message intact.
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		if errors.Is(err, domain.ErrSessionExpired) && middleware.WantsHTML(c) {
			_ = c.Redirect(http.StatusSeeOther, middleware.LoginPath)
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Session errors take priority over the API error they wrap: an expired
	// session is always a 401, whatever the upstream said on the last try.
	switch {
	case errors.Is(err, domain.ErrSessionExpired):
		return http.StatusUnauthorized, "Sessão expirada. Faça login novamente."
	case errors.Is(err, domain.ErrNoSession):
		return http.StatusUnauthorized, "Faça login para continuar."
	}

	// Upstream rejections keep their status and message.
	var apiErr *upstream.APIError
	if errors.As(err, &apiErr) {
		msg := apiErr.Detail
		if msg == "" {
			msg = http.StatusText(apiErr.Status)
		}
		return apiErr.Status, msg
	}

	switch {
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "Acesso negado."
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "Recurso não encontrado."
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "Erro interno. Tente novamente."
}
