package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/reserveaqui/webgateway/internal/domain"
	"github.com/reserveaqui/webgateway/internal/metrics"
	"github.com/reserveaqui/webgateway/internal/session"
)

const ctxUser = "current_user"

// LoginPath is where unauthenticated navigation is sent.
const LoginPath = "/login"

// accessDenied is rendered (not redirected) when an authenticated user
// lacks the roles a page requires; it offers the way back home.
type accessDenied struct {
	Error string `json:"error"`
	Home  string `json:"home"`
}

// Guard gates navigation on session state and, optionally, role membership.
// With no required roles any authenticated user passes. Unauthenticated
// requests are sent to the login page (a replacing redirect for page
// navigation, 401 for API consumers).
func Guard(sessions *session.Manager, requiredRoles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sid := SessionID(c)

			user, err := sessions.Current(c.Request().Context(), sid)
			if err != nil {
				return err
			}
			if user == nil {
				metrics.GuardDenialsTotal.WithLabelValues("unauthenticated").Inc()
				if WantsHTML(c) {
					return c.Redirect(http.StatusSeeOther, LoginPath)
				}
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}

			if !domain.Authorize(user.RoleTypes(), requiredRoles) {
				metrics.GuardDenialsTotal.WithLabelValues("forbidden").Inc()
				return c.JSON(http.StatusForbidden, accessDenied{
					Error: "Você não tem permissão para acessar esta página.",
					Home:  "/",
				})
			}

			c.Set(ctxUser, user)
			return next(c)
		}
	}
}

// CurrentUser returns the user injected by Guard, nil outside guarded
// routes.
func CurrentUser(c echo.Context) *domain.User {
	user, _ := c.Get(ctxUser).(*domain.User)
	return user
}

// WantsHTML reports whether the request is page navigation rather than an
// API call, deciding between a login redirect and a bare 401. The error
// handler applies the same test to expired sessions.
func WantsHTML(c echo.Context) bool {
	return strings.Contains(c.Request().Header.Get("Accept"), "text/html")
}
