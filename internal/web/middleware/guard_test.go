package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/reserveaqui/webgateway/internal/domain"
	"github.com/reserveaqui/webgateway/internal/services"
	"github.com/reserveaqui/webgateway/internal/session"
	"github.com/reserveaqui/webgateway/internal/upstream"
)

// newGuardFixture builds a manager whose store already holds the given
// user. The upstream is never reached: a cached user short-circuits it.
func newGuardFixture(t *testing.T, user *domain.User) *session.Manager {
	t.Helper()
	store := session.NewMemoryStore()
	if user != nil {
		_ = store.SaveTokens(context.Background(), "sid-1", session.TokenPair{Access: "a", Refresh: "r"})
		_ = store.SaveUser(context.Background(), "sid-1", user)
	}
	api := upstream.New("http://upstream.invalid", session.NewTokenSource(store))
	return session.NewManager(store, services.NewAuthService(api), zerolog.Nop())
}

func guardContext(e *echo.Echo, accept string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/reservations", nil)
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(ctxSessionID, "sid-1")
	return c, rec
}

func TestGuard_UnauthenticatedPageRedirectsToLogin(t *testing.T) {
	e := echo.New()
	mgr := newGuardFixture(t, nil)
	c, rec := guardContext(e, "text/html,application/xhtml+xml")

	handler := Guard(mgr)(func(c echo.Context) error {
		t.Fatalf("should not reach guarded content")
		return nil
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != LoginPath {
		t.Fatalf("expected redirect to %s, got %s", LoginPath, loc)
	}
}

func TestGuard_UnauthenticatedAPIGets401(t *testing.T) {
	e := echo.New()
	mgr := newGuardFixture(t, nil)
	c, rec := guardContext(e, "application/json")

	handler := Guard(mgr)(func(c echo.Context) error {
		t.Fatalf("should not reach guarded content")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestGuard_CustomerDeniedStaffPage(t *testing.T) {
	e := echo.New()
	mgr := newGuardFixture(t, &domain.User{
		ID:    1,
		Roles: []domain.Role{{Type: domain.RoleCustomer}},
	})
	c, rec := guardContext(e, "text/html")

	handler := Guard(mgr, domain.RoleStaff)(func(c echo.Context) error {
		t.Fatalf("should not reach guarded content")
		return nil
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 access-denied view, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "permissão") {
		t.Fatalf("access-denied body missing message: %s", rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"home":"/"`) {
		t.Fatalf("access-denied body missing home link: %s", rec.Body.String())
	}
}

func TestGuard_StaffPassesStaffPage(t *testing.T) {
	e := echo.New()
	mgr := newGuardFixture(t, &domain.User{
		ID:    2,
		Name:  "Bia",
		Roles: []domain.Role{{Type: domain.RoleStaff}, {Type: domain.RoleCustomer}},
	})
	c, rec := guardContext(e, "text/html")

	called := false
	handler := Guard(mgr, domain.RoleStaff)(func(c echo.Context) error {
		called = true
		if CurrentUser(c) == nil || CurrentUser(c).Name != "Bia" {
			t.Fatalf("current user not injected")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("guarded content not reached")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestGuard_NoRoleRequirementAdmitsAnyUser(t *testing.T) {
	e := echo.New()
	mgr := newGuardFixture(t, &domain.User{
		ID:    3,
		Roles: []domain.Role{{Type: domain.RoleCustomer}},
	})
	c, _ := guardContext(e, "text/html")

	called := false
	handler := Guard(mgr)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("authenticated user without role requirement must pass")
	}
}
