package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/reserveaqui/webgateway/internal/session"
)

const testSecret = "session-test-secret"

func TestSessionCookie_MintsIDForNewBrowser(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var gotSID string
	handler := SessionCookie(testSecret, time.Hour)(func(c echo.Context) error {
		gotSID = SessionID(c)
		if ctxSID, ok := session.IDFromContext(c.Request().Context()); !ok || ctxSID != gotSID {
			t.Fatalf("session ID missing from request context")
		}
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if gotSID == "" {
		t.Fatalf("no session ID minted")
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != CookieName {
		t.Fatalf("expected one %s cookie, got %v", CookieName, cookies)
	}
	if !cookies[0].HttpOnly {
		t.Fatalf("session cookie must be HttpOnly")
	}
	if parseSessionID(testSecret, cookies[0].Value) != gotSID {
		t.Fatalf("cookie does not round-trip to the minted ID")
	}
}

func TestSessionCookie_HonoursExistingCookie(t *testing.T) {
	e := echo.New()
	signed, err := signSessionID(testSecret, "known-sid", time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: signed})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := SessionCookie(testSecret, time.Hour)(func(c echo.Context) error {
		if SessionID(c) != "known-sid" {
			t.Fatalf("expected known-sid, got %s", SessionID(c))
		}
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Fatalf("valid cookie must not be re-minted")
	}
}

func TestSessionCookie_ReplacesTamperedCookie(t *testing.T) {
	e := echo.New()
	signed, err := signSessionID("wrong-secret", "forged-sid", time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: signed})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := SessionCookie(testSecret, time.Hour)(func(c echo.Context) error {
		if SessionID(c) == "forged-sid" {
			t.Fatalf("forged session ID accepted")
		}
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if len(rec.Result().Cookies()) != 1 {
		t.Fatalf("tampered cookie must be replaced")
	}
}

func TestSessionCookie_RejectsExpiredCookie(t *testing.T) {
	signed, err := signSessionID(testSecret, "old-sid", -time.Minute)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if parseSessionID(testSecret, signed) != "" {
		t.Fatalf("expired cookie must not validate")
	}
}
