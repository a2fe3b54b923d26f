package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/reserveaqui/webgateway/internal/domain"
	"github.com/reserveaqui/webgateway/internal/upstream"
	"github.com/reserveaqui/webgateway/internal/web/middleware"
)

func errorContext(accept string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/reservations", nil)
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return resp["error"]
}

func TestErrorHandler_SessionExpiredRedirectsPages(t *testing.T) {
	h := NewHTTPErrorHandler(zerolog.Nop())
	c, rec := errorContext("text/html,application/xhtml+xml")

	h(fmt.Errorf("refreshing session: %w", domain.ErrSessionExpired), c)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != middleware.LoginPath {
		t.Fatalf("expected redirect to %s, got %s", middleware.LoginPath, loc)
	}
}

func TestErrorHandler_SessionExpiredIs401ForAPI(t *testing.T) {
	h := NewHTTPErrorHandler(zerolog.Nop())
	c, rec := errorContext("application/json")

	h(domain.ErrSessionExpired, c)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestErrorHandler_UpstreamErrorKeepsStatusAndMessage(t *testing.T) {
	h := NewHTTPErrorHandler(zerolog.Nop())
	c, rec := errorContext("application/json")

	h(&upstream.APIError{Status: http.StatusConflict, Detail: "Mesa já reservada neste horário"}, c)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
	if msg := decodeError(t, rec); msg != "Mesa já reservada neste horário" {
		t.Fatalf("upstream message lost: %q", msg)
	}
}

func TestErrorHandler_UpstreamNotFoundKeepsItsBody(t *testing.T) {
	h := NewHTTPErrorHandler(zerolog.Nop())
	c, rec := errorContext("application/json")

	// APIError unwraps to domain.ErrNotFound; the upstream detail must win
	// over the generic mapping.
	h(&upstream.APIError{Status: http.StatusNotFound, Detail: "Reserva não encontrada"}, c)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if msg := decodeError(t, rec); msg != "Reserva não encontrada" {
		t.Fatalf("expected upstream detail, got %q", msg)
	}
}

func TestErrorHandler_EchoErrorsPassThrough(t *testing.T) {
	h := NewHTTPErrorHandler(zerolog.Nop())
	c, rec := errorContext("application/json")

	h(echo.NewHTTPError(http.StatusBadRequest, "invalid id"), c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if msg := decodeError(t, rec); msg != "invalid id" {
		t.Fatalf("unexpected message: %q", msg)
	}
}

func TestErrorHandler_UnknownErrorsAreOpaque500(t *testing.T) {
	h := NewHTTPErrorHandler(zerolog.Nop())
	c, rec := errorContext("application/json")

	h(fmt.Errorf("redis: connection refused"), c)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if msg := decodeError(t, rec); msg == "redis: connection refused" {
		t.Fatalf("internal error detail leaked to client")
	}
}
