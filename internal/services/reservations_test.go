package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/reserveaqui/webgateway/internal/domain"
	"github.com/reserveaqui/webgateway/internal/upstream"
)

type staticTokens struct{}

func (staticTokens) Tokens(context.Context) (string, string, error) { return "acc", "ref", nil }
func (staticTokens) SetAccess(context.Context, string) error        { return nil }
func (staticTokens) Purge(context.Context) error                    { return nil }

func TestReservationService_Actions(t *testing.T) {
	var gotPath, gotMethod string
	var gotBody map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		gotBody = nil
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"mensagem": "ok",
			"reserva":  domain.Reservation{ID: 12, Status: domain.ReservationConfirmed},
		})
	}))
	defer srv.Close()

	svc := NewReservationService(upstream.New(srv.URL, staticTokens{}))

	res, err := svc.Confirm(context.Background(), 12)
	if err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if gotMethod != http.MethodPost || gotPath != "/reservas/12/confirmar/" {
		t.Fatalf("unexpected request %s %s", gotMethod, gotPath)
	}
	if res.ID != 12 || res.Status != domain.ReservationConfirmed {
		t.Fatalf("action envelope not unwrapped: %+v", res)
	}

	if _, err := svc.Cancel(context.Background(), 12, "cliente desistiu"); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if gotPath != "/reservas/12/cancelar/" {
		t.Fatalf("unexpected cancel path %s", gotPath)
	}
	if gotBody["motivo"] != "cliente desistiu" {
		t.Fatalf("cancel reason not sent: %v", gotBody)
	}
}

func TestReservationService_MineQuery(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_ = json.NewEncoder(w).Encode(domain.Page[domain.Reservation]{Count: 0})
	}))
	defer srv.Close()

	svc := NewReservationService(upstream.New(srv.URL, staticTokens{}))
	if _, err := svc.Mine(context.Background(), 2, domain.ReservationPending); err != nil {
		t.Fatalf("Mine: %v", err)
	}
	if gotQuery != "page=2&status=pendente" {
		t.Fatalf("unexpected query %q", gotQuery)
	}
}

func TestTableService_CheckAvailability(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/mesas/verificar_disponibilidade/" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var in AvailabilityInput
		_ = json.NewDecoder(r.Body).Decode(&in)
		if in.PartySize != 6 {
			t.Errorf("party size not forwarded: %+v", in)
		}
		_ = json.NewEncoder(w).Encode(domain.Availability{Available: true, TablesNeeded: 2})
	}))
	defer srv.Close()

	svc := NewTableService(upstream.New(srv.URL, staticTokens{}))
	got, err := svc.CheckAvailability(context.Background(), AvailabilityInput{
		RestaurantID: 1, Date: "2026-09-01", Time: "19:30:00", PartySize: 6,
	})
	if err != nil {
		t.Fatalf("CheckAvailability: %v", err)
	}
	if !got.Available || got.TablesNeeded != 2 {
		t.Fatalf("availability answer altered: %+v", got)
	}
}
