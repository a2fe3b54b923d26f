package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/reserveaqui/webgateway/internal/domain"
	"github.com/reserveaqui/webgateway/internal/services"
	"github.com/reserveaqui/webgateway/internal/upstream"
)

// fakeUpstream is a minimal stand-in for the external API: one account,
// fixed token strings, bearer-checked identity endpoint.
type fakeUpstream struct {
	email    string
	password string
	user     domain.User

	access  string
	refresh string
}

func (f *fakeUpstream) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /usuarios/login/", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email    string `json:"email"`
			Password string `json:"senha"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Email != f.email || req.Password != f.password {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"detail": "Credenciais inválidas"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access":  f.access,
			"refresh": f.refresh,
			"usuario": f.user,
		})
	})

	mux.HandleFunc("POST /usuarios/cadastro/", func(w http.ResponseWriter, r *http.Request) {
		var req services.RegisterInput
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Email == "" || len(req.Password) < 6 {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]string{"detail": "Dados inválidos"})
			return
		}
		f.email = req.Email
		f.password = req.Password
		f.user = domain.User{ID: 42, Username: req.Username, Name: req.Name, Email: req.Email,
			Roles: []domain.Role{{Type: domain.RoleCustomer}}}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{"mensagem": "Usuário criado", "usuario": f.user})
	})

	mux.HandleFunc("GET /usuarios/me/", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+f.access {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"detail": "Token inválido"})
			return
		}
		_ = json.NewEncoder(w).Encode(f.user)
	})

	mux.HandleFunc("POST /token/refresh/", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Refresh string `json:"refresh"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Refresh != f.refresh {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"detail": "Refresh inválido"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"access": f.access})
	})

	mux.HandleFunc("POST /usuarios/trocar_senha/", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Current string `json:"senha_atual"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Current != f.password {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]string{"detail": "Senha atual incorreta"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"mensagem": "Senha alterada"})
	})

	return mux
}

func newTestManager(t *testing.T, f *fakeUpstream) (*Manager, *MemoryStore, func()) {
	t.Helper()
	srv := httptest.NewServer(f.handler())
	store := NewMemoryStore()
	api := upstream.New(srv.URL, NewTokenSource(store))
	mgr := NewManager(store, services.NewAuthService(api), zerolog.Nop())
	return mgr, store, srv.Close
}

func defaultFake() *fakeUpstream {
	return &fakeUpstream{
		email:    "a@b.com",
		password: "secret1",
		access:   "acc-1",
		refresh:  "ref-1",
		user: domain.User{ID: 1, Username: "ana", Name: "Ana", Email: "a@b.com",
			Roles: []domain.Role{{Type: domain.RoleCustomer}}},
	}
}

func TestManager_LoginThenLogoutLeavesNothing(t *testing.T) {
	ctx := context.Background()
	mgr, store, done := newTestManager(t, defaultFake())
	defer done()

	user, err := mgr.Login(ctx, "sid", "a@b.com", "secret1")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if user.Email != "a@b.com" {
		t.Fatalf("unexpected user %+v", user)
	}

	pair, err := store.Tokens(ctx, "sid")
	if err != nil {
		t.Fatalf("tokens not persisted: %v", err)
	}
	if pair.Access != "acc-1" || pair.Refresh != "ref-1" {
		t.Fatalf("unexpected pair %+v", pair)
	}

	if err := mgr.Logout(ctx, "sid"); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if _, err := store.Tokens(ctx, "sid"); !errors.Is(err, domain.ErrNoSession) {
		t.Fatalf("tokens survived logout")
	}
	if u, err := mgr.Initialize(ctx, "sid"); err != nil || u != nil {
		t.Fatalf("initialize after logout must yield no user, got %v, %v", u, err)
	}
}

func TestManager_LoginFailureRecordsAndReRaises(t *testing.T) {
	ctx := context.Background()
	mgr, store, done := newTestManager(t, defaultFake())
	defer done()

	_, err := mgr.Login(ctx, "sid", "a@b.com", "wrong")
	if err == nil {
		t.Fatalf("expected login error")
	}
	if msg := mgr.LastError(ctx, "sid"); msg != "Credenciais inválidas" {
		t.Fatalf("upstream detail not recorded, got %q", msg)
	}
	if _, terr := store.Tokens(ctx, "sid"); !errors.Is(terr, domain.ErrNoSession) {
		t.Fatalf("no tokens may be stored after failed login")
	}

	if err := mgr.ClearError(ctx, "sid"); err != nil {
		t.Fatalf("ClearError: %v", err)
	}
	if msg := mgr.LastError(ctx, "sid"); msg != "" {
		t.Fatalf("error not cleared: %q", msg)
	}
}

func TestManager_InitializeWithStaleTokensTerminates(t *testing.T) {
	ctx := context.Background()
	mgr, store, done := newTestManager(t, defaultFake())
	defer done()

	// Tokens that the upstream no longer accepts, including the refresh.
	_ = store.SaveTokens(ctx, "sid", TokenPair{Access: "stale", Refresh: "stale"})

	user, err := mgr.Initialize(ctx, "sid")
	if err != nil {
		t.Fatalf("Initialize must not fail on an invalid token: %v", err)
	}
	if user != nil {
		t.Fatalf("expected no user, got %+v", user)
	}
	if _, terr := store.Tokens(ctx, "sid"); !errors.Is(terr, domain.ErrNoSession) {
		t.Fatalf("stale tokens not purged")
	}
	if msg := mgr.LastError(ctx, "sid"); msg == "" {
		t.Fatalf("expected a recorded error after failed initialize")
	}
}

func TestManager_InitializeRefreshesExpiredAccess(t *testing.T) {
	ctx := context.Background()
	mgr, store, done := newTestManager(t, defaultFake())
	defer done()

	// Expired access token but a refresh token the upstream still honours.
	_ = store.SaveTokens(ctx, "sid", TokenPair{Access: "stale", Refresh: "ref-1"})

	user, err := mgr.Initialize(ctx, "sid")
	if err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if user == nil || user.Email != "a@b.com" {
		t.Fatalf("expected resolved user, got %+v", user)
	}
	pair, err := store.Tokens(ctx, "sid")
	if err != nil {
		t.Fatalf("tokens gone after refresh: %v", err)
	}
	if pair.Access != "acc-1" {
		t.Fatalf("refreshed access token not stored: %+v", pair)
	}
}

func TestManager_RegisterAutoLogsIn(t *testing.T) {
	ctx := context.Background()
	f := defaultFake()
	f.access, f.refresh = "acc-2", "ref-2"
	mgr, store, done := newTestManager(t, f)
	defer done()

	user, err := mgr.Register(ctx, "sid", services.RegisterInput{
		Username: "joe", Name: "Joe", Email: "joe@x.com", Password: "abcdef",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Email != "joe@x.com" {
		t.Fatalf("auto-login did not resolve the new account: %+v", user)
	}
	if _, err := store.Tokens(ctx, "sid"); err != nil {
		t.Fatalf("tokens not persisted by auto-login: %v", err)
	}
	if cached, _ := store.User(ctx, "sid"); cached == nil || cached.Username != "joe" {
		t.Fatalf("user not cached: %+v", cached)
	}
}

func TestManager_RegisterFailureLeavesUnauthenticated(t *testing.T) {
	ctx := context.Background()
	mgr, store, done := newTestManager(t, defaultFake())
	defer done()

	_, err := mgr.Register(ctx, "sid", services.RegisterInput{
		Username: "joe", Name: "Joe", Email: "joe@x.com", Password: "abc", // too short
	})
	if err == nil {
		t.Fatalf("expected register error")
	}
	if msg := mgr.LastError(ctx, "sid"); msg != "Dados inválidos" {
		t.Fatalf("unexpected recorded error %q", msg)
	}
	if _, terr := store.Tokens(ctx, "sid"); !errors.Is(terr, domain.ErrNoSession) {
		t.Fatalf("session must stay unauthenticated")
	}
}

func TestManager_ChangePassword(t *testing.T) {
	ctx := context.Background()
	mgr, _, done := newTestManager(t, defaultFake())
	defer done()

	if _, err := mgr.Login(ctx, "sid", "a@b.com", "secret1"); err != nil {
		t.Fatalf("Login: %v", err)
	}

	err := mgr.ChangePassword(ctx, "sid", "nope", "newpass1")
	if err == nil {
		t.Fatalf("expected change password failure")
	}
	if msg := mgr.LastError(ctx, "sid"); !strings.Contains(msg, "Senha atual") {
		t.Fatalf("unexpected recorded error %q", msg)
	}

	if err := mgr.ChangePassword(ctx, "sid", "secret1", "newpass1"); err != nil {
		t.Fatalf("ChangePassword: %v", err)
	}
	if msg := mgr.LastError(ctx, "sid"); msg != "" {
		t.Fatalf("error not cleared on success: %q", msg)
	}
	// The session token stays valid.
	if user, err := mgr.Current(ctx, "sid"); err != nil || user == nil {
		t.Fatalf("session lost after password change: %v, %v", user, err)
	}
}
