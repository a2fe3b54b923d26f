package session

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/reserveaqui/webgateway/internal/domain"
	"github.com/reserveaqui/webgateway/internal/metrics"
	"github.com/reserveaqui/webgateway/internal/services"
	"github.com/reserveaqui/webgateway/internal/upstream"
)

// User-facing fallback messages, used when the upstream response carries no
// detail field.
const (
	msgLoginFailed     = "Erro ao fazer login"
	msgRegisterFailed  = "Erro ao criar conta"
	msgLoadUserFailed  = "Erro ao carregar dados do usuário"
	msgChangePassword  = "Erro ao trocar senha"
	msgRequestRecovery = "Erro ao solicitar recuperação"
	msgResetPassword   = "Erro ao redefinir senha"
)

// Manager is the single source of truth for session state. Every operation
// that talks to the upstream records a user-facing error message before
// re-raising the failure, so callers can run their own side effects while
// the error stays visible to the UI.
type Manager struct {
	store Store
	auth  *services.AuthService
	log   zerolog.Logger
}

func NewManager(store Store, auth *services.AuthService, log zerolog.Logger) *Manager {
	return &Manager{store: store, auth: auth, log: log}
}

// Initialize resolves the identity behind a stored token pair. With no
// stored tokens the session is simply unauthenticated. When the identity
// call fails (expired token, upstream down) the tokens are purged and an
// error message recorded, but Initialize itself reports success — the
// session is ready, just without a user. Only storage failures propagate.
func (m *Manager) Initialize(ctx context.Context, sid string) (*domain.User, error) {
	ctx = ContextWithID(ctx, sid)

	_, err := m.store.Tokens(ctx, sid)
	if errors.Is(err, domain.ErrNoSession) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	user, err := m.auth.Me(ctx)
	if err != nil {
		_ = m.store.Purge(ctx, sid)
		_ = m.store.SaveLastError(ctx, sid, upstream.Message(err, msgLoadUserFailed))
		m.log.Warn().Err(err).Str("sid", sid).Msg("stored session could not be resolved")
		return nil, nil
	}

	if err := m.store.SaveUser(ctx, sid, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Current returns the session's user, resolving it from the upstream when
// only tokens are cached (fresh process, evicted cache).
func (m *Manager) Current(ctx context.Context, sid string) (*domain.User, error) {
	user, err := m.store.User(ctx, sid)
	if err != nil {
		return nil, err
	}
	if user != nil {
		return user, nil
	}
	return m.Initialize(ctx, sid)
}

// Login authenticates against the upstream, persists the returned token
// pair, and caches the user. On failure no state is kept besides the
// recorded error message, and the failure is re-raised to the caller.
func (m *Manager) Login(ctx context.Context, sid, email, password string) (*domain.User, error) {
	ctx = ContextWithID(ctx, sid)

	res, err := m.auth.Login(ctx, email, password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		_ = m.store.SaveLastError(ctx, sid, upstream.Message(err, msgLoginFailed))
		return nil, err
	}

	if err := m.store.SaveTokens(ctx, sid, TokenPair{Access: res.Access, Refresh: res.Refresh}); err != nil {
		return nil, err
	}
	if err := m.store.SaveUser(ctx, sid, &res.User); err != nil {
		return nil, err
	}
	_ = m.store.ClearLastError(ctx, sid)

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	m.log.Info().Int("user_id", res.User.ID).Msg("user logged in")
	return &res.User, nil
}

// Register creates an account and immediately logs in with the same
// credentials. Either step failing leaves the session unauthenticated with
// a single recorded error.
func (m *Manager) Register(ctx context.Context, sid string, in services.RegisterInput) (*domain.User, error) {
	ctx = ContextWithID(ctx, sid)

	if _, err := m.auth.Register(ctx, in); err != nil {
		_ = m.store.SaveLastError(ctx, sid, upstream.Message(err, msgRegisterFailed))
		return nil, err
	}
	return m.Login(ctx, sid, in.Email, in.Password)
}

// Logout purges tokens and the cached user. Strictly local: the upstream is
// not called — revocation is its concern when the tokens expire.
func (m *Manager) Logout(ctx context.Context, sid string) error {
	ctx = ContextWithID(ctx, sid)
	if err := m.store.Purge(ctx, sid); err != nil {
		return err
	}
	return m.store.ClearLastError(ctx, sid)
}

// ChangePassword changes the authenticated user's password. The current
// session token remains valid on success.
func (m *Manager) ChangePassword(ctx context.Context, sid, current, next string) error {
	ctx = ContextWithID(ctx, sid)
	if err := m.auth.ChangePassword(ctx, current, next); err != nil {
		_ = m.store.SaveLastError(ctx, sid, upstream.Message(err, msgChangePassword))
		return err
	}
	_ = m.store.ClearLastError(ctx, sid)
	return nil
}

// RequestPasswordReset asks the upstream to start account recovery.
func (m *Manager) RequestPasswordReset(ctx context.Context, sid, email string) error {
	ctx = ContextWithID(ctx, sid)
	if err := m.auth.RequestPasswordReset(ctx, email); err != nil {
		_ = m.store.SaveLastError(ctx, sid, upstream.Message(err, msgRequestRecovery))
		return err
	}
	_ = m.store.ClearLastError(ctx, sid)
	return nil
}

// ResetPassword redeems a recovery token for a new password.
func (m *Manager) ResetPassword(ctx context.Context, sid, token, next string) error {
	ctx = ContextWithID(ctx, sid)
	if err := m.auth.ResetPassword(ctx, token, next); err != nil {
		_ = m.store.SaveLastError(ctx, sid, upstream.Message(err, msgResetPassword))
		return err
	}
	_ = m.store.ClearLastError(ctx, sid)
	return nil
}

// LastError returns the recorded user-facing error, empty when none.
func (m *Manager) LastError(ctx context.Context, sid string) string {
	msg, err := m.store.LastError(ctx, sid)
	if err != nil {
		m.log.Warn().Err(err).Str("sid", sid).Msg("failed to read session error")
		return ""
	}
	return msg
}

// ClearError resets the recorded error (user dismissed the banner or
// started retyping a form).
func (m *Manager) ClearError(ctx context.Context, sid string) error {
	return m.store.ClearLastError(ctx, sid)
}
