// Package session owns "who is logged in": durable per-session storage for
// the upstream credential pair plus a read-mostly cached user record, and
// the Manager exposing the login/logout/register lifecycle to the web layer.
package session

import (
	"context"

	"github.com/reserveaqui/webgateway/internal/domain"
)

// Storage field names, kept identical to the browser client this gateway
// replaces.
const (
	fieldAccessToken  = "access_token"
	fieldRefreshToken = "refresh_token"
	fieldUser         = "user"
	fieldError        = "error"
)

// TokenPair is the upstream credential pair. Invariant: both tokens are
// present or the pair does not exist — stores treat a partial pair as
// absent and purge the remainder on read.
type TokenPair struct {
	Access  string
	Refresh string
}

// Store is durable per-session storage. All mutations are last-writer-wins;
// call sites never coordinate beyond that.
type Store interface {
	// Tokens returns the stored pair, or domain.ErrNoSession when absent.
	// A partial pair is purged and reported absent.
	Tokens(ctx context.Context, sid string) (TokenPair, error)
	SaveTokens(ctx context.Context, sid string, pair TokenPair) error
	// SetAccess replaces only the access token (token refresh).
	SetAccess(ctx context.Context, sid, access string) error
	// Purge removes tokens and the cached user. The recorded error is kept
	// so the login page can still explain what happened.
	Purge(ctx context.Context, sid string) error

	User(ctx context.Context, sid string) (*domain.User, error)
	SaveUser(ctx context.Context, sid string, u *domain.User) error

	LastError(ctx context.Context, sid string) (string, error)
	SaveLastError(ctx context.Context, sid, msg string) error
	ClearLastError(ctx context.Context, sid string) error
}
