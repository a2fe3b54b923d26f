package session

import (
	"context"

	"github.com/reserveaqui/webgateway/internal/domain"
)

// TokenSource adapts a Store to the upstream client's TokenSource by
// resolving the session ID from the request context. Requests without a
// session proceed unauthenticated (public endpoints).
type TokenSource struct {
	store Store
}

func NewTokenSource(store Store) *TokenSource {
	return &TokenSource{store: store}
}

func (s *TokenSource) Tokens(ctx context.Context) (string, string, error) {
	sid, ok := IDFromContext(ctx)
	if !ok {
		return "", "", domain.ErrNoSession
	}
	pair, err := s.store.Tokens(ctx, sid)
	if err != nil {
		return "", "", err
	}
	return pair.Access, pair.Refresh, nil
}

func (s *TokenSource) SetAccess(ctx context.Context, access string) error {
	sid, ok := IDFromContext(ctx)
	if !ok {
		return domain.ErrNoSession
	}
	return s.store.SetAccess(ctx, sid, access)
}

func (s *TokenSource) Purge(ctx context.Context) error {
	sid, ok := IDFromContext(ctx)
	if !ok {
		return nil
	}
	return s.store.Purge(ctx, sid)
}
