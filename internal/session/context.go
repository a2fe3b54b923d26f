package session

import "context"

type ctxKey struct{}

// ContextWithID returns a context carrying the session ID. The upstream
// client's token source resolves credentials through this value.
func ContextWithID(ctx context.Context, sid string) context.Context {
	return context.WithValue(ctx, ctxKey{}, sid)
}

// IDFromContext extracts the session ID placed by ContextWithID.
func IDFromContext(ctx context.Context) (string, bool) {
	sid, ok := ctx.Value(ctxKey{}).(string)
	return sid, ok && sid != ""
}
