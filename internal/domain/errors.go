package domain

import "errors"

var (
	// ErrNoSession indicates no complete token pair is stored for the
	// session. A partial pair (one token without the other) is treated as
	// absent and purged by the store.
	ErrNoSession = errors.New("no active session")

	// ErrSessionExpired indicates the access token was rejected and could
	// not be refreshed. The session has been purged; the caller must send
	// the user back through login.
	ErrSessionExpired = errors.New("session expired")

	// ErrForbidden indicates an authenticated user lacking the roles a
	// page requires.
	ErrForbidden = errors.New("access forbidden")

	// ErrNotFound indicates the upstream API has no such resource.
	ErrNotFound = errors.New("resource not found")
)
