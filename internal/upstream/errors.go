package upstream

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/reserveaqui/webgateway/internal/domain"
)

// APIError is a non-2xx upstream response. Detail carries the human-readable
// message extracted from the conventional error envelope, when present.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("upstream returned %d: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("upstream returned %d", e.Status)
}

// Unwrap maps well-known statuses onto domain sentinels so callers can use
// errors.Is without inspecting status codes.
func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusForbidden:
		return domain.ErrForbidden
	case http.StatusNotFound:
		return domain.ErrNotFound
	}
	return nil
}

// newAPIError builds an APIError from a response body, extracting the best
// available message. The upstream emits {"detail": ...} on most failures and
// {"mensagem": ...} on a few custom actions.
func newAPIError(status int, raw []byte) *APIError {
	e := &APIError{Status: status}

	var envelope struct {
		Detail   string `json:"detail"`
		Mensagem string `json:"mensagem"`
		Message  string `json:"message"`
		Error    string `json:"error"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil {
		switch {
		case envelope.Detail != "":
			e.Detail = envelope.Detail
		case envelope.Mensagem != "":
			e.Detail = envelope.Mensagem
		case envelope.Message != "":
			e.Detail = envelope.Message
		case envelope.Error != "":
			e.Detail = envelope.Error
		}
	}
	return e
}

// Message returns the upstream detail for err when available, falling back
// to the supplied message. Used to derive user-facing error strings.
func Message(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return fallback
}
