// Package upstream wraps HTTP access to the external ReserveAqui REST API.
// The client attaches the session's bearer token to every request and
// transparently recovers from exactly one class of failure: an expired
// access token. A 401 triggers a single refresh-and-retry; the retry flag is
// carried per request, so a second 401 terminates the session rather than
// looping.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/reserveaqui/webgateway/internal/domain"
	"github.com/reserveaqui/webgateway/internal/metrics"
)

// maxResponseSize caps upstream response bodies to prevent memory exhaustion.
const maxResponseSize = 10 * 1024 * 1024 // 10MB

const refreshPath = "/token/refresh/"

// TokenSource supplies and mutates the credential pair for the session
// carried in the request context. Implementations must treat a partial pair
// as absent (returning domain.ErrNoSession) and purge the remainder.
type TokenSource interface {
	// Tokens returns the stored credential pair. domain.ErrNoSession when
	// no complete pair exists.
	Tokens(ctx context.Context) (access, refresh string, err error)
	// SetAccess replaces only the access token, keeping the refresh token.
	SetAccess(ctx context.Context, access string) error
	// Purge removes both tokens and any cached identity.
	Purge(ctx context.Context) error
}

// Client issues authenticated requests against the upstream API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	log        zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the logger.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// New creates a Client for the given base URL. Tokens are read per request
// from the TokenSource, so a single Client serves every session.
func New(baseURL string, tokens TokenSource, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get issues a GET request. out may be nil when the body is irrelevant.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

// Post issues a POST request with an optional JSON body.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

// Put issues a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

// Patch issues a PATCH request with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPatch, path, nil, body, out)
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// do sends one request, handling the single refresh-and-retry on 401.
//
// Per-request state machine: Sent → Success | AuthFailed-FirstAttempt →
// Refreshing → Retried → Success | Failure. The retried flag guarantees at
// most one refresh per request.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
	}

	// A token store outage must not take public endpoints down with it:
	// send the request unauthenticated and let protected endpoints get the
	// upstream's own 401.
	access, _, err := c.tokens.Tokens(ctx)
	if err != nil && !errors.Is(err, domain.ErrNoSession) {
		c.log.Warn().Err(err).Str("path", path).Msg("token store unavailable, sending unauthenticated request")
		access = ""
	}

	retried := false
	for {
		status, raw, err := c.roundTrip(ctx, method, path, query, payload, access)
		if err != nil {
			return err
		}

		if status == http.StatusUnauthorized {
			if retried {
				// The retried request was rejected too. Terminal: purge
				// and surface expiry, never a second refresh.
				_ = c.tokens.Purge(ctx)
				return fmt.Errorf("%s %s rejected after token refresh: %w", method, path, domain.ErrSessionExpired)
			}

			_, refresh, terr := c.tokens.Tokens(ctx)
			if terr != nil || refresh == "" {
				// Nothing to refresh with. Purge leftovers and propagate
				// the original failure untouched (a failed login lands
				// here and must keep its own error message).
				_ = c.tokens.Purge(ctx)
				return newAPIError(status, raw)
			}

			access, err = c.refreshAccess(ctx, refresh)
			if err != nil {
				return err
			}
			retried = true
			continue
		}

		if status < http.StatusOK || status >= http.StatusMultipleChoices {
			return newAPIError(status, raw)
		}

		if out != nil && len(raw) > 0 {
			if err := json.Unmarshal(raw, out); err != nil {
				return fmt.Errorf("decode %s %s response: %w", method, path, err)
			}
		}
		return nil
	}
}

// refreshAccess exchanges the refresh token for a new access token and
// stores it. On failure the whole session is purged.
func (c *Client) refreshAccess(ctx context.Context, refresh string) (string, error) {
	payload, err := json.Marshal(map[string]string{"refresh": refresh})
	if err != nil {
		return "", fmt.Errorf("encode refresh request: %w", err)
	}

	status, raw, err := c.roundTrip(ctx, http.MethodPost, refreshPath, nil, payload, "")
	if err != nil {
		metrics.TokenRefreshTotal.WithLabelValues("failure").Inc()
		_ = c.tokens.Purge(ctx)
		return "", fmt.Errorf("refresh access token: %w: %w", domain.ErrSessionExpired, err)
	}
	if status != http.StatusOK {
		metrics.TokenRefreshTotal.WithLabelValues("failure").Inc()
		_ = c.tokens.Purge(ctx)
		return "", fmt.Errorf("refresh access token: %w: %w", domain.ErrSessionExpired, newAPIError(status, raw))
	}

	var body struct {
		Access string `json:"access"`
	}
	if err := json.Unmarshal(raw, &body); err != nil || body.Access == "" {
		metrics.TokenRefreshTotal.WithLabelValues("failure").Inc()
		_ = c.tokens.Purge(ctx)
		return "", fmt.Errorf("refresh access token: malformed response: %w", domain.ErrSessionExpired)
	}

	if err := c.tokens.SetAccess(ctx, body.Access); err != nil {
		metrics.TokenRefreshTotal.WithLabelValues("failure").Inc()
		return "", fmt.Errorf("store refreshed token: %w", err)
	}

	metrics.TokenRefreshTotal.WithLabelValues("success").Inc()
	c.log.Debug().Msg("access token refreshed")
	return body.Access, nil
}

// roundTrip performs a single HTTP exchange and returns the status and raw
// body. Transport-level failures (no status received) return an error.
func (c *Client) roundTrip(ctx context.Context, method, path string, query url.Values, payload []byte, access string) (int, []byte, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if access != "" {
		req.Header.Set("Authorization", "Bearer "+access)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.UpstreamRequestDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(method, "error").Inc()
		return 0, nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	metrics.UpstreamRequestsTotal.WithLabelValues(method, strconv.Itoa(resp.StatusCode)).Inc()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return 0, nil, fmt.Errorf("read %s %s response: %w", method, path, err)
	}
	return resp.StatusCode, raw, nil
}
