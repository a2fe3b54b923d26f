package middleware

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/reserveaqui/webgateway/internal/session"
)

// CookieName is the browser cookie carrying the signed session ID.
const CookieName = "reserveaqui_sid"

const ctxSessionID = "session_id"

// SessionCookie guarantees every request carries a session ID. A valid
// cookie is honoured; anything else (absent, expired, bad signature) gets a
// fresh ID minted and set. The ID also travels in the request context so
// the upstream client can resolve the session's tokens.
func SessionCookie(secret string, ttl time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sid := ""
			if cookie, err := c.Cookie(CookieName); err == nil {
				sid = parseSessionID(secret, cookie.Value)
			}
			if sid == "" {
				sid = uuid.NewString()
				signed, err := signSessionID(secret, sid, ttl)
				if err != nil {
					return err
				}
				c.SetCookie(&http.Cookie{
					Name:     CookieName,
					Value:    signed,
					Path:     "/",
					Expires:  time.Now().Add(ttl),
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			c.Set(ctxSessionID, sid)
			req := c.Request()
			c.SetRequest(req.WithContext(session.ContextWithID(req.Context(), sid)))
			return next(c)
		}
	}
}

// SessionID returns the session ID injected by SessionCookie.
func SessionID(c echo.Context) string {
	sid, _ := c.Get(ctxSessionID).(string)
	return sid
}

func signSessionID(secret, sid string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sid": sid,
		"exp": time.Now().Add(ttl).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

// parseSessionID validates the cookie signature and expiry, returning the
// embedded session ID or empty on any failure.
func parseSessionID(secret, value string) string {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(value, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !tkn.Valid {
		return ""
	}
	sid, _ := claims["sid"].(string)
	return sid
}
