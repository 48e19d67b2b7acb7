// Package session issues and verifies the signed cookie that carries a
// logged-in account across requests.
package session

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// ContextKey is where RequireUser stores the authenticated user id on
// the echo context.
const ContextKey = "user_id"

const flashCookie = "motors_flash"

// ErrNoSession is returned when the request carries no valid session.
var ErrNoSession = errors.New("no valid session")

// Manager signs and verifies session cookies. Tokens are HS256 JWTs
// whose subject is the account id.
type Manager struct {
	secret     []byte
	ttl        time.Duration
	cookieName string
	secure     bool
}

// NewManager creates a session manager.
func NewManager(secret string, ttl time.Duration, cookieName string, secure bool) *Manager {
	return &Manager{
		secret:     []byte(secret),
		ttl:        ttl,
		cookieName: cookieName,
		secure:     secure,
	}
}

// Issue signs a session token for userID and sets it as an HttpOnly
// cookie on the response.
func (m *Manager) Issue(c echo.Context, userID string) error {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
	})

	signed, err := token.SignedString(m.secret)
	if err != nil {
		return fmt.Errorf("signing session token: %w", err)
	}

	c.SetCookie(&http.Cookie{
		Name:     m.cookieName,
		Value:    signed,
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Clear expires the session cookie.
func (m *Manager) Clear(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     m.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// UserID extracts the account id from the request's session cookie.
func (m *Manager) UserID(c echo.Context) (string, error) {
	cookie, err := c.Cookie(m.cookieName)
	if err != nil || cookie.Value == "" {
		return "", ErrNoSession
	}

	token, err := jwt.ParseWithClaims(cookie.Value, &jwt.RegisteredClaims{},
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return m.secret, nil
		})
	if err != nil || !token.Valid {
		return "", ErrNoSession
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", ErrNoSession
	}
	return claims.Subject, nil
}

// RequireUser gates a route group on a valid session. It is the trust
// boundary for everything under it: handlers read the verified account
// id from the context and never from request input. Browsers without a
// session are sent to the login page.
func (m *Manager) RequireUser() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, err := m.UserID(c)
			if err != nil {
				return c.Redirect(http.StatusSeeOther, "/login")
			}
			c.Set(ContextKey, userID)
			return next(c)
		}
	}
}

// CurrentUser returns the account id RequireUser stored on the
// context, or empty when the route was not gated.
func CurrentUser(c echo.Context) string {
	id, _ := c.Get(ContextKey).(string)
	return id
}

// SetFlash stores a one-shot notice for the next page load. The value
// is escaped so it survives cookie encoding.
func SetFlash(c echo.Context, msg string) {
	c.SetCookie(&http.Cookie{
		Name:     flashCookie,
		Value:    url.QueryEscape(msg),
		Path:     "/",
		MaxAge:   300,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// PopFlash reads and clears the pending notice, if any.
func PopFlash(c echo.Context) string {
	cookie, err := c.Cookie(flashCookie)
	if err != nil || cookie.Value == "" {
		return ""
	}
	c.SetCookie(&http.Cookie{
		Name:     flashCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	msg, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		return ""
	}
	return msg
}
