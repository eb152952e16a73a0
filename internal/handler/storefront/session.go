// Package storefront holds the JSON API handlers consumed by the shop UI.
package storefront

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pawluxe/storefront/internal/session"
)

// sessionCookieName scopes a visitor's cart to their browser.
const sessionCookieName = "pawluxe_session"

// resolveVisitor returns the per-session state for the request, minting the
// session cookie when a new session was created.
func resolveVisitor(c echo.Context, sessions *session.Manager, secure bool) *session.Visitor {
	var token string
	if cookie, err := c.Cookie(sessionCookieName); err == nil {
		token = cookie.Value
	}

	visitor, resolved := sessions.Resolve(c.Request().Context(), token)
	if resolved != token {
		c.SetCookie(&http.Cookie{
			Name:     sessionCookieName,
			Value:    resolved,
			Path:     "/",
			HttpOnly: true,
			Secure:   secure,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return visitor
}
