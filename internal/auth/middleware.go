package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"booktrack-backend/internal/models"
	"booktrack-backend/internal/session"
)

// SessionCookie is the cookie carrying the session token.
const SessionCookie = "sessionId"

// ContextKeySession is the echo context key for the resolved session.
const ContextKeySession = "sessionContext"

// RequireAuth is the gate in front of every route except login. It
// extracts the session token, resolves and prolongs the session, and
// attaches the resolved context for downstream handlers. Expired
// sessions are rejected, never deleted here; only the sweep removes
// rows. A prolong that finds no row (a sweep got there first) is
// treated as an expired session, not a server error.
func RequireAuth(sessions *session.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := TokenFromRequest(c)
			if token == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{
					"error": "authentication required",
				})
			}

			ctx := c.Request().Context()

			sc, err := sessions.Resolve(ctx, token)
			if err != nil {
				if errors.Is(err, session.ErrSessionNotFound) {
					return c.JSON(http.StatusUnauthorized, map[string]string{
						"error": "authentication required",
					})
				}
				c.Logger().Error("resolve session: ", err)
				return c.JSON(http.StatusInternalServerError, map[string]string{
					"error": "get session data error",
				})
			}

			if !sc.IsValid {
				return c.JSON(http.StatusUnauthorized, map[string]string{
					"error": "authentication required",
				})
			}

			if err := sessions.Prolong(ctx, token); err != nil {
				if errors.Is(err, session.ErrSessionNotFound) {
					return c.JSON(http.StatusUnauthorized, map[string]string{
						"error": "authentication required",
					})
				}
				c.Logger().Error("prolong session: ", err)
				return c.JSON(http.StatusInternalServerError, map[string]string{
					"error": "prolong session error",
				})
			}

			c.Set(ContextKeySession, sc)

			return next(c)
		}
	}
}

// TokenFromRequest extracts the session token from the request: the
// session cookie first, then an Authorization bearer header.
func TokenFromRequest(c echo.Context) string {
	cookie, err := c.Cookie(SessionCookie)
	if err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := c.Request().Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	return ""
}

// SessionFromContext retrieves the resolved session context attached by
// RequireAuth, or nil when the gate did not run.
func SessionFromContext(c echo.Context) *models.SessionContext {
	sc, ok := c.Get(ContextKeySession).(*models.SessionContext)
	if !ok {
		return nil
	}
	return sc
}
