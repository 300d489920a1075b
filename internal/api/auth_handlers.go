package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"booktrack-backend/internal/auth"
	"booktrack-backend/internal/database"
	"booktrack-backend/internal/models"
	"booktrack-backend/internal/session"
)

// login handles POST /auth/login
func (a *API) login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "invalid request body",
		})
	}

	result, err := a.auth.Login(c.Request().Context(), req.Login, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrMissingInput):
			return c.JSON(http.StatusBadRequest, map[string]string{
				"error": "login and password are required",
			})
		case errors.Is(err, database.ErrUserNotFound):
			return c.JSON(http.StatusNotFound, map[string]string{
				"error": "user not found",
			})
		case errors.Is(err, auth.ErrInvalidCredentials):
			return c.JSON(http.StatusUnauthorized, map[string]string{
				"error": "incorrect password",
			})
		default:
			c.Logger().Error("login error: ", err)
			return c.JSON(http.StatusInternalServerError, map[string]string{
				"error": "authentication failed",
			})
		}
	}

	a.limiter.RecordSuccess(c.RealIP())

	// The cookie expiry is a hint; the authoritative expiry is the
	// server-side sessionEnd, pushed forward on every request.
	c.SetCookie(&http.Cookie{
		Name:     auth.SessionCookie,
		Value:    result.Token,
		Path:     "/",
		HttpOnly: true,
		Secure:   a.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(time.Until(result.ExpiresAt).Seconds()),
	})

	return c.JSON(http.StatusOK, result.Identity)
}

// logout handles POST /auth/logout
func (a *API) logout(c echo.Context) error {
	sc := auth.SessionFromContext(c)
	if sc == nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "session context is required",
		})
	}

	if err := a.auth.Logout(c.Request().Context(), sc.SessionID); err != nil {
		if !errors.Is(err, session.ErrSessionNotFound) {
			c.Logger().Error("logout error: ", err)
			return c.JSON(http.StatusInternalServerError, map[string]string{
				"error": "logout error",
			})
		}
		// Session already swept away; logging out is still a success.
	}

	c.SetCookie(&http.Cookie{
		Name:     auth.SessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})

	return c.JSON(http.StatusOK, map[string]string{
		"message": "session closed",
	})
}

// sessionInfo handles GET /auth/session
func (a *API) sessionInfo(c echo.Context) error {
	sc := auth.SessionFromContext(c)
	if sc == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{
			"error": "authentication required",
		})
	}

	return c.JSON(http.StatusOK, sc)
}
