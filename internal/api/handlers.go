package api

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"booktrack-backend/internal/auth"
	"booktrack-backend/internal/database"
	"booktrack-backend/internal/session"
)

// API holds the handler dependencies. Everything is constructed
// explicitly and passed in; there is no package-level state.
type API struct {
	auth     *auth.Service
	sessions *session.Manager
	books    *database.BookRepo
	limiter  *auth.RateLimiter

	cookieSecure bool
}

// New creates the API handler set.
func New(authSvc *auth.Service, sessions *session.Manager, books *database.BookRepo, limiter *auth.RateLimiter, cookieSecure bool) *API {
	return &API{
		auth:         authSvc,
		sessions:     sessions,
		books:        books,
		limiter:      limiter,
		cookieSecure: cookieSecure,
	}
}

// Health check
func (a *API) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

func parseID(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}
