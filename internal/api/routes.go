package api

import (
	"github.com/labstack/echo/v4"

	"booktrack-backend/internal/auth"
)

// Register sets up all API routes. Login and CORS preflight are the
// only paths that skip the auth gate.
func (a *API) Register(e *echo.Echo) {
	// Health check (public)
	e.GET("/health", a.healthCheck)

	// Auth routes: login is public (rate limited), the rest sit
	// behind the gate.
	authPublic := e.Group("/auth")
	authPublic.POST("/login", a.login, a.limiter.Middleware())

	authProtected := e.Group("/auth", auth.RequireAuth(a.sessions))
	authProtected.POST("/logout", a.logout)
	authProtected.GET("/session", a.sessionInfo)

	// Book CRUD, scoped to the session user
	books := e.Group("/users", auth.RequireAuth(a.sessions))
	books.GET("/:userId/books", a.listBooks)
	books.GET("/:userId/books/:bookId", a.getBook)
	books.POST("/:userId/books", a.createBook)
	books.PUT("/:userId/books/:bookId", a.updateBook)
	books.DELETE("/:userId/books/:bookId", a.deleteBook)
}
