package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"booktrack-backend/internal/auth"
	"booktrack-backend/internal/database"
	"booktrack-backend/internal/models"
)

// shelfOwner parses the :userId parameter and checks it against the
// session user. Every shelf operation is scoped to the session owner.
// When the check fails the response has already been written and the
// handler must return immediately.
func shelfOwner(c echo.Context) (int64, bool) {
	userID, err := parseID(c.Param("userId"))
	if err != nil {
		_ = c.JSON(http.StatusBadRequest, map[string]string{
			"error": "invalid user ID",
		})
		return 0, false
	}

	sc := auth.SessionFromContext(c)
	if sc == nil {
		_ = c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "session context is required",
		})
		return 0, false
	}
	if sc.UserID != userID {
		_ = c.JSON(http.StatusForbidden, map[string]string{
			"error": "forbidden for current session user",
		})
		return 0, false
	}

	return userID, true
}

func validateBookRequest(req *models.BookRequest) string {
	if req.Title == "" {
		return "required field is empty (title)"
	}
	if req.Author == "" {
		return "required field is empty (author)"
	}
	if req.PublicationYear == 0 {
		return "required field is missing or zero (publicationYear)"
	}
	return ""
}

// listBooks handles GET /users/:userId/books
func (a *API) listBooks(c echo.Context) error {
	userID, ok := shelfOwner(c)
	if !ok {
		return nil
	}

	books, err := a.books.ListByUser(c.Request().Context(), userID)
	if err != nil {
		c.Logger().Error("list books error: ", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "failed to list books",
		})
	}

	if books == nil {
		books = []*models.Book{}
	}
	return c.JSON(http.StatusOK, books)
}

// getBook handles GET /users/:userId/books/:bookId
func (a *API) getBook(c echo.Context) error {
	userID, ok := shelfOwner(c)
	if !ok {
		return nil
	}

	bookID, err := parseID(c.Param("bookId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "invalid book ID",
		})
	}

	book, err := a.books.GetForUser(c.Request().Context(), userID, bookID)
	if err != nil {
		if errors.Is(err, database.ErrBookNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{
				"error": "book not found",
			})
		}
		c.Logger().Error("get book error: ", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "failed to get book",
		})
	}

	return c.JSON(http.StatusOK, book)
}

// createBook handles POST /users/:userId/books
func (a *API) createBook(c echo.Context) error {
	userID, ok := shelfOwner(c)
	if !ok {
		return nil
	}

	var req models.BookRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "invalid request body",
		})
	}
	if msg := validateBookRequest(&req); msg != "" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": msg,
		})
	}

	bookID, err := a.books.Create(c.Request().Context(), userID, &req)
	if err != nil {
		c.Logger().Error("create book error: ", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "failed to create book",
		})
	}

	return c.JSON(http.StatusCreated, map[string]int64{
		"bookId": bookID,
	})
}

// updateBook handles PUT /users/:userId/books/:bookId
func (a *API) updateBook(c echo.Context) error {
	userID, ok := shelfOwner(c)
	if !ok {
		return nil
	}

	bookID, err := parseID(c.Param("bookId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "invalid book ID",
		})
	}

	var req models.BookRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "invalid request body",
		})
	}
	if msg := validateBookRequest(&req); msg != "" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": msg,
		})
	}

	if err := a.books.Update(c.Request().Context(), userID, bookID, &req); err != nil {
		if errors.Is(err, database.ErrBookNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{
				"error": "book not found",
			})
		}
		c.Logger().Error("update book error: ", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "failed to update book",
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "book updated",
	})
}

// deleteBook handles DELETE /users/:userId/books/:bookId
func (a *API) deleteBook(c echo.Context) error {
	userID, ok := shelfOwner(c)
	if !ok {
		return nil
	}

	bookID, err := parseID(c.Param("bookId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "invalid book ID",
		})
	}

	if err := a.books.Delete(c.Request().Context(), userID, bookID); err != nil {
		if errors.Is(err, database.ErrBookNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{
				"error": "book not found",
			})
		}
		c.Logger().Error("delete book error: ", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "failed to delete book",
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "book deleted",
	})
}
