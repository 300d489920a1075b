package database

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"booktrack-backend/internal/models"
)

var ErrBookNotFound = errors.New("book not found")

// BookRepo handles book database operations. Books live in the books
// table; the per-user shelf entry (read status, rating, comment) lives
// in user_books.
type BookRepo struct {
	db *sql.DB
}

// NewBookRepo creates a new book repository
func NewBookRepo(db *sql.DB) *BookRepo {
	return &BookRepo{db: db}
}

const bookColumns = `
	b.id,
	b.title,
	COALESCE(b.originalTitle, ''),
	b.author,
	COALESCE(b.originalAuthor, ''),
	b.publicationYear,
	COALESCE(b.coverImageLink, ''),
	COALESCE(b.annotation, ''),
	COALESCE(ub.readStatus, ''),
	COALESCE(ub.rating, 0),
	COALESCE(ub.comment, ''),
	ub.insertedAt,
	ub.updatedAt`

func scanBook(row interface{ Scan(...any) error }) (*models.Book, error) {
	book := &models.Book{}
	err := row.Scan(
		&book.ID, &book.Title, &book.OriginalTitle,
		&book.Author, &book.OriginalAuthor, &book.PublicationYear,
		&book.CoverImageLink, &book.Annotation,
		&book.ReadStatus, &book.Rating, &book.Comment,
		&book.InsertedAt, &book.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return book, nil
}

// ListByUser returns all books on the given user's shelf
func (r *BookRepo) ListByUser(ctx context.Context, userID int64) ([]*models.Book, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+bookColumns+`
		FROM books b
		JOIN user_books ub ON ub.bookId = b.id
		WHERE ub.userId = ?
		ORDER BY ub.insertedAt DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var books []*models.Book
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, book)
	}

	return books, rows.Err()
}

// GetForUser returns one book from the given user's shelf
func (r *BookRepo) GetForUser(ctx context.Context, userID, bookID int64) (*models.Book, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+bookColumns+`
		FROM books b
		JOIN user_books ub ON ub.bookId = b.id
		WHERE ub.userId = ? AND b.id = ?
	`, userID, bookID)

	book, err := scanBook(row)
	if err == sql.ErrNoRows {
		return nil, ErrBookNotFound
	}
	if err != nil {
		return nil, err
	}

	return book, nil
}

// Create inserts a new book and binds it to the user's shelf. Returns
// the new book ID.
func (r *BookRepo) Create(ctx context.Context, userID int64, req *models.BookRequest) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		INSERT INTO books (title, originalTitle, author, originalAuthor, publicationYear, coverImageLink, annotation)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, req.Title, req.OriginalTitle, req.Author, req.OriginalAuthor,
		req.PublicationYear, req.CoverImageLink, req.Annotation)
	if err != nil {
		return 0, err
	}

	bookID, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}

	now := time.Now()
	_, err = tx.ExecContext(ctx, `
		INSERT INTO user_books (userId, bookId, readStatus, rating, comment, insertedAt, updatedAt)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, userID, bookID, req.ReadStatus, req.Rating, req.Comment, now, now)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	return bookID, nil
}

// Update changes a book on the user's shelf: the book fields always,
// the shelf fields (read status, rating, comment) when any is set.
func (r *BookRepo) Update(ctx context.Context, userID, bookID int64, req *models.BookRequest) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var bound int
	err = tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM user_books WHERE userId = ? AND bookId = ?",
		userID, bookID,
	).Scan(&bound)
	if err != nil {
		return err
	}
	if bound == 0 {
		return ErrBookNotFound
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE books SET
			title = ?,
			originalTitle = ?,
			author = ?,
			originalAuthor = ?,
			publicationYear = ?,
			coverImageLink = ?,
			annotation = ?
		WHERE id = ?
	`, req.Title, req.OriginalTitle, req.Author, req.OriginalAuthor,
		req.PublicationYear, req.CoverImageLink, req.Annotation, bookID)
	if err != nil {
		return err
	}

	if req.ReadStatus != "" || req.Rating != 0 || req.Comment != "" {
		_, err = tx.ExecContext(ctx, `
			UPDATE user_books SET
				readStatus = ?,
				rating = ?,
				comment = ?,
				updatedAt = ?
			WHERE userId = ? AND bookId = ?
		`, req.ReadStatus, req.Rating, req.Comment, time.Now(), userID, bookID)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Delete removes a book from the user's shelf and the books table. The
// shelf entry goes away via the foreign key cascade.
func (r *BookRepo) Delete(ctx context.Context, userID, bookID int64) error {
	result, err := r.db.ExecContext(ctx, `
		DELETE FROM books
		WHERE id = ?
		  AND EXISTS (SELECT 1 FROM user_books WHERE userId = ? AND bookId = books.id)
	`, bookID, userID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrBookNotFound
	}

	return nil
}
