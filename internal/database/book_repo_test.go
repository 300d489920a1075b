package database

import (
	"context"
	"errors"
	"testing"

	"booktrack-backend/internal/models"
)

func seedUser(t *testing.T, repo *UserRepo, login string) int64 {
	t.Helper()
	user := &models.User{Login: login, Name: login, PasswordHash: "x"}
	if err := repo.Create(context.Background(), user); err != nil {
		t.Fatal(err)
	}
	return user.ID
}

func TestBookRepoCreateAndGet(t *testing.T) {
	db := openTestDB(t)
	books := NewBookRepo(db)
	ctx := context.Background()

	userID := seedUser(t, NewUserRepo(db), "alice")

	req := &models.BookRequest{
		Title:           "The Master and Margarita",
		OriginalTitle:   "Мастер и Маргарита",
		Author:          "Mikhail Bulgakov",
		PublicationYear: 1967,
		ReadStatus:      "read",
		Rating:          5,
		Comment:         "rereading every year",
	}

	bookID, err := books.Create(ctx, userID, req)
	if err != nil {
		t.Fatal(err)
	}
	if bookID == 0 {
		t.Fatal("expected a non-zero book ID")
	}

	book, err := books.GetForUser(ctx, userID, bookID)
	if err != nil {
		t.Fatal(err)
	}
	if book.Title != req.Title || book.Author != req.Author || book.PublicationYear != 1967 {
		t.Errorf("unexpected book: %+v", book)
	}
	if book.ReadStatus != "read" || book.Rating != 5 {
		t.Errorf("unexpected shelf fields: %+v", book)
	}
	if book.InsertedAt.IsZero() || book.UpdatedAt.IsZero() {
		t.Error("expected shelf timestamps to be set")
	}
}

func TestBookRepoListScopedToUser(t *testing.T) {
	db := openTestDB(t)
	books := NewBookRepo(db)
	users := NewUserRepo(db)
	ctx := context.Background()

	alice := seedUser(t, users, "alice")
	bob := seedUser(t, users, "bob")

	_, err := books.Create(ctx, alice, &models.BookRequest{
		Title: "Solaris", Author: "Stanislaw Lem", PublicationYear: 1961,
	})
	if err != nil {
		t.Fatal(err)
	}

	aliceBooks, err := books.ListByUser(ctx, alice)
	if err != nil {
		t.Fatal(err)
	}
	if len(aliceBooks) != 1 {
		t.Fatalf("alice has %d books, want 1", len(aliceBooks))
	}

	bobBooks, err := books.ListByUser(ctx, bob)
	if err != nil {
		t.Fatal(err)
	}
	if len(bobBooks) != 0 {
		t.Errorf("bob has %d books, want 0", len(bobBooks))
	}

	// Bob cannot read alice's book through his own shelf.
	_, err = books.GetForUser(ctx, bob, aliceBooks[0].ID)
	if !errors.Is(err, ErrBookNotFound) {
		t.Errorf("expected ErrBookNotFound, got %v", err)
	}
}

func TestBookRepoUpdate(t *testing.T) {
	db := openTestDB(t)
	books := NewBookRepo(db)
	ctx := context.Background()

	userID := seedUser(t, NewUserRepo(db), "alice")

	bookID, err := books.Create(ctx, userID, &models.BookRequest{
		Title: "Roadside Picnic", Author: "Strugatsky", PublicationYear: 1972,
	})
	if err != nil {
		t.Fatal(err)
	}

	err = books.Update(ctx, userID, bookID, &models.BookRequest{
		Title:           "Roadside Picnic",
		Author:          "Arkady and Boris Strugatsky",
		PublicationYear: 1972,
		ReadStatus:      "reading",
		Rating:          4,
	})
	if err != nil {
		t.Fatal(err)
	}

	book, err := books.GetForUser(ctx, userID, bookID)
	if err != nil {
		t.Fatal(err)
	}
	if book.Author != "Arkady and Boris Strugatsky" {
		t.Errorf("author = %q, want updated value", book.Author)
	}
	if book.ReadStatus != "reading" || book.Rating != 4 {
		t.Errorf("unexpected shelf fields: %+v", book)
	}

	err = books.Update(ctx, userID, 9999, &models.BookRequest{
		Title: "x", Author: "y", PublicationYear: 1,
	})
	if !errors.Is(err, ErrBookNotFound) {
		t.Errorf("expected ErrBookNotFound, got %v", err)
	}
}

func TestBookRepoDelete(t *testing.T) {
	db := openTestDB(t)
	books := NewBookRepo(db)
	users := NewUserRepo(db)
	ctx := context.Background()

	alice := seedUser(t, users, "alice")
	bob := seedUser(t, users, "bob")

	bookID, err := books.Create(ctx, alice, &models.BookRequest{
		Title: "We", Author: "Yevgeny Zamyatin", PublicationYear: 1924,
	})
	if err != nil {
		t.Fatal(err)
	}

	// Another user cannot delete a book that is not on their shelf.
	if err := books.Delete(ctx, bob, bookID); !errors.Is(err, ErrBookNotFound) {
		t.Errorf("expected ErrBookNotFound for foreign shelf, got %v", err)
	}

	if err := books.Delete(ctx, alice, bookID); err != nil {
		t.Fatal(err)
	}

	if _, err := books.GetForUser(ctx, alice, bookID); !errors.Is(err, ErrBookNotFound) {
		t.Errorf("expected ErrBookNotFound after delete, got %v", err)
	}

	if err := books.Delete(ctx, alice, bookID); !errors.Is(err, ErrBookNotFound) {
		t.Errorf("expected ErrBookNotFound on second delete, got %v", err)
	}
}
