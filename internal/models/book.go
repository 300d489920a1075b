package models

import "time"

// Book is a book joined with the owning user's shelf entry from
// user_books (read status, rating, comment).
type Book struct {
	ID              int64     `json:"id"`
	Title           string    `json:"title"`
	OriginalTitle   string    `json:"originalTitle,omitempty"`
	Author          string    `json:"author"`
	OriginalAuthor  string    `json:"originalAuthor,omitempty"`
	PublicationYear int       `json:"publicationYear"`
	CoverImageLink  string    `json:"coverImageLink,omitempty"`
	Annotation      string    `json:"annotation,omitempty"`
	ReadStatus      string    `json:"readStatus,omitempty"`
	Rating          int       `json:"rating,omitempty"`
	Comment         string    `json:"comment,omitempty"`
	InsertedAt      time.Time `json:"insertedAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// BookRequest is the request body for creating or updating a book.
type BookRequest struct {
	Title           string `json:"title"`
	OriginalTitle   string `json:"originalTitle"`
	Author          string `json:"author"`
	OriginalAuthor  string `json:"originalAuthor"`
	PublicationYear int    `json:"publicationYear"`
	CoverImageLink  string `json:"coverImageLink"`
	Annotation      string `json:"annotation"`
	ReadStatus      string `json:"readStatus"`
	Rating          int    `json:"rating"`
	Comment         string `json:"comment"`
}
