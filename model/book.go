package model

import (
	"strings"
	"time"
)

// Book identity is the composite pair (LibraryID, BookID); BookID is only
// unique within its library.
type Book struct {
	LibraryID    int     `json:"library_id"`
	BookID       int     `json:"book_id"`
	ThemeID      *int    `json:"theme_id"`
	Author       string  `json:"author"`
	Title        string  `json:"title"`
	Publisher    *string `json:"publisher"`
	PublishPlace *string `json:"publish_place"`
	PublishYear  *int    `json:"publish_year"`
	Quantity     int     `json:"quantity"`
}

// BookKey identifies one book across reloads and reorderings.
type BookKey struct {
	LibraryID int `json:"library_id"`
	BookID    int `json:"book_id"`
}

func (b *Book) Key() BookKey {
	return BookKey{LibraryID: b.LibraryID, BookID: b.BookID}
}

type FindBook struct {
	LibraryID *int `json:"library_id"`
	BookID    *int `json:"book_id"`
	ThemeID   *int `json:"theme_id"`
	// Title is a case-insensitive substring filter.
	Title  *string `json:"title"`
	Author *string `json:"author"`
	Limit  *int    `json:"limit"`
}

func (b *Book) Validate() error {
	if strings.TrimSpace(b.Author) == "" {
		return invalidField("author", "must not be empty")
	}
	if strings.TrimSpace(b.Title) == "" {
		return invalidField("title", "must not be empty")
	}
	if b.PublishYear != nil {
		if year := *b.PublishYear; year <= 1000 || year > time.Now().Year() {
			return invalidField("publish_year", "must be after 1000 and not in the future")
		}
	}
	if b.Quantity < 0 {
		return invalidField("quantity", "must not be negative")
	}
	return nil
}
