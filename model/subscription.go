package model

import "strings"

// Subscription is one loan of one book to one reader. A reader may borrow
// the same book again only on a different issue date.
type Subscription struct {
	LibraryID  int     `json:"library_id"`
	BookID     int     `json:"book_id"`
	ReaderID   int     `json:"reader_id"`
	IssueDate  string  `json:"issue_date"`
	ReturnDate *string `json:"return_date"`
	Advance    float64 `json:"advance"`
}

// SubscriptionKey is the full loan identity.
type SubscriptionKey struct {
	LibraryID int    `json:"library_id"`
	BookID    int    `json:"book_id"`
	ReaderID  int    `json:"reader_id"`
	IssueDate string `json:"issue_date"`
}

func (s *Subscription) Key() SubscriptionKey {
	return SubscriptionKey{
		LibraryID: s.LibraryID,
		BookID:    s.BookID,
		ReaderID:  s.ReaderID,
		IssueDate: s.IssueDate,
	}
}

type FindSubscription struct {
	LibraryID *int    `json:"library_id"`
	BookID    *int    `json:"book_id"`
	ReaderID  *int    `json:"reader_id"`
	IssueDate *string `json:"issue_date"`
	// Open selects only loans without a return date.
	Open  bool `json:"open"`
	Limit *int `json:"limit"`
}

func (s *Subscription) Validate() error {
	if strings.TrimSpace(s.IssueDate) == "" {
		return invalidField("issue_date", "must not be empty")
	}
	if s.Advance < 0 {
		return invalidField("advance", "must not be negative")
	}
	return nil
}
