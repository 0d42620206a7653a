package store

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/kmorozov/bibliotek/log"
	"github.com/kmorozov/bibliotek/model"
)

func (s *Store) ListSubscriptions(find *model.FindSubscription) ([]*model.Subscription, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.LibraryID; v != nil {
		where, args = append(where, "library_id = ?"), append(args, *v)
	}
	if v := find.BookID; v != nil {
		where, args = append(where, "book_id = ?"), append(args, *v)
	}
	if v := find.ReaderID; v != nil {
		where, args = append(where, "reader_id = ?"), append(args, *v)
	}
	if v := find.IssueDate; v != nil {
		where, args = append(where, "issue_date = ?"), append(args, *v)
	}
	if find.Open {
		where = append(where, "return_date IS NULL")
	}

	query := `
		SELECT
			library_id,
			book_id,
			reader_id,
			issue_date,
			return_date,
			advance
		FROM subscriptions
		WHERE ` + strings.Join(where, " AND ") + ` ORDER BY issue_date, library_id, book_id, reader_id`
	if v := find.Limit; v != nil {
		query += fmt.Sprintf(" LIMIT %d", *v)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		log.Error("Failed to query subscriptions", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	list := make([]*model.Subscription, 0)
	for rows.Next() {
		var sub model.Subscription
		if err := rows.Scan(
			&sub.LibraryID,
			&sub.BookID,
			&sub.ReaderID,
			&sub.IssueDate,
			&sub.ReturnDate,
			&sub.Advance,
		); err != nil {
			return nil, err
		}
		list = append(list, &sub)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return list, nil
}

// IssueBook records a loan and decrements the book's quantity by one, both
// inside a single transaction. The original schema did the quantity half in
// an AFTER INSERT trigger; here both writes are explicit so the net effect
// is identical without trigger support.
func (s *Store) IssueBook(sub *model.Subscription) (*model.Subscription, error) {
	if err := sub.Validate(); err != nil {
		return nil, err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var quantity int
	err = tx.QueryRow(
		"SELECT quantity FROM books WHERE library_id = ? AND book_id = ?",
		sub.LibraryID, sub.BookID,
	).Scan(&quantity)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, errors.Wrap(err, "issue book")
	}
	if quantity == 0 {
		return nil, model.ErrOutOfStock
	}

	stmt := `
		INSERT INTO subscriptions (library_id, book_id, reader_id, issue_date, advance)
		VALUES (?, ?, ?, ?, ?)
		RETURNING library_id, book_id, reader_id, issue_date, return_date, advance
	`
	var stored model.Subscription
	if err := tx.QueryRow(stmt,
		sub.LibraryID,
		sub.BookID,
		sub.ReaderID,
		sub.IssueDate,
		sub.Advance,
	).Scan(
		&stored.LibraryID,
		&stored.BookID,
		&stored.ReaderID,
		&stored.IssueDate,
		&stored.ReturnDate,
		&stored.Advance,
	); err != nil {
		return nil, wrapStorageErr("issue book", err)
	}

	if _, err := tx.Exec(
		"UPDATE books SET quantity = quantity - 1 WHERE library_id = ? AND book_id = ?",
		sub.LibraryID, sub.BookID,
	); err != nil {
		return nil, wrapStorageErr("issue book", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, wrapStorageErr("issue book", err)
	}

	log.Debug("Book issued",
		zap.Int("libraryID", stored.LibraryID),
		zap.Int("bookID", stored.BookID),
		zap.Int("readerID", stored.ReaderID))
	return &stored, nil
}

// ReturnBook closes an open loan and restores the book's quantity by one,
// atomically. A loan's return_date transitions null to non-null exactly
// once; closing an already closed loan fails with ErrAlreadyReturned and
// leaves the quantity untouched.
func (s *Store) ReturnBook(key model.SubscriptionKey, returnDate string) error {
	if strings.TrimSpace(returnDate) == "" {
		return &model.ValidationError{Field: "return_date", Reason: "must not be empty"}
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var current sql.NullString
	err = tx.QueryRow(`
		SELECT return_date FROM subscriptions
		WHERE library_id = ? AND book_id = ? AND reader_id = ? AND issue_date = ?`,
		key.LibraryID, key.BookID, key.ReaderID, key.IssueDate,
	).Scan(&current)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.ErrNotFound
		}
		return errors.Wrap(err, "return book")
	}
	if current.Valid {
		return model.ErrAlreadyReturned
	}

	if _, err := tx.Exec(`
		UPDATE subscriptions SET return_date = ?
		WHERE library_id = ? AND book_id = ? AND reader_id = ? AND issue_date = ?`,
		returnDate, key.LibraryID, key.BookID, key.ReaderID, key.IssueDate,
	); err != nil {
		return wrapStorageErr("return book", err)
	}

	if _, err := tx.Exec(
		"UPDATE books SET quantity = quantity + 1 WHERE library_id = ? AND book_id = ?",
		key.LibraryID, key.BookID,
	); err != nil {
		return wrapStorageErr("return book", err)
	}

	if err := tx.Commit(); err != nil {
		return wrapStorageErr("return book", err)
	}

	log.Debug("Book returned",
		zap.Int("libraryID", key.LibraryID),
		zap.Int("bookID", key.BookID),
		zap.Int("readerID", key.ReaderID))
	return nil
}
