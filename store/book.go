package store

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/kmorozov/bibliotek/log"
	"github.com/kmorozov/bibliotek/model"
)

func (s *Store) GetBook(find *model.FindBook) (*model.Book, error) {
	list, err := s.ListBooks(find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

func (s *Store) ListBooks(find *model.FindBook) ([]*model.Book, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.LibraryID; v != nil {
		where, args = append(where, "library_id = ?"), append(args, *v)
	}
	if v := find.BookID; v != nil {
		where, args = append(where, "book_id = ?"), append(args, *v)
	}
	if v := find.ThemeID; v != nil {
		where, args = append(where, "theme_id = ?"), append(args, *v)
	}
	if v := find.Title; v != nil && *v != "" {
		where, args = append(where, "LOWER(title) LIKE '%' || LOWER(?) || '%'"), append(args, *v)
	}
	if v := find.Author; v != nil && *v != "" {
		where, args = append(where, "LOWER(author) LIKE '%' || LOWER(?) || '%'"), append(args, *v)
	}

	query := `
		SELECT
			library_id,
			book_id,
			theme_id,
			author,
			title,
			publisher,
			publish_place,
			publish_year,
			quantity
		FROM books
		WHERE ` + strings.Join(where, " AND ") + ` ORDER BY title, library_id, book_id`
	if v := find.Limit; v != nil {
		query += fmt.Sprintf(" LIMIT %d", *v)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		log.Error("Failed to query books", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	list := make([]*model.Book, 0)
	for rows.Next() {
		var book model.Book
		// The ordering of scanned columns must match the query.
		if err := rows.Scan(
			&book.LibraryID,
			&book.BookID,
			&book.ThemeID,
			&book.Author,
			&book.Title,
			&book.Publisher,
			&book.PublishPlace,
			&book.PublishYear,
			&book.Quantity,
		); err != nil {
			return nil, err
		}
		list = append(list, &book)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return list, nil
}

// NextBookID returns max(book_id)+1 over the library's books, or 1 for an
// empty library. The value is not reserved; the single-writer assumption
// makes the read-then-insert sequence safe.
func (s *Store) NextBookID(libraryID int) (int, error) {
	var maxID int
	if err := s.db.QueryRow(
		"SELECT COALESCE(MAX(book_id), 0) FROM books WHERE library_id = ?",
		libraryID,
	).Scan(&maxID); err != nil {
		return 0, err
	}
	return maxID + 1, nil
}

// UpsertBook inserts or updates by the composite identity (library_id,
// book_id). New book and edit are the same operation; the key is the sole
// discriminator.
func (s *Store) UpsertBook(book *model.Book) (*model.Book, error) {
	if err := book.Validate(); err != nil {
		return nil, err
	}

	stmt := `
		INSERT INTO books (
			library_id,
			book_id,
			theme_id,
			author,
			title,
			publisher,
			publish_place,
			publish_year,
			quantity
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(library_id, book_id) DO UPDATE
		SET
			theme_id=EXCLUDED.theme_id,
			author=EXCLUDED.author,
			title=EXCLUDED.title,
			publisher=EXCLUDED.publisher,
			publish_place=EXCLUDED.publish_place,
			publish_year=EXCLUDED.publish_year,
			quantity=EXCLUDED.quantity
		RETURNING library_id, book_id, theme_id, author, title, publisher, publish_place, publish_year, quantity
	`

	var stored model.Book
	if err := s.db.QueryRow(stmt,
		book.LibraryID,
		book.BookID,
		book.ThemeID,
		book.Author,
		book.Title,
		book.Publisher,
		book.PublishPlace,
		book.PublishYear,
		book.Quantity,
	).Scan(
		&stored.LibraryID,
		&stored.BookID,
		&stored.ThemeID,
		&stored.Author,
		&stored.Title,
		&stored.Publisher,
		&stored.PublishPlace,
		&stored.PublishYear,
		&stored.Quantity,
	); err != nil {
		return nil, wrapStorageErr("upsert book", err)
	}

	return &stored, nil
}

// ClearBookTheme nulls the theme reference so the theme itself can be
// deleted afterwards.
func (s *Store) ClearBookTheme(key model.BookKey) error {
	result, err := s.db.Exec(
		"UPDATE books SET theme_id = NULL WHERE library_id = ? AND book_id = ?",
		key.LibraryID, key.BookID,
	)
	if err != nil {
		return wrapStorageErr("clear book theme", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return model.ErrNotFound
	}
	return nil
}

// DeleteBook removes the book and, via the schema's cascade, all of its
// subscriptions.
func (s *Store) DeleteBook(key model.BookKey) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	result, err := tx.Exec(
		"DELETE FROM books WHERE library_id = ? AND book_id = ?",
		key.LibraryID, key.BookID,
	)
	if err != nil {
		return wrapStorageErr("delete book", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return model.ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return wrapStorageErr("delete book", err)
	}

	log.Debug("Book deleted", zap.Int("libraryID", key.LibraryID), zap.Int("bookID", key.BookID))
	return nil
}
