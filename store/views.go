package store

import (
	"strings"

	"go.uber.org/zap"

	"github.com/kmorozov/bibliotek/log"
	"github.com/kmorozov/bibliotek/model"
)

// ListAvailableBooks reads the available_books view: books with quantity > 0.
func (s *Store) ListAvailableBooks(libraryID *int) ([]*model.Book, error) {
	where, args := []string{"1 = 1"}, []any{}
	if libraryID != nil {
		where, args = append(where, "library_id = ?"), append(args, *libraryID)
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
		FROM available_books
		WHERE ` + strings.Join(where, " AND ") + ` ORDER BY title, library_id, book_id`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		log.Error("Failed to query available books", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	list := make([]*model.Book, 0)
	for rows.Next() {
		var book model.Book
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

// ListIssuedBookCounts reads the issued_books_count view: per-library issue
// totals, only libraries with more than five issues.
func (s *Store) ListIssuedBookCounts() ([]*model.IssuedBookCount, error) {
	query := `
		SELECT
			library_id,
			library_name,
			issued_count
		FROM issued_books_count
		ORDER BY library_name`

	rows, err := s.db.Query(query)
	if err != nil {
		log.Error("Failed to query issued book counts", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	list := make([]*model.IssuedBookCount, 0)
	for rows.Next() {
		var count model.IssuedBookCount
		if err := rows.Scan(
			&count.LibraryID,
			&count.LibraryName,
			&count.IssuedCount,
		); err != nil {
			return nil, err
		}
		list = append(list, &count)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return list, nil
}

// ListBooksWithTheme reads the book_theme_info view: books joined with their
// theme names. Books without a theme are absent, matching the view's join.
func (s *Store) ListBooksWithTheme() ([]*model.BookThemeInfo, error) {
	query := `
		SELECT
			book_id,
			title,
			author,
			theme_name
		FROM book_theme_info
		ORDER BY title, book_id`

	rows, err := s.db.Query(query)
	if err != nil {
		log.Error("Failed to query books with themes", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	list := make([]*model.BookThemeInfo, 0)
	for rows.Next() {
		var info model.BookThemeInfo
		if err := rows.Scan(
			&info.BookID,
			&info.Title,
			&info.Author,
			&info.ThemeName,
		); err != nil {
			return nil, err
		}
		list = append(list, &info)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return list, nil
}
