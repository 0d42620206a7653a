package store

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmorozov/bibliotek/model"
)

func bookQuantity(t *testing.T, s *Store, key model.BookKey) int {
	t.Helper()
	book, err := s.GetBook(&model.FindBook{LibraryID: &key.LibraryID, BookID: &key.BookID})
	require.NoError(t, err)
	require.NotNil(t, book)
	return book.Quantity
}

func TestIssueAndReturn(t *testing.T) {
	s := newTestStore(t)

	library := mustLibrary(t, s, "Central", "1 Main St")
	reader := mustReader(t, s, "Alice Reader", nil)
	book := mustBook(t, s, library.ID, 1, "Tolstoy", "War and Peace", 1)

	sub, err := s.IssueBook(&model.Subscription{
		LibraryID: book.LibraryID,
		BookID:    book.BookID,
		ReaderID:  reader.ID,
		IssueDate: "2026-01-10",
		Advance:   2.5,
	})
	require.NoError(t, err)
	assert.Nil(t, sub.ReturnDate)
	assert.Equal(t, 2.5, sub.Advance)
	assert.Equal(t, 0, bookQuantity(t, s, book.Key()))

	t.Run("second issue is out of stock", func(t *testing.T) {
		_, err := s.IssueBook(&model.Subscription{
			LibraryID: book.LibraryID,
			BookID:    book.BookID,
			ReaderID:  reader.ID,
			IssueDate: "2026-01-11",
		})
		assert.ErrorIs(t, err, model.ErrOutOfStock)
		assert.Equal(t, 0, bookQuantity(t, s, book.Key()))
	})

	t.Run("return restores quantity", func(t *testing.T) {
		require.NoError(t, s.ReturnBook(sub.Key(), "2026-02-10"))
		assert.Equal(t, 1, bookQuantity(t, s, book.Key()))

		subs, err := s.ListSubscriptions(&model.FindSubscription{ReaderID: &reader.ID})
		require.NoError(t, err)
		require.Len(t, subs, 1)
		require.NotNil(t, subs[0].ReturnDate)
		assert.Equal(t, "2026-02-10", *subs[0].ReturnDate)
	})

	t.Run("double return is rejected", func(t *testing.T) {
		err := s.ReturnBook(sub.Key(), "2026-02-11")
		assert.ErrorIs(t, err, model.ErrAlreadyReturned)
		assert.Equal(t, 1, bookQuantity(t, s, book.Key()), "quantity must not double-increment")
	})

	t.Run("same reader may borrow again on a new date", func(t *testing.T) {
		_, err := s.IssueBook(&model.Subscription{
			LibraryID: book.LibraryID,
			BookID:    book.BookID,
			ReaderID:  reader.ID,
			IssueDate: "2026-03-01",
		})
		require.NoError(t, err)
		assert.Equal(t, 0, bookQuantity(t, s, book.Key()))
	})
}

func TestIssueErrors(t *testing.T) {
	s := newTestStore(t)

	library := mustLibrary(t, s, "Central", "1 Main St")
	reader := mustReader(t, s, "Alice Reader", nil)
	book := mustBook(t, s, library.ID, 1, "Tolstoy", "War and Peace", 2)

	t.Run("unknown book", func(t *testing.T) {
		_, err := s.IssueBook(&model.Subscription{
			LibraryID: library.ID,
			BookID:    99,
			ReaderID:  reader.ID,
			IssueDate: "2026-01-10",
		})
		assert.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("unknown reader leaves quantity untouched", func(t *testing.T) {
		_, err := s.IssueBook(&model.Subscription{
			LibraryID: book.LibraryID,
			BookID:    book.BookID,
			ReaderID:  9999,
			IssueDate: "2026-01-10",
		})
		assert.True(t, model.IsIntegrityError(err))
		assert.Equal(t, 2, bookQuantity(t, s, book.Key()), "failed issue must not decrement")
	})

	t.Run("duplicate loan identity leaves quantity untouched", func(t *testing.T) {
		_, err := s.IssueBook(&model.Subscription{
			LibraryID: book.LibraryID,
			BookID:    book.BookID,
			ReaderID:  reader.ID,
			IssueDate: "2026-01-10",
		})
		require.NoError(t, err)

		_, err = s.IssueBook(&model.Subscription{
			LibraryID: book.LibraryID,
			BookID:    book.BookID,
			ReaderID:  reader.ID,
			IssueDate: "2026-01-10",
		})
		assert.True(t, model.IsIntegrityError(err))
		assert.Equal(t, 1, bookQuantity(t, s, book.Key()))
	})

	t.Run("negative advance rejected", func(t *testing.T) {
		_, err := s.IssueBook(&model.Subscription{
			LibraryID: book.LibraryID,
			BookID:    book.BookID,
			ReaderID:  reader.ID,
			IssueDate: "2026-01-12",
			Advance:   -1,
		})
		assert.True(t, model.IsValidationError(err))
	})
}

func TestReturnErrors(t *testing.T) {
	s := newTestStore(t)

	library := mustLibrary(t, s, "Central", "1 Main St")
	reader := mustReader(t, s, "Alice Reader", nil)
	mustBook(t, s, library.ID, 1, "Tolstoy", "War and Peace", 1)

	key := model.SubscriptionKey{
		LibraryID: library.ID,
		BookID:    1,
		ReaderID:  reader.ID,
		IssueDate: "2026-01-10",
	}

	assert.ErrorIs(t, s.ReturnBook(key, "2026-02-10"), model.ErrNotFound)

	err := s.ReturnBook(key, "  ")
	assert.True(t, model.IsValidationError(err))
}

func TestViews(t *testing.T) {
	s := newTestStore(t)

	library := mustLibrary(t, s, "Central", "1 Main St")
	reader := mustReader(t, s, "Alice Reader", nil)
	theme := mustTheme(t, s, "Classics")

	inStock := mustBook(t, s, library.ID, 1, "Tolstoy", "War and Peace", 1)
	_, err := s.UpsertBook(&model.Book{
		LibraryID: library.ID,
		BookID:    2,
		ThemeID:   &theme.ID,
		Author:    "Chekhov",
		Title:     "Stories",
		Quantity:  0,
	})
	require.NoError(t, err)

	t.Run("available books excludes zero quantity", func(t *testing.T) {
		available, err := s.ListAvailableBooks(&library.ID)
		require.NoError(t, err)
		require.Len(t, available, 1)
		assert.Equal(t, inStock.Key(), available[0].Key())
	})

	t.Run("book theme info joins theme names", func(t *testing.T) {
		infos, err := s.ListBooksWithTheme()
		require.NoError(t, err)
		require.Len(t, infos, 1, "books without a theme are absent from the join")
		assert.Equal(t, "Stories", infos[0].Title)
		assert.Equal(t, "Classics", infos[0].ThemeName)
	})

	t.Run("issued counts only above five", func(t *testing.T) {
		counts, err := s.ListIssuedBookCounts()
		require.NoError(t, err)
		assert.Empty(t, counts)

		mustBook(t, s, library.ID, 3, "Homer", "Iliad", 10)
		for day := 10; day < 16; day++ {
			_, err := s.IssueBook(&model.Subscription{
				LibraryID: library.ID,
				BookID:    3,
				ReaderID:  reader.ID,
				IssueDate: fmt.Sprintf("2026-01-%02d", day),
			})
			require.NoError(t, err)
		}

		counts, err = s.ListIssuedBookCounts()
		require.NoError(t, err)
		require.Len(t, counts, 1)
		assert.Equal(t, library.ID, counts[0].LibraryID)
		assert.Equal(t, "Central", counts[0].LibraryName)
		assert.Equal(t, 6, counts[0].IssuedCount)
	})
}
