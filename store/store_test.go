package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kmorozov/bibliotek/config"
	"github.com/kmorozov/bibliotek/log"
	"github.com/kmorozov/bibliotek/model"
	"github.com/kmorozov/bibliotek/store/db"
)

// Initialize the logger and config
func init() {
	config.GetDefaultOptions()
	config.Opts.LogFile = filepath.Join(os.TempDir(), "bibliotek-test.log")
	config.Opts.LogLevel = "error"
	log.Logger = log.NewLogger()
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	d, err := db.NewDB(filepath.Join(t.TempDir(), "library.db"))
	require.NoError(t, err)
	t.Cleanup(func() { d.Close() })
	require.NoError(t, d.Migrate(context.Background()))
	return NewStore(d)
}

func mustLibrary(t *testing.T, s *Store, name, address string) *model.Library {
	t.Helper()
	library, err := s.UpsertLibrary(&model.Library{Name: name, Address: address})
	require.NoError(t, err)
	return library
}

func mustTheme(t *testing.T, s *Store, name string) *model.Theme {
	t.Helper()
	theme, err := s.UpsertTheme(&model.Theme{Name: name})
	require.NoError(t, err)
	return theme
}

func mustReader(t *testing.T, s *Store, fullName string, phone *string) *model.Reader {
	t.Helper()
	reader, err := s.UpsertReader(&model.Reader{FullName: fullName, Phone: phone})
	require.NoError(t, err)
	return reader
}

func mustBook(t *testing.T, s *Store, libraryID, bookID int, author, title string, quantity int) *model.Book {
	t.Helper()
	book, err := s.UpsertBook(&model.Book{
		LibraryID: libraryID,
		BookID:    bookID,
		Author:    author,
		Title:     title,
		Quantity:  quantity,
	})
	require.NoError(t, err)
	return book
}

func intPtr(v int) *int {
	return &v
}

func strPtr(v string) *string {
	return &v
}
