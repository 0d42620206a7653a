package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmorozov/bibliotek/model"
)

func TestThemeDeleteRestricted(t *testing.T) {
	s := newTestStore(t)

	library := mustLibrary(t, s, "Central", "1 Main St")
	theme := mustTheme(t, s, "Classics")

	book, err := s.UpsertBook(&model.Book{
		LibraryID: library.ID,
		BookID:    1,
		ThemeID:   &theme.ID,
		Author:    "Tolstoy",
		Title:     "War and Peace",
		Quantity:  1,
	})
	require.NoError(t, err)

	err = s.DeleteTheme(theme.ID)
	assert.True(t, model.IsIntegrityError(err), "delete must be restricted while referenced")

	require.NoError(t, s.ClearBookTheme(book.Key()))
	require.NoError(t, s.DeleteTheme(theme.ID))

	stored, err := s.GetBook(&model.FindBook{LibraryID: &library.ID, BookID: intPtr(1)})
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Nil(t, stored.ThemeID)

	t.Run("missing theme", func(t *testing.T) {
		assert.ErrorIs(t, s.DeleteTheme(theme.ID), model.ErrNotFound)
	})
}

func TestThemeUniqueName(t *testing.T) {
	s := newTestStore(t)

	mustTheme(t, s, "Classics")
	_, err := s.UpsertTheme(&model.Theme{Name: "Classics"})
	assert.True(t, model.IsIntegrityError(err))
}

func TestListThemesOrderAndFilter(t *testing.T) {
	s := newTestStore(t)

	mustTheme(t, s, "Science")
	mustTheme(t, s, "Classics")
	mustTheme(t, s, "History")

	list, err := s.ListThemes(&model.FindTheme{})
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Classics", list[0].Name)
	assert.Equal(t, "History", list[1].Name)
	assert.Equal(t, "Science", list[2].Name)

	filtered, err := s.ListThemes(&model.FindTheme{Name: strPtr("sci")})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "Science", filtered[0].Name)
}
