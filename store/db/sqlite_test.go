package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	d, err := NewDB(filepath.Join(t.TempDir(), "library.db"))
	require.NoError(t, err)
	t.Cleanup(func() { d.Close() })
	return d
}

func TestMigrate(t *testing.T) {
	ctx := context.Background()
	d := newTestDB(t)

	require.NoError(t, d.Migrate(ctx))

	for _, table := range []string{"libraries", "themes", "publishers", "books", "readers", "subscriptions", "migration_history"} {
		exist, err := d.CheckTableExists(ctx, table)
		require.NoError(t, err)
		assert.True(t, exist, "table %s must exist after migration", table)
	}

	history, err := d.FindMigrationHistoryList(ctx)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, schemaVersion, history[0].Version)

	t.Run("second migrate is a no-op", func(t *testing.T) {
		require.NoError(t, d.Migrate(ctx))
		history, err := d.FindMigrationHistoryList(ctx)
		require.NoError(t, err)
		assert.Len(t, history, 1)
	})
}

func TestForeignKeysEnforced(t *testing.T) {
	ctx := context.Background()
	d := newTestDB(t)
	require.NoError(t, d.Migrate(ctx))

	_, err := d.Exec("INSERT INTO books (library_id, book_id, author, title) VALUES (1, 1, 'a', 't')")
	assert.Error(t, err, "book insert without its library must violate the foreign key")
}

func TestNewDBRequiresPath(t *testing.T) {
	_, err := NewDB("")
	assert.Error(t, err)
}
