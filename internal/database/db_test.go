package database

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestOpenMigratedCreatesKVTable(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	path := filepath.Join(t.TempDir(), "nested", "moneymate.db")

	db, err := OpenMigrated(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	var name string
	require.NoError(t, db.QueryRowContext(ctx, `SELECT name FROM sqlite_master WHERE type='table' AND name='kv'`).Scan(&name))
	require.Equal(t, "kv", name)

	version, dirty, err := SchemaVersion(path)
	require.NoError(t, err)
	require.False(t, dirty)
	require.Equal(t, uint(1), version)

	// second run is a no-op
	require.NoError(t, RunMigrations(path))
}
