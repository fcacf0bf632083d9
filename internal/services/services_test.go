package services

import (
	"database/sql"
	"testing"

	"github.com/isdelr/blogit-be/internal/database"
	"github.com/stretchr/testify/require"
)

// newTestDB opens a fresh in-memory database with the schema applied.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := database.New(":memory:")
	require.NoError(t, err)
	// In-memory sqlite is per-connection; keep the pool to one.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}
