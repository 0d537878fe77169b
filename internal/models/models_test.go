package models

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"agora/internal/db"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database
}

func mustCreateUser(t *testing.T, database *sql.DB, username, email string) int {
	t.Helper()
	id, err := CreateUser(database, username, email, "hash-"+username)
	require.NoError(t, err)
	return int(id)
}
