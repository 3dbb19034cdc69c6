package repositories

import (
	"database/sql"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
)

// newTestDB поднимает in-memory sqlite со схемой проекта.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	_, file, _, _ := runtime.Caller(0)
	schemaPath := filepath.Join(filepath.Dir(file), "..", "..", "db", "schema.sql")
	schema, err := os.ReadFile(schemaPath)
	require.NoError(t, err)

	_, err = db.Exec(string(schema))
	require.NoError(t, err)
	return db
}

func insertGuard(t *testing.T, db *sql.DB, username string) int {
	t.Helper()
	res, err := db.Exec(`INSERT INTO guards (username, password_hash, full_name) VALUES (?, '', ?)`,
		username, username)
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)
	return int(id)
}

func insertCamera(t *testing.T, db *sql.DB, code string) int {
	t.Helper()
	res, err := db.Exec(`INSERT INTO cameras (code, name, zone) VALUES (?, ?, 'КПП')`, code, "Камера "+code)
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)
	return int(id)
}
