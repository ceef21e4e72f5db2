// Package schematest opens throwaway SQLite databases for repository tests.
package schematest

import (
	"database/sql"
	"path/filepath"
	"time"
	"testing"

	"github.com/dmitrijs2005/classkeeper/internal/logging"
	"github.com/dmitrijs2005/classkeeper/internal/schema"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

// Open returns a single-connection database in t.TempDir() and a guard that
// migrates it on first use. Both are released when the test ends.
func Open(t testing.TB) (*sql.DB, *schema.Guard) {
	t.Helper()
	db := OpenRaw(t)
	return db, schema.NewGuard(db, schema.Migrate(logging.Nop()), logging.Nop())
}

// OpenRaw returns an empty database without any schema.
func OpenRaw(t testing.TB) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// Date returns midnight UTC of the given day.
func Date(y int, m int, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}
