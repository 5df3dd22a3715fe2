// Package repotest opens throwaway migrated SQLite databases for tests.
package repotest

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/wardrobe/internal/dbx"
	"github.com/dmitrijs2005/wardrobe/internal/server/migrations"
)

// NewSQLite returns a migrated database in a temporary directory. It is
// closed when the test ends.
func NewSQLite(t *testing.T) *sql.DB {
	t.Helper()

	ctx := context.Background()
	db, d, err := dbx.Open(ctx, filepath.Join(t.TempDir(), "wardrobe.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := migrations.Up(ctx, db, d); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}
