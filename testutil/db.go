package testutil

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"

	"github.com/trezcool/gradebook/core"
	"github.com/trezcool/gradebook/storage/database"
)

// OpenDB opens a fresh, migrated, in-memory SQLite database that is closed when the test ends.
func OpenDB(t *testing.T) *sqlx.DB {
	t.Helper()

	database.SetLogger(nil)
	db, err := database.Open(core.DatabaseConfig{Engine: core.EngineSQLite, Path: ":memory:"})
	if err != nil {
		t.Fatalf("OpenDB() failed: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err = database.Migrate(context.Background(), db, core.EngineSQLite); err != nil {
		t.Fatalf("OpenDB() failed to migrate: %v", err)
	}
	return db
}
