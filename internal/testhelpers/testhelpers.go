package testhelpers

import (
	"context"
	"database/sql"
	"testing"

	"github.com/johnwards/shopdb/internal/database"
	"github.com/johnwards/shopdb/internal/seed"
)

// NewTestDB returns an in-memory SQLite database configured the same way as
// production. The database is automatically closed when the test completes.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Close()
	})

	return db
}

// NewSeededDB returns an in-memory database with the schema created and the
// standard seed data loaded.
func NewSeededDB(t *testing.T) *sql.DB {
	t.Helper()

	db := NewTestDB(t)
	ctx := context.Background()

	if err := database.CreateTables(ctx, db, nil); err != nil {
		t.Fatalf("create tables: %v", err)
	}
	if err := seed.Seed(ctx, db, nil); err != nil {
		t.Fatalf("seed: %v", err)
	}

	return db
}
