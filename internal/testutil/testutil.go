package testutil

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"userRegistry/internal/config"
	"userRegistry/internal/db"
)

// OpenInMemoryDB opens an in-memory SQLite database and applies the schema.
// The database is closed via t.Cleanup. Each name is a separate database.
func OpenInMemoryDB(t *testing.T, name string) *sql.DB {
	t.Helper()
	d := OpenBareInMemoryDB(t, name)
	if err := db.Migrate(context.Background(), d); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return d
}

// OpenBareInMemoryDB is like OpenInMemoryDB but leaves the schema uncreated.
func OpenBareInMemoryDB(t *testing.T, name string) *sql.DB {
	t.Helper()
	// cache=shared lets every pooled connection see the same named memory DB.
	d, err := db.Open(MemoryConfig(name))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })
	return d
}

// MemoryConfig returns a database config for a named shared-cache memory database.
func MemoryConfig(name string) config.DatabaseConfig {
	return config.DatabaseConfig{
		Path:        "file:" + name + "?mode=memory&cache=shared",
		BusyTimeout: time.Second,
		OpTimeout:   3 * time.Second,
	}
}
