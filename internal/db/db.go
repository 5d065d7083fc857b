package db

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	stdfs "io/fs"
	"strings"

	"github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"

	"userRegistry/internal/config"
)

// DefaultPath is used when no database path is configured.
const DefaultPath = "users.db"

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Open opens (or creates) a local SQLite database file. It does not create the
// schema; call Migrate for that.
//
// In-memory databases shared between connections use a DSN such as
//
//	file:name?mode=memory&cache=shared
//
// A positive BusyTimeout is passed as _busy_timeout so every pooled
// connection gets it; zero keeps the driver default.
func Open(cfg config.DatabaseConfig) (*sql.DB, error) {
	path := strings.TrimSpace(cfg.Path)
	if path == "" {
		path = DefaultPath
	}
	d, err := sql.Open("sqlite3", dsn(path, cfg))
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := d.Ping(); err != nil {
		_ = d.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	// WAL is stored in the file itself, so one connection is enough. Memory and
	// read-only databases refuse it; they keep their journal mode.
	_, _ = d.Exec(`PRAGMA journal_mode=WAL`)
	return d, nil
}

func dsn(path string, cfg config.DatabaseConfig) string {
	if cfg.BusyTimeout <= 0 {
		return path
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return fmt.Sprintf("%s%s_busy_timeout=%d", path, sep, cfg.BusyTimeout.Milliseconds())
}

// Migrate applies every pending embedded migration. Already-applied versions
// are skipped, so calling it repeatedly is safe.
//
// A read-only database that already has the users table counts as migrated,
// even though goose cannot record its version there.
func Migrate(ctx context.Context, d *sql.DB) error {
	p, err := newProvider(d)
	if err != nil {
		return err
	}
	if _, err := p.Up(ctx); err != nil {
		if isReadOnly(err) {
			ok, lookupErr := hasUsersTable(ctx, d)
			if lookupErr == nil && ok {
				return nil
			}
		}
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

// SchemaVersion reports the latest applied migration version, 0 if none.
func SchemaVersion(ctx context.Context, d *sql.DB) (int64, error) {
	p, err := newProvider(d)
	if err != nil {
		return 0, err
	}
	v, err := p.GetDBVersion(ctx)
	if err != nil {
		return 0, fmt.Errorf("get schema version: %w", err)
	}
	return v, nil
}

func newProvider(d *sql.DB) (*goose.Provider, error) {
	if d == nil {
		return nil, errors.New("nil db")
	}
	fsys, err := stdfs.Sub(migrationsFS, "migrations")
	if err != nil {
		return nil, err
	}
	p, err := goose.NewProvider(goose.DialectSQLite3, d, fsys)
	if err != nil {
		return nil, fmt.Errorf("new migration provider: %w", err)
	}
	return p, nil
}

func hasUsersTable(ctx context.Context, d *sql.DB) (bool, error) {
	var name string
	err := d.QueryRowContext(ctx, `SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'users'`).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func isReadOnly(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrReadonly {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "readonly database")
}
