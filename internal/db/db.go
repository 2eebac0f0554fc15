package db

import (
	"fmt"

	_ "github.com/glebarez/go-sqlite"
	"github.com/jmoiron/sqlx"
)

// schema is applied on every startup; all statements are idempotent.
// Uniqueness (email globally, list name per owner, item name per list)
// is enforced here so that a racing check-then-insert still cannot
// produce duplicates, and cascading deletes keep items from being
// orphaned when their list goes away.
const schema = `
CREATE TABLE IF NOT EXISTS users (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	email TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS bucketlists (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	created_by INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL,
	UNIQUE(created_by, name)
);

CREATE TABLE IF NOT EXISTS items (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	bucketlist_id INTEGER NOT NULL REFERENCES bucketlists(id) ON DELETE CASCADE,
	done BOOLEAN NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL,
	UNIQUE(bucketlist_id, name)
);`

// Connect opens the SQLite connection pool at the given path, enables
// foreign key enforcement and applies the schema. The returned pool is
// the only shared resource in the process; callers inject it where
// needed instead of reaching for a package-level handle.
func Connect(path string) (*sqlx.DB, error) {
	// Pragmas go in the DSN so every pooled connection gets them, not
	// just the one that would run an Exec.
	dsn := "file:" + path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	pool, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database at %s: %w", path, err)
	}

	if _, err := pool.Exec(schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return pool, nil
}
