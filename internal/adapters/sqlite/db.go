package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// SQLDB is the database interface used by the sqlite repositories.
// *sql.DB satisfies it.
type SQLDB interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

var _ SQLDB = (*sql.DB)(nil)

// Open opens the database at dsn and applies the schema.
//
// The pool is limited to a single connection: SQLite serializes writers anyway, and an
// in-memory database (":memory:") only exists on the connection that created it.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if err := InitDB(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// InitDB enables foreign keys and creates the tables if they do not exist.
func InitDB(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

const schema = `
	CREATE TABLE IF NOT EXISTS team (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS member (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT,
		age INTEGER NOT NULL CHECK (age >= 0),
		team_id INTEGER REFERENCES team(id)
	);

	CREATE INDEX IF NOT EXISTS member_team_id_idx ON member(team_id);
	CREATE INDEX IF NOT EXISTS member_username_idx ON member(username);

	CREATE TABLE IF NOT EXISTS idempotency_keys (
		idempotency_key TEXT NOT NULL,
		method TEXT NOT NULL,
		route TEXT NOT NULL,
		body_hash TEXT NOT NULL,
		status_code INTEGER NOT NULL,
		content_type TEXT NOT NULL,
		body BLOB NOT NULL,
		created_at TEXT NOT NULL,
		PRIMARY KEY (idempotency_key, method, route, body_hash)
	);
`
