package kv

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/stolasapp/janus/internal/kv/db"
)

// DB is a [Store] backed by a single-table SQLite database.
type DB struct {
	db *sql.DB
}

// NewDB opens (and migrates, if needed) the SQLite database at dbPath.
func NewDB(ctx context.Context, logger *slog.Logger, dbPath string) (*DB, error) {
	handle, err := db.Open(ctx, logger, dbPath)
	if err != nil {
		return nil, err
	}
	return &DB{db: handle}, nil
}

// Get satisfies the [Store] interface.
func (d *DB) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := d.db.QueryRowContext(ctx,
		`SELECT value FROM kv WHERE key = ?`, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return value, err
}

// Put satisfies the [Store] interface.
func (d *DB) Put(ctx context.Context, key string, value []byte) error {
	_, err := d.db.ExecContext(ctx,
		`INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	return err
}

// Close satisfies the [Store] interface.
func (d *DB) Close() error {
	return d.db.Close()
}

var _ Store = (*DB)(nil)
