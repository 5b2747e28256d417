package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/eventreg/internal/dbx"
)

// Dialect selects the SQL flavour used by SQLBackend and RunMigrations.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite3"
	DialectPostgres Dialect = "postgres"
)

type sqlQueries struct {
	get string
	set string
	del string
}

var queries = map[Dialect]sqlQueries{
	DialectSQLite: {
		get: `SELECT value FROM kv_store WHERE key = ?`,
		set: `INSERT INTO kv_store (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		del: `DELETE FROM kv_store WHERE key = ?`,
	},
	DialectPostgres: {
		get: `SELECT value FROM kv_store WHERE key = $1`,
		set: `INSERT INTO kv_store (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`,
		del: `DELETE FROM kv_store WHERE key = $1`,
	},
}

// SQLBackend stores records in the kv_store table. It accepts either a
// *sql.DB or a *sql.Tx.
type SQLBackend struct {
	db dbx.DBTX
	q  sqlQueries
}

func NewSQLiteBackend(db dbx.DBTX) *SQLBackend {
	return &SQLBackend{db: db, q: queries[DialectSQLite]}
}

func NewPostgresBackend(db dbx.DBTX) *SQLBackend {
	return &SQLBackend{db: db, q: queries[DialectPostgres]}
}

func (r *SQLBackend) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := r.db.QueryRowContext(ctx, r.q.get, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get kv[%s]: %w", key, err)
	}
	return value, nil
}

func (r *SQLBackend) Set(ctx context.Context, key string, value []byte) error {
	if _, err := r.db.ExecContext(ctx, r.q.set, key, value); err != nil {
		return fmt.Errorf("failed to set kv[%s]: %w", key, err)
	}
	return nil
}

func (r *SQLBackend) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, r.q.del, key); err != nil {
		return fmt.Errorf("failed to delete kv[%s]: %w", key, err)
	}
	return nil
}
