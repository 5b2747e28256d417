// Package dbx holds the tiny database/sql abstraction shared by the SQL
// storage backends.
package dbx

import (
	"context"
	"database/sql"
)

// DBTX is the subset of database/sql used by the SQL backends.
// Both *sql.DB and *sql.Tx satisfy this interface.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
