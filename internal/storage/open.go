package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/eventreg/internal/common"
	"github.com/dmitrijs2005/eventreg/internal/filex"
	"github.com/dmitrijs2005/eventreg/internal/logging"
	"github.com/dmitrijs2005/eventreg/internal/storage/migrations"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"

	_ "modernc.org/sqlite"
)

// Driver names accepted by Open.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

// Options selects and locates the storage medium.
//
// DSN meaning depends on Driver: a file path or "file:" URI for sqlite, a
// postgres:// URL for postgres, a redis:// URL for redis. It is ignored for
// memory.
type Options struct {
	Driver string
	DSN    string
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations applies the embedded kv_store migrations for the dialect.
func RunMigrations(ctx context.Context, db *sql.DB, dialect Dialect) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect(string(dialect)); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	dir := "sqlite"
	if dialect == DialectPostgres {
		dir = "postgres"
	}
	if err := gooseUpContext(ctx, db, dir); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// Open connects to the configured medium, prepares its schema and returns
// the backend with a function that releases it.
func Open(ctx context.Context, opts Options, log logging.Logger) (Backend, func() error, error) {
	switch opts.Driver {
	case DriverMemory:
		log.Info(ctx, "using in-memory storage; data is lost on exit")
		return NewMemoryBackend(), func() error { return nil }, nil

	case DriverSQLite:
		if path := filex.SQLitePath(opts.DSN); path != "" {
			if err := filex.EnsureParentDir(path); err != nil {
				return nil, nil, err
			}
		}
		db, err := openSQL(ctx, "sqlite", opts.DSN, DialectSQLite)
		if err != nil {
			return nil, nil, err
		}
		log.Info(ctx, "storage opened", "driver", opts.Driver, "dsn", opts.DSN)
		return NewSQLiteBackend(db), db.Close, nil

	case DriverPostgres:
		db, err := openSQL(ctx, "pgx", opts.DSN, DialectPostgres)
		if err != nil {
			return nil, nil, err
		}
		log.Info(ctx, "storage opened", "driver", opts.Driver)
		return NewPostgresBackend(db), db.Close, nil

	case DriverRedis:
		ro, err := redis.ParseURL(opts.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid redis url: %w", err)
		}
		c := redis.NewClient(ro)
		if err := c.Ping(ctx).Err(); err != nil {
			_ = c.Close()
			return nil, nil, fmt.Errorf("redis ping failed: %w", err)
		}
		log.Info(ctx, "storage opened", "driver", opts.Driver, "addr", ro.Addr)
		return NewRedisBackend(c), c.Close, nil

	default:
		return nil, nil, fmt.Errorf("%w: %q", common.ErrUnknownDriver, opts.Driver)
	}
}

func openSQL(ctx context.Context, driverName, dsn string, dialect Dialect) (*sql.DB, error) {
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}
	if dialect == DialectSQLite {
		// one writer at a time; also keeps ":memory:" on a single connection
		db.SetMaxOpenConns(1)
	}
	if err := RunMigrations(ctx, db, dialect); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
