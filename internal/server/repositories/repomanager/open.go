package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrUnsupportedDSN = errors.New("unsupported database dsn")

// Store bundles an open connection pool with the manager for its backend.
type Store struct {
	DB      *sql.DB
	Manager RepositoryManager
	Driver  string
}

// Close releases the underlying pool.
func (s *Store) Close() error {
	return s.DB.Close()
}

// sqlOpen is a seam for tests.
var sqlOpen = sql.Open

// Open picks the driver from the DSN scheme, opens a pool and verifies it
// with a ping.
//
//	postgres://... or postgresql://...  -> pgx
//	sqlite:path, file:path or :memory:  -> sqlite
func Open(ctx context.Context, dsn string) (*Store, error) {
	driver, source, err := resolveDSN(dsn)
	if err != nil {
		return nil, err
	}

	db, err := sqlOpen(driver, source)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}

	var manager RepositoryManager
	switch driver {
	case "pgx":
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(30 * time.Minute)
		manager = NewPostgresRepositoryManager()
	default:
		// one writer at a time; also keeps :memory: on a single connection
		db.SetMaxOpenConns(1)
		manager = NewSQLiteRepositoryManager()
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}

	return &Store{DB: db, Manager: manager, Driver: driver}, nil
}

func resolveDSN(dsn string) (driver, source string, err error) {
	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return "pgx", dsn, nil
	case strings.HasPrefix(dsn, "sqlite://"):
		return "sqlite", strings.TrimPrefix(dsn, "sqlite://"), nil
	case strings.HasPrefix(dsn, "sqlite:"):
		return "sqlite", strings.TrimPrefix(dsn, "sqlite:"), nil
	case strings.HasPrefix(dsn, "file:"), dsn == ":memory:":
		return "sqlite", dsn, nil
	default:
		return "", "", fmt.Errorf("%w: %q", ErrUnsupportedDSN, dsn)
	}
}
