// Package repomanager vends store-specific repository implementations and
// runs the schema migrations that match them.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/gophusers/internal/dbx"
	"github.com/dmitrijs2005/gophusers/internal/server/repositories/users"
	"github.com/pressly/goose/v3"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

func runMigrations(ctx context.Context, db *sql.DB, dialect, dir string) error {
	if err := goose.SetDialect(dialect); err != nil {
		return err
	}
	return gooseUpContext(ctx, db, dir)
}
