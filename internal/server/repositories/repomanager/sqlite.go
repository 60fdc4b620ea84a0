package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/gophusers/internal/dbx"
	"github.com/dmitrijs2005/gophusers/internal/server/migrations"
	"github.com/dmitrijs2005/gophusers/internal/server/repositories/users"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// SQLiteRepositoryManager vends SQLite-backed repositories.
type SQLiteRepositoryManager struct{}

func (m *SQLiteRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewSQLiteRepository(db)
}

// RunMigrations applies the embedded sqlite migrations.
func (m *SQLiteRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	return runMigrations(ctx, db, "sqlite3", migrations.SQLiteDir)
}

func NewSQLiteRepositoryManager() RepositoryManager {
	return &SQLiteRepositoryManager{}
}
