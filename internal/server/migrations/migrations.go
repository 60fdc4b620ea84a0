// Package migrations embeds the goose SQL migrations, one directory per
// supported SQL dialect.
package migrations

import "embed"

// Migrations holds postgres/*.sql and sqlite/*.sql.
//
//go:embed postgres/*.sql sqlite/*.sql
var Migrations embed.FS

const (
	// PostgresDir is the migration directory for the pgx dialect.
	PostgresDir = "postgres"
	// SQLiteDir is the migration directory for the sqlite3 dialect.
	SQLiteDir = "sqlite"
)
