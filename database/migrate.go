// Package database holds the schema migrations of the SQL snapshot backends.
package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"sync"

	"github.com/pressly/goose/v3"
)

// Dialects understood by Migrate.
const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite3"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrations embed.FS

// goose keeps its dialect and filesystem in package globals.
var gooseMu sync.Mutex

// Migrate applies every pending migration for dialect to db.
func Migrate(ctx context.Context, db *sql.DB, dialect string) error {
	var dir string
	switch dialect {
	case DialectPostgres:
		dir = "migrations/postgres"
	case DialectSQLite:
		dir = "migrations/sqlite"
	default:
		return fmt.Errorf("unsupported dialect %q", dialect)
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(migrations)
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, dir); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	return nil
}
