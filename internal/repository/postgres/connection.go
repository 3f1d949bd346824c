package postgres

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/studybuddy/studybuddy-server/database"
)

type Connection struct {
	*sql.DB
}

// NewConnection opens a pgx-backed pool and applies migrations.
func NewConnection(ctx context.Context, dsn string) (*Connection, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open connection pool: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	if err := database.Migrate(ctx, db, database.DialectPostgres); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return &Connection{
		DB: db,
	}, nil
}

func (s *Connection) Close() error {
	if s.DB != nil {
		return s.DB.Close()
	}
	return nil
}

func (s *Connection) Ping(ctx context.Context) error {
	if s.DB == nil {
		return fmt.Errorf("connection pool is nil")
	}
	return s.DB.PingContext(ctx)
}
