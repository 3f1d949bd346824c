package postgres

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"

	"github.com/studybuddy/studybuddy-server/internal/model"
)

var _ model.Storage = (*DocumentRepository)(nil)

// DocumentRepository keeps snapshot documents in the documents table, one
// row per key. A save is a single UPSERT.
type DocumentRepository struct {
	db *Connection
}

func NewDocumentRepository(db *Connection) *DocumentRepository {
	return &DocumentRepository{
		db: db,
	}
}

func (r *DocumentRepository) Upload(ctx context.Context, key string, reader io.Reader) error {
	body, err := io.ReadAll(reader)
	if err != nil {
		return fmt.Errorf("failed to read document: %w", err)
	}

	query := `INSERT INTO documents (key, body, updated_at)
			  VALUES ($1, $2, now())
			  ON CONFLICT (key) DO UPDATE SET body = EXCLUDED.body, updated_at = EXCLUDED.updated_at`

	if _, err := r.db.ExecContext(ctx, query, key, body); err != nil {
		return fmt.Errorf("failed to upsert document: %w", err)
	}
	return nil
}

func (r *DocumentRepository) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	var body []byte
	query := `SELECT body FROM documents WHERE key = $1`

	err := r.db.QueryRowContext(ctx, query, key).Scan(&body)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get document: %w", err)
	}

	return io.NopCloser(bytes.NewReader(body)), nil
}

func (r *DocumentRepository) Delete(ctx context.Context, key string) error {
	query := `DELETE FROM documents WHERE key = $1`

	if _, err := r.db.ExecContext(ctx, query, key); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	return nil
}

func (r *DocumentRepository) Exists(ctx context.Context, key string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM documents WHERE key = $1)`

	if err := r.db.QueryRowContext(ctx, query, key).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check document: %w", err)
	}
	return exists, nil
}
