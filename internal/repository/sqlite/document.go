package sqlite

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

type DocumentRepository struct {
	db *Connection
}

func NewDocumentRepository(db *Connection) *DocumentRepository {
	return &DocumentRepository{db: db}
}

func (r *DocumentRepository) Upload(ctx context.Context, key string, reader io.Reader) error {
	body, err := io.ReadAll(reader)
	if err != nil {
		return fmt.Errorf("failed to read document: %w", err)
	}

	query := `INSERT INTO documents (key, body, updated_at)
			  VALUES (?, ?, CURRENT_TIMESTAMP)
			  ON CONFLICT (key) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at`

	if _, err := r.db.ExecContext(ctx, query, key, body); err != nil {
		return fmt.Errorf("failed to upsert document: %w", err)
	}
	return nil
}

func (r *DocumentRepository) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	var body []byte
	err := r.db.QueryRowContext(ctx, `SELECT body FROM documents WHERE key = ?`, key).Scan(&body)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get document: %w", err)
	}
	return io.NopCloser(bytes.NewReader(body)), nil
}

func (r *DocumentRepository) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM documents WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	return nil
}

func (r *DocumentRepository) Exists(ctx context.Context, key string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM documents WHERE key = ?)`, key).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check document: %w", err)
	}
	return exists, nil
}
