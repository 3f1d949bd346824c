// Package snapshot persists whole-document JSON snapshots of accounts and
// chat history on top of any model.Storage backend.
package snapshot

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/studybuddy/studybuddy-server/internal/logger"
	"github.com/studybuddy/studybuddy-server/internal/model"
)

// read decodes the document at key into v. It reports false when the
// document is absent or unreadable, logging the latter.
func read(ctx context.Context, storage model.Storage, log *logger.Logger, key string, v any) bool {
	rc, err := storage.Download(ctx, key)
	if err != nil {
		if !errors.Is(err, model.ErrNotFound) {
			log.WarnContext(ctx, "Snapshot: failed to download document", "key", key, "error", err)
		}
		return false
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		log.WarnContext(ctx, "Snapshot: failed to read document", "key", key, "error", err)
		return false
	}

	if err := json.Unmarshal(data, v); err != nil {
		log.WarnContext(ctx, "Snapshot: document is corrupt, treating as empty", "key", key, "error", err)
		return false
	}

	return true
}

func write(ctx context.Context, storage model.Storage, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	if err := storage.Upload(ctx, key, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to upload snapshot: %w", err)
	}
	return nil
}
