package model

import (
	"context"
	"io"
)

// Storage keeps whole documents under string keys. Upload replaces the
// document atomically; Download of an absent key returns ErrNotFound.
type Storage interface {
	Upload(ctx context.Context, key string, reader io.Reader) error
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}
