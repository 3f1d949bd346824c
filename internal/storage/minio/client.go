package minio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"github.com/minio/minio-go/v7"

	"github.com/studybuddy/studybuddy-server/internal/model"
)

const noSuchKey = "NoSuchKey"

// Internal adapter interface to enable mocking without a real MinIO server.
type minioAPI interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (io.ReadCloser, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
	StatObject(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error)
}

// Wrapper to adapt *minio.Client to minioAPI.
type minioClientWrapper struct{ c *minio.Client }

func (w minioClientWrapper) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	return w.c.BucketExists(ctx, bucketName)
}

func (w minioClientWrapper) MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error {
	return w.c.MakeBucket(ctx, bucketName, opts)
}

func (w minioClientWrapper) PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	return w.c.PutObject(ctx, bucketName, objectName, reader, objectSize, opts)
}

// GetObject is lazy in minio-go; Stat forces the request so a missing key
// is reported here rather than on first Read.
func (w minioClientWrapper) GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (io.ReadCloser, error) {
	obj, err := w.c.GetObject(ctx, bucketName, objectName, opts)
	if err != nil {
		return nil, err
	}
	if _, err := obj.Stat(); err != nil {
		obj.Close()
		return nil, err
	}
	return obj, nil
}

func (w minioClientWrapper) RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error {
	return w.c.RemoveObject(ctx, bucketName, objectName, opts)
}

func (w minioClientWrapper) StatObject(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error) {
	return w.c.StatObject(ctx, bucketName, objectName, opts)
}

var _ model.Storage = (*Client)(nil)

// Client stores snapshot documents as objects in one bucket. A PUT replaces
// an object atomically, which gives the whole-snapshot save semantics.
type Client struct {
	api    minioAPI
	bucket string
	prefix string
}

// NewClient creates a new MinIO storage client using a real *minio.Client instance.
func NewClient(ctx context.Context, client *minio.Client, bucket, prefix string) (*Client, error) {
	return NewClientWithAPI(ctx, minioClientWrapper{c: client}, bucket, prefix)
}

// NewClientWithAPI allows injecting a mockable API (used in tests).
func NewClientWithAPI(ctx context.Context, api minioAPI, bucket, prefix string) (*Client, error) {
	c := &Client{
		api:    api,
		bucket: bucket,
		prefix: prefix,
	}

	err := c.ensureBucketExists(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to ensure bucket exists: %w", err)
	}

	return c, nil
}

func (c *Client) ensureBucketExists(ctx context.Context) error {
	exists, err := c.api.BucketExists(ctx, c.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	if !exists {
		err = c.api.MakeBucket(ctx, c.bucket, minio.MakeBucketOptions{})
		if err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return nil
}

func (c *Client) objectName(key string) string {
	if c.prefix == "" {
		return key
	}
	return path.Join(c.prefix, key)
}

// Upload replaces the object at key. Snapshots are small, so the body is
// buffered to send a sized single-part PUT.
func (c *Client) Upload(ctx context.Context, key string, reader io.Reader) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return fmt.Errorf("failed to read document: %w", err)
	}

	_, err = c.api.PutObject(ctx, c.bucket, c.objectName(key), bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return fmt.Errorf("failed to upload object: %w", err)
	}
	return nil
}

// Download returns the object at key or model.ErrNotFound.
func (c *Client) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	obj, err := c.api.GetObject(ctx, c.bucket, c.objectName(key), minio.GetObjectOptions{})
	if err != nil {
		if isNotFound(err) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get object: %w", err)
	}
	return obj, nil
}

// Delete removes the object at key.
func (c *Client) Delete(ctx context.Context, key string) error {
	err := c.api.RemoveObject(ctx, c.bucket, c.objectName(key), minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

// Exists checks if the object exists.
func (c *Client) Exists(ctx context.Context, key string) (bool, error) {
	_, err := c.api.StatObject(ctx, c.bucket, c.objectName(key), minio.StatObjectOptions{})
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat object: %w", err)
	}
	return true, nil
}

func isNotFound(err error) bool {
	var resp minio.ErrorResponse
	if errors.As(err, &resp) {
		return resp.Code == noSuchKey
	}
	return minio.ToErrorResponse(err).Code == noSuchKey
}
