package storage

import (
	"context"
	"io"
	"time"
)

// ObjectStore is the object-store capability the adapter is written against.
// Implementations translate provider failures into the sentinel errors of
// this package at their boundary.
type ObjectStore interface {
	// Name returns the provider name (e.g., "s3", "minio", "local")
	Name() string

	// Put creates or overwrites the object at key with the content of body
	Put(ctx context.Context, key string, body io.Reader, opts PutOptions) error

	// Head returns object metadata without content.
	// A missing object yields an error matching ErrNotFound.
	Head(ctx context.Context, key string) (*ObjectInfo, error)

	// Get opens the object for streaming. The caller must close the reader.
	// A missing object yields an error matching ErrNotFound.
	Get(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes the object. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// PutOptions carries per-upload request parameters
type PutOptions struct {
	ContentType string
	Size        int64  // -1 when unknown
	ACL         string // canned ACL, empty to send none
}

// ObjectInfo represents metadata about a stored object
type ObjectInfo struct {
	Key          string
	Size         int64
	ContentType  string
	ETag         string
	LastModified time.Time
}
