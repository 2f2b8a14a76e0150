// Package store persists encoded sections as opaque blobs.
//
// A Store is flat key-to-blob storage; Memory and Local implementations
// live here and an S3-compatible one in the minio subpackage.
// SectionStore composes a Store with block compression, optional IO rate
// limiting and batch operations, working on anything that marshals to
// the paletted wire format.
package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a key does not exist.
//
// Implementations must return an error satisfying
// errors.Is(err, ErrNotFound).
var ErrNotFound = errors.New("store: blob not found")

// Store is an abstraction over flat key-to-blob storage.
// Implementations must be safe for concurrent use.
type Store interface {
	// Put writes data under key, replacing any previous blob.
	Put(ctx context.Context, key string, data []byte) error

	// Get returns the blob stored under key.
	Get(ctx context.Context, key string) ([]byte, error)

	// Delete removes the blob stored under key. Deleting a missing key
	// is not an error.
	Delete(ctx context.Context, key string) error
}
