// Package storage reads objects from a bucket-style store.
//
// Drivers cover AWS S3, MinIO, Google Cloud Storage, and the local
// filesystem, where a bucket is a directory under a root.
package storage

import (
	"context"
	"errors"
	"io"
)

// ErrObjectNotFound is returned when the bucket has no such key.
var ErrObjectNotFound = errors.New("storage: object not found")

// Storage opens objects for reading.
type Storage interface {
	io.Closer
	// GetObject opens bucket/key. The caller closes the reader.
	GetObject(ctx context.Context, bucket, key string) (io.ReadCloser, error)
}
