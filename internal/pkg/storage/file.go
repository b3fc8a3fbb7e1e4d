package storage

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
)

// File serves buckets as directories under a root.
type File struct {
	root *os.Root
}

func NewFile(dir string) (*File, error) {
	root, err := os.OpenRoot(dir)
	if err != nil {
		return nil, err
	}
	return &File{root: root}, nil
}

// GetObject opens root/bucket/key. Paths escaping the root are rejected by
// os.Root.
func (f *File) GetObject(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	name := key
	if bucket != "" {
		name = bucket + "/" + key
	}

	file, err := f.root.Open(name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrObjectNotFound
	}
	if err != nil {
		return nil, err
	}
	return file, nil
}

func (f *File) Close() error {
	return f.root.Close()
}
