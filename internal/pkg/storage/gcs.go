package storage

import (
	"context"
	"errors"
	"io"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

type GCS struct {
	client *gcs.Client
}

func NewGCS(ctx context.Context, opts ...option.ClientOption) (*GCS, error) {
	client, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return &GCS{client: client}, nil
}

func (g *GCS) GetObject(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	r, err := g.client.Bucket(bucket).Object(key).NewReader(ctx)
	if errors.Is(err, gcs.ErrObjectNotExist) || errors.Is(err, gcs.ErrBucketNotExist) {
		return nil, ErrObjectNotFound
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (g *GCS) Close() error {
	return g.client.Close()
}
