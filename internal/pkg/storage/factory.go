package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/api/option"
)

const (
	DriverFile  = "file"
	DriverS3    = "s3"
	DriverGCS   = "gcs"
	DriverMinIO = "minio"
)

var ErrUnknownDriver = errors.New("storage: unknown driver")

// FactoryOptions carries the settings of every driver; only the selected
// one is read.
type FactoryOptions struct {
	FileRoot string
	S3       S3Options
	GCS      []option.ClientOption
	MinIO    MinIOOptions
}

func NewFromDriver(ctx context.Context, driver string, opts FactoryOptions) (Storage, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case DriverFile:
		return NewFile(opts.FileRoot)
	case DriverS3:
		return NewS3(ctx, opts.S3)
	case DriverGCS:
		return NewGCS(ctx, opts.GCS...)
	case DriverMinIO:
		return NewMinIO(opts.MinIO)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownDriver, driver)
	}
}
