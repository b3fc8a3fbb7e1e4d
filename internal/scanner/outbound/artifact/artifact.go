// Package artifact fetches the tokenizer artifact the classifier was
// trained with.
package artifact

import (
	"context"
	"fmt"

	"github.com/shandysiswandi/phishguard/internal/pkg/instrument"
	"github.com/shandysiswandi/phishguard/internal/pkg/storage"
	"github.com/shandysiswandi/phishguard/internal/pkg/tokenizer"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// LoadTokenizer reads bucket/key from store and parses it.
func LoadTokenizer(
	ctx context.Context,
	store storage.Storage,
	bucket, key string,
	ins instrument.Instrumentation,
) (*tokenizer.Tokenizer, error) {
	ctx, span := ins.Tracer("scanner.outbound.artifact").Start(ctx, "LoadTokenizer")
	defer span.End()
	span.SetAttributes(attribute.String("bucket", bucket), attribute.String("key", key))

	tok, err := load(ctx, store, bucket, key)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("max_length", tok.MaxLen()))
	return tok, nil
}

func load(ctx context.Context, store storage.Storage, bucket, key string) (*tokenizer.Tokenizer, error) {
	rc, err := store.GetObject(ctx, bucket, key)
	if err != nil {
		return nil, fmt.Errorf("artifact: open %s/%s: %w", bucket, key, err)
	}
	defer rc.Close()

	tok, err := tokenizer.LoadArtifact(rc)
	if err != nil {
		return nil, fmt.Errorf("artifact: parse %s/%s: %w", bucket, key, err)
	}

	return tok, nil
}
