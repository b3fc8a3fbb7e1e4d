package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shandysiswandi/phishguard/internal/identity/entity"
	"github.com/shandysiswandi/phishguard/internal/pkg/goerror"
	"github.com/shandysiswandi/phishguard/internal/pkg/instrument"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const keyPrefix = "identity:session:"

// Cache stores sessions as JSON values that expire after ttl of inactivity.
type Cache struct {
	client redis.UniversalClient
	ttl    time.Duration
	ins    instrument.Instrumentation
}

func NewCache(client redis.UniversalClient, ttl time.Duration, ins instrument.Instrumentation) *Cache {
	return &Cache{client: client, ttl: ttl, ins: ins}
}

func (c *Cache) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return c.ins.Tracer("identity.outbound.cache").Start(ctx, name)
}

func (c *Cache) endSpan(span trace.Span, err error) {
	if err != nil && !errors.Is(err, goerror.ErrNotFound) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func (c *Cache) Get(ctx context.Context, id string) (sess *entity.Session, err error) {
	ctx, span := c.startSpan(ctx, "Get")
	defer func() { c.endSpan(span, err) }()

	raw, err := c.client.Get(ctx, keyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, goerror.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	sess = &entity.Session{}
	if err = json.Unmarshal(raw, sess); err != nil {
		return nil, err
	}
	sess.ID = id

	return sess, nil
}

func (c *Cache) Save(ctx context.Context, sess *entity.Session) (err error) {
	ctx, span := c.startSpan(ctx, "Save")
	defer func() { c.endSpan(span, err) }()

	raw, err := json.Marshal(sess)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, keyPrefix+sess.ID, raw, c.ttl).Err()
}

func (c *Cache) Delete(ctx context.Context, id string) (err error) {
	ctx, span := c.startSpan(ctx, "Delete")
	defer func() { c.endSpan(span, err) }()

	return c.client.Del(ctx, keyPrefix+id).Err()
}
