// Package lock provides short-lived mutual exclusion keyed by string,
// backed by Redis so every replica sees the same lock.
package lock

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sethvargo/go-retry"
)

// ErrNotAcquired is returned when the lock stays held by someone else for
// every attempt.
var ErrNotAcquired = errors.New("lock not acquired")

// Unlock releases a held lock. It is safe to call more than once.
type Unlock func(ctx context.Context) error

// Locker hands out exclusive locks.
type Locker interface {
	Lock(ctx context.Context, key string) (Unlock, error)
}

type generator interface {
	Generate() string
}

// Deletes the key only when it still holds our token, so an expired lock
// re-acquired by another holder is left alone.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Config tunes a Redis locker.
type Config struct {
	// Prefix is prepended to every key.
	Prefix string
	// TTL bounds how long a crashed holder can keep the lock.
	TTL time.Duration
	// RetryInterval is the first pause between acquisition attempts. It
	// doubles on every attempt up to MaxInterval.
	RetryInterval time.Duration
	// MaxInterval caps a single pause.
	MaxInterval time.Duration
	// MaxRetries is how many extra attempts are made before ErrNotAcquired.
	MaxRetries uint64
}

// Redis implements Locker with SET NX PX and a compare-and-delete release.
type Redis struct {
	client redis.UniversalClient
	token  generator
	cfg    Config
}

func NewRedis(client redis.UniversalClient, token generator, cfg Config) *Redis {
	if cfg.Prefix == "" {
		cfg.Prefix = "lock:"
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 10 * time.Second
	}
	if cfg.RetryInterval <= 0 {
		cfg.RetryInterval = 50 * time.Millisecond
	}
	if cfg.MaxInterval < cfg.RetryInterval {
		cfg.MaxInterval = 8 * cfg.RetryInterval
	}

	return &Redis{client: client, token: token, cfg: cfg}
}

// Lock blocks until key is acquired, the retries run out, or ctx ends.
func (r *Redis) Lock(ctx context.Context, key string) (Unlock, error) {
	fk := r.cfg.Prefix + key
	token := r.token.Generate()

	backoff := retry.NewExponential(r.cfg.RetryInterval)
	backoff = retry.WithCappedDuration(r.cfg.MaxInterval, backoff)
	backoff = retry.WithMaxRetries(r.cfg.MaxRetries, backoff)
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		ok, err := r.client.SetNX(ctx, fk, token, r.cfg.TTL).Result()
		if err != nil {
			return err
		}
		if !ok {
			return retry.RetryableError(ErrNotAcquired)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return func(ctx context.Context) error {
		return releaseScript.Run(ctx, r.client, []string{fk}, token).Err()
	}, nil
}
