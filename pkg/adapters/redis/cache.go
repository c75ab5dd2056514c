package redis

import (
	"context"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"

	"github.com/aretw0/automata/pkg/domain"
)

const (
	acceptedValue = "1"
	rejectedValue = "0"
)

// Cache implements ports.VerdictCache using Redis.
type Cache struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Cache)

// WithTTL sets the expiration for verdicts.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		c.ttl = ttl
	}
}

// WithPrefix sets the key prefix for verdicts.
func WithPrefix(prefix string) Option {
	return func(c *Cache) {
		c.prefix = prefix
	}
}

// New creates a new Redis cache with options.
func New(address, password string, db int, opts ...Option) *Cache {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis cache from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Cache {
	cache := &Cache{
		client: client,
		prefix: "automata:verdict:",
		ttl:    0, // No expiration by default
	}

	for _, opt := range opts {
		opt(cache)
	}

	return cache
}

func (c *Cache) key(k string) string {
	return c.prefix + k
}

func (c *Cache) indexKey() string {
	return c.prefix + "index"
}

// Save persists the verdict and records the key in the index sorted set,
// scored by its expiry.
func (c *Cache) Save(ctx context.Context, key string, accepted bool) error {
	val := rejectedValue
	if accepted {
		val = acceptedValue
	}

	pipe := c.client.Pipeline()
	pipe.Set(ctx, c.key(key), val, c.ttl)

	score := float64(time.Now().Add(c.ttl).Unix())
	if c.ttl == 0 {
		score = 4102444800 // 2100-01-01
	}
	pipe.ZAdd(ctx, c.indexKey(), backend.Z{
		Score:  score,
		Member: key,
	})

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save verdict to redis: %w", err)
	}
	return nil
}

// Load retrieves the verdict from Redis.
func (c *Cache) Load(ctx context.Context, key string) (bool, error) {
	val, err := c.client.Get(ctx, c.key(key)).Result()
	if err != nil {
		if err == backend.Nil {
			return false, domain.ErrVerdictNotFound
		}
		return false, fmt.Errorf("failed to get verdict from redis: %w", err)
	}
	switch val {
	case acceptedValue:
		return true, nil
	case rejectedValue:
		return false, nil
	}
	return false, fmt.Errorf("corrupt verdict %q for key %s", val, key)
}

// Delete removes the verdict.
func (c *Cache) Delete(ctx context.Context, key string) error {
	pipe := c.client.Pipeline()
	pipe.Del(ctx, c.key(key))
	pipe.ZRem(ctx, c.indexKey(), key)

	_, err := pipe.Exec(ctx)
	return err
}

// List returns cached keys, pruning expired entries from the index first.
func (c *Cache) List(ctx context.Context) ([]string, error) {
	now := float64(time.Now().Unix())
	err := c.client.ZRemRangeByScore(ctx, c.indexKey(), "-inf", fmt.Sprintf("%f", now)).Err()
	if err != nil {
		return nil, fmt.Errorf("failed to prune expired verdicts: %w", err)
	}

	keys, err := c.client.ZRange(ctx, c.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list verdicts: %w", err)
	}
	return keys, nil
}

// Close closes the redis client.
func (c *Cache) Close() error {
	return c.client.Close()
}
