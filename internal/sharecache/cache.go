// Package sharecache keeps a small redis cache in front of share-token
// lookups so public share pages do not hit the primary store on every view.
package sharecache

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const defaultTTL = 15 * time.Minute

type Cache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// New builds a cache from a redis URL. An empty URL returns a disabled
// cache; every method then becomes a no-op miss.
func New(redisURL string) (*Cache, error) {
	if redisURL == "" {
		return &Cache{}, nil
	}
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	return NewWithClient(redis.NewClient(opts)), nil
}

// NewWithClient wraps an existing client (used by tests with miniredis).
func NewWithClient(client *redis.Client) *Cache {
	return &Cache{client: client, prefix: "share:", ttl: defaultTTL}
}

func (c *Cache) Enabled() bool { return c != nil && c.client != nil }

// Get resolves a token to the owning entity id. Any redis error is treated
// as a miss.
func (c *Cache) Get(ctx context.Context, token string) (uuid.UUID, bool) {
	if !c.Enabled() {
		return uuid.Nil, false
	}
	val, err := c.client.Get(ctx, c.prefix+token).Result()
	if err != nil {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(val)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func (c *Cache) Set(ctx context.Context, token string, id uuid.UUID) {
	if !c.Enabled() {
		return
	}
	_ = c.client.Set(ctx, c.prefix+token, id.String(), c.ttl).Err()
}

func (c *Cache) Invalidate(ctx context.Context, token string) {
	if !c.Enabled() {
		return
	}
	_ = c.client.Del(ctx, c.prefix+token).Err()
}
