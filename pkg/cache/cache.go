package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache TTLs
const (
	TTLLatestPosts = 30 * time.Second // global feed, refreshed often
	TTLCvEntries   = 5 * time.Minute  // per-profile CV projection
	TTLDefault     = 5 * time.Minute
)

// Cache key prefixes
const (
	PrefixLatest = "posts:latest"
	PrefixCv     = "cv:"
)

// Service is a nil-safe redis cache. Every method degrades to a miss
// or a no-op when redis is unavailable; callers never fail on cache
// errors.
type Service interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error

	GetLatestPosts(ctx context.Context, dest interface{}) error
	SetLatestPosts(ctx context.Context, data interface{}) error
	InvalidateLatestPosts(ctx context.Context) error

	GetCvEntries(ctx context.Context, profileID int64, dest interface{}) error
	SetCvEntries(ctx context.Context, profileID int64, data interface{}) error
	InvalidateCvEntries(ctx context.Context, profileID int64) error

	IsAvailable() bool
	Ping(ctx context.Context) error
}

type redisCache struct {
	client *redis.Client
}

// NewService creates a cache service; client may be nil
func NewService(client *redis.Client) Service {
	return &redisCache{client: client}
}

func (c *redisCache) IsAvailable() bool {
	return c.client != nil
}

func (c *redisCache) Ping(ctx context.Context) error {
	if c.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	return c.client.Ping(ctx).Err()
}

func (c *redisCache) Get(ctx context.Context, key string, dest interface{}) error {
	if c.client == nil {
		return redis.Nil
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return err
	}

	return json.Unmarshal(data, dest)
}

func (c *redisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if c.client == nil {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, key, data, ttl).Err()
}

func (c *redisCache) Delete(ctx context.Context, keys ...string) error {
	if c.client == nil || len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

func (c *redisCache) GetLatestPosts(ctx context.Context, dest interface{}) error {
	return c.Get(ctx, PrefixLatest, dest)
}

func (c *redisCache) SetLatestPosts(ctx context.Context, data interface{}) error {
	return c.Set(ctx, PrefixLatest, data, TTLLatestPosts)
}

func (c *redisCache) InvalidateLatestPosts(ctx context.Context) error {
	return c.Delete(ctx, PrefixLatest)
}

func cvKey(profileID int64) string {
	return fmt.Sprintf("%s%d", PrefixCv, profileID)
}

func (c *redisCache) GetCvEntries(ctx context.Context, profileID int64, dest interface{}) error {
	return c.Get(ctx, cvKey(profileID), dest)
}

func (c *redisCache) SetCvEntries(ctx context.Context, profileID int64, data interface{}) error {
	return c.Set(ctx, cvKey(profileID), data, TTLCvEntries)
}

func (c *redisCache) InvalidateCvEntries(ctx context.Context, profileID int64) error {
	return c.Delete(ctx, cvKey(profileID))
}
