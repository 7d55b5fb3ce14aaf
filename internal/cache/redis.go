package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/doggr/backend/internal/config"
)

// matchCountTTL bounds staleness of the per-profile match counters.
const matchCountTTL = time.Hour

type RedisCache struct {
	Client *redis.Client
}

// NewRedisCache initializes Redis client from config.
// Only Addr is mandatory, Password/DB are optional.
func NewRedisCache(cfg *config.Config) *RedisCache {
	opts := &redis.Options{
		Addr: cfg.Redis.Addr,
	}
	if cfg.Redis.Password != "" {
		opts.Password = cfg.Redis.Password
	}
	if cfg.Redis.DB != 0 {
		opts.DB = cfg.Redis.DB
	}
	return &RedisCache{Client: redis.NewClient(opts)}
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.Client.Ping(ctx).Err()
}

func (c *RedisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return c.Client.Set(ctx, key, value, ttl).Err()
}

func (c *RedisCache) Get(ctx context.Context, key string) (string, error) {
	return c.Client.Get(ctx, key).Result()
}

func (c *RedisCache) Del(ctx context.Context, key string) error {
	return c.Client.Del(ctx, key).Err()
}

// KeyForMatchCount generates the Redis key caching how many active matches
// point at the given profile as matchee.
func KeyForMatchCount(profileID uint) string {
	return fmt.Sprintf("matches:count:%d", profileID)
}

func (c *RedisCache) UpdateMatchCount(ctx context.Context, profileID uint, count int64) error {
	// Always refresh TTL when updating
	return c.Client.Set(ctx, KeyForMatchCount(profileID), count, matchCountTTL).Err()
}

// GetMatchCount returns the cached count, or ok=false on a miss.
func (c *RedisCache) GetMatchCount(ctx context.Context, profileID uint) (int64, bool, error) {
	key := KeyForMatchCount(profileID)
	val, err := c.Client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil // cache miss
	} else if err != nil {
		return 0, false, err
	}
	// refresh TTL on access
	_ = c.Client.Expire(ctx, key, matchCountTTL).Err()
	n, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false, err
	}
	return n, true, nil
}

// InvalidateMatchCount drops the cached counter after a match edge changes.
func (c *RedisCache) InvalidateMatchCount(ctx context.Context, profileID uint) error {
	return c.Client.Del(ctx, KeyForMatchCount(profileID)).Err()
}
