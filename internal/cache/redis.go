package cache

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultKeyPrefix namespaces all cache keys in Redis.
const DefaultKeyPrefix = "stockline:items"

// RedisCache is a Redis-backed implementation of Cache.
type RedisCache struct {
	client    *redis.Client
	keyPrefix string
}

// RedisCacheConfig holds configuration for the Redis cache.
type RedisCacheConfig struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
}

// NewRedisCache creates a Redis-backed cache and verifies connectivity.
func NewRedisCache(cfg RedisCacheConfig) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     20,
		MinIdleConns: 5,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	keyPrefix := cfg.KeyPrefix
	if keyPrefix == "" {
		keyPrefix = DefaultKeyPrefix
	}

	log.Printf("[RedisCache] Connected - addr:%s, DB:%d, prefix:%s", cfg.Addr, cfg.DB, keyPrefix)
	return &RedisCache{client: client, keyPrefix: keyPrefix}, nil
}

func (c *RedisCache) key(key string) string {
	return c.keyPrefix + ":" + key
}

// Get retrieves a value by key.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := c.client.Get(ctx, c.key(key)).Bytes()
	if err == redis.Nil {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}
	return value, nil
}

// Set stores a value with the given TTL.
func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.client.Set(ctx, c.key(key), value, ttl).Err()
}

// Delete removes a value by key.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, c.key(key)).Err()
}

// Clear removes all entries under the cache's key prefix.
func (c *RedisCache) Clear(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, c.keyPrefix+":*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

// Close closes the Redis connection.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// Ensure RedisCache implements Cache
var _ Cache = (*RedisCache)(nil)
