package cache

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// Ensure RedisCache implements Cache
var _ Cache = (*RedisCache)(nil)

// RedisCache backs the Cache interface with a Redis instance.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache connects to the Redis instance at addr.
func NewRedisCache(addr string) *RedisCache {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return &RedisCache{client: rdb}
}

// Get returns the cached value and whether it was present.
func (r *RedisCache) Get(ctx context.Context, key string) (string, bool) {
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

// Set stores the value with no expiry; entries are replaced on every
// recompute and dropped on listing deletion.
func (r *RedisCache) Set(ctx context.Context, key, value string) error {
	return r.client.Set(ctx, key, value, 0).Err()
}

// Delete removes the key. Deleting a missing key is not an error.
func (r *RedisCache) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}
