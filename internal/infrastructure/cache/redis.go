package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/quadworks/flowdeck/pkg/config"
)

// NewRedisClient creates and pings a Redis client
func NewRedisClient(cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.GetRedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}

// RedisStore backs TokenCache with Redis so cached identities survive
// process restarts and are shared between replicas.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore creates a Redis-backed token cache
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, prefix: "flowdeck:token:"}
}

// Set stores a key-value pair with expiration
func (rs *RedisStore) Set(key string, value string, expiration time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	rs.client.Set(ctx, rs.prefix+key, value, expiration)
}

// Get retrieves a value by key
func (rs *RedisStore) Get(key string) (string, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	value, err := rs.client.Get(ctx, rs.prefix+key).Result()
	if err != nil {
		return "", false
	}
	return value, true
}

// Delete removes a key
func (rs *RedisStore) Delete(key string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	rs.client.Del(ctx, rs.prefix+key)
}
