package adapter

import (
	"context"
	"errors"
	"time"

	"prepwise/internal/domain"

	"github.com/redis/go-redis/v9"
)

// RedisCacheAdapter backs domain.Cache with a Redis client. Missing keys and
// missing hash fields surface as domain.ErrCacheMiss so callers never see
// redis.Nil directly.
type RedisCacheAdapter struct {
	client *redis.Client
}

// NewRedisCacheAdapter wraps a connected *redis.Client.
func NewRedisCacheAdapter(client *redis.Client) domain.Cache {
	return &RedisCacheAdapter{client: client}
}

func translateMiss(err error) error {
	if errors.Is(err, redis.Nil) {
		return domain.ErrCacheMiss
	}
	return err
}

func (a *RedisCacheAdapter) Get(ctx context.Context, key string) (string, error) {
	val, err := a.client.Get(ctx, key).Result()
	if err != nil {
		return "", translateMiss(err)
	}
	return val, nil
}

func (a *RedisCacheAdapter) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	return a.client.Set(ctx, key, value, expiration).Err()
}

func (a *RedisCacheAdapter) Delete(ctx context.Context, key string) error {
	return a.client.Del(ctx, key).Err()
}

func (a *RedisCacheAdapter) Ping(ctx context.Context) error {
	return a.client.Ping(ctx).Err()
}

func (a *RedisCacheAdapter) HGet(ctx context.Context, key, field string) (string, error) {
	val, err := a.client.HGet(ctx, key, field).Result()
	if err != nil {
		return "", translateMiss(err)
	}
	return val, nil
}

func (a *RedisCacheAdapter) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	// HGETALL on an absent key returns an empty map, not redis.Nil.
	return a.client.HGetAll(ctx, key).Result()
}

func (a *RedisCacheAdapter) HSet(ctx context.Context, key string, field string, value string) error {
	return a.client.HSet(ctx, key, field, value).Err()
}

func (a *RedisCacheAdapter) Expire(ctx context.Context, key string, expiration time.Duration) error {
	return a.client.Expire(ctx, key, expiration).Err()
}
