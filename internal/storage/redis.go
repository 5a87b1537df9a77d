package storage

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/kpsunited/kps-admin-backend/pkg/logger"
)

// RedisBackend stores each collection under a prefixed Redis key. Redis
// manages its own memory limits, so no application-level quota is
// enforced here; the document pre-flight check still applies upstream.
type RedisBackend struct {
	client *redis.Client
	prefix string
}

func NewRedisBackend(client *redis.Client, prefix string) *RedisBackend {
	return &RedisBackend{client: client, prefix: prefix}
}

func (r *RedisBackend) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return value, true, nil
}

func (r *RedisBackend) Set(ctx context.Context, key string, value []byte) error {
	if err := r.client.Set(ctx, r.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (r *RedisBackend) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.prefix+key).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}

func (r *RedisBackend) Used(ctx context.Context) (int64, error) {
	var used int64
	iter := r.client.Scan(ctx, 0, r.prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		n, err := r.client.StrLen(ctx, iter.Val()).Result()
		if err != nil {
			return 0, fmt.Errorf("redis strlen %s: %w", iter.Val(), err)
		}
		used += n
	}
	if err := iter.Err(); err != nil {
		return 0, fmt.Errorf("redis scan: %w", err)
	}
	return used, nil
}

func (r *RedisBackend) Close() error {
	logger.Info("Closing Redis storage backend", nil)
	return r.client.Close()
}
