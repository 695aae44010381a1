package store

import (
	"context"
	"fmt"

	"github.com/redis/rueidis"
	"github.com/sicko7947/storybook"
)

// RedisBackend implements storybook.Backend with plain Redis strings
type RedisBackend struct {
	client rueidis.Client
}

// NewRedisBackend creates a Redis-backed key-value backend. The caller owns client.
func NewRedisBackend(client rueidis.Client) storybook.Backend {
	return &RedisBackend{client: client}
}

func (b *RedisBackend) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := b.client.Do(ctx, b.client.B().Get().Key(key).Build()).ToString()
	if rueidis.IsRedisNil(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get key %s: %w", key, err)
	}
	return value, true, nil
}

func (b *RedisBackend) Set(ctx context.Context, key, value string) error {
	if err := b.client.Do(ctx, b.client.B().Set().Key(key).Value(value).Build()).Error(); err != nil {
		return fmt.Errorf("failed to set key %s: %w", key, err)
	}
	return nil
}
