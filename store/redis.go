package store

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisBackend stores each blob under prefix+name, optionally expiring it.
// A shopper session uses one prefix so its "cart" and "orders" slots stay
// together.
type RedisBackend struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisBackend(client *redis.Client, prefix string, ttl time.Duration) *RedisBackend {
	return &RedisBackend{client: client, prefix: prefix, ttl: ttl}
}

// WithPrefix returns a backend sharing the client under another key prefix.
func (b *RedisBackend) WithPrefix(prefix string) *RedisBackend {
	return &RedisBackend{client: b.client, prefix: prefix, ttl: b.ttl}
}

func (b *RedisBackend) Load(ctx context.Context, name string) ([]byte, error) {
	data, err := b.client.Get(ctx, b.prefix+name).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	return data, err
}

func (b *RedisBackend) Save(ctx context.Context, name string, data []byte) error {
	return b.client.Set(ctx, b.prefix+name, data, b.ttl).Err()
}

func (b *RedisBackend) Ping(ctx context.Context) error {
	return b.client.Ping(ctx).Err()
}
