package redis

import (
	"context"
	"time"
)

const idempotencyPrefix = "idem:contribution:"

// AcquireIdempotencyKey занимает ключ идемпотентности. false - ключ уже занят другим запросом.
func (c *Client) AcquireIdempotencyKey(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return c.rdb.SetNX(ctx, idempotencyPrefix+key, time.Now().UTC().Format(time.RFC3339), ttl).Result()
}

// ReleaseIdempotencyKey освобождает ключ, чтобы клиент мог повторить запрос
func (c *Client) ReleaseIdempotencyKey(ctx context.Context, key string) error {
	return c.rdb.Del(ctx, idempotencyPrefix+key).Err()
}
