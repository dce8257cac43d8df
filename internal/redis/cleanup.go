package redis

import (
	"context"
	"fmt"
)

// ClearAlertData удаляет уведомления и статистику (ключи идемпотентности сохраняются)
func (c *Client) ClearAlertData(ctx context.Context) error {
	patterns := []string{
		"budget:*:alert",
		"alerts:user:*",
		"budget_status_stats:*",
		"contributions:user:*",
	}

	for _, pattern := range patterns {
		iter := c.rdb.Scan(ctx, 0, pattern, 0).Iterator()
		for iter.Next(ctx) {
			c.rdb.Del(ctx, iter.Val())
		}
		if err := iter.Err(); err != nil {
			return fmt.Errorf("failed to clear pattern %s: %w", pattern, err)
		}
	}

	return nil
}
