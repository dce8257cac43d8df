package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"finance-ledger/internal/models"

	redisv9 "github.com/redis/go-redis/v9"
)

const budgetStatsPrefix = "budget_status_stats:"

// IncrementBudgetStatusStats увеличивает счетчик оценок бюджета с данным статусом
func (c *Client) IncrementBudgetStatusStats(ctx context.Context, status models.BudgetStatus) error {
	return c.rdb.Incr(ctx, budgetStatsPrefix+string(status)).Err()
}

// GetBudgetStatusStats возвращает счетчики оценок бюджетов по статусам
func (c *Client) GetBudgetStatusStats(ctx context.Context) (map[string]int64, error) {
	stats := make(map[string]int64)
	iter := c.rdb.Scan(ctx, 0, budgetStatsPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		count, err := c.rdb.Get(ctx, key).Int64()
		if err == redisv9.Nil {
			continue
		}
		if err != nil {
			return nil, err
		}
		stats[strings.TrimPrefix(key, budgetStatsPrefix)] = count
	}
	return stats, iter.Err()
}

func contributionsKey(userID string) string {
	return fmt.Sprintf("contributions:user:%s:count", userID)
}

// IncrementContributionCount увеличивает счетчик успешных взносов пользователя
func (c *Client) IncrementContributionCount(ctx context.Context, userID string) error {
	key := contributionsKey(userID)
	pipe := c.rdb.Pipeline()
	pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, 30*24*time.Hour)
	_, err := pipe.Exec(ctx)
	return err
}

// GetContributionCount получает количество взносов пользователя
func (c *Client) GetContributionCount(ctx context.Context, userID string) (int64, error) {
	count, err := c.rdb.Get(ctx, contributionsKey(userID)).Int64()
	if err == redisv9.Nil {
		return 0, nil
	}
	return count, err
}
