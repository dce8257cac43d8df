package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"finance-ledger/internal/models"

	redisv9 "github.com/redis/go-redis/v9"
)

func alertKey(budgetID string) string {
	return fmt.Sprintf("budget:%s:alert", budgetID)
}

// userAlertsKey - множество ID бюджетов пользователя, по которым есть уведомления
func userAlertsKey(userID string) string {
	return fmt.Sprintf("alerts:user:%s", userID)
}

// SaveBudgetAlert сохраняет уведомление о бюджете с TTL; для одного бюджета хранится только последнее
func (c *Client) SaveBudgetAlert(ctx context.Context, alert *models.BudgetAlert, ttl time.Duration) error {
	data, err := json.Marshal(alert)
	if err != nil {
		return fmt.Errorf("failed to marshal alert: %w", err)
	}

	pipe := c.rdb.TxPipeline()
	pipe.Set(ctx, alertKey(alert.BudgetID), data, ttl)
	pipe.SAdd(ctx, userAlertsKey(alert.UserID), alert.BudgetID)
	_, err = pipe.Exec(ctx)
	return err
}

// GetBudgetAlerts возвращает действующие уведомления пользователя, новые первыми
func (c *Client) GetBudgetAlerts(ctx context.Context, userID string) ([]models.BudgetAlert, error) {
	budgetIDs, err := c.rdb.SMembers(ctx, userAlertsKey(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get alert index: %w", err)
	}

	alerts := make([]models.BudgetAlert, 0, len(budgetIDs))
	if len(budgetIDs) == 0 {
		return alerts, nil
	}

	keys := make([]string, len(budgetIDs))
	for i, id := range budgetIDs {
		keys[i] = alertKey(id)
	}

	values, err := c.rdb.MGet(ctx, keys...).Result()
	if err != nil && err != redisv9.Nil {
		return nil, fmt.Errorf("failed to get alerts: %w", err)
	}

	expired := make([]any, 0)
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			// Уведомление истекло по TTL, убираем его из индекса
			expired = append(expired, budgetIDs[i])
			continue
		}
		var alert models.BudgetAlert
		if err := json.Unmarshal([]byte(raw), &alert); err != nil {
			return nil, fmt.Errorf("failed to unmarshal alert: %w", err)
		}
		alerts = append(alerts, alert)
	}
	if len(expired) > 0 {
		c.rdb.SRem(ctx, userAlertsKey(userID), expired...)
	}

	sort.Slice(alerts, func(i, j int) bool { return alerts[i].RaisedAt.After(alerts[j].RaisedAt) })
	return alerts, nil
}

// DeleteBudgetAlert удаляет уведомление по бюджету (бюджет вернулся в норму или удален)
func (c *Client) DeleteBudgetAlert(ctx context.Context, userID, budgetID string) error {
	pipe := c.rdb.TxPipeline()
	pipe.Del(ctx, alertKey(budgetID))
	pipe.SRem(ctx, userAlertsKey(userID), budgetID)
	_, err := pipe.Exec(ctx)
	return err
}

// DeleteBudgetAlerts удаляет все уведомления пользователя
func (c *Client) DeleteBudgetAlerts(ctx context.Context, userID string) error {
	budgetIDs, err := c.rdb.SMembers(ctx, userAlertsKey(userID)).Result()
	if err != nil {
		return err
	}

	keys := []string{userAlertsKey(userID)}
	for _, id := range budgetIDs {
		keys = append(keys, alertKey(id))
	}
	return c.rdb.Del(ctx, keys...).Err()
}
