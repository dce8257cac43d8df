package redis

import (
	"context"
	"time"

	"finance-ledger/internal/models"
)

// AlertStore - хранение уведомлений о бюджетах
type AlertStore interface {
	SaveBudgetAlert(ctx context.Context, alert *models.BudgetAlert, ttl time.Duration) error
	GetBudgetAlerts(ctx context.Context, userID string) ([]models.BudgetAlert, error)
	DeleteBudgetAlert(ctx context.Context, userID, budgetID string) error
	DeleteBudgetAlerts(ctx context.Context, userID string) error
}

// IdempotencyStore - ключи идемпотентности для взносов в цели
type IdempotencyStore interface {
	AcquireIdempotencyKey(ctx context.Context, key string, ttl time.Duration) (bool, error)
	ReleaseIdempotencyKey(ctx context.Context, key string) error
}

// ClientInterface определяет интерфейс для работы с Redis
// Это позволяет легко создавать моки для тестирования
// Реализуется типом Client
type ClientInterface interface {
	AlertStore
	IdempotencyStore

	// IncrementBudgetStatusStats увеличивает счетчик оценок бюджета по статусу
	IncrementBudgetStatusStats(ctx context.Context, status models.BudgetStatus) error

	// GetBudgetStatusStats возвращает счетчики оценок по статусам
	GetBudgetStatusStats(ctx context.Context) (map[string]int64, error)

	// IncrementContributionCount увеличивает счетчик взносов пользователя
	IncrementContributionCount(ctx context.Context, userID string) error

	// GetContributionCount получает количество взносов пользователя
	GetContributionCount(ctx context.Context, userID string) (int64, error)

	// ClearAlertData очищает уведомления и статистику
	ClearAlertData(ctx context.Context) error

	// Close закрывает соединение с Redis
	Close() error
}

// Убеждаемся, что Client реализует ClientInterface
var _ ClientInterface = (*Client)(nil)
