package mocks

import (
	"context"
	"time"

	"finance-ledger/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockClientInterface является моком для redis.ClientInterface интерфейса
type MockClientInterface struct {
	mock.Mock
}

// SaveBudgetAlert мок для SaveBudgetAlert
func (m *MockClientInterface) SaveBudgetAlert(ctx context.Context, alert *models.BudgetAlert, ttl time.Duration) error {
	args := m.Called(ctx, alert, ttl)
	return args.Error(0)
}

// GetBudgetAlerts мок для GetBudgetAlerts
func (m *MockClientInterface) GetBudgetAlerts(ctx context.Context, userID string) ([]models.BudgetAlert, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.BudgetAlert), args.Error(1)
}

// DeleteBudgetAlert мок для DeleteBudgetAlert
func (m *MockClientInterface) DeleteBudgetAlert(ctx context.Context, userID, budgetID string) error {
	args := m.Called(ctx, userID, budgetID)
	return args.Error(0)
}

// DeleteBudgetAlerts мок для DeleteBudgetAlerts
func (m *MockClientInterface) DeleteBudgetAlerts(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// AcquireIdempotencyKey мок для AcquireIdempotencyKey
func (m *MockClientInterface) AcquireIdempotencyKey(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, key, ttl)
	return args.Bool(0), args.Error(1)
}

// ReleaseIdempotencyKey мок для ReleaseIdempotencyKey
func (m *MockClientInterface) ReleaseIdempotencyKey(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// IncrementBudgetStatusStats мок для IncrementBudgetStatusStats
func (m *MockClientInterface) IncrementBudgetStatusStats(ctx context.Context, status models.BudgetStatus) error {
	args := m.Called(ctx, status)
	return args.Error(0)
}

// GetBudgetStatusStats мок для GetBudgetStatusStats
func (m *MockClientInterface) GetBudgetStatusStats(ctx context.Context) (map[string]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int64), args.Error(1)
}

// IncrementContributionCount мок для IncrementContributionCount
func (m *MockClientInterface) IncrementContributionCount(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// GetContributionCount мок для GetContributionCount
func (m *MockClientInterface) GetContributionCount(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

// ClearAlertData мок для ClearAlertData
func (m *MockClientInterface) ClearAlertData(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// Close мок для Close
func (m *MockClientInterface) Close() error {
	args := m.Called()
	return args.Error(0)
}
