package mocks

import (
	"context"

	"finance-ledger/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockStore является моком для storage.Store интерфейса
type MockStore struct {
	mock.Mock
}

// QueryTransactions мок для QueryTransactions
func (m *MockStore) QueryTransactions(ctx context.Context, filter models.TransactionFilter) ([]models.Transaction, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Transaction), args.Error(1)
}

// SubmitContribution мок для SubmitContribution
func (m *MockStore) SubmitContribution(ctx context.Context, req models.ContributionRequest) (*models.ContributionResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ContributionResult), args.Error(1)
}

// CreateAccount мок для CreateAccount
func (m *MockStore) CreateAccount(ctx context.Context, account *models.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

// GetAccount мок для GetAccount
func (m *MockStore) GetAccount(ctx context.Context, userID, accountID string) (*models.Account, error) {
	args := m.Called(ctx, userID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

// ListAccounts мок для ListAccounts
func (m *MockStore) ListAccounts(ctx context.Context, userID string) ([]models.Account, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Account), args.Error(1)
}

// DeactivateAccount мок для DeactivateAccount
func (m *MockStore) DeactivateAccount(ctx context.Context, userID, accountID string) error {
	args := m.Called(ctx, userID, accountID)
	return args.Error(0)
}

// PostTransaction мок для PostTransaction
func (m *MockStore) PostTransaction(ctx context.Context, tx *models.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// GetTransaction мок для GetTransaction
func (m *MockStore) GetTransaction(ctx context.Context, userID, transactionID string) (*models.Transaction, error) {
	args := m.Called(ctx, userID, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Transaction), args.Error(1)
}

// UpdateTransaction мок для UpdateTransaction
func (m *MockStore) UpdateTransaction(ctx context.Context, userID, transactionID string, patch models.TransactionPatch) (*models.Transaction, error) {
	args := m.Called(ctx, userID, transactionID, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Transaction), args.Error(1)
}

// CreateBudget мок для CreateBudget
func (m *MockStore) CreateBudget(ctx context.Context, budget *models.Budget) error {
	args := m.Called(ctx, budget)
	return args.Error(0)
}

// GetBudget мок для GetBudget
func (m *MockStore) GetBudget(ctx context.Context, userID, budgetID string) (*models.Budget, error) {
	args := m.Called(ctx, userID, budgetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Budget), args.Error(1)
}

// GetBudgetByCategory мок для GetBudgetByCategory
func (m *MockStore) GetBudgetByCategory(ctx context.Context, userID, category string) (*models.Budget, error) {
	args := m.Called(ctx, userID, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Budget), args.Error(1)
}

// ListBudgets мок для ListBudgets
func (m *MockStore) ListBudgets(ctx context.Context, userID string) ([]models.Budget, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Budget), args.Error(1)
}

// ListAllBudgets мок для ListAllBudgets
func (m *MockStore) ListAllBudgets(ctx context.Context) ([]models.Budget, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Budget), args.Error(1)
}

// UpdateBudget мок для UpdateBudget
func (m *MockStore) UpdateBudget(ctx context.Context, budget *models.Budget) error {
	args := m.Called(ctx, budget)
	return args.Error(0)
}

// DeleteBudget мок для DeleteBudget
func (m *MockStore) DeleteBudget(ctx context.Context, userID, budgetID string) error {
	args := m.Called(ctx, userID, budgetID)
	return args.Error(0)
}

// CreateGoal мок для CreateGoal
func (m *MockStore) CreateGoal(ctx context.Context, goal *models.Goal) error {
	args := m.Called(ctx, goal)
	return args.Error(0)
}

// GetGoal мок для GetGoal
func (m *MockStore) GetGoal(ctx context.Context, userID, goalID string) (*models.Goal, error) {
	args := m.Called(ctx, userID, goalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Goal), args.Error(1)
}

// ListGoals мок для ListGoals
func (m *MockStore) ListGoals(ctx context.Context, userID string) ([]models.Goal, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Goal), args.Error(1)
}

// UpdateGoal мок для UpdateGoal
func (m *MockStore) UpdateGoal(ctx context.Context, goal *models.Goal) error {
	args := m.Called(ctx, goal)
	return args.Error(0)
}

// DeleteGoal мок для DeleteGoal
func (m *MockStore) DeleteGoal(ctx context.Context, userID, goalID string) error {
	args := m.Called(ctx, userID, goalID)
	return args.Error(0)
}

// Close мок для Close
func (m *MockStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
