package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"finance-ledger/internal/models"
)

var (
	// ErrInvalidInput - запрос не прошел проверку
	ErrInvalidInput = errors.New("invalid input")
	// ErrDuplicateRequest - запрос с тем же ключом идемпотентности уже выполнялся
	ErrDuplicateRequest = errors.New("duplicate request")
)

func invalidInput(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// AccountService определяет интерфейс для работы со счетами
type AccountService interface {
	CreateAccount(ctx context.Context, userID string, req *models.CreateAccountRequest) (*models.Account, error)
	GetAccount(ctx context.Context, userID, accountID string) (*models.Account, error)
	ListAccounts(ctx context.Context, userID string) ([]models.Account, error)
	DeactivateAccount(ctx context.Context, userID, accountID string) error
}

// TransactionService определяет интерфейс для работы с транзакциями
type TransactionService interface {
	// CreateTransaction нормализует знак суммы и проводит транзакцию по балансам
	CreateTransaction(ctx context.Context, userID string, req *models.CreateTransactionRequest) (*models.Transaction, error)

	GetTransaction(ctx context.Context, userID, transactionID string) (*models.Transaction, error)
	QueryTransactions(ctx context.Context, filter models.TransactionFilter) ([]models.Transaction, error)

	// UpdateTransaction меняет только описание, категорию, статус и дату
	UpdateTransaction(ctx context.Context, userID, transactionID string, req *models.UpdateTransactionRequest) (*models.Transaction, error)
}

// BudgetService определяет интерфейс для работы с бюджетами
type BudgetService interface {
	CreateBudget(ctx context.Context, userID string, req *models.CreateBudgetRequest) (*models.Budget, error)
	UpdateBudget(ctx context.Context, userID, budgetID string, req *models.UpdateBudgetRequest) (*models.Budget, error)
	DeleteBudget(ctx context.Context, userID, budgetID string) error

	// Evaluate вычисляет состояние бюджета в периоде, содержащем now
	Evaluate(ctx context.Context, userID, budgetID string, now time.Time) (*models.BudgetEvaluation, error)
	EvaluateAll(ctx context.Context, userID string, now time.Time) ([]models.BudgetEvaluation, error)
	EvaluateCategory(ctx context.Context, userID, category string, now time.Time) (*models.BudgetEvaluation, error)
	EvaluateBudget(ctx context.Context, b models.Budget, now time.Time) (*models.BudgetEvaluation, error)

	// ListAllBudgets возвращает бюджеты всех пользователей для плановой проверки
	ListAllBudgets(ctx context.Context) ([]models.Budget, error)
}

// GoalService определяет интерфейс для работы с целями
type GoalService interface {
	CreateGoal(ctx context.Context, userID string, req *models.CreateGoalRequest) (*models.Goal, error)
	GetGoal(ctx context.Context, userID, goalID string) (*models.Goal, error)
	ListGoals(ctx context.Context, userID string) ([]models.Goal, error)
	UpdateGoal(ctx context.Context, userID, goalID string, req *models.UpdateGoalRequest) (*models.Goal, error)
	DeleteGoal(ctx context.Context, userID, goalID string) error

	// Contribute переводит сумму со счета в цель одной атомарной операцией.
	// Непустой idempotencyKey защищает от повторного применения того же запроса.
	Contribute(ctx context.Context, userID, goalID string, req *models.ContributeRequest, idempotencyKey string) (*models.ContributionReceipt, error)
}

// IdempotencyGuard хранит ключи идемпотентности (реализуется redis.Client)
type IdempotencyGuard interface {
	AcquireIdempotencyKey(ctx context.Context, key string, ttl time.Duration) (bool, error)
	ReleaseIdempotencyKey(ctx context.Context, key string) error
}

// ContributionCounter ведет счетчики взносов (реализуется redis.Client)
type ContributionCounter interface {
	IncrementContributionCount(ctx context.Context, userID string) error
}

// parseDate разбирает дату YYYY-MM-DD; пустая строка означает сегодня
func parseDate(value string, now time.Time) (time.Time, error) {
	if value == "" {
		y, m, d := now.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	}
	t, err := models.ParseDate(value)
	if err != nil {
		return time.Time{}, invalidInput("date must be YYYY-MM-DD")
	}
	return t, nil
}
