package storage

import (
	"context"
	"errors"

	"finance-ledger/internal/models"
)

// BudgetExistsCode - код ошибки при повторном создании бюджета для категории
const BudgetExistsCode = "BUDGET_EXISTS"

var (
	ErrNotFound        = errors.New("not found")
	ErrBudgetExists    = errors.New("budget for this category already exists")
	ErrAccountInactive = errors.New("account is inactive")
)

// TransactionQuery - выборка транзакций по счету, категории, типу и диапазону дат
type TransactionQuery interface {
	// QueryTransactions возвращает транзакции пользователя, подходящие под фильтр. Границы дат включительно.
	QueryTransactions(ctx context.Context, filter models.TransactionFilter) ([]models.Transaction, error)
}

// ContributionProcedure - атомарная процедура взноса в цель.
// Списание со счета, пополнение цели и запись транзакции применяются вместе или не применяются вовсе.
type ContributionProcedure interface {
	SubmitContribution(ctx context.Context, req models.ContributionRequest) (*models.ContributionResult, error)
}

// AccountRepository определяет интерфейс для работы со счетами
type AccountRepository interface {
	CreateAccount(ctx context.Context, account *models.Account) error
	GetAccount(ctx context.Context, userID, accountID string) (*models.Account, error)
	ListAccounts(ctx context.Context, userID string) ([]models.Account, error)

	// DeactivateAccount помечает счет неактивным, записи не удаляются
	DeactivateAccount(ctx context.Context, userID, accountID string) error
}

// TransactionRepository определяет интерфейс для работы с транзакциями
type TransactionRepository interface {
	TransactionQuery

	// PostTransaction сохраняет транзакцию и проводит ее по балансам счетов одной единицей работы
	PostTransaction(ctx context.Context, tx *models.Transaction) error

	GetTransaction(ctx context.Context, userID, transactionID string) (*models.Transaction, error)

	// UpdateTransaction применяет допустимые изменения и возвращает обновленную транзакцию
	UpdateTransaction(ctx context.Context, userID, transactionID string, patch models.TransactionPatch) (*models.Transaction, error)
}

// BudgetRepository определяет интерфейс для работы с бюджетами
type BudgetRepository interface {
	// CreateBudget возвращает ErrBudgetExists, если у пользователя уже есть бюджет этой категории
	CreateBudget(ctx context.Context, budget *models.Budget) error

	GetBudget(ctx context.Context, userID, budgetID string) (*models.Budget, error)
	GetBudgetByCategory(ctx context.Context, userID, category string) (*models.Budget, error)
	ListBudgets(ctx context.Context, userID string) ([]models.Budget, error)

	// ListAllBudgets возвращает бюджеты всех пользователей (для плановой проверки)
	ListAllBudgets(ctx context.Context) ([]models.Budget, error)

	UpdateBudget(ctx context.Context, budget *models.Budget) error
	DeleteBudget(ctx context.Context, userID, budgetID string) error
}

// GoalRepository определяет интерфейс для работы с целями
type GoalRepository interface {
	CreateGoal(ctx context.Context, goal *models.Goal) error
	GetGoal(ctx context.Context, userID, goalID string) (*models.Goal, error)
	ListGoals(ctx context.Context, userID string) ([]models.Goal, error)
	UpdateGoal(ctx context.Context, goal *models.Goal) error
	DeleteGoal(ctx context.Context, userID, goalID string) error
}

// Store объединяет все репозитории одного хранилища
type Store interface {
	AccountRepository
	TransactionRepository
	BudgetRepository
	GoalRepository
	ContributionProcedure

	Close() error
}

// BalanceDeltas возвращает изменения балансов, которые вызывает проводка транзакции:
// сумма списывается или зачисляется на счет, а для перевода модуль суммы зачисляется на счет назначения.
func BalanceDeltas(tx *models.Transaction) map[string]int64 {
	cents := models.ToCents(tx.Amount)
	deltas := map[string]int64{tx.AccountID: cents}
	if tx.Type == models.TransactionTransfer && tx.DestinationAccountID != nil {
		if cents < 0 {
			cents = -cents
		}
		deltas[*tx.DestinationAccountID] += cents
	}
	return deltas
}
