package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"finance-ledger/internal/models"
	"finance-ledger/internal/storage"
)

type scanner interface {
	Scan(dest ...any) error
}

const accountColumns = `id, user_id, name, type, balance_cents, is_active, created_at, updated_at`

func scanAccount(row scanner) (*models.Account, error) {
	var a models.Account
	var balance int64
	err := row.Scan(&a.ID, &a.UserID, &a.Name, &a.Type, &balance, &a.IsActive, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	a.Balance = models.FromCents(balance)
	return &a, nil
}

// GetAccount получает счет пользователя по ID
func (s *SQLiteStorage) GetAccount(ctx context.Context, userID, accountID string) (*models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = ? AND user_id = ?`

	account, err := scanAccount(s.DB.QueryRowContext(ctx, query, accountID, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	return account, err
}

// ListAccounts получает все счета пользователя
func (s *SQLiteStorage) ListAccounts(ctx context.Context, userID string) ([]models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE user_id = ? ORDER BY created_at`

	rows, err := s.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	accounts := make([]models.Account, 0)
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, *a)
	}
	return accounts, rows.Err()
}

const transactionColumns = `id, user_id, account_id, destination_account_id, goal_id, amount_cents,
	category, type, description, from_party, to_party, status, occurred_on, created_at, updated_at`

func scanTransaction(row scanner) (*models.Transaction, error) {
	var t models.Transaction
	var destination, goalID sql.NullString
	var amount int64
	var occurredOn string

	err := row.Scan(
		&t.ID, &t.UserID, &t.AccountID, &destination, &goalID, &amount,
		&t.Category, &t.Type, &t.Description, &t.FromParty, &t.ToParty, &t.Status, &occurredOn,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	t.Amount = models.FromCents(amount)
	if destination.Valid {
		t.DestinationAccountID = &destination.String
	}
	if goalID.Valid {
		t.GoalID = &goalID.String
	}
	if t.Date, err = models.ParseDate(occurredOn); err != nil {
		return nil, err
	}
	return &t, nil
}

// GetTransaction получает транзакцию пользователя по ID
func (s *SQLiteStorage) GetTransaction(ctx context.Context, userID, transactionID string) (*models.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = ? AND user_id = ?`

	tx, err := scanTransaction(s.DB.QueryRowContext(ctx, query, transactionID, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	return tx, err
}

// QueryTransactions выбирает транзакции по фильтру, новые первыми
func (s *SQLiteStorage) QueryTransactions(ctx context.Context, filter models.TransactionFilter) ([]models.Transaction, error) {
	conditions := []string{"user_id = ?"}
	args := []any{filter.UserID}

	if filter.AccountID != "" {
		conditions = append(conditions, "account_id = ?")
		args = append(args, filter.AccountID)
	}
	if filter.Category != "" {
		conditions = append(conditions, "category = ?")
		args = append(args, filter.Category)
	}
	if filter.Type != "" {
		conditions = append(conditions, "type = ?")
		args = append(args, filter.Type)
	}
	// Даты хранятся как YYYY-MM-DD, лексикографическое сравнение совпадает с календарным
	if filter.DateFrom != nil {
		conditions = append(conditions, "occurred_on >= ?")
		args = append(args, models.FormatDate(*filter.DateFrom))
	}
	if filter.DateTo != nil {
		conditions = append(conditions, "occurred_on <= ?")
		args = append(args, models.FormatDate(*filter.DateTo))
	}

	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE ` +
		strings.Join(conditions, " AND ") + ` ORDER BY occurred_on DESC, created_at DESC`

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	transactions := make([]models.Transaction, 0)
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, *t)
	}
	return transactions, rows.Err()
}

const budgetColumns = `id, user_id, category, amount_cents, period, created_at, updated_at`

func scanBudget(row scanner) (*models.Budget, error) {
	var b models.Budget
	var amount int64
	if err := row.Scan(&b.ID, &b.UserID, &b.Category, &amount, &b.Period, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	b.Amount = models.FromCents(amount)
	return &b, nil
}

// GetBudget получает бюджет пользователя по ID
func (s *SQLiteStorage) GetBudget(ctx context.Context, userID, budgetID string) (*models.Budget, error) {
	query := `SELECT ` + budgetColumns + ` FROM budgets WHERE id = ? AND user_id = ?`

	b, err := scanBudget(s.DB.QueryRowContext(ctx, query, budgetID, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	return b, err
}

// GetBudgetByCategory получает бюджет пользователя по категории
func (s *SQLiteStorage) GetBudgetByCategory(ctx context.Context, userID, category string) (*models.Budget, error) {
	query := `SELECT ` + budgetColumns + ` FROM budgets WHERE user_id = ? AND category = ?`

	b, err := scanBudget(s.DB.QueryRowContext(ctx, query, userID, category))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	return b, err
}

// ListBudgets получает все бюджеты пользователя
func (s *SQLiteStorage) ListBudgets(ctx context.Context, userID string) ([]models.Budget, error) {
	return s.listBudgets(ctx, `SELECT `+budgetColumns+` FROM budgets WHERE user_id = ? ORDER BY category`, userID)
}

// ListAllBudgets получает бюджеты всех пользователей
func (s *SQLiteStorage) ListAllBudgets(ctx context.Context) ([]models.Budget, error) {
	return s.listBudgets(ctx, `SELECT `+budgetColumns+` FROM budgets ORDER BY user_id, category`)
}

func (s *SQLiteStorage) listBudgets(ctx context.Context, query string, args ...any) ([]models.Budget, error) {
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	budgets := make([]models.Budget, 0)
	for rows.Next() {
		b, err := scanBudget(rows)
		if err != nil {
			return nil, err
		}
		budgets = append(budgets, *b)
	}
	return budgets, rows.Err()
}

const goalColumns = `id, user_id, name, target_cents, current_cents, target_date, priority, status, created_at, updated_at`

func scanGoal(row scanner) (*models.Goal, error) {
	var g models.Goal
	var target, current int64
	var targetDate sql.NullString

	err := row.Scan(&g.ID, &g.UserID, &g.Name, &target, &current, &targetDate, &g.Priority, &g.Status, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return nil, err
	}

	g.TargetAmount = models.FromCents(target)
	g.CurrentAmount = models.FromCents(current)
	if targetDate.Valid {
		d, err := models.ParseDate(targetDate.String)
		if err != nil {
			return nil, err
		}
		g.TargetDate = &d
	}
	return &g, nil
}

// GetGoal получает цель пользователя по ID
func (s *SQLiteStorage) GetGoal(ctx context.Context, userID, goalID string) (*models.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM goals WHERE id = ? AND user_id = ?`

	g, err := scanGoal(s.DB.QueryRowContext(ctx, query, goalID, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	return g, err
}

// ListGoals получает все цели пользователя
func (s *SQLiteStorage) ListGoals(ctx context.Context, userID string) ([]models.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM goals WHERE user_id = ? ORDER BY created_at`

	rows, err := s.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	goals := make([]models.Goal, 0)
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, *g)
	}
	return goals, rows.Err()
}

func nullableDate(t *time.Time) any {
	if t == nil {
		return nil
	}
	return models.FormatDate(*t)
}
