package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"finance-ledger/internal/models"
	"finance-ledger/internal/storage"
)

// CreateAccount сохраняет новый счет
func (s *SQLiteStorage) CreateAccount(ctx context.Context, account *models.Account) error {
	query := `
		INSERT INTO accounts (id, user_id, name, type, balance_cents, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	now := s.now()
	return retryOperation(func() error {
		_, err := s.DB.ExecContext(ctx, query,
			account.ID, account.UserID, account.Name, account.Type,
			models.ToCents(account.Balance), account.IsActive, now, now,
		)
		if err != nil {
			return err
		}
		account.CreatedAt, account.UpdatedAt = now, now
		return nil
	}, writeRetries, writeRetryDelay)
}

// PostTransaction сохраняет транзакцию и изменяет балансы затронутых счетов в одной транзакции БД
func (s *SQLiteStorage) PostTransaction(ctx context.Context, tx *models.Transaction) error {
	return retryOperation(func() error {
		return s.postTransaction(ctx, tx)
	}, writeRetries, writeRetryDelay)
}

func (s *SQLiteStorage) postTransaction(ctx context.Context, t *models.Transaction) error {
	dbTx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer dbTx.Rollback()

	now := s.now()
	for accountID, cents := range storage.BalanceDeltas(t) {
		var active bool
		err := dbTx.QueryRowContext(ctx,
			`SELECT is_active FROM accounts WHERE id = ? AND user_id = ?`,
			accountID, t.UserID,
		).Scan(&active)
		if errors.Is(err, sql.ErrNoRows) {
			return storage.ErrNotFound
		}
		if err != nil {
			return err
		}
		if !active {
			return storage.ErrAccountInactive
		}

		if _, err := dbTx.ExecContext(ctx,
			`UPDATE accounts SET balance_cents = balance_cents + ?, updated_at = ? WHERE id = ?`,
			cents, now, accountID,
		); err != nil {
			return fmt.Errorf("failed to post balance: %w", err)
		}
	}

	if err := insertTransaction(ctx, dbTx, t, now); err != nil {
		return err
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	t.CreatedAt, t.UpdatedAt = now, now
	return nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertTransaction(ctx context.Context, db execer, t *models.Transaction, now time.Time) error {
	query := `
		INSERT INTO transactions (
			id, user_id, account_id, destination_account_id, goal_id, amount_cents,
			category, type, description, from_party, to_party, status, occurred_on,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.ExecContext(ctx, query,
		t.ID, t.UserID, t.AccountID, t.DestinationAccountID, t.GoalID, models.ToCents(t.Amount),
		t.Category, t.Type, t.Description, t.FromParty, t.ToParty, t.Status, models.FormatDate(t.Date),
		now, now,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	return nil
}

// CreateBudget сохраняет бюджет; повторная категория у того же пользователя дает ErrBudgetExists
func (s *SQLiteStorage) CreateBudget(ctx context.Context, budget *models.Budget) error {
	query := `
		INSERT INTO budgets (id, user_id, category, amount_cents, period, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	now := s.now()
	err := retryOperation(func() error {
		_, err := s.DB.ExecContext(ctx, query,
			budget.ID, budget.UserID, budget.Category, models.ToCents(budget.Amount), budget.Period, now, now,
		)
		return err
	}, writeRetries, writeRetryDelay)
	if isUniqueViolation(err) {
		return storage.ErrBudgetExists
	}
	if err != nil {
		return err
	}

	budget.CreatedAt, budget.UpdatedAt = now, now
	return nil
}

// CreateGoal сохраняет новую цель
func (s *SQLiteStorage) CreateGoal(ctx context.Context, goal *models.Goal) error {
	query := `
		INSERT INTO goals (
			id, user_id, name, target_cents, current_cents, target_date,
			priority, status, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	now := s.now()
	err := retryOperation(func() error {
		_, err := s.DB.ExecContext(ctx, query,
			goal.ID, goal.UserID, goal.Name, models.ToCents(goal.TargetAmount), models.ToCents(goal.CurrentAmount),
			nullableDate(goal.TargetDate), goal.Priority, goal.Status, now, now,
		)
		return err
	}, writeRetries, writeRetryDelay)
	if err != nil {
		return err
	}

	goal.CreatedAt, goal.UpdatedAt = now, now
	return nil
}
