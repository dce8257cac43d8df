package sqlite

import (
	"context"
	"strings"

	"finance-ledger/internal/models"
	"finance-ledger/internal/storage"
)

// DeactivateAccount помечает счет неактивным
func (s *SQLiteStorage) DeactivateAccount(ctx context.Context, userID, accountID string) error {
	query := `UPDATE accounts SET is_active = 0, updated_at = ? WHERE id = ? AND user_id = ?`

	return s.execOne(ctx, query, s.now(), accountID, userID)
}

// UpdateTransaction обновляет описание, категорию, статус и дату транзакции
func (s *SQLiteStorage) UpdateTransaction(
	ctx context.Context,
	userID, transactionID string,
	patch models.TransactionPatch,
) (*models.Transaction, error) {
	sets := []string{"updated_at = ?"}
	args := []any{s.now()}

	if patch.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *patch.Description)
	}
	if patch.Category != nil {
		sets = append(sets, "category = ?")
		args = append(args, *patch.Category)
	}
	if patch.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, *patch.Status)
	}
	if patch.Date != nil {
		sets = append(sets, "occurred_on = ?")
		args = append(args, models.FormatDate(*patch.Date))
	}

	query := `UPDATE transactions SET ` + strings.Join(sets, ", ") + ` WHERE id = ? AND user_id = ?`
	args = append(args, transactionID, userID)

	if err := s.execOne(ctx, query, args...); err != nil {
		return nil, err
	}
	return s.GetTransaction(ctx, userID, transactionID)
}

// UpdateBudget обновляет категорию, лимит и период бюджета
func (s *SQLiteStorage) UpdateBudget(ctx context.Context, budget *models.Budget) error {
	query := `
		UPDATE budgets
		SET category = ?, amount_cents = ?, period = ?, updated_at = ?
		WHERE id = ? AND user_id = ?
	`

	err := s.execOne(ctx, query,
		budget.Category, models.ToCents(budget.Amount), budget.Period, s.now(),
		budget.ID, budget.UserID,
	)
	if isUniqueViolation(err) {
		return storage.ErrBudgetExists
	}
	if err != nil {
		return err
	}

	updated, err := s.GetBudget(ctx, budget.UserID, budget.ID)
	if err != nil {
		return err
	}
	*budget = *updated
	return nil
}

// UpdateGoal обновляет цель целиком
func (s *SQLiteStorage) UpdateGoal(ctx context.Context, goal *models.Goal) error {
	query := `
		UPDATE goals
		SET name = ?, target_cents = ?, current_cents = ?, target_date = ?,
		    priority = ?, status = ?, updated_at = ?
		WHERE id = ? AND user_id = ?
	`

	err := s.execOne(ctx, query,
		goal.Name, models.ToCents(goal.TargetAmount), models.ToCents(goal.CurrentAmount),
		nullableDate(goal.TargetDate), goal.Priority, goal.Status, s.now(),
		goal.ID, goal.UserID,
	)
	if err != nil {
		return err
	}

	updated, err := s.GetGoal(ctx, goal.UserID, goal.ID)
	if err != nil {
		return err
	}
	*goal = *updated
	return nil
}

// execOne выполняет запись, которая должна затронуть ровно одну строку пользователя
func (s *SQLiteStorage) execOne(ctx context.Context, query string, args ...any) error {
	return retryOperation(func() error {
		res, err := s.DB.ExecContext(ctx, query, args...)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return storage.ErrNotFound
		}
		return nil
	}, writeRetries, writeRetryDelay)
}
