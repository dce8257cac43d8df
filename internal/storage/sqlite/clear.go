package sqlite

import (
	"context"
)

// DeleteBudget удаляет бюджет пользователя
func (s *SQLiteStorage) DeleteBudget(ctx context.Context, userID, budgetID string) error {
	return s.execOne(ctx, `DELETE FROM budgets WHERE id = ? AND user_id = ?`, budgetID, userID)
}

// DeleteGoal удаляет цель; связанные транзакции остаются без ссылки на нее (ON DELETE SET NULL)
func (s *SQLiteStorage) DeleteGoal(ctx context.Context, userID, goalID string) error {
	return s.execOne(ctx, `DELETE FROM goals WHERE id = ? AND user_id = ?`, goalID, userID)
}
