package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"finance-ledger/internal/models"
	"finance-ledger/internal/storage"
)

const budgetColumns = `id, user_id, category, amount_cents, period, created_at, updated_at`

func scanBudget(row pgx.Row) (*models.Budget, error) {
	var b models.Budget
	var amount int64
	if err := row.Scan(&b.ID, &b.UserID, &b.Category, &amount, &b.Period, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	b.Amount = models.FromCents(amount)
	return &b, nil
}

// CreateBudget сохраняет бюджет; нарушение UNIQUE (user_id, category) дает ErrBudgetExists
func (s *Storage) CreateBudget(ctx context.Context, budget *models.Budget) error {
	query := `
		INSERT INTO budgets (id, user_id, category, amount_cents, period, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
	`

	now := s.now()
	_, err := s.pool.Exec(ctx, query,
		budget.ID, budget.UserID, budget.Category, models.ToCents(budget.Amount), string(budget.Period), now,
	)
	if isUniqueViolation(err) {
		return storage.ErrBudgetExists
	}
	if err != nil {
		return err
	}
	budget.CreatedAt, budget.UpdatedAt = now, now
	return nil
}

func (s *Storage) GetBudget(ctx context.Context, userID, budgetID string) (*models.Budget, error) {
	return s.getBudget(ctx, `SELECT `+budgetColumns+` FROM budgets WHERE id = $1 AND user_id = $2`, budgetID, userID)
}

func (s *Storage) GetBudgetByCategory(ctx context.Context, userID, category string) (*models.Budget, error) {
	return s.getBudget(ctx, `SELECT `+budgetColumns+` FROM budgets WHERE user_id = $1 AND category = $2`, userID, category)
}

func (s *Storage) getBudget(ctx context.Context, query string, args ...any) (*models.Budget, error) {
	b, err := scanBudget(s.pool.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	return b, err
}

func (s *Storage) ListBudgets(ctx context.Context, userID string) ([]models.Budget, error) {
	return s.listBudgets(ctx, `SELECT `+budgetColumns+` FROM budgets WHERE user_id = $1 ORDER BY category`, userID)
}

func (s *Storage) ListAllBudgets(ctx context.Context) ([]models.Budget, error) {
	return s.listBudgets(ctx, `SELECT `+budgetColumns+` FROM budgets ORDER BY user_id, category`)
}

func (s *Storage) listBudgets(ctx context.Context, query string, args ...any) ([]models.Budget, error) {
	rows, err := s.pool.Query(ctx, query, args...)
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

func (s *Storage) UpdateBudget(ctx context.Context, budget *models.Budget) error {
	query := `
		UPDATE budgets
		SET category = $1, amount_cents = $2, period = $3, updated_at = $4
		WHERE id = $5 AND user_id = $6
		RETURNING ` + budgetColumns

	updated, err := scanBudget(s.pool.QueryRow(ctx, query,
		budget.Category, models.ToCents(budget.Amount), string(budget.Period), s.now(),
		budget.ID, budget.UserID,
	))
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return storage.ErrNotFound
	case isUniqueViolation(err):
		return storage.ErrBudgetExists
	case err != nil:
		return err
	}
	*budget = *updated
	return nil
}

func (s *Storage) DeleteBudget(ctx context.Context, userID, budgetID string) error {
	return s.execOne(ctx, `DELETE FROM budgets WHERE id = $1 AND user_id = $2`, budgetID, userID)
}
