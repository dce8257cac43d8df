package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"finance-ledger/internal/models"
	"finance-ledger/internal/storage"
)

const goalColumns = `id, user_id, name, target_cents, current_cents, target_date, priority, status, created_at, updated_at`

func scanGoal(row pgx.Row) (*models.Goal, error) {
	var g models.Goal
	var target, current int64
	err := row.Scan(&g.ID, &g.UserID, &g.Name, &target, &current, &g.TargetDate, &g.Priority, &g.Status, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return nil, err
	}
	g.TargetAmount = models.FromCents(target)
	g.CurrentAmount = models.FromCents(current)
	return &g, nil
}

func (s *Storage) CreateGoal(ctx context.Context, goal *models.Goal) error {
	query := `
		INSERT INTO goals (
			id, user_id, name, target_cents, current_cents, target_date,
			priority, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
	`

	now := s.now()
	_, err := s.pool.Exec(ctx, query,
		goal.ID, goal.UserID, goal.Name, models.ToCents(goal.TargetAmount), models.ToCents(goal.CurrentAmount),
		goal.TargetDate, string(goal.Priority), string(goal.Status), now,
	)
	if err != nil {
		return err
	}
	goal.CreatedAt, goal.UpdatedAt = now, now
	return nil
}

func (s *Storage) GetGoal(ctx context.Context, userID, goalID string) (*models.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM goals WHERE id = $1 AND user_id = $2`

	g, err := scanGoal(s.pool.QueryRow(ctx, query, goalID, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	return g, err
}

func (s *Storage) ListGoals(ctx context.Context, userID string) ([]models.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM goals WHERE user_id = $1 ORDER BY created_at`

	rows, err := s.pool.Query(ctx, query, userID)
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

func (s *Storage) UpdateGoal(ctx context.Context, goal *models.Goal) error {
	query := `
		UPDATE goals
		SET name = $1, target_cents = $2, current_cents = $3, target_date = $4,
		    priority = $5, status = $6, updated_at = $7
		WHERE id = $8 AND user_id = $9
		RETURNING ` + goalColumns

	updated, err := scanGoal(s.pool.QueryRow(ctx, query,
		goal.Name, models.ToCents(goal.TargetAmount), models.ToCents(goal.CurrentAmount), goal.TargetDate,
		string(goal.Priority), string(goal.Status), s.now(),
		goal.ID, goal.UserID,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return storage.ErrNotFound
	}
	if err != nil {
		return err
	}
	*goal = *updated
	return nil
}

// DeleteGoal удаляет цель; goal_id связанных транзакций обнуляется внешним ключом
func (s *Storage) DeleteGoal(ctx context.Context, userID, goalID string) error {
	return s.execOne(ctx, `DELETE FROM goals WHERE id = $1 AND user_id = $2`, goalID, userID)
}
