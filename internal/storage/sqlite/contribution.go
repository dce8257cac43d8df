package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"finance-ledger/internal/models"
)

// SubmitContribution списывает сумму со счета, пополняет цель и записывает транзакцию в одной транзакции БД.
// Отказ по бизнес-правилу возвращается как результат с OK=false, ошибка означает сбой хранилища.
func (s *SQLiteStorage) SubmitContribution(ctx context.Context, req models.ContributionRequest) (*models.ContributionResult, error) {
	var result *models.ContributionResult
	err := retryOperation(func() error {
		var err error
		result, err = s.submitContribution(ctx, req)
		return err
	}, writeRetries, writeRetryDelay)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *SQLiteStorage) submitContribution(ctx context.Context, req models.ContributionRequest) (*models.ContributionResult, error) {
	dbTx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer dbTx.Rollback()

	var accountName string
	var active bool
	err = dbTx.QueryRowContext(ctx,
		`SELECT name, is_active FROM accounts WHERE id = ? AND user_id = ?`,
		req.AccountID, req.UserID,
	).Scan(&accountName, &active)
	if errors.Is(err, sql.ErrNoRows) {
		return rejected("account not found"), nil
	}
	if err != nil {
		return nil, err
	}
	if !active {
		return rejected("account is inactive"), nil
	}

	var goalName string
	err = dbTx.QueryRowContext(ctx,
		`SELECT name FROM goals WHERE id = ? AND user_id = ?`,
		req.GoalID, req.UserID,
	).Scan(&goalName)
	if errors.Is(err, sql.ErrNoRows) {
		return rejected("goal not found"), nil
	}
	if err != nil {
		return nil, err
	}

	cents := models.ToCents(req.Amount)
	now := s.now()

	// Условное списание: баланс проверяется и уменьшается одним оператором
	res, err := dbTx.ExecContext(ctx,
		`UPDATE accounts SET balance_cents = balance_cents - ?, updated_at = ? WHERE id = ? AND balance_cents >= ?`,
		cents, now, req.AccountID, cents,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to debit account: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return nil, err
	} else if n == 0 {
		return rejected("insufficient funds"), nil
	}

	if _, err := dbTx.ExecContext(ctx,
		`UPDATE goals SET current_cents = current_cents + ?, updated_at = ? WHERE id = ?`,
		cents, now, req.GoalID,
	); err != nil {
		return nil, fmt.Errorf("failed to credit goal: %w", err)
	}

	goalID := req.GoalID
	tx := &models.Transaction{
		ID:          uuid.New().String(),
		UserID:      req.UserID,
		AccountID:   req.AccountID,
		GoalID:      &goalID,
		Amount:      req.Amount.Neg(),
		Category:    models.GoalContributionCategory,
		Type:        models.TransactionTransfer,
		Description: req.Notes,
		FromParty:   accountName,
		ToParty:     goalName,
		Status:      models.StatusCompleted,
		Date:        req.Date,
	}
	if err := insertTransaction(ctx, dbTx, tx, now); err != nil {
		return nil, err
	}

	var balance, current int64
	if err := dbTx.QueryRowContext(ctx, `SELECT balance_cents FROM accounts WHERE id = ?`, req.AccountID).Scan(&balance); err != nil {
		return nil, err
	}
	if err := dbTx.QueryRowContext(ctx, `SELECT current_cents FROM goals WHERE id = ?`, req.GoalID).Scan(&current); err != nil {
		return nil, err
	}

	if err := dbTx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &models.ContributionResult{
		OK:                true,
		TransactionID:     tx.ID,
		AccountBalance:    models.FromCents(balance),
		GoalCurrentAmount: models.FromCents(current),
	}, nil
}

func rejected(message string) *models.ContributionResult {
	return &models.ContributionResult{ErrorMessage: message}
}
