package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"finance-ledger/internal/models"
)

// SubmitContribution вызывает хранимую функцию submit_goal_contribution.
// Функция блокирует счет и цель и применяет все изменения в одной транзакции.
func (s *Storage) SubmitContribution(ctx context.Context, req models.ContributionRequest) (*models.ContributionResult, error) {
	query := `
		SELECT ok, error_message, transaction_id, account_balance_cents, goal_current_cents
		FROM submit_goal_contribution($1, $2, $3, $4, $5, $6, $7)
	`

	var (
		ok             bool
		errorMessage   *string
		transactionID  *string
		accountBalance *int64
		goalCurrent    *int64
	)
	err := s.pool.QueryRow(ctx, query,
		uuid.New().String(), req.UserID, req.GoalID, req.AccountID,
		models.ToCents(req.Amount), req.Date, req.Notes,
	).Scan(&ok, &errorMessage, &transactionID, &accountBalance, &goalCurrent)
	if err != nil {
		return nil, fmt.Errorf("submit_goal_contribution: %w", err)
	}

	if !ok {
		result := &models.ContributionResult{}
		if errorMessage != nil {
			result.ErrorMessage = *errorMessage
		}
		return result, nil
	}
	if transactionID == nil || accountBalance == nil || goalCurrent == nil {
		return nil, fmt.Errorf("submit_goal_contribution: incomplete result")
	}

	return &models.ContributionResult{
		OK:                true,
		TransactionID:     *transactionID,
		AccountBalance:    models.FromCents(*accountBalance),
		GoalCurrentAmount: models.FromCents(*goalCurrent),
	}, nil
}
