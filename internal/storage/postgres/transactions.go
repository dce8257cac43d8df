package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"finance-ledger/internal/models"
	"finance-ledger/internal/storage"
)

const transactionColumns = `id, user_id, account_id, destination_account_id, goal_id, amount_cents,
	category, type, description, from_party, to_party, status, occurred_on, created_at, updated_at`

func scanTransaction(row pgx.Row) (*models.Transaction, error) {
	var t models.Transaction
	var amount int64
	err := row.Scan(
		&t.ID, &t.UserID, &t.AccountID, &t.DestinationAccountID, &t.GoalID, &amount,
		&t.Category, &t.Type, &t.Description, &t.FromParty, &t.ToParty, &t.Status, &t.Date,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	t.Amount = models.FromCents(amount)
	return &t, nil
}

// PostTransaction сохраняет транзакцию и проводит ее по балансам в одной транзакции БД.
// Строки счетов блокируются, чтобы параллельные проводки не теряли изменения.
func (s *Storage) PostTransaction(ctx context.Context, t *models.Transaction) error {
	now := s.now()
	err := pgx.BeginFunc(ctx, s.pool, func(dbTx pgx.Tx) error {
		for accountID, cents := range storage.BalanceDeltas(t) {
			var active bool
			err := dbTx.QueryRow(ctx,
				`SELECT is_active FROM accounts WHERE id = $1 AND user_id = $2 FOR UPDATE`,
				accountID, t.UserID,
			).Scan(&active)
			if errors.Is(err, pgx.ErrNoRows) {
				return storage.ErrNotFound
			}
			if err != nil {
				return err
			}
			if !active {
				return storage.ErrAccountInactive
			}

			if _, err := dbTx.Exec(ctx,
				`UPDATE accounts SET balance_cents = balance_cents + $1, updated_at = $2 WHERE id = $3`,
				cents, now, accountID,
			); err != nil {
				return fmt.Errorf("failed to post balance: %w", err)
			}
		}

		_, err := dbTx.Exec(ctx, `
			INSERT INTO transactions (
				id, user_id, account_id, destination_account_id, goal_id, amount_cents,
				category, type, description, from_party, to_party, status, occurred_on,
				created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $14)`,
			t.ID, t.UserID, t.AccountID, t.DestinationAccountID, t.GoalID, models.ToCents(t.Amount),
			t.Category, string(t.Type), t.Description, t.FromParty, t.ToParty, string(t.Status), t.Date,
			now,
		)
		if err != nil {
			return fmt.Errorf("failed to insert transaction: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	t.CreatedAt, t.UpdatedAt = now, now
	return nil
}

func (s *Storage) GetTransaction(ctx context.Context, userID, transactionID string) (*models.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1 AND user_id = $2`

	t, err := scanTransaction(s.pool.QueryRow(ctx, query, transactionID, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	return t, err
}

// QueryTransactions выбирает транзакции по фильтру, новые первыми
func (s *Storage) QueryTransactions(ctx context.Context, filter models.TransactionFilter) ([]models.Transaction, error) {
	args := pgx.NamedArgs{"user_id": filter.UserID}
	conditions := []string{"user_id = @user_id"}

	if filter.AccountID != "" {
		conditions = append(conditions, "account_id = @account_id")
		args["account_id"] = filter.AccountID
	}
	if filter.Category != "" {
		conditions = append(conditions, "category = @category")
		args["category"] = filter.Category
	}
	if filter.Type != "" {
		conditions = append(conditions, "type = @type")
		args["type"] = string(filter.Type)
	}
	if filter.DateFrom != nil {
		conditions = append(conditions, "occurred_on >= @date_from")
		args["date_from"] = models.FormatDate(*filter.DateFrom)
	}
	if filter.DateTo != nil {
		conditions = append(conditions, "occurred_on <= @date_to")
		args["date_to"] = models.FormatDate(*filter.DateTo)
	}

	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE ` +
		strings.Join(conditions, " AND ") + ` ORDER BY occurred_on DESC, created_at DESC`

	rows, err := s.pool.Query(ctx, query, args)
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

func (s *Storage) UpdateTransaction(
	ctx context.Context,
	userID, transactionID string,
	patch models.TransactionPatch,
) (*models.Transaction, error) {
	args := pgx.NamedArgs{"id": transactionID, "user_id": userID, "updated_at": s.now()}
	sets := []string{"updated_at = @updated_at"}

	if patch.Description != nil {
		sets = append(sets, "description = @description")
		args["description"] = *patch.Description
	}
	if patch.Category != nil {
		sets = append(sets, "category = @category")
		args["category"] = *patch.Category
	}
	if patch.Status != nil {
		sets = append(sets, "status = @status")
		args["status"] = string(*patch.Status)
	}
	if patch.Date != nil {
		sets = append(sets, "occurred_on = @occurred_on")
		args["occurred_on"] = models.FormatDate(*patch.Date)
	}

	query := `UPDATE transactions SET ` + strings.Join(sets, ", ") +
		` WHERE id = @id AND user_id = @user_id RETURNING ` + transactionColumns

	t, err := scanTransaction(s.pool.QueryRow(ctx, query, args))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	return t, err
}
