package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"finance-ledger/internal/models"
	"finance-ledger/internal/storage"
)

const accountColumns = `id, user_id, name, type, balance_cents, is_active, created_at, updated_at`

func scanAccount(row pgx.Row) (*models.Account, error) {
	var a models.Account
	var balance int64
	if err := row.Scan(&a.ID, &a.UserID, &a.Name, &a.Type, &balance, &a.IsActive, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	a.Balance = models.FromCents(balance)
	return &a, nil
}

func (s *Storage) CreateAccount(ctx context.Context, account *models.Account) error {
	query := `
		INSERT INTO accounts (id, user_id, name, type, balance_cents, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
	`

	now := s.now()
	_, err := s.pool.Exec(ctx, query,
		account.ID, account.UserID, account.Name, string(account.Type),
		models.ToCents(account.Balance), account.IsActive, now,
	)
	if err != nil {
		return err
	}
	account.CreatedAt, account.UpdatedAt = now, now
	return nil
}

func (s *Storage) GetAccount(ctx context.Context, userID, accountID string) (*models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1 AND user_id = $2`

	a, err := scanAccount(s.pool.QueryRow(ctx, query, accountID, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	return a, err
}

func (s *Storage) ListAccounts(ctx context.Context, userID string) ([]models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE user_id = $1 ORDER BY created_at`

	rows, err := s.pool.Query(ctx, query, userID)
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

func (s *Storage) DeactivateAccount(ctx context.Context, userID, accountID string) error {
	return s.execOne(ctx,
		`UPDATE accounts SET is_active = FALSE, updated_at = $1 WHERE id = $2 AND user_id = $3`,
		s.now(), accountID, userID,
	)
}
