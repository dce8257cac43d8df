package services

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finance-ledger/internal/models"
	"finance-ledger/internal/storage"
	"finance-ledger/internal/storage/memory"
)

func TestAccountService_Lifecycle(t *testing.T) {
	store := memory.New()
	service := NewAccountService(store)
	ctx := context.Background()

	account, err := service.CreateAccount(ctx, "u1", &models.CreateAccountRequest{
		Name:           "  Main  ",
		Type:           models.AccountChecking,
		InitialBalance: decimal.NewFromInt(120),
	})
	require.NoError(t, err)
	assert.Equal(t, "Main", account.Name)
	assert.True(t, account.IsActive)

	got, err := service.GetAccount(ctx, "u1", account.ID)
	require.NoError(t, err)
	assert.True(t, got.Balance.Equal(decimal.NewFromInt(120)))

	_, err = service.GetAccount(ctx, "u2", account.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, service.DeactivateAccount(ctx, "u1", account.ID))
	accounts, err := service.ListAccounts(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.False(t, accounts[0].IsActive)
}

func TestAccountService_CreateAccount_Validation(t *testing.T) {
	service := NewAccountService(memory.New())

	_, err := service.CreateAccount(context.Background(), "u1", &models.CreateAccountRequest{Name: " ", Type: models.AccountChecking})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = service.CreateAccount(context.Background(), "u1", &models.CreateAccountRequest{Name: "Main", Type: "crypto"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
