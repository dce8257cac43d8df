package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finance-ledger/config"
	"finance-ledger/internal/models"
	"finance-ledger/internal/storage"
)

const testUser = "user-1"

func setupTestStorage(t *testing.T) *SQLiteStorage {
	cfg := &config.Config{
		DB: config.DBConfig{
			DBPath: filepath.Join(t.TempDir(), "ledger_test.db"),
		},
	}

	s, err := NewConnection(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func seedAccount(t *testing.T, s *SQLiteStorage, balance string) *models.Account {
	account := &models.Account{
		ID:       uuid.New().String(),
		UserID:   testUser,
		Name:     "Checking",
		Type:     models.AccountChecking,
		Balance:  decimal.RequireFromString(balance),
		IsActive: true,
	}
	require.NoError(t, s.CreateAccount(context.Background(), account))
	return account
}

func seedGoal(t *testing.T, s *SQLiteStorage, current, target string) *models.Goal {
	goal := &models.Goal{
		ID:            uuid.New().String(),
		UserID:        testUser,
		Name:          "Vacation",
		TargetAmount:  decimal.RequireFromString(target),
		CurrentAmount: decimal.RequireFromString(current),
		Priority:      models.PriorityMedium,
		Status:        models.GoalActive,
	}
	require.NoError(t, s.CreateGoal(context.Background(), goal))
	return goal
}

func date(s string) time.Time {
	d, _ := models.ParseDate(s)
	return d
}

func TestNewConnection_CreatesSchema(t *testing.T) {
	s := setupTestStorage(t)

	var count int
	err := s.DB.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name IN ('accounts', 'transactions', 'budgets', 'goals')`).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 4, count)
}

func TestAccount_CreateGetDeactivate(t *testing.T) {
	s := setupTestStorage(t)
	ctx := context.Background()
	account := seedAccount(t, s, "1250.75")

	got, err := s.GetAccount(ctx, testUser, account.ID)
	require.NoError(t, err)
	assert.True(t, got.Balance.Equal(decimal.RequireFromString("1250.75")))
	assert.True(t, got.IsActive)

	_, err = s.GetAccount(ctx, "someone-else", account.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, s.DeactivateAccount(ctx, testUser, account.ID))
	got, err = s.GetAccount(ctx, testUser, account.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	accounts, err := s.ListAccounts(ctx, testUser)
	require.NoError(t, err)
	assert.Len(t, accounts, 1)

	assert.ErrorIs(t, s.DeactivateAccount(ctx, testUser, "missing"), storage.ErrNotFound)
}

func TestPostTransaction_UpdatesBalances(t *testing.T) {
	s := setupTestStorage(t)
	ctx := context.Background()
	from := seedAccount(t, s, "500")
	to := seedAccount(t, s, "0")

	expense := &models.Transaction{
		ID: uuid.New().String(), UserID: testUser, AccountID: from.ID,
		Amount: decimal.NewFromInt(-120), Category: "Food & Dining",
		Type: models.TransactionExpense, Status: models.StatusCompleted, Date: date("2024-03-10"),
	}
	require.NoError(t, s.PostTransaction(ctx, expense))

	destination := to.ID
	transfer := &models.Transaction{
		ID: uuid.New().String(), UserID: testUser, AccountID: from.ID, DestinationAccountID: &destination,
		Amount: decimal.NewFromInt(-80), Category: "Transfer",
		Type: models.TransactionTransfer, Status: models.StatusCompleted, Date: date("2024-03-11"),
	}
	require.NoError(t, s.PostTransaction(ctx, transfer))

	gotFrom, err := s.GetAccount(ctx, testUser, from.ID)
	require.NoError(t, err)
	assert.True(t, gotFrom.Balance.Equal(decimal.NewFromInt(300)))

	gotTo, err := s.GetAccount(ctx, testUser, to.ID)
	require.NoError(t, err)
	assert.True(t, gotTo.Balance.Equal(decimal.NewFromInt(80)))

	stored, err := s.GetTransaction(ctx, testUser, transfer.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.DestinationAccountID)
	assert.Equal(t, to.ID, *stored.DestinationAccountID)
	assert.Equal(t, "2024-03-11", models.FormatDate(stored.Date))
}

func TestPostTransaction_InactiveAccountLeavesNoTrace(t *testing.T) {
	s := setupTestStorage(t)
	ctx := context.Background()
	account := seedAccount(t, s, "100")
	require.NoError(t, s.DeactivateAccount(ctx, testUser, account.ID))

	tx := &models.Transaction{
		ID: uuid.New().String(), UserID: testUser, AccountID: account.ID,
		Amount: decimal.NewFromInt(-10), Category: "Food & Dining",
		Type: models.TransactionExpense, Status: models.StatusCompleted, Date: date("2024-03-10"),
	}
	assert.ErrorIs(t, s.PostTransaction(ctx, tx), storage.ErrAccountInactive)

	_, err := s.GetTransaction(ctx, testUser, tx.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestQueryTransactions_FilterAndOrder(t *testing.T) {
	s := setupTestStorage(t)
	ctx := context.Background()
	account := seedAccount(t, s, "1000")

	for _, d := range []string{"2024-02-29", "2024-03-01", "2024-03-15", "2024-03-31", "2024-04-01"} {
		require.NoError(t, s.PostTransaction(ctx, &models.Transaction{
			ID: uuid.New().String(), UserID: testUser, AccountID: account.ID,
			Amount: decimal.NewFromInt(-10), Category: "Food & Dining",
			Type: models.TransactionExpense, Status: models.StatusCompleted, Date: date(d),
		}))
	}
	require.NoError(t, s.PostTransaction(ctx, &models.Transaction{
		ID: uuid.New().String(), UserID: testUser, AccountID: account.ID,
		Amount: decimal.NewFromInt(50), Category: "Food & Dining",
		Type: models.TransactionIncome, Status: models.StatusCompleted, Date: date("2024-03-20"),
	}))

	from, to := date("2024-03-01"), date("2024-03-31")
	txs, err := s.QueryTransactions(ctx, models.TransactionFilter{
		UserID:   testUser,
		Category: "Food & Dining",
		Type:     models.TransactionExpense,
		DateFrom: &from,
		DateTo:   &to,
	})
	require.NoError(t, err)
	require.Len(t, txs, 3)
	assert.Equal(t, "2024-03-31", models.FormatDate(txs[0].Date))
	assert.Equal(t, "2024-03-01", models.FormatDate(txs[2].Date))
}

func TestUpdateTransaction(t *testing.T) {
	s := setupTestStorage(t)
	ctx := context.Background()
	account := seedAccount(t, s, "100")

	tx := &models.Transaction{
		ID: uuid.New().String(), UserID: testUser, AccountID: account.ID,
		Amount: decimal.NewFromInt(-10), Category: "Misc",
		Type: models.TransactionExpense, Status: models.StatusPending, Date: date("2024-03-10"),
	}
	require.NoError(t, s.PostTransaction(ctx, tx))

	category := "Groceries"
	status := models.StatusCompleted
	updated, err := s.UpdateTransaction(ctx, testUser, tx.ID, models.TransactionPatch{Category: &category, Status: &status})
	require.NoError(t, err)
	assert.Equal(t, "Groceries", updated.Category)
	assert.Equal(t, models.StatusCompleted, updated.Status)
	assert.True(t, updated.Amount.Equal(decimal.NewFromInt(-10)))

	_, err = s.UpdateTransaction(ctx, "someone-else", tx.ID, models.TransactionPatch{Category: &category})
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestCreateBudget_DuplicateCategory(t *testing.T) {
	s := setupTestStorage(t)
	ctx := context.Background()

	first := &models.Budget{ID: uuid.New().String(), UserID: testUser, Category: "Food & Dining", Amount: decimal.NewFromInt(500), Period: models.PeriodMonthly}
	require.NoError(t, s.CreateBudget(ctx, first))

	second := &models.Budget{ID: uuid.New().String(), UserID: testUser, Category: "Food & Dining", Amount: decimal.NewFromInt(300), Period: models.PeriodWeekly}
	assert.ErrorIs(t, s.CreateBudget(ctx, second), storage.ErrBudgetExists)

	budgets, err := s.ListBudgets(ctx, testUser)
	require.NoError(t, err)
	require.Len(t, budgets, 1)
	assert.Equal(t, first.ID, budgets[0].ID)

	other := &models.Budget{ID: uuid.New().String(), UserID: "user-2", Category: "Food & Dining", Amount: decimal.NewFromInt(300), Period: models.PeriodMonthly}
	assert.NoError(t, s.CreateBudget(ctx, other))

	all, err := s.ListAllBudgets(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestBudget_UpdateDelete(t *testing.T) {
	s := setupTestStorage(t)
	ctx := context.Background()

	b := &models.Budget{ID: uuid.New().String(), UserID: testUser, Category: "Travel", Amount: decimal.NewFromInt(500), Period: models.PeriodMonthly}
	require.NoError(t, s.CreateBudget(ctx, b))

	b.Amount = decimal.NewFromInt(750)
	b.Period = models.PeriodYearly
	require.NoError(t, s.UpdateBudget(ctx, b))

	got, err := s.GetBudgetByCategory(ctx, testUser, "Travel")
	require.NoError(t, err)
	assert.True(t, got.Amount.Equal(decimal.NewFromInt(750)))
	assert.Equal(t, models.PeriodYearly, got.Period)

	require.NoError(t, s.DeleteBudget(ctx, testUser, b.ID))
	_, err = s.GetBudget(ctx, testUser, b.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.ErrorIs(t, s.DeleteBudget(ctx, testUser, b.ID), storage.ErrNotFound)
}

func TestSubmitContribution_Success(t *testing.T) {
	s := setupTestStorage(t)
	ctx := context.Background()
	account := seedAccount(t, s, "250")
	goal := seedGoal(t, s, "400", "1000")

	result, err := s.SubmitContribution(ctx, models.ContributionRequest{
		UserID:    testUser,
		GoalID:    goal.ID,
		AccountID: account.ID,
		Amount:    decimal.NewFromInt(100),
		Date:      date("2024-03-15"),
		Notes:     "march",
	})
	require.NoError(t, err)
	require.True(t, result.OK)
	assert.True(t, result.AccountBalance.Equal(decimal.NewFromInt(150)))
	assert.True(t, result.GoalCurrentAmount.Equal(decimal.NewFromInt(500)))

	tx, err := s.GetTransaction(ctx, testUser, result.TransactionID)
	require.NoError(t, err)
	assert.Equal(t, models.TransactionTransfer, tx.Type)
	assert.Equal(t, models.GoalContributionCategory, tx.Category)
	assert.True(t, tx.Amount.Equal(decimal.NewFromInt(-100)))
	assert.Equal(t, "Checking", tx.FromParty)
	assert.Equal(t, "Vacation", tx.ToParty)
	require.NotNil(t, tx.GoalID)
	assert.Equal(t, goal.ID, *tx.GoalID)
}

func TestSubmitContribution_RejectionLeavesNoTrace(t *testing.T) {
	s := setupTestStorage(t)
	ctx := context.Background()
	account := seedAccount(t, s, "50")
	goal := seedGoal(t, s, "400", "1000")

	tests := []struct {
		name    string
		req     models.ContributionRequest
		message string
	}{
		{
			name:    "insufficient funds",
			req:     models.ContributionRequest{UserID: testUser, GoalID: goal.ID, AccountID: account.ID, Amount: decimal.NewFromInt(100), Date: date("2024-03-15")},
			message: "insufficient funds",
		},
		{
			name:    "unknown goal",
			req:     models.ContributionRequest{UserID: testUser, GoalID: "missing", AccountID: account.ID, Amount: decimal.NewFromInt(10), Date: date("2024-03-15")},
			message: "goal not found",
		},
		{
			name:    "foreign account",
			req:     models.ContributionRequest{UserID: "user-2", GoalID: goal.ID, AccountID: account.ID, Amount: decimal.NewFromInt(10), Date: date("2024-03-15")},
			message: "account not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := s.SubmitContribution(ctx, tt.req)
			require.NoError(t, err)
			assert.False(t, result.OK)
			assert.Equal(t, tt.message, result.ErrorMessage)
		})
	}

	gotAccount, err := s.GetAccount(ctx, testUser, account.ID)
	require.NoError(t, err)
	assert.True(t, gotAccount.Balance.Equal(decimal.NewFromInt(50)))

	gotGoal, err := s.GetGoal(ctx, testUser, goal.ID)
	require.NoError(t, err)
	assert.True(t, gotGoal.CurrentAmount.Equal(decimal.NewFromInt(400)))

	txs, err := s.QueryTransactions(ctx, models.TransactionFilter{UserID: testUser})
	require.NoError(t, err)
	assert.Empty(t, txs)
}

func TestDeleteGoal_KeepsTransactions(t *testing.T) {
	s := setupTestStorage(t)
	ctx := context.Background()
	account := seedAccount(t, s, "250")
	goal := seedGoal(t, s, "0", "1000")

	result, err := s.SubmitContribution(ctx, models.ContributionRequest{
		UserID: testUser, GoalID: goal.ID, AccountID: account.ID,
		Amount: decimal.NewFromInt(25), Date: date("2024-03-15"),
	})
	require.NoError(t, err)
	require.True(t, result.OK)

	require.NoError(t, s.DeleteGoal(ctx, testUser, goal.ID))

	tx, err := s.GetTransaction(ctx, testUser, result.TransactionID)
	require.NoError(t, err)
	assert.Nil(t, tx.GoalID)
}

func TestGoal_UpdateKeepsTargetDate(t *testing.T) {
	s := setupTestStorage(t)
	ctx := context.Background()
	goal := seedGoal(t, s, "0", "1000")

	target := date("2025-06-30")
	goal.TargetDate = &target
	goal.Status = models.GoalPaused
	require.NoError(t, s.UpdateGoal(ctx, goal))

	got, err := s.GetGoal(ctx, testUser, goal.ID)
	require.NoError(t, err)
	require.NotNil(t, got.TargetDate)
	assert.Equal(t, "2025-06-30", models.FormatDate(*got.TargetDate))
	assert.Equal(t, models.GoalPaused, got.Status)

	goals, err := s.ListGoals(ctx, testUser)
	require.NoError(t, err)
	assert.Len(t, goals, 1)
}
