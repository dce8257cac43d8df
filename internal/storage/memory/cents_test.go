package memory

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finance-ledger/config"
	"finance-ledger/internal/models"
	"finance-ledger/internal/storage"
	"finance-ledger/internal/storage/sqlite"
)

// Память и SQLite должны одинаково переводить суммы в копейки
func TestStore_CentArithmeticMatchesSQLite(t *testing.T) {
	sqliteStore, err := sqlite.NewConnection(&config.Config{
		DB: config.DBConfig{DBPath: filepath.Join(t.TempDir(), "ledger_test.db")},
	})
	require.NoError(t, err)
	t.Cleanup(func() { sqliteStore.Close() })

	stores := map[string]storage.Store{
		"memory": New(),
		"sqlite": sqliteStore,
	}

	for name, s := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, s.CreateAccount(ctx, &models.Account{ID: "acc-1", UserID: "u1", Name: "Main", Type: models.AccountChecking, Balance: decimal.NewFromInt(250), IsActive: true}))
			require.NoError(t, s.CreateGoal(ctx, &models.Goal{ID: "goal-1", UserID: "u1", Name: "Car", TargetAmount: decimal.NewFromInt(1000), CurrentAmount: decimal.NewFromInt(400), Priority: models.PriorityMedium, Status: models.GoalActive}))

			result, err := s.SubmitContribution(ctx, models.ContributionRequest{
				UserID: "u1", GoalID: "goal-1", AccountID: "acc-1",
				Amount: decimal.RequireFromString("100.005"), Date: date("2024-03-15"),
			})
			require.NoError(t, err)
			require.True(t, result.OK)
			assert.True(t, result.AccountBalance.Equal(decimal.RequireFromString("149.99")), "balance %s", result.AccountBalance)
			assert.True(t, result.GoalCurrentAmount.Equal(decimal.RequireFromString("500.01")), "goal %s", result.GoalCurrentAmount)

			contribution, err := s.GetTransaction(ctx, "u1", result.TransactionID)
			require.NoError(t, err)
			assert.True(t, contribution.Amount.Equal(decimal.RequireFromString("-100.01")), "contribution %s", contribution.Amount)

			require.NoError(t, s.PostTransaction(ctx, &models.Transaction{
				ID: "t-" + name, UserID: "u1", AccountID: "acc-1", Amount: decimal.RequireFromString("-10.005"),
				Type: models.TransactionExpense, Category: "Food", Status: models.StatusCompleted, Date: date("2024-03-16"),
			}))

			account, err := s.GetAccount(ctx, "u1", "acc-1")
			require.NoError(t, err)
			assert.True(t, account.Balance.Equal(decimal.RequireFromString("139.98")), "balance %s", account.Balance)

			expense, err := s.GetTransaction(ctx, "u1", "t-"+name)
			require.NoError(t, err)
			assert.True(t, expense.Amount.Equal(decimal.RequireFromString("-10.01")), "expense %s", expense.Amount)
		})
	}
}
