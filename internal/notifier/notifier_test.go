package notifier

import (
	"context"
	"errors"
	"testing"
	"time"

	"finance-ledger/internal/models"
	redismocks "finance-ledger/internal/redis/mocks"
	"finance-ledger/internal/services"
	"finance-ledger/internal/storage/memory"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 3, 20, 9, 0, 0, 0, time.UTC)

func setupNotifier(t *testing.T) (*Notifier, *redismocks.MockClientInterface, *memory.Store) {
	t.Helper()
	store := memory.New()
	ctx := context.Background()
	require.NoError(t, store.CreateAccount(ctx, &models.Account{ID: "acc-1", UserID: "u1", Name: "Main", Balance: decimal.NewFromInt(1000), IsActive: true}))
	require.NoError(t, store.CreateBudget(ctx, &models.Budget{ID: "b-food", UserID: "u1", Category: "Food", Amount: decimal.NewFromInt(400), Period: models.PeriodMonthly}))
	require.NoError(t, store.CreateBudget(ctx, &models.Budget{ID: "b-fun", UserID: "u1", Category: "Fun", Amount: decimal.NewFromInt(100), Period: models.PeriodMonthly}))

	redisMock := new(redismocks.MockClientInterface)
	n := New(services.NewBudgetService(store, store), redisMock, redisMock)
	n.now = func() time.Time { return testNow }
	return n, redisMock, store
}

func postExpense(t *testing.T, store *memory.Store, id, category string, amount int64, date string) {
	t.Helper()
	d, err := models.ParseDate(date)
	require.NoError(t, err)
	require.NoError(t, store.PostTransaction(context.Background(), &models.Transaction{
		ID: id, UserID: "u1", AccountID: "acc-1", Amount: decimal.NewFromInt(-amount),
		Type: models.TransactionExpense, Category: category, Status: models.StatusCompleted, Date: d,
	}))
}

func expenseEvent(category string) *models.LedgerEvent {
	return &models.LedgerEvent{
		EventID:   "evt-1",
		EventType: models.EventTransactionPosted,
		Data: models.LedgerEventData{
			UserID:        "u1",
			TransactionID: "t1",
			AccountID:     "acc-1",
			Category:      category,
			Type:          models.TransactionExpense,
		},
	}
}

func TestNotifier_HandleEvent_RaisesAlert(t *testing.T) {
	n, redisMock, store := setupNotifier(t)
	postExpense(t, store, "t1", "Food", 350, "2024-03-05")

	redisMock.On("IncrementBudgetStatusStats", mock.Anything, models.BudgetWarning).Return(nil)
	redisMock.On("SaveBudgetAlert", mock.Anything, mock.MatchedBy(func(a *models.BudgetAlert) bool {
		return a.BudgetID == "b-food" && a.Status == models.BudgetWarning &&
			a.SpentAmount.Equal(decimal.NewFromInt(350)) && a.PeriodEnd == "2024-03-31"
	}), mock.MatchedBy(func(ttl time.Duration) bool {
		// Конец периода 31 марта, уведомление живет до конца 1 апреля
		return ttl == time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC).Sub(testNow)
	})).Return(nil)

	require.NoError(t, n.HandleEvent(expenseEvent("Food")))
	redisMock.AssertExpectations(t)
}

func TestNotifier_HandleEvent_GoodClearsAlert(t *testing.T) {
	n, redisMock, store := setupNotifier(t)
	postExpense(t, store, "t1", "Food", 50, "2024-03-05")

	redisMock.On("IncrementBudgetStatusStats", mock.Anything, models.BudgetGood).Return(nil)
	redisMock.On("DeleteBudgetAlert", mock.Anything, "u1", "b-food").Return(nil)

	require.NoError(t, n.HandleEvent(expenseEvent("Food")))
	redisMock.AssertExpectations(t)
	redisMock.AssertNotCalled(t, "SaveBudgetAlert", mock.Anything, mock.Anything, mock.Anything)
}

func TestNotifier_HandleEvent_Skipped(t *testing.T) {
	n, redisMock, _ := setupNotifier(t)

	income := expenseEvent("Salary")
	income.Data.Type = models.TransactionIncome
	contribution := expenseEvent("Food")
	contribution.EventType = models.EventGoalContributionCompleted

	assert.NoError(t, n.HandleEvent(income))
	assert.NoError(t, n.HandleEvent(contribution))
	assert.NoError(t, n.HandleEvent(expenseEvent("")))
	// Для категории без бюджета уведомлений нет
	assert.NoError(t, n.HandleEvent(expenseEvent("Travel")))

	redisMock.AssertNotCalled(t, "IncrementBudgetStatusStats", mock.Anything, mock.Anything)
}

func TestNotifier_HandleEvent_RedisError(t *testing.T) {
	n, redisMock, store := setupNotifier(t)
	postExpense(t, store, "t1", "Fun", 150, "2024-03-05")

	redisMock.On("IncrementBudgetStatusStats", mock.Anything, models.BudgetOver).Return(errors.New("stats down"))
	redisMock.On("SaveBudgetAlert", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("connection refused"))

	err := n.HandleEvent(expenseEvent("Fun"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "b-fun")
}

func TestNotifier_Sweep(t *testing.T) {
	n, redisMock, store := setupNotifier(t)
	postExpense(t, store, "t1", "Food", 100, "2024-03-05")
	postExpense(t, store, "t2", "Fun", 100, "2024-03-06")

	redisMock.On("IncrementBudgetStatusStats", mock.Anything, mock.Anything).Return(nil)
	redisMock.On("DeleteBudgetAlert", mock.Anything, "u1", "b-food").Return(nil)
	redisMock.On("SaveBudgetAlert", mock.Anything, mock.MatchedBy(func(a *models.BudgetAlert) bool {
		return a.BudgetID == "b-fun" && a.Status == models.BudgetFull
	}), mock.Anything).Return(nil)

	require.NoError(t, n.Sweep(context.Background()))
	redisMock.AssertExpectations(t)
}

func TestNotifier_Sweep_PartialFailure(t *testing.T) {
	n, redisMock, _ := setupNotifier(t)

	redisMock.On("IncrementBudgetStatusStats", mock.Anything, mock.Anything).Return(nil)
	redisMock.On("DeleteBudgetAlert", mock.Anything, "u1", "b-food").Return(errors.New("timeout"))
	redisMock.On("DeleteBudgetAlert", mock.Anything, "u1", "b-fun").Return(nil)

	err := n.Sweep(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2")
	redisMock.AssertExpectations(t)
}

func TestAlertTTL(t *testing.T) {
	now := time.Date(2024, 3, 31, 23, 0, 0, 0, time.UTC)
	assert.Equal(t, 25*time.Hour, alertTTL("2024-03-31", now))
	assert.Equal(t, 24*time.Hour, alertTTL("2024-03-01", now))
	assert.Equal(t, 24*time.Hour, alertTTL("bad", now))
}
