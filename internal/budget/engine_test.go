package budget

import (
	"context"
	"errors"
	"testing"
	"time"

	"finance-ledger/internal/models"
	"finance-ledger/internal/period"
	storagemocks "finance-ledger/internal/storage/mocks"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, time.March, 20, 12, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func expense(category, amount string, day int) models.Transaction {
	return models.Transaction{
		Type:     models.TransactionExpense,
		Category: category,
		Amount:   dec(amount).Neg(),
		Date:     time.Date(2024, time.March, day, 0, 0, 0, 0, time.UTC),
	}
}

func foodBudget(limit string) models.Budget {
	return models.Budget{
		ID:       "budget-1",
		UserID:   "user-1",
		Category: "Food & Dining",
		Amount:   dec(limit),
		Period:   models.PeriodMonthly,
	}
}

func TestClassify_Boundaries(t *testing.T) {
	limit := dec("100")

	tests := []struct {
		spent string
		want  models.BudgetStatus
	}{
		{"0", models.BudgetGood},
		{"80", models.BudgetGood},
		{"80.00", models.BudgetGood},
		{"80.01", models.BudgetWarning},
		{"99.99", models.BudgetWarning},
		{"100", models.BudgetFull},
		{"100.00", models.BudgetFull},
		{"100.01", models.BudgetOver},
		{"250", models.BudgetOver},
	}

	for _, tt := range tests {
		t.Run(tt.spent, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(dec(tt.spent), limit))
		})
	}
}

func TestClassify_NonRoundLimit(t *testing.T) {
	// 80% от 333.33 = 266.664
	limit := dec("333.33")

	assert.Equal(t, models.BudgetGood, Classify(dec("266.66"), limit))
	assert.Equal(t, models.BudgetWarning, Classify(dec("266.67"), limit))
	assert.Equal(t, models.BudgetFull, Classify(dec("333.33"), limit))
	assert.Equal(t, models.BudgetOver, Classify(dec("333.34"), limit))
}

func TestSummarize_FullBudget(t *testing.T) {
	b := foodBudget("500")
	txs := []models.Transaction{
		expense("Food & Dining", "120.50", 2),
		expense("Food & Dining", "379.50", 18),
	}

	eval := Summarize(b, txs, now)

	assert.True(t, eval.SpentAmount.Equal(dec("500")))
	assert.True(t, eval.RemainingAmount.IsZero())
	assert.Equal(t, models.BudgetFull, eval.Status)
	assert.True(t, eval.Percentage.Equal(dec("100")))
	assert.Equal(t, "2024-03-01", eval.PeriodStart)
	assert.Equal(t, "2024-03-31", eval.PeriodEnd)
}

func TestSummarize_ExcludesIncomeTransfersAndOtherCategories(t *testing.T) {
	b := foodBudget("500")

	refund := expense("Food & Dining", "300", 5)
	refund.Type = models.TransactionIncome
	refund.Amount = dec("300")

	transfer := expense("Food & Dining", "300", 6)
	transfer.Type = models.TransactionTransfer

	txs := []models.Transaction{
		expense("Food & Dining", "100", 4),
		refund,
		transfer,
		expense("Transport", "300", 7),
	}

	eval := Summarize(b, txs, now)

	assert.True(t, eval.SpentAmount.Equal(dec("100")))
	assert.True(t, eval.RemainingAmount.Equal(dec("400")))
	assert.Equal(t, models.BudgetGood, eval.Status)
}

func TestSummarize_ExcludesTransactionsOutsidePeriod(t *testing.T) {
	b := foodBudget("500")

	lastMonth := expense("Food & Dining", "450", 1)
	lastMonth.Date = time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC)

	nextMonth := expense("Food & Dining", "450", 1)
	nextMonth.Date = time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC)

	eval := Summarize(b, []models.Transaction{lastMonth, nextMonth, expense("Food & Dining", "50", 31)}, now)

	assert.True(t, eval.SpentAmount.Equal(dec("50")))
	assert.Equal(t, models.BudgetGood, eval.Status)
}

func TestSummarize_OverBudgetHasNegativeRemaining(t *testing.T) {
	b := foodBudget("500")

	eval := Summarize(b, []models.Transaction{expense("Food & Dining", "500.05", 3)}, now)

	assert.Equal(t, models.BudgetOver, eval.Status)
	assert.True(t, eval.RemainingAmount.Equal(dec("-0.05")))
}

func TestSummarize_SignOfStoredAmountIsIgnored(t *testing.T) {
	b := foodBudget("100")

	positive := expense("Food & Dining", "45", 3)
	positive.Amount = dec("45")

	eval := Summarize(b, []models.Transaction{positive, expense("Food & Dining", "40.01", 4)}, now)

	assert.True(t, eval.SpentAmount.Equal(dec("85.01")))
	assert.Equal(t, models.BudgetWarning, eval.Status)
}

func TestSpentAmount_WeeklyWindow(t *testing.T) {
	w := period.Calculate(models.PeriodWeekly, now) // 2024-03-17 .. 2024-03-23

	txs := []models.Transaction{
		expense("Groceries", "10", 16),
		expense("Groceries", "20", 17),
		expense("Groceries", "30", 23),
		expense("Groceries", "40", 24),
	}

	assert.True(t, SpentAmount("Groceries", txs, w).Equal(dec("50")))
}

func TestEngine_Evaluate_QueriesPeriodWindow(t *testing.T) {
	mockStore := new(storagemocks.MockStore)
	engine := NewEngine(mockStore)
	b := foodBudget("500")

	mockStore.On("QueryTransactions", mock.Anything, mock.MatchedBy(func(f models.TransactionFilter) bool {
		return f.UserID == "user-1" &&
			f.Category == "Food & Dining" &&
			f.Type == models.TransactionExpense &&
			f.DateFrom != nil && models.FormatDate(*f.DateFrom) == "2024-03-01" &&
			f.DateTo != nil && models.FormatDate(*f.DateTo) == "2024-03-31"
	})).Return([]models.Transaction{expense("Food & Dining", "500", 10)}, nil)

	eval, err := engine.Evaluate(context.Background(), b, now)

	require.NoError(t, err)
	require.NotNil(t, eval)
	assert.True(t, eval.SpentAmount.Equal(dec("500")))
	assert.True(t, eval.RemainingAmount.IsZero())
	assert.Equal(t, models.BudgetFull, eval.Status)

	mockStore.AssertExpectations(t)
}

func TestEngine_Evaluate_QueryError(t *testing.T) {
	mockStore := new(storagemocks.MockStore)
	engine := NewEngine(mockStore)

	mockStore.On("QueryTransactions", mock.Anything, mock.Anything).Return(nil, errors.New("database error"))

	eval, err := engine.Evaluate(context.Background(), foodBudget("500"), now)

	assert.Error(t, err)
	assert.Nil(t, eval)
	assert.Contains(t, err.Error(), "database error")
}

func TestPercentage(t *testing.T) {
	assert.True(t, Percentage(dec("80.01"), dec("100")).Equal(dec("80.01")))
	assert.True(t, Percentage(dec("1"), dec("3")).Equal(dec("33.33")))
	assert.True(t, Percentage(dec("10"), decimal.Zero).IsZero())
	assert.True(t, Percentage(dec("10"), dec("-5")).IsZero())
}
