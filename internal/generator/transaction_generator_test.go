package generator

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finance-ledger/internal/models"
)

func categoryRange(categories []spendingCategory, name string) (spendingCategory, bool) {
	for _, c := range categories {
		if c.name == name {
			return c, true
		}
	}
	return spendingCategory{}, false
}

func TestNewTransactionGenerator(t *testing.T) {
	gen := NewTransactionGenerator()
	require.NotNil(t, gen)
	assert.NotNil(t, gen.faker)
}

func TestTransactionGenerator_GenerateTransaction_Expense(t *testing.T) {
	gen := NewTransactionGeneratorWithSeed(42)

	for i := 0; i < 50; i++ {
		req := gen.GenerateTransaction("acc-1", models.TransactionExpense)
		require.NotNil(t, req)

		assert.Equal(t, "acc-1", req.AccountID)
		assert.Equal(t, models.TransactionExpense, req.Type)
		assert.NotEmpty(t, req.ToParty)
		assert.Empty(t, req.FromParty)
		assert.Nil(t, req.DestinationAccountID)

		category, ok := categoryRange(expenseCategories, req.Category)
		require.True(t, ok, "unexpected category %s", req.Category)
		assert.True(t, req.Amount.GreaterThanOrEqual(decimal.NewFromFloat(category.min)))
		assert.True(t, req.Amount.LessThanOrEqual(decimal.NewFromFloat(category.max)))
		assert.True(t, req.Amount.Equal(req.Amount.Round(2)))
	}
}

func TestTransactionGenerator_GenerateTransaction_Income(t *testing.T) {
	gen := NewTransactionGeneratorWithSeed(7)

	req := gen.GenerateTransaction("acc-1", models.TransactionIncome)

	assert.Equal(t, models.TransactionIncome, req.Type)
	assert.NotEmpty(t, req.FromParty)
	_, ok := categoryRange(incomeCategories, req.Category)
	assert.True(t, ok)
	assert.True(t, req.Amount.IsPositive())
}

func TestTransactionGenerator_GenerateTransaction_RecentDate(t *testing.T) {
	gen := NewTransactionGeneratorWithSeed(1)
	now := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)
	gen.now = func() time.Time { return now }

	for i := 0; i < 20; i++ {
		req := gen.GenerateTransaction("acc-1", "")
		date, err := models.ParseDate(req.Date)
		require.NoError(t, err)

		assert.False(t, date.After(now))
		assert.True(t, date.After(now.AddDate(0, 0, -31)))
		assert.Contains(t, []models.TransactionType{models.TransactionIncome, models.TransactionExpense}, req.Type)
	}
}

func TestTransactionGenerator_SameSeedSameSequence(t *testing.T) {
	a := NewTransactionGeneratorWithSeed(99)
	b := NewTransactionGeneratorWithSeed(99)
	fixed := func() time.Time { return time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC) }
	a.now, b.now = fixed, fixed

	for i := 0; i < 5; i++ {
		first := a.GenerateTransaction("acc-1", "")
		second := b.GenerateTransaction("acc-1", "")
		assert.Equal(t, first.Category, second.Category)
		assert.True(t, first.Amount.Equal(second.Amount))
		assert.Equal(t, first.Date, second.Date)
	}
}
