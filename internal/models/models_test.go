package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCentsRoundTrip(t *testing.T) {
	amount := decimal.RequireFromString("1234.56")

	cents := ToCents(amount)
	assert.Equal(t, int64(123456), cents)
	assert.True(t, FromCents(cents).Equal(amount))

	// Доли меньше копейки округляются
	assert.Equal(t, int64(1001), ToCents(decimal.RequireFromString("10.005")))
	assert.Equal(t, int64(-2550), ToCents(decimal.RequireFromString("-25.50")))
}

func TestIsWholeCents(t *testing.T) {
	for _, s := range []string{"0.01", "100", "100.5", "-25.50", "1234.560"} {
		assert.True(t, IsWholeCents(decimal.RequireFromString(s)), s)
	}
	for _, s := range []string{"0.004", "100.005", "-0.001"} {
		assert.False(t, IsWholeCents(decimal.RequireFromString(s)), s)
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", FormatDate(d))

	_, err = ParseDate("29.02.2024")
	assert.Error(t, err)
}

func TestGoal_AchievedIsDisplayOnly(t *testing.T) {
	goal := Goal{
		Name:          "Vacation",
		TargetAmount:  decimal.NewFromInt(1000),
		CurrentAmount: decimal.NewFromInt(1000),
		Status:        GoalActive,
	}

	assert.True(t, goal.Achieved())
	assert.Equal(t, GoalActive, goal.Status)
	assert.True(t, goal.Progress().Equal(decimal.NewFromInt(100)))

	goal.CurrentAmount = decimal.NewFromInt(400)
	assert.False(t, goal.Achieved())
	assert.True(t, goal.Progress().Equal(decimal.NewFromInt(40)))
}

func TestGoal_MarshalJSON(t *testing.T) {
	goal := Goal{
		ID:            "goal-1",
		Name:          "Laptop",
		TargetAmount:  decimal.NewFromInt(2000),
		CurrentAmount: decimal.NewFromInt(500),
		Priority:      PriorityHigh,
		Status:        GoalActive,
	}

	data, err := json.Marshal(goal)
	require.NoError(t, err)

	var result map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &result))
	assert.Equal(t, "goal-1", result["id"])
	assert.Equal(t, false, result["achieved"])
	assert.Equal(t, "25", result["progress"])
}

func TestEnumValidation(t *testing.T) {
	assert.True(t, PeriodWeekly.Valid())
	assert.False(t, PeriodKind("daily").Valid())
	assert.True(t, TransactionTransfer.Valid())
	assert.False(t, TransactionType("refund").Valid())
	assert.True(t, AccountSavings.Valid())
	assert.False(t, GoalStatus("achieved").Valid())
	assert.True(t, StatusCancelled.Valid())
	assert.False(t, GoalPriority("urgent").Valid())
}
