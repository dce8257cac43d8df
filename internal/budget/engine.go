package budget

import (
	"context"
	"fmt"
	"time"

	"finance-ledger/internal/models"
	"finance-ledger/internal/period"
	"finance-ledger/internal/storage"

	"github.com/shopspring/decimal"
)

var (
	WarningThreshold = decimal.NewFromInt(80)  // строго больше 80% - warning
	FullThreshold    = decimal.NewFromInt(100) // ровно 100% - full, больше - over
)

var hundred = decimal.NewFromInt(100)

type Engine struct {
	query storage.TransactionQuery
}

func NewEngine(query storage.TransactionQuery) *Engine {
	return &Engine{query: query}
}

// Evaluate выбирает расходы по категории бюджета за текущий период и вычисляет его состояние
func (e *Engine) Evaluate(ctx context.Context, b models.Budget, now time.Time) (*models.BudgetEvaluation, error) {
	w := period.Calculate(b.Period, now)

	txs, err := e.query.QueryTransactions(ctx, models.TransactionFilter{
		UserID:   b.UserID,
		Category: b.Category,
		Type:     models.TransactionExpense,
		DateFrom: &w.Start,
		DateTo:   &w.End,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions for budget %s: %w", b.ID, err)
	}

	evaluation := Summarize(b, txs, now)
	return &evaluation, nil
}

// Summarize вычисляет состояние бюджета по уже выбранным транзакциям.
// Учитываются только расходы категории бюджета внутри периода; доходы и переводы игнорируются.
func Summarize(b models.Budget, txs []models.Transaction, now time.Time) models.BudgetEvaluation {
	w := period.Calculate(b.Period, now)
	spent := SpentAmount(b.Category, txs, w)

	return models.BudgetEvaluation{
		Budget:          b,
		PeriodStart:     w.StartDate(),
		PeriodEnd:       w.EndDate(),
		SpentAmount:     spent,
		RemainingAmount: b.Amount.Sub(spent),
		Percentage:      Percentage(spent, b.Amount),
		Status:          Classify(spent, b.Amount),
	}
}

// SpentAmount суммирует модули сумм расходов категории внутри периода
func SpentAmount(category string, txs []models.Transaction, w period.Window) decimal.Decimal {
	spent := decimal.Zero
	for _, tx := range txs {
		if tx.Type != models.TransactionExpense || tx.Category != category {
			continue
		}
		if !w.Contains(tx.Date) {
			continue
		}
		spent = spent.Add(tx.Amount.Abs())
	}
	return spent
}

// Classify определяет статус бюджета. Сравнение точное: spent*100 против limit*порог.
func Classify(spent, limit decimal.Decimal) models.BudgetStatus {
	scaled := spent.Mul(hundred)

	switch {
	case scaled.GreaterThan(limit.Mul(FullThreshold)):
		return models.BudgetOver
	case scaled.GreaterThanOrEqual(limit.Mul(FullThreshold)):
		return models.BudgetFull
	case scaled.GreaterThan(limit.Mul(WarningThreshold)):
		return models.BudgetWarning
	default:
		return models.BudgetGood
	}
}

// Percentage возвращает долю израсходованного лимита в процентах, округленную до 2 знаков.
// Лимит должен быть положительным; для нулевого или отрицательного лимита возвращается 0, а не паника деления на ноль.
func Percentage(spent, limit decimal.Decimal) decimal.Decimal {
	if !limit.IsPositive() {
		return decimal.Zero
	}
	return spent.Div(limit).Mul(hundred).Round(2)
}
