package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type PeriodKind string

const (
	PeriodWeekly  PeriodKind = "weekly"
	PeriodMonthly PeriodKind = "monthly"
	PeriodYearly  PeriodKind = "yearly"
)

func (p PeriodKind) Valid() bool {
	switch p {
	case PeriodWeekly, PeriodMonthly, PeriodYearly:
		return true
	}
	return false
}

type BudgetStatus string

const (
	BudgetGood    BudgetStatus = "good"
	BudgetWarning BudgetStatus = "warning"
	BudgetFull    BudgetStatus = "full"
	BudgetOver    BudgetStatus = "over"
)

// Budget хранит только конфигурацию лимита.
// Потраченная сумма и остаток вычисляются при каждом чтении.
type Budget struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	Category  string          `json:"category"`
	Amount    decimal.Decimal `json:"amount"`
	Period    PeriodKind      `json:"period"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// BudgetEvaluation - состояние бюджета в текущем периоде
type BudgetEvaluation struct {
	Budget          Budget          `json:"budget"`
	PeriodStart     string          `json:"period_start"`
	PeriodEnd       string          `json:"period_end"`
	SpentAmount     decimal.Decimal `json:"spent_amount"`
	RemainingAmount decimal.Decimal `json:"remaining_amount"`
	Percentage      decimal.Decimal `json:"percentage"`
	Status          BudgetStatus    `json:"status"`
}

// BudgetAlert - уведомление о приближении к лимиту или его превышении
type BudgetAlert struct {
	BudgetID    string          `json:"budget_id"`
	UserID      string          `json:"user_id"`
	Category    string          `json:"category"`
	Status      BudgetStatus    `json:"status"`
	SpentAmount decimal.Decimal `json:"spent_amount"`
	Limit       decimal.Decimal `json:"limit"`
	Percentage  decimal.Decimal `json:"percentage"`
	PeriodStart string          `json:"period_start"`
	PeriodEnd   string          `json:"period_end"`
	RaisedAt    time.Time       `json:"raised_at"`
}

type CreateBudgetRequest struct {
	Category string          `json:"category" binding:"required"`
	Amount   decimal.Decimal `json:"amount"`
	Period   PeriodKind      `json:"period" binding:"required"`
}

type UpdateBudgetRequest struct {
	Category *string          `json:"category"`
	Amount   *decimal.Decimal `json:"amount"`
	Period   *PeriodKind      `json:"period"`
}
