package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// GoalContributionCategory - категория транзакции, создаваемой при взносе в цель
const GoalContributionCategory = "Goal Contribution"

// ContributionRequest - параметры атомарной процедуры взноса в цель
type ContributionRequest struct {
	UserID    string          `json:"user_id"`
	GoalID    string          `json:"goal_id"`
	AccountID string          `json:"account_id"`
	Amount    decimal.Decimal `json:"amount"`
	Date      time.Time       `json:"date"`
	Notes     string          `json:"notes,omitempty"`
}

// ContributionResult - ответ хранилища на вызов процедуры взноса.
// При OK=false ни одно из трех изменений не применено.
type ContributionResult struct {
	OK                bool
	ErrorMessage      string
	TransactionID     string
	AccountBalance    decimal.Decimal
	GoalCurrentAmount decimal.Decimal
}

// ContributionReceipt возвращается клиенту после успешного взноса
type ContributionReceipt struct {
	TransactionID     string          `json:"transaction_id"`
	GoalID            string          `json:"goal_id"`
	AccountID         string          `json:"account_id"`
	Amount            decimal.Decimal `json:"amount"`
	Date              string          `json:"date"`
	AccountBalance    decimal.Decimal `json:"account_balance"`
	GoalCurrentAmount decimal.Decimal `json:"goal_current_amount"`
}

// ContributeRequest представляет тело запроса на взнос в цель
type ContributeRequest struct {
	AccountID string          `json:"account_id"`
	Amount    decimal.Decimal `json:"amount"`
	Date      string          `json:"date"`
	Notes     string          `json:"notes"`
}
