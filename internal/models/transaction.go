package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionIncome   TransactionType = "income"
	TransactionExpense  TransactionType = "expense"
	TransactionTransfer TransactionType = "transfer"
)

func (t TransactionType) Valid() bool {
	switch t {
	case TransactionIncome, TransactionExpense, TransactionTransfer:
		return true
	}
	return false
}

type TransactionStatus string

const (
	StatusPending   TransactionStatus = "pending"
	StatusCompleted TransactionStatus = "completed"
	StatusCancelled TransactionStatus = "cancelled"
	StatusFailed    TransactionStatus = "failed"
)

func (s TransactionStatus) Valid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusCancelled, StatusFailed:
		return true
	}
	return false
}

// Transaction представляет операцию по счету.
// Доход хранится с положительной суммой, расход и перевод - с отрицательной.
type Transaction struct {
	ID                   string            `json:"id"`
	UserID               string            `json:"user_id"`
	AccountID            string            `json:"account_id"`
	DestinationAccountID *string           `json:"destination_account_id,omitempty"`
	GoalID               *string           `json:"goal_id,omitempty"`
	Amount               decimal.Decimal   `json:"amount"`
	Category             string            `json:"category,omitempty"`
	Type                 TransactionType   `json:"type"`
	Description          string            `json:"description"`
	FromParty            string            `json:"from_party,omitempty"`
	ToParty              string            `json:"to_party,omitempty"`
	Status               TransactionStatus `json:"status"`
	Date                 time.Time         `json:"date"`
	CreatedAt            time.Time         `json:"created_at"`
	UpdatedAt            time.Time         `json:"updated_at"`
}

// TransactionFilter описывает выборку транзакций: по счету, категории, типу и диапазону дат (включительно)
type TransactionFilter struct {
	UserID    string
	AccountID string
	Category  string
	Type      TransactionType
	DateFrom  *time.Time
	DateTo    *time.Time
}

// TransactionPatch - допустимые изменения транзакции после создания.
// Сумма и тип неизменяемы.
type TransactionPatch struct {
	Description *string
	Category    *string
	Status      *TransactionStatus
	Date        *time.Time
}

// CreateTransactionRequest представляет запрос на проведение транзакции
type CreateTransactionRequest struct {
	AccountID            string            `json:"account_id" binding:"required"`
	DestinationAccountID *string           `json:"destination_account_id"`
	Amount               decimal.Decimal   `json:"amount"`
	Category             string            `json:"category"`
	Type                 TransactionType   `json:"type" binding:"required"`
	Description          string            `json:"description"`
	FromParty            string            `json:"from_party"`
	ToParty              string            `json:"to_party"`
	Status               TransactionStatus `json:"status"`
	Date                 string            `json:"date"`
}

// UpdateTransactionRequest представляет запрос на редактирование транзакции
type UpdateTransactionRequest struct {
	Description *string            `json:"description"`
	Category    *string            `json:"category"`
	Status      *TransactionStatus `json:"status"`
	Date        *string            `json:"date"`
}
