package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type LedgerEventType string

const (
	EventTransactionPosted         LedgerEventType = "transaction_posted"
	EventGoalContributionCompleted LedgerEventType = "goal_contribution_completed"
)

// LedgerEvent представляет событие журнала, публикуемое в шину (Kafka или AMQP)
type LedgerEvent struct {
	EventID   string          `json:"event_id"`
	EventType LedgerEventType `json:"event_type"`
	Timestamp time.Time       `json:"timestamp"`
	Data      LedgerEventData `json:"data"`
}

// LedgerEventData представляет данные операции в событии
type LedgerEventData struct {
	UserID        string          `json:"user_id"`
	TransactionID string          `json:"transaction_id"`
	AccountID     string          `json:"account_id"`
	GoalID        string          `json:"goal_id,omitempty"`
	Category      string          `json:"category,omitempty"`
	Type          TransactionType `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	Date          string          `json:"date"`
}
