package events

import (
	"context"
	"time"

	"github.com/google/uuid"

	"finance-ledger/internal/models"
)

// Publisher определяет интерфейс отправки событий журнала в шину
type Publisher interface {
	Publish(ctx context.Context, event *models.LedgerEvent) error

	Close() error
}

// Consumer определяет интерфейс чтения событий журнала из шины
type Consumer interface {
	// Start блокируется до отмены контекста
	Start(ctx context.Context) error

	Close() error
}

// Handler обрабатывает одно событие журнала
type Handler func(*models.LedgerEvent) error

// Noop - издатель, который ничего не отправляет (EVENT_BUS=none)
type Noop struct{}

func (Noop) Publish(context.Context, *models.LedgerEvent) error { return nil }
func (Noop) Close() error                                         { return nil }

// NewTransactionPosted создает событие о проведенной транзакции
func NewTransactionPosted(tx *models.Transaction) *models.LedgerEvent {
	data := models.LedgerEventData{
		UserID:        tx.UserID,
		TransactionID: tx.ID,
		AccountID:     tx.AccountID,
		Category:      tx.Category,
		Type:          tx.Type,
		Amount:        tx.Amount,
		Date:          models.FormatDate(tx.Date),
	}
	if tx.GoalID != nil {
		data.GoalID = *tx.GoalID
	}
	return newEvent(models.EventTransactionPosted, data)
}

// NewGoalContributionCompleted создает событие об успешном взносе в цель
func NewGoalContributionCompleted(userID string, receipt *models.ContributionReceipt) *models.LedgerEvent {
	return newEvent(models.EventGoalContributionCompleted, models.LedgerEventData{
		UserID:        userID,
		TransactionID: receipt.TransactionID,
		AccountID:     receipt.AccountID,
		GoalID:        receipt.GoalID,
		Category:      models.GoalContributionCategory,
		Type:          models.TransactionTransfer,
		Amount:        receipt.Amount,
		Date:          receipt.Date,
	})
}

func newEvent(eventType models.LedgerEventType, data models.LedgerEventData) *models.LedgerEvent {
	return &models.LedgerEvent{
		EventID:   uuid.New().String(),
		EventType: eventType,
		Timestamp: time.Now(),
		Data:      data,
	}
}
