package services

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"finance-ledger/internal/events"
	"finance-ledger/internal/logger"
	"finance-ledger/internal/models"
	"finance-ledger/internal/storage"
)

// TransactionServiceImpl реализует интерфейс TransactionService
type TransactionServiceImpl struct {
	repo      storage.TransactionRepository
	publisher events.Publisher
	now       func() time.Time
}

// NewTransactionService создает новый сервис транзакций
func NewTransactionService(repo storage.TransactionRepository, publisher events.Publisher) TransactionService {
	if publisher == nil {
		publisher = events.Noop{}
	}
	return &TransactionServiceImpl{
		repo:      repo,
		publisher: publisher,
		now:       time.Now,
	}
}

// CreateTransaction проверяет запрос, нормализует знак суммы и проводит транзакцию.
// Доход хранится положительным, расход и перевод - отрицательными.
func (s *TransactionServiceImpl) CreateTransaction(ctx context.Context, userID string, req *models.CreateTransactionRequest) (*models.Transaction, error) {
	if strings.TrimSpace(req.AccountID) == "" {
		return nil, invalidInput("account_id is required")
	}
	if !req.Type.Valid() {
		return nil, invalidInput("unknown transaction type %q", req.Type)
	}
	if req.Amount.IsZero() {
		return nil, invalidInput("amount must not be zero")
	}
	if !models.IsWholeCents(req.Amount) {
		return nil, invalidInput("amount must have at most 2 decimal places")
	}

	status := req.Status
	if status == "" {
		status = models.StatusCompleted
	}
	if !status.Valid() {
		return nil, invalidInput("unknown transaction status %q", status)
	}

	if req.Type == models.TransactionTransfer {
		if req.DestinationAccountID == nil || *req.DestinationAccountID == "" {
			return nil, invalidInput("destination_account_id is required for transfer")
		}
		if *req.DestinationAccountID == req.AccountID {
			return nil, invalidInput("destination account must differ from source account")
		}
	} else if req.DestinationAccountID != nil {
		return nil, invalidInput("destination_account_id is allowed only for transfer")
	}

	date, err := parseDate(req.Date, s.now())
	if err != nil {
		return nil, err
	}

	amount := req.Amount.Abs()
	if req.Type != models.TransactionIncome {
		amount = amount.Neg()
	}

	tx := &models.Transaction{
		ID:                   uuid.New().String(),
		UserID:               userID,
		AccountID:            req.AccountID,
		DestinationAccountID: req.DestinationAccountID,
		Amount:               amount,
		Category:             strings.TrimSpace(req.Category),
		Type:                 req.Type,
		Description:          req.Description,
		FromParty:            req.FromParty,
		ToParty:              req.ToParty,
		Status:               status,
		Date:                 date,
	}

	if err := s.repo.PostTransaction(ctx, tx); err != nil {
		return nil, err
	}

	logger.LogEvent(logger.EventTransactionPosted, "ledger-service", "storage", map[string]any{
		"transaction_id": tx.ID,
		"account_id":     tx.AccountID,
		"type":           tx.Type,
		"amount":         tx.Amount.String(),
	})

	s.publish(ctx, events.NewTransactionPosted(tx))
	return tx, nil
}

// publish отправляет событие в шину. Транзакция уже записана, поэтому ошибка только логируется.
func (s *TransactionServiceImpl) publish(ctx context.Context, event *models.LedgerEvent) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		log.Printf("Failed to publish %s event %s: %v", event.EventType, event.EventID, err)
		return
	}
	logger.LogEvent(logger.EventPublished, "ledger-service", "events", map[string]any{
		"event_id":       event.EventID,
		"event_type":     event.EventType,
		"transaction_id": event.Data.TransactionID,
	})
}

func (s *TransactionServiceImpl) GetTransaction(ctx context.Context, userID, transactionID string) (*models.Transaction, error) {
	return s.repo.GetTransaction(ctx, userID, transactionID)
}

func (s *TransactionServiceImpl) QueryTransactions(ctx context.Context, filter models.TransactionFilter) ([]models.Transaction, error) {
	if filter.Type != "" && !filter.Type.Valid() {
		return nil, invalidInput("unknown transaction type %q", filter.Type)
	}
	if filter.DateFrom != nil && filter.DateTo != nil && filter.DateFrom.After(*filter.DateTo) {
		return nil, invalidInput("date_from must not be after date_to")
	}
	return s.repo.QueryTransactions(ctx, filter)
}

// UpdateTransaction применяет допустимые изменения; сумма, тип и счета неизменяемы
func (s *TransactionServiceImpl) UpdateTransaction(ctx context.Context, userID, transactionID string, req *models.UpdateTransactionRequest) (*models.Transaction, error) {
	patch := models.TransactionPatch{
		Description: req.Description,
		Category:    req.Category,
		Status:      req.Status,
	}
	if req.Status != nil && !req.Status.Valid() {
		return nil, invalidInput("unknown transaction status %q", *req.Status)
	}
	if req.Date != nil {
		date, err := models.ParseDate(*req.Date)
		if err != nil {
			return nil, invalidInput("date must be YYYY-MM-DD")
		}
		patch.Date = &date
	}

	tx, err := s.repo.UpdateTransaction(ctx, userID, transactionID, patch)
	if err != nil {
		return nil, err
	}

	logger.LogEvent(logger.EventTransactionUpdated, "ledger-service", "storage", map[string]any{
		"transaction_id": tx.ID,
	})
	return tx, nil
}
