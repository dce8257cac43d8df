package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"finance-ledger/internal/logger"
	"finance-ledger/internal/models"
	"finance-ledger/internal/storage"
)

// AccountServiceImpl реализует интерфейс AccountService
type AccountServiceImpl struct {
	repo storage.AccountRepository
}

// NewAccountService создает новый сервис счетов
func NewAccountService(repo storage.AccountRepository) AccountService {
	return &AccountServiceImpl{repo: repo}
}

// CreateAccount открывает счет; начальный баланс проводится при создании
func (s *AccountServiceImpl) CreateAccount(ctx context.Context, userID string, req *models.CreateAccountRequest) (*models.Account, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, invalidInput("name is required")
	}
	if !req.Type.Valid() {
		return nil, invalidInput("unknown account type %q", req.Type)
	}

	account := &models.Account{
		ID:       uuid.New().String(),
		UserID:   userID,
		Name:     name,
		Type:     req.Type,
		Balance:  req.InitialBalance,
		IsActive: true,
	}
	if err := s.repo.CreateAccount(ctx, account); err != nil {
		return nil, err
	}

	logger.LogEvent(logger.EventDBUpdated, "ledger-service", "storage", map[string]any{
		"account_id": account.ID,
		"user_id":    userID,
		"operation":  "create_account",
	})
	return account, nil
}

func (s *AccountServiceImpl) GetAccount(ctx context.Context, userID, accountID string) (*models.Account, error) {
	return s.repo.GetAccount(ctx, userID, accountID)
}

func (s *AccountServiceImpl) ListAccounts(ctx context.Context, userID string) ([]models.Account, error) {
	return s.repo.ListAccounts(ctx, userID)
}

// DeactivateAccount закрывает счет без удаления истории
func (s *AccountServiceImpl) DeactivateAccount(ctx context.Context, userID, accountID string) error {
	return s.repo.DeactivateAccount(ctx, userID, accountID)
}
