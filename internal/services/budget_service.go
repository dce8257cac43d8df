package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"finance-ledger/internal/budget"
	"finance-ledger/internal/logger"
	"finance-ledger/internal/models"
	"finance-ledger/internal/storage"
)

// BudgetServiceImpl реализует интерфейс BudgetService.
// Потраченная сумма не хранится: каждое чтение пересчитывает ее по транзакциям.
type BudgetServiceImpl struct {
	repo   storage.BudgetRepository
	engine *budget.Engine
}

// NewBudgetService создает новый сервис бюджетов
func NewBudgetService(repo storage.BudgetRepository, query storage.TransactionQuery) BudgetService {
	return &BudgetServiceImpl{
		repo:   repo,
		engine: budget.NewEngine(query),
	}
}

// CreateBudget создает бюджет; у пользователя не может быть двух бюджетов одной категории
func (s *BudgetServiceImpl) CreateBudget(ctx context.Context, userID string, req *models.CreateBudgetRequest) (*models.Budget, error) {
	category := strings.TrimSpace(req.Category)
	if category == "" {
		return nil, invalidInput("category is required")
	}
	if err := validateLimit(req.Amount); err != nil {
		return nil, err
	}
	if !req.Period.Valid() {
		return nil, invalidInput("unknown period %q", req.Period)
	}

	b := &models.Budget{
		ID:       uuid.New().String(),
		UserID:   userID,
		Category: category,
		Amount:   req.Amount,
		Period:   req.Period,
	}
	if err := s.repo.CreateBudget(ctx, b); err != nil {
		return nil, err
	}

	logger.LogEvent(logger.EventBudgetCreated, "ledger-service", "storage", map[string]any{
		"budget_id": b.ID,
		"category":  b.Category,
		"period":    b.Period,
	})
	return b, nil
}

// UpdateBudget меняет лимит и период. Смена категории запрещена.
func (s *BudgetServiceImpl) UpdateBudget(ctx context.Context, userID, budgetID string, req *models.UpdateBudgetRequest) (*models.Budget, error) {
	b, err := s.repo.GetBudget(ctx, userID, budgetID)
	if err != nil {
		return nil, err
	}

	if req.Category != nil && *req.Category != b.Category {
		return nil, invalidInput("budget category cannot be changed")
	}
	if req.Amount != nil {
		if err := validateLimit(*req.Amount); err != nil {
			return nil, err
		}
		b.Amount = *req.Amount
	}
	if req.Period != nil {
		if !req.Period.Valid() {
			return nil, invalidInput("unknown period %q", *req.Period)
		}
		b.Period = *req.Period
	}

	if err := s.repo.UpdateBudget(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *BudgetServiceImpl) DeleteBudget(ctx context.Context, userID, budgetID string) error {
	return s.repo.DeleteBudget(ctx, userID, budgetID)
}

func (s *BudgetServiceImpl) Evaluate(ctx context.Context, userID, budgetID string, now time.Time) (*models.BudgetEvaluation, error) {
	b, err := s.repo.GetBudget(ctx, userID, budgetID)
	if err != nil {
		return nil, err
	}
	return s.EvaluateBudget(ctx, *b, now)
}

func (s *BudgetServiceImpl) EvaluateAll(ctx context.Context, userID string, now time.Time) ([]models.BudgetEvaluation, error) {
	budgets, err := s.repo.ListBudgets(ctx, userID)
	if err != nil {
		return nil, err
	}

	evaluations := make([]models.BudgetEvaluation, 0, len(budgets))
	for _, b := range budgets {
		evaluation, err := s.EvaluateBudget(ctx, b, now)
		if err != nil {
			return nil, err
		}
		evaluations = append(evaluations, *evaluation)
	}
	return evaluations, nil
}

// EvaluateCategory оценивает бюджет категории; storage.ErrNotFound, если бюджета нет
func (s *BudgetServiceImpl) EvaluateCategory(ctx context.Context, userID, category string, now time.Time) (*models.BudgetEvaluation, error) {
	b, err := s.repo.GetBudgetByCategory(ctx, userID, category)
	if err != nil {
		return nil, err
	}
	return s.EvaluateBudget(ctx, *b, now)
}

func (s *BudgetServiceImpl) EvaluateBudget(ctx context.Context, b models.Budget, now time.Time) (*models.BudgetEvaluation, error) {
	evaluation, err := s.engine.Evaluate(ctx, b, now)
	if err != nil {
		return nil, err
	}

	logger.LogEvent(logger.EventBudgetEvaluated, "ledger-service", "budget", map[string]any{
		"budget_id":  b.ID,
		"status":     evaluation.Status,
		"percentage": evaluation.Percentage.String(),
	})
	return evaluation, nil
}

func (s *BudgetServiceImpl) ListAllBudgets(ctx context.Context) ([]models.Budget, error) {
	return s.repo.ListAllBudgets(ctx)
}

func validateLimit(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return invalidInput("amount must be greater than zero")
	}
	if !models.IsWholeCents(amount) {
		return invalidInput("amount must have at most 2 decimal places")
	}
	return nil
}
