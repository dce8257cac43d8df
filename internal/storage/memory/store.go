package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"finance-ledger/internal/models"
	"finance-ledger/internal/storage"

	"github.com/google/uuid"
)

// Store - хранилище в памяти процесса. Все изменения выполняются под одной блокировкой,
// поэтому каждая операция видна целиком или не видна вовсе.
type Store struct {
	mu           sync.RWMutex
	accounts     map[string]models.Account
	transactions map[string]models.Transaction
	budgets      map[string]models.Budget
	goals        map[string]models.Goal
	now          func() time.Time
}

var _ storage.Store = (*Store)(nil)

func New() *Store {
	return &Store{
		accounts:     make(map[string]models.Account),
		transactions: make(map[string]models.Transaction),
		budgets:      make(map[string]models.Budget),
		goals:        make(map[string]models.Goal),
		now:          time.Now,
	}
}

func (s *Store) Close() error {
	return nil
}

func (s *Store) CreateAccount(ctx context.Context, account *models.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	account.CreatedAt, account.UpdatedAt = now, now
	s.accounts[account.ID] = *account
	return nil
}

func (s *Store) GetAccount(ctx context.Context, userID, accountID string) (*models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, ok := s.accounts[accountID]
	if !ok || account.UserID != userID {
		return nil, storage.ErrNotFound
	}
	return &account, nil
}

func (s *Store) ListAccounts(ctx context.Context, userID string) ([]models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	accounts := make([]models.Account, 0)
	for _, a := range s.accounts {
		if a.UserID == userID {
			accounts = append(accounts, a)
		}
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].CreatedAt.Before(accounts[j].CreatedAt) })
	return accounts, nil
}

func (s *Store) DeactivateAccount(ctx context.Context, userID, accountID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accounts[accountID]
	if !ok || account.UserID != userID {
		return storage.ErrNotFound
	}
	account.IsActive = false
	account.UpdatedAt = s.now()
	s.accounts[accountID] = account
	return nil
}

func (s *Store) PostTransaction(ctx context.Context, tx *models.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	deltas := storage.BalanceDeltas(tx)
	for accountID := range deltas {
		account, ok := s.accounts[accountID]
		if !ok || account.UserID != tx.UserID {
			return storage.ErrNotFound
		}
		if !account.IsActive {
			return storage.ErrAccountInactive
		}
	}

	now := s.now()
	for accountID, cents := range deltas {
		account := s.accounts[accountID]
		account.Balance = account.Balance.Add(models.FromCents(cents))
		account.UpdatedAt = now
		s.accounts[accountID] = account
	}

	tx.CreatedAt, tx.UpdatedAt = now, now
	stored := *tx
	stored.Amount = models.FromCents(models.ToCents(tx.Amount))
	s.transactions[tx.ID] = stored
	return nil
}

func (s *Store) GetTransaction(ctx context.Context, userID, transactionID string) (*models.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tx, ok := s.transactions[transactionID]
	if !ok || tx.UserID != userID {
		return nil, storage.ErrNotFound
	}
	return &tx, nil
}

func (s *Store) QueryTransactions(ctx context.Context, filter models.TransactionFilter) ([]models.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]models.Transaction, 0)
	for _, tx := range s.transactions {
		if matches(tx, filter) {
			result = append(result, tx)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.After(result[j].Date)
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func matches(tx models.Transaction, f models.TransactionFilter) bool {
	if tx.UserID != f.UserID {
		return false
	}
	if f.AccountID != "" && tx.AccountID != f.AccountID {
		return false
	}
	if f.Category != "" && tx.Category != f.Category {
		return false
	}
	if f.Type != "" && tx.Type != f.Type {
		return false
	}
	date := models.FormatDate(tx.Date)
	if f.DateFrom != nil && date < models.FormatDate(*f.DateFrom) {
		return false
	}
	if f.DateTo != nil && date > models.FormatDate(*f.DateTo) {
		return false
	}
	return true
}

func (s *Store) UpdateTransaction(ctx context.Context, userID, transactionID string, patch models.TransactionPatch) (*models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, ok := s.transactions[transactionID]
	if !ok || tx.UserID != userID {
		return nil, storage.ErrNotFound
	}

	if patch.Description != nil {
		tx.Description = *patch.Description
	}
	if patch.Category != nil {
		tx.Category = *patch.Category
	}
	if patch.Status != nil {
		tx.Status = *patch.Status
	}
	if patch.Date != nil {
		tx.Date = *patch.Date
	}
	tx.UpdatedAt = s.now()
	s.transactions[transactionID] = tx
	return &tx, nil
}

func (s *Store) CreateBudget(ctx context.Context, budget *models.Budget) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, b := range s.budgets {
		if b.UserID == budget.UserID && b.Category == budget.Category {
			return storage.ErrBudgetExists
		}
	}

	now := s.now()
	budget.CreatedAt, budget.UpdatedAt = now, now
	s.budgets[budget.ID] = *budget
	return nil
}

func (s *Store) GetBudget(ctx context.Context, userID, budgetID string) (*models.Budget, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.budgets[budgetID]
	if !ok || b.UserID != userID {
		return nil, storage.ErrNotFound
	}
	return &b, nil
}

func (s *Store) GetBudgetByCategory(ctx context.Context, userID, category string) (*models.Budget, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, b := range s.budgets {
		if b.UserID == userID && b.Category == category {
			return &b, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (s *Store) ListBudgets(ctx context.Context, userID string) ([]models.Budget, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	budgets := make([]models.Budget, 0)
	for _, b := range s.budgets {
		if b.UserID == userID {
			budgets = append(budgets, b)
		}
	}
	sort.Slice(budgets, func(i, j int) bool { return budgets[i].Category < budgets[j].Category })
	return budgets, nil
}

func (s *Store) ListAllBudgets(ctx context.Context) ([]models.Budget, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	budgets := make([]models.Budget, 0, len(s.budgets))
	for _, b := range s.budgets {
		budgets = append(budgets, b)
	}
	sort.Slice(budgets, func(i, j int) bool { return budgets[i].ID < budgets[j].ID })
	return budgets, nil
}

func (s *Store) UpdateBudget(ctx context.Context, budget *models.Budget) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.budgets[budget.ID]
	if !ok || existing.UserID != budget.UserID {
		return storage.ErrNotFound
	}
	for _, other := range s.budgets {
		if other.ID != budget.ID && other.UserID == budget.UserID && other.Category == budget.Category {
			return storage.ErrBudgetExists
		}
	}
	existing.Category = budget.Category
	existing.Amount = budget.Amount
	existing.Period = budget.Period
	existing.UpdatedAt = s.now()
	s.budgets[budget.ID] = existing
	*budget = existing
	return nil
}

func (s *Store) DeleteBudget(ctx context.Context, userID, budgetID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.budgets[budgetID]
	if !ok || b.UserID != userID {
		return storage.ErrNotFound
	}
	delete(s.budgets, budgetID)
	return nil
}

func (s *Store) CreateGoal(ctx context.Context, goal *models.Goal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	goal.CreatedAt, goal.UpdatedAt = now, now
	s.goals[goal.ID] = *goal
	return nil
}

func (s *Store) GetGoal(ctx context.Context, userID, goalID string) (*models.Goal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.goals[goalID]
	if !ok || g.UserID != userID {
		return nil, storage.ErrNotFound
	}
	return &g, nil
}

func (s *Store) ListGoals(ctx context.Context, userID string) ([]models.Goal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	goals := make([]models.Goal, 0)
	for _, g := range s.goals {
		if g.UserID == userID {
			goals = append(goals, g)
		}
	}
	sort.Slice(goals, func(i, j int) bool { return goals[i].CreatedAt.Before(goals[j].CreatedAt) })
	return goals, nil
}

func (s *Store) UpdateGoal(ctx context.Context, goal *models.Goal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.goals[goal.ID]
	if !ok || existing.UserID != goal.UserID {
		return storage.ErrNotFound
	}
	goal.CreatedAt = existing.CreatedAt
	goal.UpdatedAt = s.now()
	s.goals[goal.ID] = *goal
	return nil
}

func (s *Store) DeleteGoal(ctx context.Context, userID, goalID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.goals[goalID]
	if !ok || g.UserID != userID {
		return storage.ErrNotFound
	}
	delete(s.goals, goalID)

	for id, tx := range s.transactions {
		if tx.GoalID != nil && *tx.GoalID == goalID {
			tx.GoalID = nil
			s.transactions[id] = tx
		}
	}
	return nil
}

// SubmitContribution проверяет все условия до первой записи и применяет
// списание, пополнение цели и транзакцию под одной блокировкой.
func (s *Store) SubmitContribution(ctx context.Context, req models.ContributionRequest) (*models.ContributionResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accounts[req.AccountID]
	if !ok || account.UserID != req.UserID {
		return &models.ContributionResult{ErrorMessage: "account not found"}, nil
	}
	if !account.IsActive {
		return &models.ContributionResult{ErrorMessage: "account is inactive"}, nil
	}
	goal, ok := s.goals[req.GoalID]
	if !ok || goal.UserID != req.UserID {
		return &models.ContributionResult{ErrorMessage: "goal not found"}, nil
	}
	// Как и SQL-хранилища, сумма применяется в копейках
	amount := models.FromCents(models.ToCents(req.Amount))
	if account.Balance.LessThan(amount) {
		return &models.ContributionResult{ErrorMessage: "insufficient funds"}, nil
	}

	now := s.now()
	goalID := goal.ID
	tx := models.Transaction{
		ID:          uuid.New().String(),
		UserID:      req.UserID,
		AccountID:   account.ID,
		GoalID:      &goalID,
		Amount:      amount.Neg(),
		Category:    models.GoalContributionCategory,
		Type:        models.TransactionTransfer,
		Description: req.Notes,
		FromParty:   account.Name,
		ToParty:     goal.Name,
		Status:      models.StatusCompleted,
		Date:        req.Date,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	account.Balance = account.Balance.Sub(amount)
	account.UpdatedAt = now
	goal.CurrentAmount = goal.CurrentAmount.Add(amount)
	goal.UpdatedAt = now

	s.accounts[account.ID] = account
	s.goals[goal.ID] = goal
	s.transactions[tx.ID] = tx

	return &models.ContributionResult{
		OK:                true,
		TransactionID:     tx.ID,
		AccountBalance:    account.Balance,
		GoalCurrentAmount: goal.CurrentAmount,
	}, nil
}
