package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"finance-ledger/internal/events"
	"finance-ledger/internal/ledger"
	"finance-ledger/internal/logger"
	"finance-ledger/internal/models"
	"finance-ledger/internal/storage"
)

// idempotencyTTL - время, в течение которого повтор запроса с тем же ключом отклоняется
const idempotencyTTL = 24 * time.Hour

// GoalServiceImpl реализует интерфейс GoalService
type GoalServiceImpl struct {
	repo      storage.GoalRepository
	ledger    *ledger.Ledger
	publisher events.Publisher
	guard     IdempotencyGuard
	counter   ContributionCounter
	now       func() time.Time
}

// GoalServiceOption настраивает необязательные зависимости сервиса целей
type GoalServiceOption func(*GoalServiceImpl)

// WithIdempotencyGuard включает проверку ключей идемпотентности
func WithIdempotencyGuard(guard IdempotencyGuard) GoalServiceOption {
	return func(s *GoalServiceImpl) { s.guard = guard }
}

// WithContributionCounter включает подсчет взносов
func WithContributionCounter(counter ContributionCounter) GoalServiceOption {
	return func(s *GoalServiceImpl) { s.counter = counter }
}

// NewGoalService создает новый сервис целей
func NewGoalService(repo storage.GoalRepository, l *ledger.Ledger, publisher events.Publisher, opts ...GoalServiceOption) GoalService {
	if publisher == nil {
		publisher = events.Noop{}
	}
	s := &GoalServiceImpl{
		repo:      repo,
		ledger:    l,
		publisher: publisher,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *GoalServiceImpl) CreateGoal(ctx context.Context, userID string, req *models.CreateGoalRequest) (*models.Goal, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, invalidInput("name is required")
	}
	if err := validateTarget(req.TargetAmount); err != nil {
		return nil, err
	}
	if err := validateCurrent(req.CurrentAmount); err != nil {
		return nil, err
	}

	priority := req.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}
	if !priority.Valid() {
		return nil, invalidInput("unknown priority %q", priority)
	}

	goal := &models.Goal{
		ID:            uuid.New().String(),
		UserID:        userID,
		Name:          name,
		TargetAmount:  req.TargetAmount,
		CurrentAmount: req.CurrentAmount,
		Priority:      priority,
		Status:        models.GoalActive,
	}
	if req.TargetDate != "" {
		d, err := models.ParseDate(req.TargetDate)
		if err != nil {
			return nil, invalidInput("target_date must be YYYY-MM-DD")
		}
		goal.TargetDate = &d
	}

	if err := s.repo.CreateGoal(ctx, goal); err != nil {
		return nil, err
	}
	return goal, nil
}

func (s *GoalServiceImpl) GetGoal(ctx context.Context, userID, goalID string) (*models.Goal, error) {
	return s.repo.GetGoal(ctx, userID, goalID)
}

func (s *GoalServiceImpl) ListGoals(ctx context.Context, userID string) ([]models.Goal, error) {
	return s.repo.ListGoals(ctx, userID)
}

// UpdateGoal редактирует цель. Достижение целевой суммы не меняет статус автоматически.
func (s *GoalServiceImpl) UpdateGoal(ctx context.Context, userID, goalID string, req *models.UpdateGoalRequest) (*models.Goal, error) {
	goal, err := s.repo.GetGoal(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, invalidInput("name must not be empty")
		}
		goal.Name = name
	}
	if req.TargetAmount != nil {
		if err := validateTarget(*req.TargetAmount); err != nil {
			return nil, err
		}
		goal.TargetAmount = *req.TargetAmount
	}
	if req.CurrentAmount != nil {
		if err := validateCurrent(*req.CurrentAmount); err != nil {
			return nil, err
		}
		goal.CurrentAmount = *req.CurrentAmount
	}
	if req.TargetDate != nil {
		if *req.TargetDate == "" {
			goal.TargetDate = nil
		} else {
			d, err := models.ParseDate(*req.TargetDate)
			if err != nil {
				return nil, invalidInput("target_date must be YYYY-MM-DD")
			}
			goal.TargetDate = &d
		}
	}
	if req.Priority != nil {
		if !req.Priority.Valid() {
			return nil, invalidInput("unknown priority %q", *req.Priority)
		}
		goal.Priority = *req.Priority
	}
	if req.Status != nil {
		if !req.Status.Valid() {
			return nil, invalidInput("unknown status %q", *req.Status)
		}
		goal.Status = *req.Status
	}

	if err := s.repo.UpdateGoal(ctx, goal); err != nil {
		return nil, err
	}
	return goal, nil
}

func (s *GoalServiceImpl) DeleteGoal(ctx context.Context, userID, goalID string) error {
	return s.repo.DeleteGoal(ctx, userID, goalID)
}

// Contribute проводит взнос через ledger. При непустом ключе идемпотентности повтор запроса
// дает ErrDuplicateRequest; ключ освобождается только при известном отказе.
func (s *GoalServiceImpl) Contribute(
	ctx context.Context,
	userID, goalID string,
	req *models.ContributeRequest,
	idempotencyKey string,
) (*models.ContributionReceipt, error) {
	date, err := parseDate(req.Date, s.now())
	if err != nil {
		return nil, err
	}

	held := false
	if idempotencyKey != "" && s.guard != nil {
		acquired, err := s.guard.AcquireIdempotencyKey(ctx, idempotencyKey, idempotencyTTL)
		if err != nil {
			log.Printf("Idempotency check unavailable for key %s: %v", idempotencyKey, err)
		} else if !acquired {
			return nil, ErrDuplicateRequest
		} else {
			held = true
		}
	}

	logger.LogEvent(logger.EventContributionReq, "ledger-service", "ledger", map[string]any{
		"goal_id":    goalID,
		"account_id": req.AccountID,
		"amount":     req.Amount.String(),
	})

	receipt, err := s.ledger.Contribute(ctx, models.ContributionRequest{
		UserID:    userID,
		GoalID:    goalID,
		AccountID: req.AccountID,
		Amount:    req.Amount,
		Date:      date,
		Notes:     req.Notes,
	})
	if err != nil {
		if held && outcomeKnown(err) {
			if releaseErr := s.guard.ReleaseIdempotencyKey(context.WithoutCancel(ctx), idempotencyKey); releaseErr != nil {
				log.Printf("Failed to release idempotency key %s: %v", idempotencyKey, releaseErr)
			}
		}
		logger.LogEvent(logger.EventContributionFailed, "ledger-service", "ledger", map[string]any{
			"goal_id": goalID,
			"error":   err.Error(),
		})
		return nil, err
	}

	logger.LogEvent(logger.EventContributionDone, "ledger-service", "ledger", map[string]any{
		"goal_id":        goalID,
		"transaction_id": receipt.TransactionID,
	})

	if s.counter != nil {
		if err := s.counter.IncrementContributionCount(ctx, userID); err != nil {
			log.Printf("Failed to increment contribution counter: %v", err)
		}
	}

	event := events.NewGoalContributionCompleted(userID, receipt)
	if err := s.publisher.Publish(ctx, event); err != nil {
		log.Printf("Failed to publish %s event %s: %v", event.EventType, event.EventID, err)
	}

	return receipt, nil
}

// outcomeKnown сообщает, что взнос точно не применен: запрос не прошел проверку или процедура отказала
func outcomeKnown(err error) bool {
	if errors.Is(err, ledger.ErrValidation) {
		return true
	}
	var contribErr *ledger.ContributionError
	return errors.As(err, &contribErr) && contribErr.Rejected
}

func validateTarget(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return invalidInput("target_amount must be greater than zero")
	}
	if !models.IsWholeCents(amount) {
		return invalidInput("target_amount must have at most 2 decimal places")
	}
	return nil
}

func validateCurrent(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return invalidInput("current_amount must not be negative")
	}
	if !models.IsWholeCents(amount) {
		return invalidInput("current_amount must have at most 2 decimal places")
	}
	return nil
}
