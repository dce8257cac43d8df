package notifier

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"finance-ledger/internal/logger"
	"finance-ledger/internal/models"
	"finance-ledger/internal/redis"
	"finance-ledger/internal/services"
	"finance-ledger/internal/storage"

	"golang.org/x/sync/errgroup"
)

const (
	serviceName = "notifier-service"

	// defaultSweepConcurrency - сколько бюджетов проверяется одновременно при плановом обходе
	defaultSweepConcurrency = 8

	eventTimeout = 10 * time.Second
)

// StatusCounter ведет счетчики оценок бюджетов по статусам
type StatusCounter interface {
	IncrementBudgetStatusStats(ctx context.Context, status models.BudgetStatus) error
}

// Notifier пересчитывает бюджеты по событиям журнала и по расписанию и поддерживает уведомления в Redis.
// Уведомления не кэшируют потраченную сумму: чтение бюджета всегда пересчитывает ее.
type Notifier struct {
	budgets          services.BudgetService
	alerts           redis.AlertStore
	stats            StatusCounter
	now              func() time.Time
	sweepConcurrency int
}

func New(budgets services.BudgetService, alerts redis.AlertStore, stats StatusCounter) *Notifier {
	return &Notifier{
		budgets:          budgets,
		alerts:           alerts,
		stats:            stats,
		now:              time.Now,
		sweepConcurrency: defaultSweepConcurrency,
	}
}

// HandleEvent обрабатывает событие из шины. Подходит как events.Handler.
// Учитываются только расходы с категорией; остальные события пропускаются.
func (n *Notifier) HandleEvent(event *models.LedgerEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), eventTimeout)
	defer cancel()

	logger.LogEvent(logger.EventReceived, serviceName, "events", map[string]any{
		"event_id":       event.EventID,
		"event_type":     event.EventType,
		"transaction_id": event.Data.TransactionID,
	})

	if event.EventType != models.EventTransactionPosted ||
		event.Data.Type != models.TransactionExpense ||
		event.Data.Category == "" {
		return nil
	}

	evaluation, err := n.budgets.EvaluateCategory(ctx, event.Data.UserID, event.Data.Category, n.now())
	if errors.Is(err, storage.ErrNotFound) {
		// Для категории нет бюджета
		return nil
	}
	if err != nil {
		log.Printf("Error evaluating budget for category %s: %v", event.Data.Category, err)
		return err
	}

	return n.Apply(ctx, evaluation)
}

// Apply сохраняет уведомление для статусов warning/full/over и снимает его для good
func (n *Notifier) Apply(ctx context.Context, evaluation *models.BudgetEvaluation) error {
	b := evaluation.Budget

	if n.stats != nil {
		if err := n.stats.IncrementBudgetStatusStats(ctx, evaluation.Status); err != nil {
			log.Printf("Error updating budget status stats: %v", err)
		}
	}

	if evaluation.Status == models.BudgetGood {
		if err := n.alerts.DeleteBudgetAlert(ctx, b.UserID, b.ID); err != nil {
			return fmt.Errorf("failed to clear alert for budget %s: %w", b.ID, err)
		}
		return nil
	}

	now := n.now()
	alert := &models.BudgetAlert{
		BudgetID:    b.ID,
		UserID:      b.UserID,
		Category:    b.Category,
		Status:      evaluation.Status,
		SpentAmount: evaluation.SpentAmount,
		Limit:       b.Amount,
		Percentage:  evaluation.Percentage,
		PeriodStart: evaluation.PeriodStart,
		PeriodEnd:   evaluation.PeriodEnd,
		RaisedAt:    now,
	}

	if err := n.alerts.SaveBudgetAlert(ctx, alert, alertTTL(evaluation.PeriodEnd, now)); err != nil {
		return fmt.Errorf("failed to save alert for budget %s: %w", b.ID, err)
	}

	logger.LogEvent(logger.EventBudgetAlert, serviceName, "redis", map[string]any{
		"budget_id":  b.ID,
		"user_id":    b.UserID,
		"category":   b.Category,
		"status":     evaluation.Status,
		"percentage": evaluation.Percentage.String(),
	})
	return nil
}

// Sweep пересчитывает все бюджеты и обновляет уведомления.
// Ошибка одного бюджета не останавливает обход остальных.
func (n *Notifier) Sweep(ctx context.Context) error {
	budgets, err := n.budgets.ListAllBudgets(ctx)
	if err != nil {
		return fmt.Errorf("failed to list budgets: %w", err)
	}

	now := n.now()
	var failed atomic.Int64

	var g errgroup.Group
	g.SetLimit(n.sweepConcurrency)

	for _, b := range budgets {
		g.Go(func() error {
			evaluation, err := n.budgets.EvaluateBudget(ctx, b, now)
			if err == nil {
				err = n.Apply(ctx, evaluation)
			}
			if err != nil {
				failed.Add(1)
				log.Printf("Sweep: budget %s failed: %v", b.ID, err)
			}
			return nil
		})
	}
	_ = g.Wait()

	logger.LogEvent(logger.EventSweepCompleted, serviceName, "scheduler", map[string]any{
		"budgets": len(budgets),
		"failed":  failed.Load(),
	})

	if count := failed.Load(); count > 0 {
		return fmt.Errorf("budget sweep: %d of %d budgets failed", count, len(budgets))
	}
	return nil
}

// alertTTL - уведомление живет до конца дня, следующего за окончанием периода
func alertTTL(periodEnd string, now time.Time) time.Duration {
	end, err := models.ParseDate(periodEnd)
	if err != nil {
		return 24 * time.Hour
	}
	ttl := end.AddDate(0, 0, 2).Sub(now)
	if ttl <= 0 {
		return 24 * time.Hour
	}
	return ttl
}
