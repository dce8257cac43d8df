package ledger_service

import (
	"context"
	"errors"
	"log"

	"finance-ledger/config"
	"finance-ledger/internal/bootstrap"
	"finance-ledger/internal/events"
	"finance-ledger/internal/ledger"
	"finance-ledger/internal/redis"
	"finance-ledger/internal/services"
	"finance-ledger/internal/storage"
)

// Dependencies содержит все зависимости ledger service
type Dependencies struct {
	Store       storage.Store
	Publisher   events.Publisher
	RedisClient *redis.Client

	Accounts     services.AccountService
	Transactions services.TransactionService
	Budgets      services.BudgetService
	Goals        services.GoalService
}

// InitializeDependencies инициализирует все зависимости ledger service.
// Redis необязателен: без него взносы принимаются без проверки ключей идемпотентности.
func InitializeDependencies(ctx context.Context, cfg *config.Config) (*Dependencies, error) {
	store, err := bootstrap.OpenStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	deps := &Dependencies{Store: store}

	publisher, err := bootstrap.NewPublisher(cfg)
	if err != nil {
		deps.Close()
		return nil, err
	}
	deps.Publisher = publisher

	log.Println("Connecting to Redis...")
	var goalOpts []services.GoalServiceOption
	redisClient, err := redis.NewClient(cfg)
	if err != nil {
		log.Printf("Warning: Redis unavailable, idempotency keys are disabled: %v", err)
	} else {
		log.Println("Redis connection established")
		deps.RedisClient = redisClient
		goalOpts = append(goalOpts,
			services.WithIdempotencyGuard(redisClient),
			services.WithContributionCounter(redisClient),
		)
	}

	deps.Accounts = services.NewAccountService(store)
	deps.Transactions = services.NewTransactionService(store, publisher)
	deps.Budgets = services.NewBudgetService(store, store)
	deps.Goals = services.NewGoalService(
		store,
		ledger.NewLedger(store, cfg.Ledger.ContributionTimeout),
		publisher,
		goalOpts...,
	)

	return deps, nil
}

// Close закрывает все соединения
func (d *Dependencies) Close() error {
	var errs []error
	if d.Publisher != nil {
		errs = append(errs, d.Publisher.Close())
	}
	if d.RedisClient != nil {
		errs = append(errs, d.RedisClient.Close())
	}
	if d.Store != nil {
		errs = append(errs, d.Store.Close())
	}
	return errors.Join(errs...)
}
