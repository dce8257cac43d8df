package notifier_service

import (
	"context"
	"errors"
	"log"

	"finance-ledger/config"
	"finance-ledger/internal/bootstrap"
	"finance-ledger/internal/events"
	"finance-ledger/internal/notifier"
	"finance-ledger/internal/redis"
	"finance-ledger/internal/services"
	"finance-ledger/internal/storage"
)

// Dependencies содержит все зависимости notifier service
type Dependencies struct {
	Store       storage.Store
	RedisClient *redis.Client
	Notifier    *notifier.Notifier
	Consumer    events.Consumer
}

// InitializeDependencies инициализирует все зависимости notifier service
func InitializeDependencies(ctx context.Context, cfg *config.Config) (*Dependencies, error) {
	if cfg.DB.Driver == "memory" {
		log.Println("Warning: in-memory storage is not shared with ledger service, budgets will be empty")
	}

	store, err := bootstrap.OpenStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	deps := &Dependencies{Store: store}

	// Уведомления хранятся в Redis, без него сервису нечего делать
	log.Println("Connecting to Redis...")
	redisClient, err := redis.NewClient(cfg)
	if err != nil {
		deps.Close()
		return nil, err
	}
	log.Println("Redis connection established")
	deps.RedisClient = redisClient

	budgets := services.NewBudgetService(store, store)
	deps.Notifier = notifier.New(budgets, redisClient, redisClient)

	consumer, err := bootstrap.NewConsumer(cfg, deps.Notifier.HandleEvent)
	if err != nil {
		deps.Close()
		return nil, err
	}
	deps.Consumer = consumer

	return deps, nil
}

// Close закрывает все соединения
func (d *Dependencies) Close() error {
	var errs []error
	if d.Consumer != nil {
		errs = append(errs, d.Consumer.Close())
	}
	if d.RedisClient != nil {
		errs = append(errs, d.RedisClient.Close())
	}
	if d.Store != nil {
		errs = append(errs, d.Store.Close())
	}
	return errors.Join(errs...)
}
