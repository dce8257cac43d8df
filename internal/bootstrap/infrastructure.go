package bootstrap

import (
	"context"
	"fmt"
	"log"

	"finance-ledger/config"
	"finance-ledger/internal/amqp"
	"finance-ledger/internal/events"
	"finance-ledger/internal/kafka"
	"finance-ledger/internal/storage"
	"finance-ledger/internal/storage/memory"
	"finance-ledger/internal/storage/postgres"
	"finance-ledger/internal/storage/sqlite"
)

// OpenStore открывает хранилище, выбранное DB_DRIVER
func OpenStore(ctx context.Context, cfg *config.Config) (storage.Store, error) {
	switch cfg.DB.Driver {
	case "postgres":
		log.Println("Connecting to PostgreSQL...")
		s, err := postgres.NewConnection(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "memory":
		log.Println("Using in-memory storage, data is lost on restart")
		return memory.New(), nil
	case "sqlite":
		s, err := sqlite.NewConnection(cfg)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER %q", cfg.DB.Driver)
	}
}

// NewPublisher создает издателя событий для шины EVENT_BUS
func NewPublisher(cfg *config.Config) (events.Publisher, error) {
	switch cfg.Events.Bus {
	case "kafka":
		log.Println("Connecting to Kafka...")
		p, err := kafka.NewProducer(cfg)
		if err != nil {
			return nil, err
		}
		log.Println("Kafka producer connected successfully")
		return p, nil
	case "amqp":
		log.Println("Connecting to RabbitMQ...")
		c, err := amqp.NewClient(cfg, nil)
		if err != nil {
			return nil, err
		}
		return c, nil
	case "none":
		log.Println("Event bus disabled, events are not published")
		return events.Noop{}, nil
	default:
		return nil, fmt.Errorf("unknown EVENT_BUS %q", cfg.Events.Bus)
	}
}

// NewConsumer создает потребителя событий шины EVENT_BUS.
// Для EVENT_BUS=none возвращает nil без ошибки.
func NewConsumer(cfg *config.Config, handler events.Handler) (events.Consumer, error) {
	switch cfg.Events.Bus {
	case "kafka":
		log.Println("Connecting to Kafka...")
		c, err := kafka.NewConsumer(cfg, handler)
		if err != nil {
			return nil, err
		}
		log.Println("Kafka consumer connected successfully")
		return c, nil
	case "amqp":
		log.Println("Connecting to RabbitMQ...")
		c, err := amqp.NewClient(cfg, handler)
		if err != nil {
			return nil, err
		}
		return c, nil
	case "none":
		log.Println("Event bus disabled, consumer is not started")
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown EVENT_BUS %q", cfg.Events.Bus)
	}
}
