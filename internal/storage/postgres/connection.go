package postgres

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"finance-ledger/config"
	"finance-ledger/internal/storage"
)

// Storage - хранилище PostgreSQL поверх пула соединений pgx
type Storage struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

var _ storage.Store = (*Storage)(nil)

// NewConnection применяет миграции и открывает пул соединений
func NewConnection(ctx context.Context, cfg *config.Config) (*Storage, error) {
	dsn := cfg.DB.PostgresDSN
	if dsn == "" {
		return nil, errors.New("postgres dsn is empty")
	}

	if err := RunMigrations(dsn); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse dsn: %w", err)
	}
	poolCfg.MaxConns = 10
	poolCfg.MaxConnLifetime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Println("PostgreSQL connection established")
	return &Storage{pool: pool, now: func() time.Time { return time.Now().UTC() }}, nil
}

// Close закрывает пул соединений
func (s *Storage) Close() error {
	s.pool.Close()
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

// execOne выполняет запись, которая должна затронуть ровно одну строку пользователя
func (s *Storage) execOne(ctx context.Context, query string, args ...any) error {
	tag, err := s.pool.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}
