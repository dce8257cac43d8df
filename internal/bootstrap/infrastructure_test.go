package bootstrap

import (
	"context"
	"path/filepath"
	"testing"

	"finance-ledger/config"
	"finance-ledger/internal/events"
	"finance-ledger/internal/models"
	"finance-ledger/internal/storage/memory"
	"finance-ledger/internal/storage/sqlite"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenStore(t *testing.T) {
	ctx := context.Background()

	cfg := &config.Config{DB: config.DBConfig{Driver: "memory"}}
	s, err := OpenStore(ctx, cfg)
	require.NoError(t, err)
	assert.IsType(t, &memory.Store{}, s)

	cfg = &config.Config{DB: config.DBConfig{Driver: "sqlite", DBPath: filepath.Join(t.TempDir(), "ledger.db")}}
	s, err = OpenStore(ctx, cfg)
	require.NoError(t, err)
	defer s.Close()
	assert.IsType(t, &sqlite.SQLiteStorage{}, s)

	_, err = OpenStore(ctx, &config.Config{DB: config.DBConfig{Driver: "oracle"}})
	assert.Error(t, err)
}

func TestEventBusNone(t *testing.T) {
	cfg := &config.Config{Events: config.EventsConfig{Bus: "none"}}

	p, err := NewPublisher(cfg)
	require.NoError(t, err)
	assert.Equal(t, events.Noop{}, p)

	c, err := NewConsumer(cfg, func(*models.LedgerEvent) error { return nil })
	require.NoError(t, err)
	assert.Nil(t, c)
}

func TestEventBusUnknown(t *testing.T) {
	cfg := &config.Config{Events: config.EventsConfig{Bus: "nats"}}

	_, err := NewPublisher(cfg)
	assert.Error(t, err)
	_, err = NewConsumer(cfg, nil)
	assert.Error(t, err)
}
