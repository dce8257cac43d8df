package amqp

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finance-ledger/config"
	"finance-ledger/internal/models"
)

func TestExponentialBackoff(t *testing.T) {
	tests := []struct {
		attempt  int
		expected time.Duration
	}{
		{0, 1 * time.Second},
		{1, 2 * time.Second},
		{2, 4 * time.Second},
		{3, 8 * time.Second},
		{4, 16 * time.Second},
		{5, 30 * time.Second},
		{10, 30 * time.Second},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("attempt_%d", tt.attempt), func(t *testing.T) {
			assert.Equal(t, tt.expected, exponentialBackoff(tt.attempt))
		})
	}
}

func TestIsConnectionError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil error", nil, false},
		{"connection refused", errors.New("dial tcp: connection refused"), true},
		{"unexpected EOF", errors.New("unexpected EOF"), true},
		{"closed channel", errors.New("message channel closed"), true},
		{"other error", errors.New("invalid input"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, isConnectionError(tt.err))
		})
	}
}

func TestClient_PublishAndConsume(t *testing.T) {
	url := os.Getenv("AMQP_TEST_URL")
	if url == "" {
		t.Skip("AMQP_TEST_URL is not set")
	}

	cfg := &config.Config{AMQP: config.AMQPConfig{URL: url, Exchange: "ledger.test", Queue: "ledger.events.test"}}

	received := make(chan *models.LedgerEvent, 1)
	consumer, err := NewClient(cfg, func(event *models.LedgerEvent) error {
		received <- event
		return nil
	})
	if err != nil {
		t.Skipf("RabbitMQ not available: %v", err)
	}

	publisher, err := NewClient(cfg, nil)
	require.NoError(t, err)
	defer publisher.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	go consumer.Start(ctx)

	event := &models.LedgerEvent{
		EventID:   "evt-amqp",
		EventType: models.EventTransactionPosted,
		Data:      models.LedgerEventData{UserID: "user-1", Amount: decimal.NewFromInt(-5), Type: models.TransactionExpense},
	}
	require.NoError(t, publisher.Publish(ctx, event))

	select {
	case got := <-received:
		assert.Equal(t, "evt-amqp", got.EventID)
	case <-ctx.Done():
		t.Fatal("event was not consumed")
	}
}
