package logger

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEventLogger(t *testing.T) {
	logger := NewEventLogger(100)
	require.NotNil(t, logger)
	assert.Equal(t, 100, logger.maxSize)
	assert.Empty(t, logger.events)
}

func TestEventLogger_LogEvent(t *testing.T) {
	logger := NewEventLogger(100)

	data := map[string]any{
		"transaction_id": "tx-1",
		"amount":         "-25.00",
	}
	logger.LogEvent(EventTransactionPosted, "ledger-service", "sqlite", data)

	require.Len(t, logger.events, 1)
	event := logger.events[0]
	assert.Equal(t, EventTransactionPosted, event.Type)
	assert.Equal(t, "ledger-service", event.Service)
	assert.Equal(t, "sqlite", event.Component)
	assert.Equal(t, data, event.Data)
	assert.NotEmpty(t, event.ID)
	assert.False(t, event.Timestamp.IsZero())
}

func TestEventLogger_MaxSize(t *testing.T) {
	logger := NewEventLogger(3)

	for i := 0; i < 5; i++ {
		logger.LogEvent(EventBudgetEvaluated, "test", "test", map[string]any{"index": i})
	}

	require.Len(t, logger.events, 3)
	assert.Equal(t, 2, logger.events[0].Data["index"])
	assert.Equal(t, 4, logger.events[2].Data["index"])
}

func TestEventLogger_GetEvents(t *testing.T) {
	logger := NewEventLogger(100)
	for i := 0; i < 10; i++ {
		logger.LogEvent(EventBudgetEvaluated, "test", "test", map[string]any{"index": i})
	}

	assert.Len(t, logger.GetEvents(0), 10)
	assert.Len(t, logger.GetEvents(50), 10)

	events := logger.GetEvents(5)
	require.Len(t, events, 5)
	assert.Equal(t, 5, events[0].Data["index"])
	assert.Equal(t, 9, events[4].Data["index"])
}

func TestEventLogger_GetEventsByType(t *testing.T) {
	logger := NewEventLogger(100)
	logger.LogEvent(EventContributionReq, "ledger", "ledger", map[string]any{"n": 1})
	logger.LogEvent(EventContributionDone, "ledger", "sqlite", map[string]any{"n": 2})
	logger.LogEvent(EventContributionReq, "ledger", "ledger", map[string]any{"n": 3})
	logger.LogEvent(EventContributionFailed, "ledger", "sqlite", map[string]any{"n": 4})
	logger.LogEvent(EventContributionReq, "ledger", "ledger", map[string]any{"n": 5})

	requested := logger.GetEventsByType(EventContributionReq, 0)
	require.Len(t, requested, 3)
	assert.Equal(t, 1, requested[0].Data["n"])
	assert.Equal(t, 5, requested[2].Data["n"])

	lastTwo := logger.GetEventsByType(EventContributionReq, 2)
	require.Len(t, lastTwo, 2)
	assert.Equal(t, 3, lastTwo[0].Data["n"])

	assert.Empty(t, logger.GetEventsByType(EventSweepCompleted, 0))
}

func TestEventLogger_GetStats(t *testing.T) {
	logger := NewEventLogger(100)
	logger.LogEvent(EventTransactionPosted, "ledger", "sqlite", map[string]any{})
	logger.LogEvent(EventPublished, "ledger", "kafka", map[string]any{})
	logger.LogEvent(EventReceived, "notifier", "kafka", map[string]any{})

	stats := logger.GetStats()
	assert.Equal(t, 3, stats["total_events"])

	components, ok := stats["components"].(map[string]int)
	require.True(t, ok)
	assert.Equal(t, 2, components["kafka"])

	services, ok := stats["services"].(map[string]int)
	require.True(t, ok)
	assert.Equal(t, 2, services["ledger"])
	assert.Equal(t, 1, services["notifier"])
}

func TestGlobalLogger(t *testing.T) {
	LogEvent(EventSweepCompleted, "notifier", "cron", map[string]any{"budgets": 3})

	events := GetEvents(1)
	require.Len(t, events, 1)
	assert.Equal(t, EventSweepCompleted, events[0].Type)

	assert.NotEmpty(t, GetEventsByType(EventSweepCompleted, 1))
	assert.Contains(t, GetStats(), "event_types")
}

func TestEvent_MarshalJSON(t *testing.T) {
	event := Event{
		ID:        "test-id",
		Type:      EventBudgetAlert,
		Service:   "notifier",
		Component: "redis",
		Timestamp: time.Date(2024, 1, 15, 14, 30, 0, 0, time.UTC),
		Data:      map[string]any{"status": "over"},
	}

	jsonData, err := event.MarshalJSON()
	require.NoError(t, err)
	assert.Contains(t, string(jsonData), "2024-01-15T14:30:00Z")
	assert.Contains(t, string(jsonData), `"type":"budget_alert"`)
}

func TestEventLogger_ConcurrentAccess(t *testing.T) {
	logger := NewEventLogger(1000)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(index int) {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				logger.LogEvent(EventTransactionPosted, "test", "test", map[string]any{"goroutine": index, "event": j})
			}
		}(i)
	}
	wg.Wait()

	assert.Len(t, logger.GetEvents(0), 100)
}
