package logger

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
)

// EventType - тип записи журнала операций сервиса
type EventType string

const (
	EventTransactionPosted  EventType = "transaction_posted"
	EventTransactionUpdated EventType = "transaction_updated"
	EventBudgetCreated      EventType = "budget_created"
	EventBudgetEvaluated    EventType = "budget_evaluated"
	EventBudgetAlert        EventType = "budget_alert"
	EventContributionReq    EventType = "contribution_requested"
	EventContributionDone   EventType = "contribution_completed"
	EventContributionFailed EventType = "contribution_failed"
	EventPublished          EventType = "event_published"
	EventReceived           EventType = "event_received"
	EventRedisSaved         EventType = "redis_saved"
	EventDBUpdated          EventType = "db_updated"
	EventSweepCompleted     EventType = "sweep_completed"
	EventGenerated          EventType = "transaction_generated"
)

type Event struct {
	ID        string         `json:"id"`
	Type      EventType      `json:"type"`
	Service   string         `json:"service"`
	Timestamp time.Time      `json:"timestamp"`
	Data      map[string]any `json:"data"`
	Component string         `json:"component"` // kafka, amqp, redis, sqlite, postgres, ...
}

// EventLogger хранит последние maxSize событий в памяти
type EventLogger struct {
	events  []Event
	mu      sync.RWMutex
	maxSize int
}

var globalLogger = NewEventLogger(1000)

func NewEventLogger(maxSize int) *EventLogger {
	return &EventLogger{
		events:  make([]Event, 0, maxSize),
		maxSize: maxSize,
	}
}

func LogEvent(eventType EventType, service string, component string, data map[string]any) {
	globalLogger.LogEvent(eventType, service, component, data)
}

func (el *EventLogger) LogEvent(eventType EventType, service string, component string, data map[string]any) {
	el.mu.Lock()
	defer el.mu.Unlock()

	el.events = append(el.events, Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		Service:   service,
		Component: component,
		Timestamp: time.Now(),
		Data:      data,
	})

	if len(el.events) > el.maxSize {
		el.events = el.events[len(el.events)-el.maxSize:]
	}
}

func GetEvents(limit int) []Event {
	return globalLogger.GetEvents(limit)
}

// GetEvents возвращает последние limit событий (все при limit <= 0)
func (el *EventLogger) GetEvents(limit int) []Event {
	el.mu.RLock()
	defer el.mu.RUnlock()

	if limit <= 0 || limit > len(el.events) {
		limit = len(el.events)
	}

	result := make([]Event, limit)
	copy(result, el.events[len(el.events)-limit:])
	return result
}

func GetEventsByType(eventType EventType, limit int) []Event {
	return globalLogger.GetEventsByType(eventType, limit)
}

// GetEventsByType возвращает последние limit событий указанного типа
func (el *EventLogger) GetEventsByType(eventType EventType, limit int) []Event {
	el.mu.RLock()
	defer el.mu.RUnlock()

	result := make([]Event, 0)
	for i := len(el.events) - 1; i >= 0; i-- {
		if el.events[i].Type != eventType {
			continue
		}
		result = append(result, el.events[i])
		if limit > 0 && len(result) == limit {
			break
		}
	}

	// Восстанавливаем хронологический порядок
	for i, j := 0, len(result)-1; i < j; i, j = i+1, j-1 {
		result[i], result[j] = result[j], result[i]
	}
	return result
}

func GetStats() map[string]any {
	return globalLogger.GetStats()
}

func (el *EventLogger) GetStats() map[string]any {
	el.mu.RLock()
	defer el.mu.RUnlock()

	componentStats := make(map[string]int)
	serviceStats := make(map[string]int)
	typeStats := make(map[string]int)

	for _, event := range el.events {
		componentStats[event.Component]++
		serviceStats[event.Service]++
		typeStats[string(event.Type)]++
	}

	return map[string]any{
		"total_events": len(el.events),
		"components":   componentStats,
		"services":     serviceStats,
		"event_types":  typeStats,
	}
}

func (e Event) MarshalJSON() ([]byte, error) {
	type Alias Event
	return json.Marshal(&struct {
		Timestamp string `json:"timestamp"`
		*Alias
	}{
		Timestamp: e.Timestamp.Format(time.RFC3339),
		Alias:     (*Alias)(&e),
	})
}
