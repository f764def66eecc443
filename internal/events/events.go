// Package events provides the in-process event bus used to notify
// connected dashboards about analysis activity.
package events

import (
	"sync"
	"time"
)

// EventType identifies a kind of system event
type EventType string

const (
	StatementAnalyzed EventType = "statement_analyzed"
	InsightsGenerated EventType = "insights_generated"
	GoalUpdated       EventType = "goal_updated"
	StockAnalyzed     EventType = "stock_analyzed"
	BackupCompleted   EventType = "backup_completed"
)

// EventData is the interface that all event data types must implement.
// This allows for type-safe event data while maintaining flexibility.
type EventData interface {
	// EventType returns the event type this data is associated with
	EventType() EventType
}

// Event is a published event with its envelope.
type Event struct {
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// StatementAnalyzedData contains data for StatementAnalyzed events
type StatementAnalyzedData struct {
	StatementID  string  `json:"statement_id"`
	Filename     string  `json:"filename"`
	Transactions int     `json:"transactions"`
	TotalAmount  float64 `json:"total_amount"`
}

// EventType returns the event type for StatementAnalyzedData
func (d *StatementAnalyzedData) EventType() EventType {
	return StatementAnalyzed
}

// InsightsGeneratedData contains data for InsightsGenerated events
type InsightsGeneratedData struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Count int `json:"count"`
}

// EventType returns the event type for InsightsGeneratedData
func (d *InsightsGeneratedData) EventType() EventType {
	return InsightsGenerated
}

// GoalUpdatedData contains data for GoalUpdated events
type GoalUpdatedData struct {
	GoalID        string  `json:"goal_id"`
	CurrentAmount float64 `json:"current_amount"`
	Progress      float64 `json:"progress"`
}

// EventType returns the event type for GoalUpdatedData
func (d *GoalUpdatedData) EventType() EventType {
	return GoalUpdated
}

// StockAnalyzedData contains data for StockAnalyzed events
type StockAnalyzedData struct {
	Symbol         string  `json:"symbol"`
	Recommendation string  `json:"recommendation"`
	Confidence     float64 `json:"confidence"`
	Source         string  `json:"source"`
}

// EventType returns the event type for StockAnalyzedData
func (d *StockAnalyzedData) EventType() EventType {
	return StockAnalyzed
}

// BackupCompletedData contains data for BackupCompleted events
type BackupCompletedData struct {
	Archive   string `json:"archive"`
	SizeBytes int64  `json:"size_bytes"`
}

// EventType returns the event type for BackupCompletedData
func (d *BackupCompletedData) EventType() EventType {
	return BackupCompleted
}

// Bus fans events out to subscribers. Slow subscribers drop events rather
// than block publishers.
type Bus struct {
	mu          sync.RWMutex
	subscribers map[int]chan Event
	nextID      int
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		subscribers: make(map[int]chan Event),
	}
}

// Publish sends a typed event to all subscribers
func (b *Bus) Publish(data EventData) {
	event := Event{
		Type:      data.EventType(),
		Timestamp: time.Now().UTC(),
		Data:      data,
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, ch := range b.subscribers {
		select {
		case ch <- event:
		default:
			// Subscriber is not keeping up, drop the event
		}
	}
}

// Subscribe registers a new subscriber and returns its id and channel
func (b *Bus) Subscribe() (int, <-chan Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++

	ch := make(chan Event, 64)
	b.subscribers[id] = ch
	return id, ch
}

// Unsubscribe removes a subscriber and closes its channel
func (b *Bus) Unsubscribe(id int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ch, ok := b.subscribers[id]; ok {
		delete(b.subscribers, id)
		close(ch)
	}
}

// SubscriberCount returns the number of active subscribers
func (b *Bus) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}
