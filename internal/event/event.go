// Package event handles triggering of operations without direct dependency
package event

import (
	"context"
	"sync"

	"nestquiz/local-app/internal/log"
)

// EventType represents the type of event
type EventType int

const (
	SnapshotPublished EventType = iota
	SnapshotSaved
	SnapshotLoaded
	SnapshotImported
	HistoryChanged
)

// String returns the name of the event type.
func (t EventType) String() string {
	switch t {
	case SnapshotPublished:
		return "SnapshotPublished"
	case SnapshotSaved:
		return "SnapshotSaved"
	case SnapshotLoaded:
		return "SnapshotLoaded"
	case SnapshotImported:
		return "SnapshotImported"
	case HistoryChanged:
		return "HistoryChanged"
	default:
		return "Unknown"
	}
}

// Event represents an event with its type and associated data
type Event struct {
	Type EventType
	Data interface{}
}

// EventHandler is a function type for event handlers
type EventHandler func(Event)

// EventManager manages event subscriptions and publications. Handlers run on their
// own goroutines; a panicking handler is logged and does not affect the publisher.
type EventManager struct {
	subscribers map[EventType][]EventHandler
	mu          sync.RWMutex
	wg          sync.WaitGroup
	logger      *log.Logger
}

// NewEventManager creates a new EventManager instance
func NewEventManager(logger *log.Logger) *EventManager {
	if logger == nil {
		logger = log.Nop()
	}
	return &EventManager{
		subscribers: make(map[EventType][]EventHandler),
		logger:      logger,
	}
}

// Subscribe adds a new event handler for a specific event type
func (em *EventManager) Subscribe(eventType EventType, handler EventHandler) {
	em.mu.Lock()
	defer em.mu.Unlock()
	em.subscribers[eventType] = append(em.subscribers[eventType], handler)
}

// Publish sends an event to all subscribed handlers
func (em *EventManager) Publish(event Event) {
	em.mu.RLock()
	defer em.mu.RUnlock()
	for _, handler := range em.subscribers[event.Type] {
		em.wg.Add(1)
		go func(h EventHandler) {
			defer em.wg.Done()
			defer func() {
				if r := recover(); r != nil {
					em.logger.Error(context.Background(), "Panic in event handler", log.Fields{
						"event": event.Type.String(),
						"panic": r,
					})
				}
			}()
			h(event)
		}(handler)
	}
}

// Wait blocks until every handler started so far has returned.
func (em *EventManager) Wait() {
	em.wg.Wait()
}
