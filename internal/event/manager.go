// internal/event/manager.go
package event

import (
	"sync"

	"github.com/bethropolis/sprig/internal/logger"
)

// Handler defines the function signature for event subscribers.
// It returns true if the event was consumed; later handlers are then skipped.
type Handler func(e Event) bool

// SubscriptionID identifies a subscription for Unsubscribe.
type SubscriptionID uint64

type subscription struct {
	id      SubscriptionID
	handler Handler
}

// Manager handles event subscriptions and dispatching. It is the document
// change notifier: handlers run synchronously, in registration order.
type Manager struct {
	mu       sync.RWMutex
	handlers map[Type][]subscription
	nextID   SubscriptionID
}

// NewManager creates a new event manager.
func NewManager() *Manager {
	return &Manager{
		handlers: make(map[Type][]subscription),
	}
}

// Subscribe adds a handler function for a specific event type.
func (m *Manager) Subscribe(eventType Type, handler Handler) SubscriptionID {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	m.handlers[eventType] = append(m.handlers[eventType], subscription{id: m.nextID, handler: handler})
	logger.DebugTagf("event", "Handler %d subscribed to %v", m.nextID, eventType)
	return m.nextID
}

// SubscribeDocumentChanges registers handler for every document change type.
// The returned IDs are in event type order.
func (m *Manager) SubscribeDocumentChanges(handler Handler) []SubscriptionID {
	var ids []SubscriptionID
	for t := TypeFrameAdded; t <= TypePixelsChanged; t++ {
		ids = append(ids, m.Subscribe(t, handler))
	}
	return ids
}

// Unsubscribe removes the subscriptions with the given IDs.
func (m *Manager) Unsubscribe(ids ...SubscriptionID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	drop := make(map[SubscriptionID]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}
	for t, subs := range m.handlers {
		kept := subs[:0]
		for _, s := range subs {
			if _, ok := drop[s.id]; !ok {
				kept = append(kept, s)
			}
		}
		m.handlers[t] = kept
	}
}

// Dispatch sends an event to all registered handlers for its type.
func (m *Manager) Dispatch(eventType Type, data interface{}) {
	event := Event{
		Type: eventType,
		Data: data,
	}

	m.mu.RLock()
	// Copy so a handler can unsubscribe itself during dispatch.
	subs := make([]subscription, len(m.handlers[eventType]))
	copy(subs, m.handlers[eventType])
	m.mu.RUnlock()

	if len(subs) == 0 {
		return
	}

	logger.DebugTagf("event", "Dispatching %v to %d handler(s)", eventType, len(subs))
	for _, s := range subs {
		if s.handler(event) {
			break
		}
	}
}
