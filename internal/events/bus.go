// Package events provides a publish-subscribe bus that fans editor state
// changes out to SSE clients and other observers.
package events

import (
	"sync"

	"github.com/monitoradlo/monitoradlo-go/internal/models"
)

const subBufferSize = 8

// Kind says what caused an event.
type Kind string

const (
	KindConfig    Kind = "config"    // configuration edited
	KindSelection Kind = "selection" // selection changed
	KindLive      Kind = "live"      // live output snapshot replaced
	KindSaved     Kind = "saved"     // configuration written to disk
	KindLoaded    Kind = "loaded"    // configuration (re)loaded from disk
	KindConflict  Kind = "conflict"  // file changed on disk while edits are unsaved
)

// Event is a state snapshot together with its cause.
type Event struct {
	Kind  Kind         `json:"kind"`
	State models.State `json:"state"`
}

// Bus is a non-blocking publish-subscribe event bus.
// Subscribers that are slow to consume events will have events dropped rather
// than blocking publishers.
type Bus struct {
	mu   sync.Mutex
	subs map[string]chan Event
}

// NewBus creates a new event bus.
func NewBus() *Bus {
	return &Bus{
		subs: make(map[string]chan Event),
	}
}

// Subscribe creates a new subscription with the given ID.
// Call Unsubscribe when done to clean up.
func (b *Bus) Subscribe(id string) <-chan Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	ch := make(chan Event, subBufferSize)
	b.subs[id] = ch
	return ch
}

// Unsubscribe removes a subscription and closes its channel.
func (b *Bus) Unsubscribe(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if ch, ok := b.subs[id]; ok {
		delete(b.subs, id)
		close(ch)
	}
}

// Publish sends an event to all subscribers.
// If a subscriber's channel is full, the event is dropped for it.
func (b *Bus) Publish(ev Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

// SubscriberCount returns the current number of subscribers.
func (b *Bus) SubscriberCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
