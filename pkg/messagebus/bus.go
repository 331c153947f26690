// Package messagebus routes in-process messages between components, and
// parks messages for components that are not active yet.
package messagebus

import (
	"sync"
	"sync/atomic"
)

// Event identifies what a message is about.
type Event string

const (
	EventNone                       Event = "NONE"
	EventStateHasChanged            Event = "STATE_HAS_CHANGED"
	EventConfigurationChanged       Event = "CONFIGURATION_CHANGED"
	EventSendToChat                 Event = "SEND_TO_CHAT"
	EventSendToTranslationAssistant Event = "SEND_TO_TRANSLATION_ASSISTANT"
	EventSendToIconFinderAssistant  Event = "SEND_TO_ICON_FINDER_ASSISTANT"
)

// Message is an event with its payload.
type Message struct {
	Sender string
	Event  Event
	Data   any
}

// Subscriber receives messages.
type Subscriber func(msg Message)

type subscriberEntry struct {
	id     uint64
	fn     Subscriber
	events map[Event]struct{}
}

func (e subscriberEntry) wants(event Event) bool {
	if len(e.events) == 0 {
		return true
	}
	_, ok := e.events[event]
	return ok
}

// Bus delivers messages synchronously to subscribers.
type Bus struct {
	mu          sync.RWMutex
	subscribers []subscriberEntry
	deferred    map[Event][]Message
	nextID      uint64
}

// New creates an empty bus.
func New() *Bus {
	return &Bus{deferred: make(map[Event][]Message)}
}

// Subscribe registers fn for the given events, or for all events when none
// are given. Returns an unsubscribe function.
func (b *Bus) Subscribe(fn Subscriber, events ...Event) func() {
	entry := subscriberEntry{
		id:     atomic.AddUint64(&b.nextID, 1),
		fn:     fn,
		events: make(map[Event]struct{}, len(events)),
	}
	for _, e := range events {
		entry.events[e] = struct{}{}
	}

	b.mu.Lock()
	b.subscribers = append(b.subscribers, entry)
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { b.unsubscribe(entry.id) })
	}
}

func (b *Bus) unsubscribe(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, entry := range b.subscribers {
		if entry.id == id {
			b.subscribers = append(b.subscribers[:i:i], b.subscribers[i+1:]...)
			return
		}
	}
}

// SendMessage delivers the message to every interested subscriber before
// returning. Subscribers may publish or unsubscribe from within the callback.
func (b *Bus) SendMessage(sender string, event Event, data any) {
	msg := Message{Sender: sender, Event: event, Data: data}

	b.mu.RLock()
	subs := make([]Subscriber, 0, len(b.subscribers))
	for _, entry := range b.subscribers {
		if entry.wants(event) {
			subs = append(subs, entry.fn)
		}
	}
	b.mu.RUnlock()

	for _, sub := range subs {
		sub(msg)
	}
}

// DeferMessage parks a message until a component asks for it with
// CheckDeferredMessages.
func (b *Bus) DeferMessage(sender string, event Event, data any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.deferred[event] = append(b.deferred[event], Message{Sender: sender, Event: event, Data: data})
}

// PendingCount returns the number of parked messages for event.
func (b *Bus) PendingCount(event Event) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.deferred[event])
}

func (b *Bus) takeDeferred(event Event) []Message {
	b.mu.Lock()
	defer b.mu.Unlock()
	msgs := b.deferred[event]
	delete(b.deferred, event)
	return msgs
}

// CheckDeferredMessages removes and returns the parked payloads for event
// that have type T. Payloads of other types are dropped.
func CheckDeferredMessages[T any](b *Bus, event Event) []T {
	var out []T
	for _, msg := range b.takeDeferred(event) {
		if data, ok := msg.Data.(T); ok {
			out = append(out, data)
		}
	}
	return out
}
