package events

import (
	"errors"
	"log"
	"sync"
)

// ErrStoreClosed is returned when appending to a closed store
var ErrStoreClosed = errors.New("event store is closed")

// delivery is one appended event together with the handlers that were
// subscribed to it at append time
type delivery struct {
	event    Event
	handlers []EventHandler
}

// InMemoryEventStore keeps per-stream and global event logs. Subscribers are
// served by a single dispatcher goroutine in append order; Close drains it.
type InMemoryEventStore struct {
	mu          sync.RWMutex
	streams     map[string][]Event
	log         []Event
	subscribers map[string][]EventHandler

	queueMu sync.Mutex
	ready   *sync.Cond
	queue   []delivery
	closed  bool
	done    chan struct{}
}

var (
	_ EventStore = (*InMemoryEventStore)(nil)
	_ Publisher  = (*InMemoryEventStore)(nil)
)

// NewInMemoryEventStore creates an empty event store and starts its dispatcher
func NewInMemoryEventStore() *InMemoryEventStore {
	s := &InMemoryEventStore{
		streams:     make(map[string][]Event),
		subscribers: make(map[string][]EventHandler),
		done:        make(chan struct{}),
	}
	s.ready = sync.NewCond(&s.queueMu)
	go s.dispatch()
	return s
}

// AppendEvent stamps the event with its stream version and queues it for
// subscribers. Events appended by one goroutine reach every handler in order.
func (s *InMemoryEventStore) AppendEvent(streamID string, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stamped := BaseEvent{
		EventType:    event.Type(),
		Stream:       streamID,
		EventData:    event.Data(),
		EventTime:    event.Timestamp(),
		EventVersion: len(s.streams[streamID]) + 1,
	}

	// enqueue while holding mu so queue order matches log order
	if err := s.enqueue(delivery{event: stamped, handlers: s.handlersFor(stamped.EventType)}); err != nil {
		return err
	}

	s.streams[streamID] = append(s.streams[streamID], stamped)
	s.log = append(s.log, stamped)
	return nil
}

// Publish appends an event to its own stream
func (s *InMemoryEventStore) Publish(event Event) error {
	return s.AppendEvent(event.StreamID(), event)
}

// ReadEvents returns a stream's events from a 1-based version onwards
func (s *InMemoryEventStore) ReadEvents(streamID string, fromVersion int) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stream := s.streams[streamID]
	if fromVersion < 1 {
		fromVersion = 1
	}
	if fromVersion > len(stream) {
		return []Event{}, nil
	}
	return append([]Event(nil), stream[fromVersion-1:]...), nil
}

// ReadAllEvents returns the global log from a 0-based position onwards
func (s *InMemoryEventStore) ReadAllEvents(fromPosition int) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if fromPosition < 0 {
		fromPosition = 0
	}
	if fromPosition >= len(s.log) {
		return []Event{}, nil
	}
	return append([]Event(nil), s.log[fromPosition:]...), nil
}

// Subscribe registers a handler for event types; AllEvents matches every type
func (s *InMemoryEventStore) Subscribe(eventTypes []string, handler EventHandler) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, eventType := range eventTypes {
		s.subscribers[eventType] = append(s.subscribers[eventType], handler)
	}
	return nil
}

// Unsubscribe removes a handler from every event type
func (s *InMemoryEventStore) Unsubscribe(handler EventHandler) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for eventType, handlers := range s.subscribers {
		kept := handlers[:0:0]
		for _, h := range handlers {
			if h != handler {
				kept = append(kept, h)
			}
		}
		s.subscribers[eventType] = kept
	}
	return nil
}

// Close stops accepting events and blocks until every queued delivery has
// been handed to its handlers. Close it before closing the handlers.
func (s *InMemoryEventStore) Close() error {
	s.queueMu.Lock()
	s.closed = true
	s.ready.Broadcast()
	s.queueMu.Unlock()

	<-s.done
	return nil
}

// handlersFor must be called with mu held
func (s *InMemoryEventStore) handlersFor(eventType string) []EventHandler {
	var handlers []EventHandler
	seen := make(map[EventHandler]bool)
	for _, key := range []string{eventType, AllEvents} {
		for _, h := range s.subscribers[key] {
			if !seen[h] && h.CanHandle(eventType) {
				seen[h] = true
				handlers = append(handlers, h)
			}
		}
	}
	return handlers
}

func (s *InMemoryEventStore) enqueue(d delivery) error {
	s.queueMu.Lock()
	defer s.queueMu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}
	if len(d.handlers) == 0 {
		return nil
	}
	s.queue = append(s.queue, d)
	s.ready.Signal()
	return nil
}

func (s *InMemoryEventStore) dispatch() {
	defer close(s.done)

	for {
		s.queueMu.Lock()
		for len(s.queue) == 0 && !s.closed {
			s.ready.Wait()
		}
		if len(s.queue) == 0 {
			s.queueMu.Unlock()
			return
		}
		next := s.queue[0]
		s.queue[0] = delivery{}
		s.queue = s.queue[1:]
		s.queueMu.Unlock()

		for _, h := range next.handlers {
			if err := h.Handle(next.event); err != nil {
				log.Printf("events: handler failed for %s on stream %s: %v",
					next.event.Type(), next.event.StreamID(), err)
			}
		}
	}
}
