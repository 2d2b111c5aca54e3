// Package live fans finished runs out to live subscribers such as the
// leaderboard's websocket feed. Publishing never blocks the game loop.
package live

import (
	"sync"
	"time"
)

// DefaultBuffer is the subscriber buffer used when none is given.
const DefaultBuffer = 64

// Finished announces a completed run.
type Finished struct {
	LevelID   string    `json:"level"`
	Player    string    `json:"player"`
	Ticks     int       `json:"ticks"`
	ElapsedMS int       `json:"elapsed_ms"`
	At        time.Time `json:"at"`
}

// SubscriberID identifies a subscriber within its hub.
type SubscriberID uint64

// Subscriber receives published runs on a buffered channel.
type Subscriber struct {
	id       SubscriberID
	events   chan Finished
	done     chan struct{}
	doneOnce sync.Once
}

func newSubscriber(id SubscriberID, buffer int) *Subscriber {
	if buffer < 1 {
		buffer = DefaultBuffer
	}
	return &Subscriber{
		id:     id,
		events: make(chan Finished, buffer),
		done:   make(chan struct{}),
	}
}

// ID returns the subscriber identifier.
func (s *Subscriber) ID() SubscriberID {
	return s.id
}

// Events returns the channel runs are delivered on.
func (s *Subscriber) Events() <-chan Finished {
	return s.events
}

// Done is closed once the subscriber is closed.
func (s *Subscriber) Done() <-chan struct{} {
	return s.done
}

// send delivers evt without blocking. When the buffer is full the oldest
// pending run is dropped to make room.
func (s *Subscriber) send(evt Finished) {
	select {
	case <-s.done:
		return
	default:
	}

	select {
	case s.events <- evt:
		return
	default:
	}

	select {
	case <-s.events:
	default:
	}
	select {
	case s.events <- evt:
	default:
	}
}

func (s *Subscriber) close() {
	s.doneOnce.Do(func() {
		close(s.done)
	})
}

// Hub tracks subscribers. Safe for concurrent use.
type Hub struct {
	mu     sync.RWMutex
	subs   map[SubscriberID]*Subscriber
	nextID SubscriberID
	now    func() time.Time
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		subs: make(map[SubscriberID]*Subscriber),
		now:  time.Now,
	}
}

// Subscribe registers a new subscriber with the given buffer size.
func (h *Hub) Subscribe(buffer int) *Subscriber {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.nextID++
	s := newSubscriber(h.nextID, buffer)
	h.subs[s.id] = s
	return s
}

// Unsubscribe removes and closes a subscriber. Unknown IDs are ignored.
func (h *Hub) Unsubscribe(id SubscriberID) {
	h.mu.Lock()
	s, ok := h.subs[id]
	delete(h.subs, id)
	h.mu.Unlock()

	if ok {
		s.close()
	}
}

// Publish sends evt to every subscriber. A zero At is stamped with the
// current time.
func (h *Hub) Publish(evt Finished) {
	if evt.At.IsZero() {
		evt.At = h.now()
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, s := range h.subs {
		s.send(evt)
	}
}

// Count returns the number of subscribers.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Close closes every subscriber.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, s := range h.subs {
		s.close()
		delete(h.subs, id)
	}
}
