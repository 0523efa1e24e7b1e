// Package events fans indexing run events out to any number of subscribers.
//
// Publishing never blocks: every subscriber owns an unbounded queue drained
// by its own goroutine, so a slow consumer delays only itself. Each
// subscriber sees every event published while it is subscribed exactly once,
// in publication order.
package events

import (
	"log/slog"
	"sync"

	"github.com/gcbaptista/go-file-search/model"
)

// Broker distributes published events to subscribers.
type Broker struct {
	mu     sync.Mutex
	subs   map[*Subscription]struct{}
	closed bool
	logger *slog.Logger
}

// NewBroker creates a broker. A nil logger uses slog.Default().
func NewBroker(logger *slog.Logger) *Broker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Broker{
		subs:   make(map[*Subscription]struct{}),
		logger: logger,
	}
}

// Subscribe registers a new subscriber. Subscribing to a closed broker returns
// a subscription whose channel is already closed.
func (b *Broker) Subscribe() *Subscription {
	s := &Subscription{
		broker: b,
		notify: make(chan struct{}, 1),
		output: make(chan model.Event),
		stopCh: make(chan struct{}),
	}

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		s.closed = true
		close(s.output)
		return s
	}
	b.subs[s] = struct{}{}
	count := len(b.subs)
	b.mu.Unlock()

	b.logger.Debug("Event subscriber added", "subscribers", count)
	go s.pump()
	return s
}

// Publish queues ev for every current subscriber and returns immediately.
func (b *Broker) Publish(ev model.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	for s := range b.subs {
		s.enqueue(ev)
	}
}

// Subscribers returns the number of active subscriptions.
func (b *Broker) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// Close stops accepting events. Subscribers still receive what was already
// queued, after which their channels close. Safe to call multiple times.
func (b *Broker) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	for s := range b.subs {
		s.finish()
	}
	b.subs = make(map[*Subscription]struct{})
}

func (b *Broker) remove(s *Subscription) {
	b.mu.Lock()
	delete(b.subs, s)
	b.mu.Unlock()
}

// Subscription is one consumer's view of the broker.
type Subscription struct {
	broker *Broker

	mu     sync.Mutex
	queue  []model.Event
	closed bool // no further events will be queued

	notify   chan struct{}
	output   chan model.Event
	stopCh   chan struct{}
	stopOnce sync.Once
}

// C returns the channel events are delivered on. It is closed after Cancel,
// or once the broker is closed and the queue has drained.
func (s *Subscription) C() <-chan model.Event {
	return s.output
}

// Cancel unsubscribes and drops any undelivered events.
// Safe to call multiple times.
func (s *Subscription) Cancel() {
	s.broker.remove(s)

	s.mu.Lock()
	s.closed = true
	s.queue = nil
	s.mu.Unlock()

	s.stopOnce.Do(func() { close(s.stopCh) })
}

func (s *Subscription) enqueue(ev model.Event) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.queue = append(s.queue, ev)
	s.mu.Unlock()

	s.wake()
}

func (s *Subscription) finish() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	s.wake()
}

func (s *Subscription) wake() {
	select {
	case s.notify <- struct{}{}:
	default:
	}
}

// pump moves queued events to the output channel one at a time.
func (s *Subscription) pump() {
	defer close(s.output)

	for {
		s.mu.Lock()
		if len(s.queue) == 0 {
			closed := s.closed
			s.mu.Unlock()
			if closed {
				return
			}
			select {
			case <-s.notify:
			case <-s.stopCh:
				return
			}
			continue
		}
		ev := s.queue[0]
		s.queue[0] = model.Event{}
		s.queue = s.queue[1:]
		s.mu.Unlock()

		select {
		case s.output <- ev:
		case <-s.stopCh:
			return
		}
	}
}
