// Package bus fans committed play events out to live subscribers. It is the
// in-process replacement for the old database trigger that NOTIFYed the
// "play" channel: the rule engine publishes after its transaction commits,
// so no subscriber ever hears about an event that could still roll back.
package bus

import (
	"sync"

	"gift-swap/internal/db"

	"github.com/google/uuid"
)

// Bus routes events to the subscribers of each game. Publishing never
// blocks the caller: every subscriber owns an unbounded FIFO drained by its
// own goroutine, so a slow websocket cannot stall a committing writer or a
// faster sibling.
type Bus struct {
	mu   sync.Mutex
	subs map[uuid.UUID][]*Subscription
}

func New() *Bus {
	return &Bus{subs: make(map[uuid.UUID][]*Subscription)}
}

// Publish delivers events, in order, to every current subscriber of the
// game. Events for a game must be published in commit order; the per-game
// lock held by the rule engine guarantees that.
func (b *Bus) Publish(gameID uuid.UUID, events ...db.PlayEvent) {
	if len(events) == 0 {
		return
	}
	b.mu.Lock()
	subs := make([]*Subscription, len(b.subs[gameID]))
	copy(subs, b.subs[gameID])
	b.mu.Unlock()

	for _, sub := range subs {
		sub.enqueue(events)
	}
}

// Subscribe starts a live stream of the game's committed events, beginning
// now. There is no historical backfill; callers wanting history replay the
// event log first. The subscription must be closed when done.
func (b *Bus) Subscribe(gameID uuid.UUID) *Subscription {
	sub := &Subscription{
		bus:    b,
		gameID: gameID,
		ch:     make(chan db.PlayEvent),
		done:   make(chan struct{}),
	}
	sub.cond = sync.NewCond(&sub.mu)

	b.mu.Lock()
	b.subs[gameID] = append(b.subs[gameID], sub)
	b.mu.Unlock()

	go sub.pump()
	return sub
}

func (b *Bus) remove(sub *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	subs := b.subs[sub.gameID]
	for i, candidate := range subs {
		if candidate == sub {
			b.subs[sub.gameID] = append(subs[:i], subs[i+1:]...)
			break
		}
	}
	if len(b.subs[sub.gameID]) == 0 {
		delete(b.subs, sub.gameID)
	}
}

// Subscription is one listener's ordered view of a game's committed events.
type Subscription struct {
	bus    *Bus
	gameID uuid.UUID
	ch     chan db.PlayEvent
	done   chan struct{}

	mu     sync.Mutex
	cond   *sync.Cond
	queue  []db.PlayEvent
	closed bool
}

// C yields events in commit order. The channel is closed after Close once
// every already-queued event has been delivered or abandoned.
func (s *Subscription) C() <-chan db.PlayEvent {
	return s.ch
}

// Close detaches the subscription from the bus. Events published after
// Close are missed; reconnecting callers replay the log to catch up.
func (s *Subscription) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	close(s.done)
	s.cond.Signal()
	s.mu.Unlock()

	s.bus.remove(s)
}

func (s *Subscription) enqueue(events []db.PlayEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.queue = append(s.queue, events...)
	s.cond.Signal()
}

func (s *Subscription) pump() {
	for {
		s.mu.Lock()
		for len(s.queue) == 0 && !s.closed {
			s.cond.Wait()
		}
		if len(s.queue) == 0 && s.closed {
			s.mu.Unlock()
			close(s.ch)
			return
		}
		event := s.queue[0]
		s.queue = s.queue[1:]
		s.mu.Unlock()

		select {
		case s.ch <- event:
		case <-s.done:
			close(s.ch)
			return
		}
	}
}
