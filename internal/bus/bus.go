// Package bus provides the single ordered queue connecting producers to the
// consumer loop.
package bus

import (
	"context"
	"errors"
	"sync"

	"github.com/atomicstack/cli-music/internal/event"
)

var (
	// ErrClosed is returned by Send once the consumer has closed the bus.
	ErrClosed = errors.New("bus closed")
	// ErrNoProducers is returned by Recv when the queue is drained and every
	// producer handle has been released.
	ErrNoProducers = errors.New("bus has no producers")
)

// Bus is an unbounded multi-producer, single-consumer FIFO. Sends never
// block; Recv blocks until an event is queued, the context ends, or no
// producer remains.
type Bus struct {
	mu        sync.Mutex
	queue     []event.Event
	producers int
	closed    bool
	notify    chan struct{}
}

// New returns an empty bus with no producers.
func New() *Bus {
	return &Bus{notify: make(chan struct{}, 1)}
}

// Sender is a producer handle. It is safe for concurrent use.
type Sender struct {
	bus      *Bus
	once     sync.Once
	released bool
	mu       sync.Mutex
}

// Producer registers a new producer handle. Release it when the producer
// exits.
func (b *Bus) Producer() *Sender {
	b.mu.Lock()
	b.producers++
	b.mu.Unlock()
	return &Sender{bus: b}
}

// Send enqueues ev. It fails only after the bus is closed or the handle has
// been released.
func (s *Sender) Send(ev event.Event) error {
	s.mu.Lock()
	released := s.released
	s.mu.Unlock()
	if released {
		return ErrClosed
	}
	return s.bus.push(ev)
}

// Release drops the handle. Calling it more than once is harmless.
func (s *Sender) Release() {
	s.once.Do(func() {
		s.mu.Lock()
		s.released = true
		s.mu.Unlock()
		s.bus.mu.Lock()
		s.bus.producers--
		s.bus.mu.Unlock()
		s.bus.wake()
	})
}

func (b *Bus) push(ev event.Event) error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return ErrClosed
	}
	b.queue = append(b.queue, ev)
	b.mu.Unlock()
	b.wake()
	return nil
}

func (b *Bus) wake() {
	select {
	case b.notify <- struct{}{}:
	default:
	}
}

// Recv returns the oldest queued event.
func (b *Bus) Recv(ctx context.Context) (event.Event, error) {
	for {
		b.mu.Lock()
		if len(b.queue) > 0 {
			ev := b.queue[0]
			b.queue[0] = nil
			b.queue = b.queue[1:]
			if len(b.queue) == 0 {
				b.queue = nil
			}
			b.mu.Unlock()
			return ev, nil
		}
		if b.closed {
			b.mu.Unlock()
			return nil, ErrClosed
		}
		if b.producers <= 0 {
			b.mu.Unlock()
			return nil, ErrNoProducers
		}
		b.mu.Unlock()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-b.notify:
		}
	}
}

// Len reports the number of queued events.
func (b *Bus) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.queue)
}

// Close discards queued events and makes every later Send fail.
func (b *Bus) Close() {
	b.mu.Lock()
	b.closed = true
	b.queue = nil
	b.mu.Unlock()
	b.wake()
}
