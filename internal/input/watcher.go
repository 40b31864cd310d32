// Package input turns terminal key events into bus events.
package input

import (
	"context"
	"errors"
	"time"

	"github.com/atomicstack/cli-music/internal/bus"
	"github.com/atomicstack/cli-music/internal/event"
)

// DefaultTimeout is how long the watcher waits for a key before emitting a
// Tick.
const DefaultTimeout = 200 * time.Millisecond

// Kind distinguishes genuine presses from terminal artifacts.
type Kind int

const (
	Press Kind = iota
	Repeat
	Release
)

// RawKey is a decoded key as delivered by the terminal driver.
type RawKey struct {
	Key  event.Key
	Kind Kind
}

// KeySource delivers decoded keys. The channel is closed when the terminal
// goes away.
type KeySource interface {
	Keys() <-chan RawKey
}

// Sender is the producer side of the event bus.
type Sender interface {
	Send(event.Event) error
	Release()
}

// Watcher emits KeyPressed for every press and Tick whenever the timeout
// elapses without one.
type Watcher struct {
	source  KeySource
	timeout time.Duration
	out     Sender
}

// NewWatcher builds a watcher. A non-positive timeout uses DefaultTimeout.
func NewWatcher(source KeySource, timeout time.Duration, out Sender) *Watcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Watcher{source: source, timeout: timeout, out: out}
}

// Run blocks until ctx ends, the key source closes or the bus is closed. The
// sender is released on return.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.out.Release()
	keys := w.source.Keys()
	timer := time.NewTimer(w.timeout)
	defer timer.Stop()

	for {
		var ev event.Event
		select {
		case <-ctx.Done():
			return ctx.Err()
		case key, ok := <-keys:
			if !ok {
				return nil
			}
			if key.Kind != Press {
				continue
			}
			ev = event.KeyPressed{Key: key.Key}
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
		case <-timer.C:
			ev = event.Tick{}
		}
		timer.Reset(w.timeout)

		if err := w.out.Send(ev); err != nil {
			if errors.Is(err, bus.ErrClosed) {
				return nil
			}
			return err
		}
	}
}
