package backend

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/atomicstack/cli-music/internal/bus"
	"github.com/atomicstack/cli-music/internal/event"
	"github.com/atomicstack/cli-music/internal/logging"
	"github.com/atomicstack/cli-music/internal/logging/events"
	"github.com/atomicstack/cli-music/internal/music"
)

// DefaultPollInterval is the spacing between player status queries.
const DefaultPollInterval = 500 * time.Millisecond

// StatusSource reports the current player status. It must not fail: errors
// are folded into music.DefaultStatus by the implementation.
type StatusSource interface {
	PollPlayerStatus(ctx context.Context) music.PlayerStatus
}

// Sender is the producer side of the event bus.
type Sender interface {
	Send(event.Event) error
	Release()
}

// Watcher polls the player at a fixed interval and publishes
// PlayerStatusUpdated events.
type Watcher struct {
	source   StatusSource
	interval time.Duration
	out      Sender

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewWatcher starts a poller bound to parent. The sender is released when the
// poller exits.
func NewWatcher(parent context.Context, source StatusSource, interval time.Duration, out Sender) *Watcher {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	ctx, cancel := context.WithCancel(parent)
	w := &Watcher{
		source:   source,
		interval: interval,
		out:      out,
		ctx:      ctx,
		cancel:   cancel,
	}
	w.wg.Add(1)
	go w.poll()
	return w
}

// Stop cancels the watcher. The poller exits after its current query
// completes; use Wait if a clean drain is required (e.g. in tests).
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until the poller goroutine has exited.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) poll() {
	defer w.wg.Done()
	defer w.out.Release()

	emit := func() bool {
		status := w.source.PollPlayerStatus(w.ctx)
		if w.ctx.Err() != nil {
			return false
		}
		events.Player.Poll(status.State.String(), status.Position)
		if err := w.out.Send(event.PlayerStatusUpdated{Status: status}); err != nil {
			if !errors.Is(err, bus.ErrClosed) {
				logging.Error(err)
			}
			return false
		}
		return true
	}

	if !emit() {
		return
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
			if !emit() {
				return
			}
		}
	}
}
