package ui

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/atomicstack/cli-music/internal/bus"
	"github.com/atomicstack/cli-music/internal/event"
	"github.com/atomicstack/cli-music/internal/music"
)

type fakeScreen struct {
	width, height int
	frames        []string
}

func (s *fakeScreen) Size() (int, int)     { return s.width, s.height }
func (s *fakeScreen) Render(frame string) { s.frames = append(s.frames, frame) }

func TestLoopStopsOnQuit(t *testing.T) {
	b := bus.New()
	p := b.Producer()
	defer p.Release()
	_ = p.Send(event.PlayerStatusUpdated{Status: music.PlayerStatus{TrackName: "Song", State: music.Playing}})
	_ = p.Send(event.KeyPressed{Key: "q"})
	_ = p.Send(event.KeyPressed{Key: "n"})

	player := &RecordingPlayer{}
	model := NewModel(Options{Player: player})
	screen := &fakeScreen{width: 80, height: 24}
	if err := NewLoop(b, model, screen).Run(context.Background()); err != nil {
		t.Fatalf("expected clean exit, got %v", err)
	}
	if len(screen.frames) != 3 {
		t.Fatalf("expected initial frame plus one per event, got %d", len(screen.frames))
	}
	if model.Status().TrackName != "Song" {
		t.Fatalf("expected status applied before quit")
	}
	if len(player.Calls()) != 0 {
		t.Fatalf("expected events after quit left unprocessed, got %v", player.Calls())
	}
	if b.Len() != 1 {
		t.Fatalf("expected one queued event left, got %d", b.Len())
	}
}

func TestLoopFailsWhenProducersGone(t *testing.T) {
	b := bus.New()
	p := b.Producer()
	_ = p.Send(event.Tick{})
	p.Release()

	screen := &fakeScreen{width: 80, height: 24}
	err := NewLoop(b, NewModel(Options{}), screen).Run(context.Background())
	if !errors.Is(err, bus.ErrNoProducers) {
		t.Fatalf("expected ErrNoProducers, got %v", err)
	}
	if len(screen.frames) != 2 {
		t.Fatalf("expected queued tick processed before failing, got %d frames", len(screen.frames))
	}
}

func TestLoopHonoursContext(t *testing.T) {
	b := bus.New()
	p := b.Producer()
	defer p.Release()
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := NewLoop(b, NewModel(Options{}), nil).Run(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline error, got %v", err)
	}
}

func TestLoopAppliesScreenSize(t *testing.T) {
	b := bus.New()
	p := b.Producer()
	defer p.Release()
	_ = p.Send(event.KeyPressed{Key: "q"})

	model := NewModel(Options{})
	screen := &fakeScreen{width: 120, height: 40}
	if err := NewLoop(b, model, screen).Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if model.width != 120 || model.height != 40 {
		t.Fatalf("expected size 120x40, got %dx%d", model.width, model.height)
	}
}
