package ui

import (
	"context"
	"fmt"
	"sync"

	"github.com/atomicstack/cli-music/internal/backend"
	"github.com/atomicstack/cli-music/internal/event"
	"github.com/atomicstack/cli-music/internal/music"
)

// Harness drives a Model without a terminal. Submitted tasks and player
// commands are recorded instead of executed.
type Harness struct {
	model  *Model
	tasks  *RecordingSubmitter
	player *RecordingPlayer
}

// NewHarness builds a model around recording fakes. Nil Tasks or Player
// options are replaced by the harness recorders.
func NewHarness(opts Options) *Harness {
	h := &Harness{tasks: &RecordingSubmitter{}, player: &RecordingPlayer{}}
	if opts.Tasks == nil {
		opts.Tasks = h.tasks
	}
	if opts.Player == nil {
		opts.Player = h.player
	}
	h.model = NewModel(opts)
	return h
}

// Send applies ev to the model.
func (h *Harness) Send(ev event.Event) {
	h.model.Apply(ev)
}

// Press applies a key press for each key in order.
func (h *Harness) Press(keys ...event.Key) {
	for _, k := range keys {
		h.Send(event.KeyPressed{Key: k})
	}
}

// Render returns the current frame.
func (h *Harness) Render() string {
	return h.model.Render()
}

// Model exposes the underlying model.
func (h *Harness) Model() *Model {
	return h.model
}

// Tasks returns every task submitted so far.
func (h *Harness) Tasks() []backend.Task {
	return h.tasks.Tasks()
}

// Calls returns every player command issued so far.
func (h *Harness) Calls() []string {
	return h.player.Calls()
}

// RecordingSubmitter records tasks in submission order.
type RecordingSubmitter struct {
	mu    sync.Mutex
	tasks []backend.Task
}

// Submit records t and returns a sequential id.
func (r *RecordingSubmitter) Submit(t backend.Task) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks = append(r.tasks, t)
	return fmt.Sprintf("task-%d", len(r.tasks))
}

// Tasks returns a copy of the recorded tasks.
func (r *RecordingSubmitter) Tasks() []backend.Task {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]backend.Task(nil), r.tasks...)
}

// RecordingPlayer records each command as a short string such as
// "volume:55" or "play:7".
type RecordingPlayer struct {
	mu     sync.Mutex
	calls  []string
	Status music.PlayerStatus
}

func (p *RecordingPlayer) record(format string, args ...interface{}) {
	p.mu.Lock()
	p.calls = append(p.calls, fmt.Sprintf(format, args...))
	p.mu.Unlock()
}

// Calls returns a copy of the recorded commands.
func (p *RecordingPlayer) Calls() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.calls...)
}

func (p *RecordingPlayer) PollPlayerStatus(context.Context) music.PlayerStatus {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.Status
}

func (p *RecordingPlayer) PlayTrackByID(id int) { p.record("play:%d", id) }
func (p *RecordingPlayer) TogglePlayback()      { p.record("playpause") }
func (p *RecordingPlayer) NextTrack()           { p.record("next") }
func (p *RecordingPlayer) PreviousTrack()       { p.record("previous") }
func (p *RecordingPlayer) SetVolume(v int)      { p.record("volume:%d", v) }
func (p *RecordingPlayer) FavoriteCurrent()     { p.record("favorite") }

func (p *RecordingPlayer) CycleShuffleRepeat(current music.PlayerStatus) {
	p.record("playmode:%t:%s", current.Shuffle, current.Repeat)
}

func (p *RecordingPlayer) SeekTo(seconds float64) { p.record("seek:%g", seconds) }
