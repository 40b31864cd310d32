package ui

import (
	"context"
	"errors"
	"fmt"

	"github.com/atomicstack/cli-music/internal/bus"
	"github.com/atomicstack/cli-music/internal/event"
)

// Receiver is the consumer side of the event bus.
type Receiver interface {
	Recv(ctx context.Context) (event.Event, error)
}

// Screen presents frames and reports the terminal size.
type Screen interface {
	Size() (width, height int)
	Render(frame string)
}

// Loop is the single consumer of the event bus. It is the only goroutine
// that reads or writes the Model.
type Loop struct {
	events Receiver
	model  *Model
	screen Screen
}

// NewLoop wires a model to its event source and screen.
func NewLoop(events Receiver, model *Model, screen Screen) *Loop {
	return &Loop{events: events, model: model, screen: screen}
}

// Run renders, then processes one event at a time until a quit key is
// pressed, ctx ends, or no producer remains.
func (l *Loop) Run(ctx context.Context) error {
	l.render()
	for {
		ev, err := l.events.Recv(ctx)
		if err != nil {
			if errors.Is(err, bus.ErrNoProducers) {
				return fmt.Errorf("event loop: %w", err)
			}
			return err
		}
		l.model.Apply(ev)
		l.render()
		if l.model.ShouldQuit() {
			return nil
		}
	}
}

func (l *Loop) render() {
	if l.screen == nil {
		return
	}
	width, height := l.screen.Size()
	l.model.SetSize(width, height)
	l.screen.Render(l.model.Render())
}
