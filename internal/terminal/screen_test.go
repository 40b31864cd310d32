package terminal

import (
	"context"
	"testing"

	"github.com/atomicstack/cli-music/internal/input"
	tea "github.com/charmbracelet/bubbletea"
)

func TestModelForwardsKeysAsPresses(t *testing.T) {
	s := NewScreen(context.Background())
	m := &model{screen: s}
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})

	first := <-s.Keys()
	if first.Key != "j" || first.Kind != input.Press {
		t.Fatalf("expected press of j, got %+v", first)
	}
	second := <-s.Keys()
	if second.Key != "ctrl+c" {
		t.Fatalf("expected ctrl+c, got %q", second.Key)
	}
}

func TestModelTracksSizeAndFrame(t *testing.T) {
	s := NewScreen(context.Background())
	m := &model{screen: s}
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	if w, h := s.Size(); w != 120 || h != 40 {
		t.Fatalf("expected 120x40, got %dx%d", w, h)
	}
	m.Update(frameMsg("hello"))
	if got := m.View(); got != "hello" {
		t.Fatalf("expected frame hello, got %q", got)
	}
}

func TestForwardGivesUpAfterShutdown(t *testing.T) {
	s := NewScreen(context.Background())
	for i := 0; i < keyBuffer; i++ {
		s.forward(input.RawKey{Key: "x"})
	}
	s.shutdown()
	s.forward(input.RawKey{Key: "y"})
	s.Render("ignored")
	count := 0
	for range s.Keys() {
		count++
	}
	if count != keyBuffer {
		t.Fatalf("expected %d buffered keys, got %d", keyBuffer, count)
	}
}
