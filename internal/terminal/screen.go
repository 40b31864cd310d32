// Package terminal adapts a Bubble Tea program into a key source and frame
// sink. The program owns raw mode, the alternate screen and key decoding;
// application state lives elsewhere.
package terminal

import (
	"context"
	"errors"
	"os"
	"sync"
	"sync/atomic"

	"github.com/atomicstack/cli-music/internal/event"
	"github.com/atomicstack/cli-music/internal/input"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

const keyBuffer = 64

type frameMsg string

// Screen renders frames produced by the consumer loop and forwards decoded
// keys to the input watcher.
type Screen struct {
	ctx     context.Context
	program *tea.Program
	keys    chan input.RawKey
	done    chan struct{}

	width  atomic.Int32
	height atomic.Int32

	closeOnce sync.Once
}

// NewScreen prepares a full-screen program. It does not touch the terminal
// until Run is called.
func NewScreen(ctx context.Context, opts ...tea.ProgramOption) *Screen {
	s := &Screen{
		ctx:  ctx,
		keys: make(chan input.RawKey, keyBuffer),
		done: make(chan struct{}),
	}
	options := append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	s.program = tea.NewProgram(&model{screen: s}, options...)
	return s
}

// Keys returns decoded key presses. The channel is closed once Run returns.
func (s *Screen) Keys() <-chan input.RawKey {
	return s.keys
}

// Size returns the last reported terminal size, probing the terminal until
// the program reports one.
func (s *Screen) Size() (int, int) {
	w, h := int(s.width.Load()), int(s.height.Load())
	if w > 0 && h > 0 {
		return w, h
	}
	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		if w, h, err := term.GetSize(fd); err == nil {
			return w, h
		}
	}
	return 0, 0
}

// Render replaces the displayed frame.
func (s *Screen) Render(frame string) {
	select {
	case <-s.done:
		return
	default:
	}
	s.program.Send(frameMsg(frame))
}

// Run drives the terminal until Quit is called or ctx ends.
func (s *Screen) Run() error {
	_, err := s.program.Run()
	s.shutdown()
	if errors.Is(err, tea.ErrProgramKilled) && s.ctx.Err() != nil {
		return nil
	}
	return err
}

// Quit restores the terminal and makes Run return.
func (s *Screen) Quit() {
	s.program.Quit()
}

func (s *Screen) shutdown() {
	s.closeOnce.Do(func() {
		close(s.done)
		close(s.keys)
	})
}

func (s *Screen) setSize(width, height int) {
	s.width.Store(int32(width))
	s.height.Store(int32(height))
}

// forward hands a key to the watcher. It gives up when the screen is done so
// the program never stalls on a reader that went away.
func (s *Screen) forward(key input.RawKey) {
	select {
	case <-s.done:
		return
	default:
	}
	select {
	case s.keys <- key:
	case <-s.done:
	case <-s.ctx.Done():
	}
}

type model struct {
	screen *Screen
	frame  string
}

func (m *model) Init() tea.Cmd {
	return nil
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.screen.forward(input.RawKey{Key: event.Key(msg.String()), Kind: input.Press})
	case tea.WindowSizeMsg:
		m.screen.setSize(msg.Width, msg.Height)
	case frameMsg:
		m.frame = string(msg)
	}
	return m, nil
}

func (m *model) View() string {
	return m.frame
}
