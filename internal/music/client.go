package music

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/atomicstack/cli-music/internal/logging"
	"github.com/atomicstack/cli-music/internal/logging/events"
)

const (
	defaultBinary   = "osascript"
	scriptTimeout   = 10 * time.Second
	commandQueueCap = 32
)

// ErrNotAvailable is returned when the automation binary cannot be executed.
var ErrNotAvailable = errors.New("music automation not available")

// Client talks to the Music app through JXA scripts run by osascript. Queries
// run on the calling goroutine; commands are queued and executed in order on
// a single worker so the caller never blocks on them.
type Client struct {
	binary string

	once     sync.Once
	commands chan command
	done     chan struct{}
	closeMu  sync.Mutex
	closed   bool
}

type command struct {
	name   string
	script string
}

// NewClient builds a client that invokes the given osascript binary. An empty
// value uses osascript from PATH.
func NewClient(binary string) *Client {
	if strings.TrimSpace(binary) == "" {
		binary = defaultBinary
	}
	return &Client{
		binary:   binary,
		commands: make(chan command, commandQueueCap),
		done:     make(chan struct{}),
	}
}

// Close stops the command worker. Queued commands that have not started are
// dropped.
func (c *Client) Close() {
	c.closeMu.Lock()
	defer c.closeMu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.done)
}

func (c *Client) output(ctx context.Context, script string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, scriptTimeout)
	defer cancel()
	out, err := runExecCommand(ctx, c.binary, "-l", "JavaScript", "-e", script).Output()
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return nil, fmt.Errorf("%w: %v", ErrNotAvailable, err)
		}
		return nil, fmt.Errorf("osascript: %w", err)
	}
	return out, nil
}

// enqueue hands a command to the worker. When the queue is full the command
// is dropped; the next poll shows the player's real state anyway.
func (c *Client) enqueue(name, script string) {
	c.closeMu.Lock()
	closed := c.closed
	c.closeMu.Unlock()
	if closed {
		return
	}
	c.once.Do(func() { go c.worker() })
	events.Player.Command(name)
	select {
	case c.commands <- command{name: name, script: script}:
	default:
		logging.Error(fmt.Errorf("player command %s dropped: queue full", name))
	}
}

func (c *Client) worker() {
	for {
		select {
		case <-c.done:
			return
		case cmd := <-c.commands:
			ctx, cancel := context.WithTimeout(context.Background(), scriptTimeout)
			err := runExecCommand(ctx, c.binary, "-l", "JavaScript", "-e", cmd.script).Run()
			cancel()
			if err != nil {
				logging.Error(fmt.Errorf("player command %s: %w", cmd.name, err))
				events.Player.CommandError(cmd.name, err)
			}
		}
	}
}

// escapeJS makes s safe to embed in a double-quoted JavaScript string.
func escapeJS(s string) string {
	return jsEscaper.Replace(s)
}

var jsEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\r", `\r`,
	"\x00", "",
)
