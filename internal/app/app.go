package app

import (
	"context"
	"errors"
	"time"

	"github.com/atomicstack/cli-music/internal/artwork"
	"github.com/atomicstack/cli-music/internal/backend"
	"github.com/atomicstack/cli-music/internal/bus"
	"github.com/atomicstack/cli-music/internal/input"
	"github.com/atomicstack/cli-music/internal/logging/events"
	"github.com/atomicstack/cli-music/internal/music"
	"github.com/atomicstack/cli-music/internal/state"
	"github.com/atomicstack/cli-music/internal/terminal"
	"github.com/atomicstack/cli-music/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"
)

// Config describes user-provided application options.
type Config struct {
	PollInterval    time.Duration
	InputTimeout    time.Duration
	Artwork         bool
	ArtworkThrottle time.Duration
	CacheLimit      int
	Osascript       string
	ShowFooter      bool
}

// Run wires the producers, the consumer loop and the terminal, then blocks
// until the user quits or something fails.
func Run(parent context.Context, cfg Config) error {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	client := music.NewClient(cfg.Osascript)
	defer client.Close()

	var art backend.ArtworkSource
	if cfg.Artwork {
		art = artwork.NewClient()
	}

	queue := bus.New()
	runner := backend.NewRunner(ctx, client, art, queue.Producer(), backend.WithArtworkThrottle(cfg.ArtworkThrottle))
	poller := backend.NewWatcher(ctx, client, cfg.PollInterval, queue.Producer())
	screen := terminal.NewScreen(ctx)
	keys := input.NewWatcher(screen, cfg.InputTimeout, queue.Producer())

	playlists := client.FetchPlaylists(ctx)
	events.App.Ready(len(playlists))

	model := ui.NewModel(ui.Options{
		Player:         client,
		Tasks:          runner,
		Cache:          state.NewTrackStore(cfg.CacheLimit),
		Playlists:      playlists,
		ShowFooter:     cfg.ShowFooter,
		ArtworkEnabled: cfg.Artwork,
	})
	loop := ui.NewLoop(queue, model, screen)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(screen.Run)
	g.Go(func() error {
		defer screen.Quit()
		return loop.Run(gctx)
	})
	g.Go(func() error {
		return ignoreCanceled(keys.Run(gctx))
	})
	err := g.Wait()

	queue.Close()
	cancel()
	poller.Stop()
	poller.Wait()
	runner.Close()

	err = exitError(parent, err)
	events.App.Stop(stopReason(err))
	return err
}

// exitError drops errors that only report a requested shutdown.
func exitError(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, context.Canceled) {
		if ctx.Err() != nil {
			return nil
		}
	}
	return err
}

func ignoreCanceled(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func stopReason(err error) string {
	if err == nil {
		return "quit"
	}
	return err.Error()
}
