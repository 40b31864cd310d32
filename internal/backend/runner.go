package backend

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sync"
	"time"

	"github.com/atomicstack/cli-music/internal/bus"
	"github.com/atomicstack/cli-music/internal/event"
	"github.com/atomicstack/cli-music/internal/logging"
	"github.com/atomicstack/cli-music/internal/logging/events"
	"github.com/atomicstack/cli-music/internal/music"
	"github.com/google/uuid"
)

// DefaultArtworkThrottle is the minimum spacing between artwork lookups.
const DefaultArtworkThrottle = time.Second

// Task is one unit of background work. The set of implementations is closed.
type Task interface {
	kind() string
}

// LoadTracks fetches the tracks of a playlist; the result is cacheable under
// the playlist name.
type LoadTracks struct {
	Playlist string
	Seq      uint64
}

// Search queries the whole library. Results are never cached.
type Search struct {
	Query string
	Seq   uint64
}

// FetchArtwork resolves and downloads cover art for a track.
type FetchArtwork struct {
	Track  string
	Artist string
	Seq    uint64
}

func (LoadTracks) kind() string   { return "load-tracks" }
func (Search) kind() string       { return "search" }
func (FetchArtwork) kind() string { return "artwork" }

// ArtworkSource looks up and downloads cover art. Both calls are best-effort.
type ArtworkSource interface {
	ResolveArtworkURL(ctx context.Context, track, artist string) (string, bool)
	DownloadImage(ctx context.Context, url string) (image.Image, bool)
}

// Submitter is the task submission surface used by the consumer loop.
type Submitter interface {
	Submit(Task) string
}

// Runner executes each submitted task on its own goroutine and publishes the
// result on the bus. Tasks are never pooled and the caller never waits on
// them.
type Runner struct {
	ctx      context.Context
	library  music.Library
	artwork  ArtworkSource
	out      Sender
	throttle *throttle

	wg   sync.WaitGroup
	once sync.Once
}

// RunnerOption customises a Runner.
type RunnerOption func(*Runner)

// WithArtworkThrottle sets the minimum spacing between artwork lookups.
func WithArtworkThrottle(d time.Duration) RunnerOption {
	return func(r *Runner) { r.throttle = newThrottle(d) }
}

// NewRunner builds a runner. A nil artwork source makes every FetchArtwork
// resolve to a miss.
func NewRunner(ctx context.Context, library music.Library, artwork ArtworkSource, out Sender, opts ...RunnerOption) *Runner {
	r := &Runner{
		ctx:      ctx,
		library:  library,
		artwork:  artwork,
		out:      out,
		throttle: newThrottle(DefaultArtworkThrottle),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Submit starts task in the background and returns its correlation id.
func (r *Runner) Submit(task Task) string {
	id := uuid.NewString()
	kind := task.kind()
	events.Task.Queue(id, kind)
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		ev := r.execute(task)
		if ev == nil {
			events.Task.Dropped(id, kind, r.ctx.Err())
			return
		}
		if err := r.out.Send(ev); err != nil {
			if !errors.Is(err, bus.ErrClosed) {
				logging.Error(fmt.Errorf("task %s: %w", kind, err))
			}
			events.Task.Dropped(id, kind, err)
			return
		}
		events.Task.Result(id, kind, event.Name(ev))
	}()
	return id
}

func (r *Runner) execute(task Task) event.Event {
	switch t := task.(type) {
	case LoadTracks:
		tracks := r.library.FetchTracks(r.ctx, t.Playlist)
		return event.TracksLoaded{View: event.ViewTracks, CacheKey: t.Playlist, Tracks: tracks, Seq: t.Seq}
	case Search:
		tracks := r.library.SearchLibrary(r.ctx, t.Query)
		return event.TracksLoaded{View: event.ViewSearchResults, Tracks: tracks, Seq: t.Seq}
	case FetchArtwork:
		return event.ArtworkLoaded{TrackKey: t.Track, Seq: t.Seq, Image: r.fetchArtwork(t)}
	default:
		return nil
	}
}

func (r *Runner) fetchArtwork(t FetchArtwork) image.Image {
	if r.artwork == nil {
		return nil
	}
	if err := r.throttle.wait(r.ctx); err != nil {
		return nil
	}
	url, ok := r.artwork.ResolveArtworkURL(r.ctx, t.Track, t.Artist)
	if !ok {
		return nil
	}
	img, ok := r.artwork.DownloadImage(r.ctx, url)
	if !ok {
		return nil
	}
	return img
}

// Wait blocks until every submitted task has finished. Intended for shutdown
// and tests.
func (r *Runner) Wait() {
	r.wg.Wait()
}

// Close waits for in-flight tasks and releases the runner's producer handle.
func (r *Runner) Close() {
	r.once.Do(func() {
		r.wg.Wait()
		r.out.Release()
	})
}
