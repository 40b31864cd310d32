package backend

import (
	"context"
	"errors"
	"image"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/atomicstack/cli-music/internal/bus"
	"github.com/atomicstack/cli-music/internal/event"
	"github.com/atomicstack/cli-music/internal/music"
)

type fakeStatus struct {
	calls atomic.Int32
}

func (f *fakeStatus) PollPlayerStatus(context.Context) music.PlayerStatus {
	n := f.calls.Add(1)
	return music.PlayerStatus{TrackName: "Song", Position: float64(n), State: music.Playing}
}

type fakeLibrary struct {
	mu       sync.Mutex
	fetched  []string
	searched []string
	tracks   []music.Track
}

func (f *fakeLibrary) FetchPlaylists(context.Context) []music.Playlist { return nil }

func (f *fakeLibrary) FetchTracks(_ context.Context, name string) []music.Track {
	f.mu.Lock()
	f.fetched = append(f.fetched, name)
	f.mu.Unlock()
	return f.tracks
}

func (f *fakeLibrary) SearchLibrary(_ context.Context, query string) []music.Track {
	f.mu.Lock()
	f.searched = append(f.searched, query)
	f.mu.Unlock()
	return f.tracks
}

type fakeArtwork struct {
	url     string
	resolve bool
	img     image.Image
}

func (f fakeArtwork) ResolveArtworkURL(context.Context, string, string) (string, bool) {
	return f.url, f.resolve
}

func (f fakeArtwork) DownloadImage(context.Context, string) (image.Image, bool) {
	return f.img, f.img != nil
}

func recv(t *testing.T, b *bus.Bus) event.Event {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	ev, err := b.Recv(ctx)
	if err != nil {
		t.Fatalf("recv: %v", err)
	}
	return ev
}

func TestWatcherPublishesStatus(t *testing.T) {
	b := bus.New()
	src := &fakeStatus{}
	w := NewWatcher(context.Background(), src, time.Millisecond, b.Producer())

	first := recv(t, b).(event.PlayerStatusUpdated)
	second := recv(t, b).(event.PlayerStatusUpdated)
	if first.Status.Position >= second.Status.Position {
		t.Fatalf("expected increasing positions, got %v then %v", first.Status.Position, second.Status.Position)
	}

	w.Stop()
	w.Wait()
	for {
		_, err := b.Recv(context.Background())
		if errors.Is(err, bus.ErrNoProducers) {
			break
		}
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
}

func TestWatcherStopsWhenBusClosed(t *testing.T) {
	b := bus.New()
	b.Close()
	w := NewWatcher(context.Background(), &fakeStatus{}, time.Millisecond, b.Producer())
	done := make(chan struct{})
	go func() {
		w.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("watcher did not exit")
	}
}

func TestRunnerLoadTracksCarriesCacheKeyAndSeq(t *testing.T) {
	b := bus.New()
	lib := &fakeLibrary{tracks: []music.Track{{ID: 1, Name: "So What"}}}
	r := NewRunner(context.Background(), lib, nil, b.Producer())
	defer r.Close()

	if id := r.Submit(LoadTracks{Playlist: "Jazz", Seq: 3}); id == "" {
		t.Fatalf("expected task id")
	}
	loaded := recv(t, b).(event.TracksLoaded)
	if loaded.View != event.ViewTracks || loaded.CacheKey != "Jazz" || loaded.Seq != 3 {
		t.Fatalf("unexpected event: %+v", loaded)
	}
	if len(loaded.Tracks) != 1 {
		t.Fatalf("expected 1 track, got %d", len(loaded.Tracks))
	}
}

func TestRunnerSearchIsNeverCacheable(t *testing.T) {
	b := bus.New()
	lib := &fakeLibrary{}
	r := NewRunner(context.Background(), lib, nil, b.Producer())
	defer r.Close()

	r.Submit(Search{Query: "blue", Seq: 9})
	loaded := recv(t, b).(event.TracksLoaded)
	if loaded.View != event.ViewSearchResults || loaded.CacheKey != "" || loaded.Seq != 9 {
		t.Fatalf("unexpected event: %+v", loaded)
	}
	r.Wait()
	if len(lib.searched) != 1 || lib.searched[0] != "blue" {
		t.Fatalf("expected search for blue, got %v", lib.searched)
	}
}

func TestRunnerArtworkMissStillEmits(t *testing.T) {
	b := bus.New()
	r := NewRunner(context.Background(), &fakeLibrary{}, fakeArtwork{}, b.Producer(), WithArtworkThrottle(0))
	defer r.Close()

	r.Submit(FetchArtwork{Track: "Song1", Artist: "X", Seq: 1})
	loaded := recv(t, b).(event.ArtworkLoaded)
	if loaded.TrackKey != "Song1" || loaded.Image != nil {
		t.Fatalf("expected miss for Song1, got %+v", loaded)
	}
}

func TestRunnerArtworkHit(t *testing.T) {
	b := bus.New()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	r := NewRunner(context.Background(), &fakeLibrary{}, fakeArtwork{url: "u", resolve: true, img: img}, b.Producer(), WithArtworkThrottle(0))
	defer r.Close()

	r.Submit(FetchArtwork{Track: "Song2", Seq: 2})
	loaded := recv(t, b).(event.ArtworkLoaded)
	if loaded.Image == nil || loaded.Seq != 2 {
		t.Fatalf("expected image for seq 2, got %+v", loaded)
	}
}

func TestRunnerCloseReleasesProducer(t *testing.T) {
	b := bus.New()
	r := NewRunner(context.Background(), &fakeLibrary{}, nil, b.Producer())
	r.Close()
	r.Close()
	if _, err := b.Recv(context.Background()); !errors.Is(err, bus.ErrNoProducers) {
		t.Fatalf("expected ErrNoProducers, got %v", err)
	}
}

func TestThrottleSpacesCalls(t *testing.T) {
	th := newThrottle(20 * time.Millisecond)
	start := time.Now()
	for i := 0; i < 3; i++ {
		if err := th.wait(context.Background()); err != nil {
			t.Fatalf("wait: %v", err)
		}
	}
	if elapsed := time.Since(start); elapsed < 40*time.Millisecond {
		t.Fatalf("expected at least 40ms, got %v", elapsed)
	}
}

func TestThrottleHonoursContext(t *testing.T) {
	th := newThrottle(time.Hour)
	_ = th.wait(context.Background())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := th.wait(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
