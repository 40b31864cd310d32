// Package event defines the closed set of values producers may hand to the
// consumer loop.
package event

import (
	"fmt"
	"image"

	"github.com/atomicstack/cli-music/internal/music"
)

// Event is implemented only by the types in this package.
type Event interface {
	event()
}

// View selects which list receives navigation keys.
type View int

const (
	ViewPlaylists View = iota
	ViewTracks
	ViewSearchResults
)

func (v View) String() string {
	switch v {
	case ViewTracks:
		return "tracks"
	case ViewSearchResults:
		return "search"
	default:
		return "playlists"
	}
}

// Key is a decoded key press such as "j", "enter" or "ctrl+c".
type Key string

func (k Key) String() string { return string(k) }

// KeyPressed carries one genuine key-down.
type KeyPressed struct {
	Key Key
}

// Tick is emitted when no input arrived within the watcher timeout.
type Tick struct{}

// PlayerStatusUpdated carries the latest poll result.
type PlayerStatusUpdated struct {
	Status music.PlayerStatus
}

// TracksLoaded delivers a track list. CacheKey is empty for results that must
// never be cached.
type TracksLoaded struct {
	View     View
	CacheKey string
	Tracks   []music.Track
	Seq      uint64
}

// ArtworkLoaded delivers artwork for TrackKey. Image is nil when lookup or
// download failed.
type ArtworkLoaded struct {
	TrackKey string
	Seq      uint64
	Image    image.Image
}

func (KeyPressed) event()          {}
func (Tick) event()                {}
func (PlayerStatusUpdated) event() {}
func (TracksLoaded) event()        {}
func (ArtworkLoaded) event()       {}

// Name returns a short label for tracing.
func Name(ev Event) string {
	switch e := ev.(type) {
	case KeyPressed:
		return "key:" + e.Key.String()
	case Tick:
		return "tick"
	case PlayerStatusUpdated:
		return "status"
	case TracksLoaded:
		return fmt.Sprintf("tracks:%s", e.View)
	case ArtworkLoaded:
		return "artwork"
	default:
		return fmt.Sprintf("%T", ev)
	}
}
