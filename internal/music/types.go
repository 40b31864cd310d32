package music

import (
	"context"
	"os/exec"
)

// PlayState mirrors the player's transport state.
type PlayState int

const (
	Stopped PlayState = iota
	Playing
	Paused
)

func (s PlayState) String() string {
	switch s {
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	default:
		return "stopped"
	}
}

// RepeatMode mirrors the player's repeat setting.
type RepeatMode int

const (
	RepeatOff RepeatMode = iota
	RepeatOne
	RepeatAll
)

func (r RepeatMode) String() string {
	switch r {
	case RepeatOne:
		return "one"
	case RepeatAll:
		return "all"
	default:
		return "off"
	}
}

// PlayerStatus is a snapshot of the remote player. It is replaced wholesale
// on every poll.
type PlayerStatus struct {
	TrackName string
	Artist    string
	Album     string
	Duration  float64
	Position  float64
	State     PlayState
	Volume    int
	Shuffle   bool
	Repeat    RepeatMode
}

// DefaultStatus is the "no player" snapshot returned whenever the player
// cannot be queried.
func DefaultStatus() PlayerStatus {
	return PlayerStatus{State: Stopped, Volume: 50, Repeat: RepeatOff}
}

// HasTrack reports whether the snapshot carries a current track.
func (s PlayerStatus) HasTrack() bool {
	return s.TrackName != ""
}

// Playlist identifies a playlist by its numeric id. Name is the cache key.
type Playlist struct {
	ID   int
	Name string
}

// Track is a library track.
type Track struct {
	ID       int
	Name     string
	Artist   string
	Album    string
	Duration float64
}

// Player is the command surface of the remote player. Every command is
// fire-and-forget from the caller's perspective.
type Player interface {
	PollPlayerStatus(ctx context.Context) PlayerStatus
	PlayTrackByID(id int)
	TogglePlayback()
	NextTrack()
	PreviousTrack()
	SetVolume(volume int)
	CycleShuffleRepeat(current PlayerStatus)
	SeekTo(seconds float64)
	FavoriteCurrent()
}

// Library enumerates playlists and tracks. Failures yield empty lists.
type Library interface {
	FetchPlaylists(ctx context.Context) []Playlist
	FetchTracks(ctx context.Context, playlist string) []Track
	SearchLibrary(ctx context.Context, query string) []Track
}

type commander interface {
	Run() error
	Output() ([]byte, error)
}

type realCommander struct {
	cmd *exec.Cmd
}

func (r realCommander) Run() error {
	return r.cmd.Run()
}

func (r realCommander) Output() ([]byte, error) {
	return r.cmd.Output()
}

var runExecCommand = func(ctx context.Context, name string, args ...string) commander {
	return realCommander{cmd: exec.CommandContext(ctx, name, args...)}
}
