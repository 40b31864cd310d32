package state

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/atomicstack/cli-music/internal/music"
)

// TrackStore caches playlist track lists by playlist name. It is owned by the
// consumer loop and is not safe for concurrent use.
type TrackStore interface {
	Get(playlist string) ([]music.Track, bool)
	Set(playlist string, tracks []music.Track)
	Len() int
}

type trackStore struct {
	entries map[string][]music.Track
}

// NewTrackStore returns a store that never evicts. A positive limit returns an
// LRU store holding at most limit playlists instead.
func NewTrackStore(limit int) TrackStore {
	if limit > 0 {
		cache, err := lru.New[string, []music.Track](limit)
		if err == nil {
			return &lruTrackStore{cache: cache}
		}
	}
	return &trackStore{entries: make(map[string][]music.Track)}
}

func (s *trackStore) Get(playlist string) ([]music.Track, bool) {
	tracks, ok := s.entries[playlist]
	if !ok {
		return nil, false
	}
	return cloneTracks(tracks), true
}

func (s *trackStore) Set(playlist string, tracks []music.Track) {
	s.entries[playlist] = cloneTracks(tracks)
}

func (s *trackStore) Len() int {
	return len(s.entries)
}

type lruTrackStore struct {
	cache *lru.Cache[string, []music.Track]
}

func (s *lruTrackStore) Get(playlist string) ([]music.Track, bool) {
	tracks, ok := s.cache.Get(playlist)
	if !ok {
		return nil, false
	}
	return cloneTracks(tracks), true
}

func (s *lruTrackStore) Set(playlist string, tracks []music.Track) {
	s.cache.Add(playlist, cloneTracks(tracks))
}

func (s *lruTrackStore) Len() int {
	return s.cache.Len()
}

func cloneTracks(tracks []music.Track) []music.Track {
	dup := make([]music.Track, len(tracks))
	copy(dup, tracks)
	return dup
}
