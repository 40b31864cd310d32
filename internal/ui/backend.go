package ui

import (
	"github.com/atomicstack/cli-music/internal/backend"
	"github.com/atomicstack/cli-music/internal/event"
	"github.com/atomicstack/cli-music/internal/logging/events"
)

// handlePlayerStatusUpdated replaces the status snapshot and requests artwork
// when a new non-empty track name appears.
func (m *Model) handlePlayerStatusUpdated(ev event.Event) {
	status := ev.(event.PlayerStatusUpdated).Status
	if status.TrackName != "" && status.TrackName != m.artwork.key {
		events.Player.TrackChanged(m.artwork.key, status.TrackName)
		m.artSeq++
		m.artwork = artworkState{key: status.TrackName, seq: m.artSeq}
		if m.artworkEnabled && m.tasks != nil {
			events.Artwork.Request(status.TrackName, m.artSeq)
			m.tasks.Submit(backend.FetchArtwork{Track: status.TrackName, Artist: status.Artist, Seq: m.artSeq})
		}
	}
	m.status = status
}

// handleTracksLoaded caches keyed results unconditionally and switches view
// only for the latest library request.
func (m *Model) handleTracksLoaded(ev event.Event) {
	loaded := ev.(event.TracksLoaded)
	if loaded.CacheKey != "" {
		m.cache.Set(loaded.CacheKey, loaded.Tracks)
	}
	current := loaded.Seq == m.libSeq
	events.Library.Loaded(loaded.CacheKey, len(loaded.Tracks), loaded.Seq, current)
	if !current {
		return
	}
	m.loading = false
	if loaded.View == event.ViewSearchResults {
		m.forceClearInfo()
	}
	m.showTracks(loaded.View, loaded.Tracks)
}

// handleArtworkLoaded applies artwork only when it belongs to the latest
// request for the current track.
func (m *Model) handleArtworkLoaded(ev event.Event) {
	loaded := ev.(event.ArtworkLoaded)
	if loaded.TrackKey != m.artwork.key || loaded.Seq != m.artwork.seq {
		events.Artwork.Stale(loaded.TrackKey, loaded.Seq)
		return
	}
	m.artwork.image = loaded.Image
	m.artwork.rendered = nil
	events.Artwork.Applied(loaded.TrackKey, loaded.Image != nil)
}
