package ui

import (
	"github.com/atomicstack/cli-music/internal/backend"
	"github.com/atomicstack/cli-music/internal/event"
	"github.com/atomicstack/cli-music/internal/logging/events"
	"github.com/atomicstack/cli-music/internal/music"
)

// selectable is the view-independent surface of a library list.
type selectable interface {
	Len() int
	MoveBy(delta int) bool
	MoveHome() bool
	MoveEnd() bool
	MovePageUp(maxVisible int) bool
	MovePageDown(maxVisible int) bool
	EnsureVisible(maxVisible int)

	Searching() bool
	Query() string
	QueryCursorPos() int
	EnterSearch()
	ConfirmSearch() string
	CancelSearch()
	InsertQueryText(text string) bool
	DeleteQueryRuneBackward() bool
	DeleteQueryWordBackward() bool
	ClearQuery() bool
	MoveQueryCursorRuneBackward() bool
	MoveQueryCursorRuneForward() bool
}

// activeList returns the list that receives navigation keys in the current
// view.
func (m *Model) activeList() selectable {
	if m.view == event.ViewPlaylists {
		return m.playlists
	}
	return m.tracks
}

func (m *Model) selectedIndex() int {
	if m.view == event.ViewPlaylists {
		return m.playlists.Selected
	}
	return m.tracks.Selected
}

func (m *Model) afterCursorMove(moved bool) {
	m.syncViewport()
	if moved {
		events.UI.Cursor(m.view.String(), m.selectedIndex())
	}
}

func (m *Model) moveSelection(delta int) {
	m.afterCursorMove(m.activeList().MoveBy(delta))
}

func (m *Model) pageUp() {
	m.afterCursorMove(m.activeList().MovePageUp(m.maxVisibleItems()))
}

func (m *Model) pageDown() {
	m.afterCursorMove(m.activeList().MovePageDown(m.maxVisibleItems()))
}

func (m *Model) moveHome() {
	m.afterCursorMove(m.activeList().MoveHome())
}

func (m *Model) moveEnd() {
	m.afterCursorMove(m.activeList().MoveEnd())
}

func (m *Model) syncViewport() {
	m.activeList().EnsureVisible(m.maxVisibleItems())
}

// activate drills into the selected playlist or plays the selected track.
func (m *Model) activate() {
	if m.view != event.ViewPlaylists {
		if track, ok := m.tracks.Current(); ok && m.player != nil {
			m.player.PlayTrackByID(track.ID)
		}
		return
	}
	playlist, ok := m.playlists.Current()
	if !ok {
		return
	}
	if cached, ok := m.cache.Get(playlist.Name); ok {
		events.Library.CacheHit(playlist.Name, len(cached))
		m.libSeq++
		m.loading = false
		m.showTracks(event.ViewTracks, cached)
		return
	}
	m.libSeq++
	m.loading = true
	events.Library.Fetch(playlist.Name, m.libSeq)
	if m.tasks != nil {
		m.tasks.Submit(backend.LoadTracks{Playlist: playlist.Name, Seq: m.libSeq})
	}
}

func (m *Model) showTracks(view event.View, tracks []music.Track) {
	m.tracks.Clear()
	m.tracks.SetItems(tracks)
	m.view = view
	events.UI.View(view.String())
	m.syncViewport()
}

// navigateBack returns to the playlist view. Any in-flight library request
// is abandoned.
func (m *Model) navigateBack() {
	m.libSeq++
	m.loading = false
	if m.view == event.ViewPlaylists {
		return
	}
	m.view = event.ViewPlaylists
	m.tracks.Clear()
	events.UI.View(m.view.String())
	m.syncViewport()
}

func (m *Model) setPanel(p Panel) {
	if m.panel == p {
		return
	}
	m.panel = p
	events.UI.Panel(p.String())
}

func (m *Model) togglePanel() {
	if m.panel == PanelLibrary {
		m.setPanel(PanelNowPlaying)
		return
	}
	m.setPanel(PanelLibrary)
}
