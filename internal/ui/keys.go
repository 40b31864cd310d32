package ui

import (
	"github.com/atomicstack/cli-music/internal/event"
	"github.com/atomicstack/cli-music/internal/logging/events"
)

const (
	volumeStep = 5
	seekStep   = 5.0
)

func (m *Model) handleKeyPressed(ev event.Event) {
	key := ev.(event.KeyPressed).Key
	events.UI.Key(key.String())
	if key == "ctrl+c" {
		m.quit()
		return
	}
	if m.activeList().Searching() {
		m.handleSearchKey(key)
		return
	}
	if m.panel == PanelLibrary && m.handleLibraryKey(key) {
		return
	}
	m.handleGlobalKey(key)
}

// handleLibraryKey handles navigation keys while the library panel is
// focused. It reports whether the key was consumed.
func (m *Model) handleLibraryKey(key event.Key) bool {
	switch key {
	case "j", "down":
		m.moveSelection(1)
	case "k", "up":
		m.moveSelection(-1)
	case "pgdown":
		m.pageDown()
	case "pgup":
		m.pageUp()
	case "home", "g":
		m.moveHome()
	case "end", "G":
		m.moveEnd()
	case "l", "right", "enter":
		m.activate()
	case "h", "left", "esc":
		m.navigateBack()
	case "/":
		m.enterSearch()
	default:
		return false
	}
	return true
}

func (m *Model) handleGlobalKey(key event.Key) {
	switch key {
	case "q":
		m.quit()
	case " ", "space":
		m.command(func() { m.player.TogglePlayback() })
	case "n":
		m.command(func() { m.player.NextTrack() })
	case "p":
		m.command(func() { m.player.PreviousTrack() })
	case "+", "=":
		m.command(func() { m.player.SetVolume(min(m.status.Volume+volumeStep, 100)) })
	case "-":
		m.command(func() { m.player.SetVolume(max(m.status.Volume-volumeStep, 0)) })
	case "s":
		m.command(func() { m.player.CycleShuffleRepeat(m.status) })
	case "f":
		if m.status.HasTrack() {
			m.command(func() { m.player.FavoriteCurrent() })
			m.setInfo("Favourited " + m.status.TrackName)
		}
	case "left", "<", ",":
		m.command(func() { m.player.SeekTo(max(m.status.Position-seekStep, 0)) })
	case "right", ">", ".":
		m.command(func() { m.player.SeekTo(min(m.status.Position+seekStep, m.status.Duration)) })
	case "1":
		m.setPanel(PanelNowPlaying)
	case "2":
		m.setPanel(PanelLibrary)
	case "tab":
		m.togglePanel()
	}
}

func (m *Model) command(fn func()) {
	if m.player == nil {
		return
	}
	fn()
}

func (m *Model) quit() {
	m.shouldQuit = true
	events.UI.Quit()
}
