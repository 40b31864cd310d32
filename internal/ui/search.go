package ui

import (
	"unicode/utf8"

	"github.com/atomicstack/cli-music/internal/backend"
	"github.com/atomicstack/cli-music/internal/event"
	"github.com/atomicstack/cli-music/internal/logging/events"
)

// enterSearch opens a search session on the active list. The session
// supersedes any in-flight library request: its result is still cached but
// no longer switches the view underneath the query.
func (m *Model) enterSearch() {
	m.libSeq++
	m.loading = false
	list := m.activeList()
	list.EnterSearch()
	events.Search.Enter(m.view.String(), list.Len())
}

// handleSearchKey consumes every key while a search session is open.
func (m *Model) handleSearchKey(key event.Key) {
	list := m.activeList()
	changed := false
	switch key {
	case "enter":
		m.confirmSearch()
		return
	case "esc":
		list.CancelSearch()
		events.Search.Cancel(list.Len())
		m.syncViewport()
		return
	case "backspace", "ctrl+h":
		changed = list.DeleteQueryRuneBackward()
	case "ctrl+w":
		changed = list.DeleteQueryWordBackward()
	case "ctrl+u":
		changed = list.ClearQuery()
	case "left":
		list.MoveQueryCursorRuneBackward()
	case "right":
		list.MoveQueryCursorRuneForward()
	case "up":
		m.moveSelection(-1)
	case "down":
		m.moveSelection(1)
	default:
		if text, ok := printable(key); ok {
			changed = list.InsertQueryText(text)
		}
	}
	if changed {
		events.Search.Filter(list.Query(), list.Len())
		m.syncViewport()
	}
}

// confirmSearch keeps the filtered list. A non-empty query also searches the
// whole library; the results replace the track list when they arrive.
func (m *Model) confirmSearch() {
	list := m.activeList()
	query := list.ConfirmSearch()
	events.Search.Confirm(query, list.Len())
	if query == "" {
		return
	}
	m.libSeq++
	m.setInfo("Searching library…")
	if m.tasks != nil {
		m.tasks.Submit(backend.Search{Query: query, Seq: m.libSeq})
	}
}

// printable returns the text a key inserts into the query, if any.
func printable(key event.Key) (string, bool) {
	s := string(key)
	if utf8.RuneCountInString(s) != 1 {
		return "", false
	}
	r, _ := utf8.DecodeRuneInString(s)
	if r < 0x20 || r == 0x7f {
		return "", false
	}
	return s, true
}
