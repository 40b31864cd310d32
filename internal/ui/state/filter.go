package state

import (
	"strings"
	"unicode"
)

// Searching reports whether a search session is active.
func (l *List[T]) Searching() bool {
	return l.searching
}

// Query returns the current search query.
func (l *List[T]) Query() string {
	return l.query
}

// EnterSearch snapshots the visible items and starts an empty query.
func (l *List[T]) EnterSearch() {
	l.snapshot = cloneSlice(l.Items)
	l.searching = true
	l.query = ""
	l.queryCursor = 0
}

// SetQuery replaces the query and re-filters the snapshot. It is a no-op
// outside a search session.
func (l *List[T]) SetQuery(query string, cursor int) {
	if !l.searching {
		return
	}
	l.query = query
	runes := []rune(query)
	if cursor < 0 {
		cursor = 0
	}
	if cursor > len(runes) {
		cursor = len(runes)
	}
	l.queryCursor = cursor
	l.applyFilter()
}

func (l *List[T]) applyFilter() {
	l.Items = FilterItems(l.snapshot, l.query, l.match)
	l.resetSelection()
}

// ConfirmSearch ends the session keeping the filtered items and selection.
// It returns the confirmed query.
func (l *List[T]) ConfirmSearch() string {
	query := l.query
	l.searching = false
	l.snapshot = nil
	return query
}

// CancelSearch ends the session and restores the snapshot verbatim.
func (l *List[T]) CancelSearch() {
	if !l.searching {
		return
	}
	l.Items = l.snapshot
	l.snapshot = nil
	l.searching = false
	l.query = ""
	l.queryCursor = 0
	l.resetSelection()
}

// QueryCursorPos returns the rune offset of the query cursor.
func (l *List[T]) QueryCursorPos() int {
	runes := []rune(l.query)
	if l.queryCursor < 0 {
		return 0
	}
	if l.queryCursor > len(runes) {
		return len(runes)
	}
	return l.queryCursor
}

// InsertQueryText inserts text at the query cursor.
func (l *List[T]) InsertQueryText(text string) bool {
	if !l.searching || text == "" {
		return false
	}
	insert := []rune(text)
	runes := []rune(l.query)
	pos := l.QueryCursorPos()
	updated := make([]rune, 0, len(runes)+len(insert))
	updated = append(updated, runes[:pos]...)
	updated = append(updated, insert...)
	updated = append(updated, runes[pos:]...)
	l.SetQuery(string(updated), pos+len(insert))
	return true
}

// DeleteQueryRuneBackward deletes the rune before the query cursor.
func (l *List[T]) DeleteQueryRuneBackward() bool {
	runes := []rune(l.query)
	pos := l.QueryCursorPos()
	if !l.searching || pos == 0 || len(runes) == 0 {
		return false
	}
	updated := append(runes[:pos-1], runes[pos:]...)
	l.SetQuery(string(updated), pos-1)
	return true
}

// DeleteQueryWordBackward deletes the word preceding the query cursor.
func (l *List[T]) DeleteQueryWordBackward() bool {
	runes := []rune(l.query)
	pos := l.QueryCursorPos()
	if !l.searching || pos == 0 || len(runes) == 0 {
		return false
	}
	i := pos
	for i > 0 && unicode.IsSpace(runes[i-1]) {
		i--
	}
	for i > 0 && !unicode.IsSpace(runes[i-1]) {
		i--
	}
	updated := append(runes[:i], runes[pos:]...)
	l.SetQuery(string(updated), i)
	return true
}

// ClearQuery empties the query, restoring every snapshot item.
func (l *List[T]) ClearQuery() bool {
	if !l.searching || l.query == "" {
		return false
	}
	l.SetQuery("", 0)
	return true
}

// MoveQueryCursorRuneBackward moves the query cursor one rune backward.
func (l *List[T]) MoveQueryCursorRuneBackward() bool {
	if l.QueryCursorPos() == 0 {
		return false
	}
	l.queryCursor = l.QueryCursorPos() - 1
	return true
}

// MoveQueryCursorRuneForward moves the query cursor one rune forward.
func (l *List[T]) MoveQueryCursorRuneForward() bool {
	pos := l.QueryCursorPos()
	if pos >= len([]rune(l.query)) {
		return false
	}
	l.queryCursor = pos + 1
	return true
}

// FilterItems returns the subsequence of items matching query
// case-insensitively. An empty query returns a copy of every item.
func FilterItems[T any](items []T, query string, match MatchFunc[T]) []T {
	if query == "" || match == nil {
		return cloneSlice(items)
	}
	lower := strings.ToLower(query)
	filtered := make([]T, 0, len(items))
	for _, item := range items {
		if match(item, lower) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// ContainsFold reports whether s contains the lowercased query.
func ContainsFold(s, lowerQuery string) bool {
	return strings.Contains(strings.ToLower(s), lowerQuery)
}
