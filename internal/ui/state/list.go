package state

// NoSelection marks an empty list.
const NoSelection = -1

// MatchFunc reports whether item matches an already lowercased query.
type MatchFunc[T any] func(item T, lowerQuery string) bool

// List is a selectable list with an optional search session. Selected is an
// index into Items when Items is non-empty and NoSelection otherwise.
type List[T any] struct {
	Items          []T
	Selected       int
	ViewportOffset int

	match       MatchFunc[T]
	searching   bool
	query       string
	queryCursor int
	snapshot    []T
}

// NewList builds a list over items. match drives search filtering.
func NewList[T any](items []T, match MatchFunc[T]) *List[T] {
	l := &List[T]{match: match}
	l.SetItems(items)
	return l
}

// Len returns the number of visible items.
func (l *List[T]) Len() int {
	return len(l.Items)
}

// Current returns the selected item.
func (l *List[T]) Current() (T, bool) {
	var zero T
	if l.Selected < 0 || l.Selected >= len(l.Items) {
		return zero, false
	}
	return l.Items[l.Selected], true
}

// SetItems replaces the list contents and selects the first item. During a
// search the new items replace the snapshot and the query is re-applied.
func (l *List[T]) SetItems(items []T) {
	if l.searching {
		l.snapshot = cloneSlice(items)
		l.applyFilter()
		return
	}
	l.Items = cloneSlice(items)
	l.resetSelection()
}

// Clear empties the list and ends any search.
func (l *List[T]) Clear() {
	l.Items = nil
	l.searching = false
	l.query = ""
	l.queryCursor = 0
	l.snapshot = nil
	l.resetSelection()
}

func (l *List[T]) resetSelection() {
	l.ViewportOffset = 0
	if len(l.Items) == 0 {
		l.Selected = NoSelection
		return
	}
	l.Selected = 0
}

func cloneSlice[T any](items []T) []T {
	if items == nil {
		return nil
	}
	dup := make([]T, len(items))
	copy(dup, items)
	return dup
}
