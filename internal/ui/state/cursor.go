package state

// MoveBy moves the selection by delta, wrapping around both ends. An unset
// selection counts as index 0.
func (l *List[T]) MoveBy(delta int) bool {
	n := len(l.Items)
	if n == 0 {
		l.Selected = NoSelection
		return false
	}
	old := l.Selected
	i := l.Selected
	if i < 0 || i >= n {
		i = 0
	}
	l.Selected = ((i+delta)%n + n) % n
	return l.Selected != old
}

// MoveHome selects the first item.
func (l *List[T]) MoveHome() bool {
	return l.moveTo(0)
}

// MoveEnd selects the last item.
func (l *List[T]) MoveEnd() bool {
	return l.moveTo(len(l.Items) - 1)
}

// MovePageUp moves the selection up by the given page size, clamped at the
// first item.
func (l *List[T]) MovePageUp(maxVisible int) bool {
	return l.moveClamped(-l.pageSize(maxVisible))
}

// MovePageDown moves the selection down by the given page size, clamped at
// the last item.
func (l *List[T]) MovePageDown(maxVisible int) bool {
	return l.moveClamped(l.pageSize(maxVisible))
}

func (l *List[T]) moveClamped(delta int) bool {
	i := l.Selected
	if i < 0 {
		i = 0
	}
	return l.moveTo(i + delta)
}

func (l *List[T]) moveTo(idx int) bool {
	n := len(l.Items)
	if n == 0 {
		l.Selected = NoSelection
		return false
	}
	old := l.Selected
	if idx < 0 {
		idx = 0
	}
	if idx >= n {
		idx = n - 1
	}
	l.Selected = idx
	return l.Selected != old
}

func (l *List[T]) pageSize(maxVisible int) int {
	total := len(l.Items)
	if total == 0 {
		return 0
	}
	size := maxVisible
	if size <= 0 || size > total {
		size = total
	}
	if size < 1 {
		size = 1
	}
	return size
}

// EnsureVisible adjusts the viewport offset so the selection stays visible.
func (l *List[T]) EnsureVisible(maxVisible int) {
	if len(l.Items) == 0 {
		l.Selected = NoSelection
		l.ViewportOffset = 0
		return
	}
	if l.Selected < 0 {
		l.Selected = 0
	}
	if l.Selected >= len(l.Items) {
		l.Selected = len(l.Items) - 1
	}
	if maxVisible <= 0 {
		l.ViewportOffset = 0
		return
	}
	maxOffset := len(l.Items) - maxVisible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if l.ViewportOffset > maxOffset {
		l.ViewportOffset = maxOffset
	}
	if l.ViewportOffset < 0 {
		l.ViewportOffset = 0
	}
	if l.Selected < l.ViewportOffset {
		l.ViewportOffset = l.Selected
	}
	upper := l.ViewportOffset + maxVisible - 1
	if l.Selected > upper {
		l.ViewportOffset = l.Selected - maxVisible + 1
		if l.ViewportOffset < 0 {
			l.ViewportOffset = 0
		}
		if l.ViewportOffset > maxOffset {
			l.ViewportOffset = maxOffset
		}
	}
}
