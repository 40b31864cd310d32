package state

import (
	"reflect"
	"strings"
	"testing"
)

type track struct {
	name, artist string
}

func matchTrack(t track, q string) bool {
	return ContainsFold(t.name, q) || ContainsFold(t.artist, q)
}

func TestSearchFilterAndCancel(t *testing.T) {
	original := []track{{"Blue", "X"}, {"Red", "Y"}}
	l := NewList(original, matchTrack)

	l.EnterSearch()
	l.InsertQueryText("re")
	if !reflect.DeepEqual(l.Items, []track{{"Red", "Y"}}) {
		t.Fatalf("expected only Red, got %#v", l.Items)
	}
	if l.Selected != 0 {
		t.Fatalf("expected selection 0, got %d", l.Selected)
	}

	l.CancelSearch()
	if !reflect.DeepEqual(l.Items, original) {
		t.Fatalf("expected original order restored, got %#v", l.Items)
	}
	if l.Selected != 0 || l.Searching() || l.Query() != "" {
		t.Fatalf("unexpected state after cancel: selected=%d searching=%v query=%q", l.Selected, l.Searching(), l.Query())
	}
}

func TestEnterThenCancelRestoresList(t *testing.T) {
	for _, items := range [][]string{nil, {"a"}, {"c", "b", "a"}} {
		l := newTestList(items...)
		l.MoveEnd()
		l.EnterSearch()
		l.CancelSearch()
		if len(l.Items) != len(items) {
			t.Fatalf("expected %d items, got %d", len(items), len(l.Items))
		}
		for i := range items {
			if l.Items[i] != items[i] {
				t.Fatalf("expected %v, got %v", items, l.Items)
			}
		}
		want := 0
		if len(items) == 0 {
			want = NoSelection
		}
		if l.Selected != want {
			t.Fatalf("expected selection %d, got %d", want, l.Selected)
		}
	}
}

func TestEmptyQueryRestoresSnapshot(t *testing.T) {
	l := newTestList("alpha", "beta", "gamma")
	l.EnterSearch()
	l.SetQuery("zzz", 3)
	if l.Len() != 0 || l.Selected != NoSelection {
		t.Fatalf("expected no matches, got %v (selected %d)", l.Items, l.Selected)
	}
	l.SetQuery("", 0)
	if !reflect.DeepEqual(l.Items, []string{"alpha", "beta", "gamma"}) {
		t.Fatalf("expected full snapshot, got %v", l.Items)
	}
}

func TestFilterIsCaseInsensitiveSubstring(t *testing.T) {
	items := []track{{"Odyssey", "Someone"}, {"Other", "Odd Band"}}
	got := FilterItems(items, "ODY", matchTrack)
	if len(got) != 1 || got[0].name != "Odyssey" {
		t.Fatalf("expected Odyssey, got %#v", got)
	}
	got = FilterItems(items, "odd", matchTrack)
	if len(got) != 1 || got[0].artist != "Odd Band" {
		t.Fatalf("expected artist match, got %#v", got)
	}
	if got := FilterItems(items, "dsy", matchTrack); len(got) != 0 {
		t.Fatalf("expected no fuzzy matching, got %#v", got)
	}
}

func TestConfirmKeepsFilteredItems(t *testing.T) {
	l := newTestList("one", "two", "three")
	l.EnterSearch()
	l.InsertQueryText("t")
	l.MoveBy(1)
	query := l.ConfirmSearch()
	if query != "t" {
		t.Fatalf("expected confirmed query t, got %q", query)
	}
	if !reflect.DeepEqual(l.Items, []string{"two", "three"}) {
		t.Fatalf("expected filtered items kept, got %v", l.Items)
	}
	if l.Selected != 1 {
		t.Fatalf("expected selection kept at 1, got %d", l.Selected)
	}
	if l.Searching() {
		t.Fatalf("expected search to end")
	}
	l.CancelSearch()
	if l.Len() != 2 {
		t.Fatalf("cancel after confirm must not restore, got %v", l.Items)
	}
}

func TestQueryEditing(t *testing.T) {
	l := newTestList("alpha")
	if l.InsertQueryText("x") {
		t.Fatalf("expected insert outside search to fail")
	}
	l.EnterSearch()
	l.InsertQueryText("ab")
	if l.Query() != "ab" || l.QueryCursorPos() != 2 {
		t.Fatalf("unexpected query state %q/%d", l.Query(), l.QueryCursorPos())
	}
	l.MoveQueryCursorRuneBackward()
	l.InsertQueryText("z")
	if l.Query() != "azb" || l.QueryCursorPos() != 2 {
		t.Fatalf("expected insert into middle, got %q/%d", l.Query(), l.QueryCursorPos())
	}
	if !l.DeleteQueryRuneBackward() || l.Query() != "ab" {
		t.Fatalf("expected rune deletion, got %q", l.Query())
	}
	l.MoveQueryCursorRuneForward()

	l.SetQuery("abc def", len("abc def"))
	if !l.DeleteQueryWordBackward() || l.Query() != "abc " {
		t.Fatalf("expected trailing word removed, got %q", l.Query())
	}
	if !l.ClearQuery() || l.Query() != "" {
		t.Fatalf("expected cleared query, got %q", l.Query())
	}
	if l.ClearQuery() {
		t.Fatalf("expected clearing an empty query to report no change")
	}
	l.SetQuery("abc", 0)
	if l.DeleteQueryRuneBackward() {
		t.Fatalf("expected delete at start to fail")
	}
}

func TestSetItemsDuringSearchRefilters(t *testing.T) {
	l := newTestList("red", "blue")
	l.EnterSearch()
	l.InsertQueryText("r")
	l.SetItems([]string{"green", "grey", "black"})
	if !reflect.DeepEqual(l.Items, []string{"green", "grey"}) {
		t.Fatalf("expected refiltered items, got %v", l.Items)
	}
	l.CancelSearch()
	if len(l.Items) != 3 {
		t.Fatalf("expected replaced snapshot restored, got %v", l.Items)
	}
}

func TestFilterItemsCopies(t *testing.T) {
	items := []string{"Alpha", "Beta"}
	out := FilterItems(items, "", func(s, q string) bool { return strings.Contains(s, q) })
	out[0] = "changed"
	if items[0] != "Alpha" {
		t.Fatalf("expected original slice to remain unchanged")
	}
}
