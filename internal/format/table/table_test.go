package table

import (
	"strings"
	"testing"

	"github.com/atomicstack/cli-music/internal/testutil"
)

func TestFormatAlignsColumns(t *testing.T) {
	rows := [][]string{
		{"So What", "Miles Davis", "9:05"},
		{"Blue in Green", "Miles Davis", "5:37"},
		{"Naima", "John Coltrane", "4:21"},
	}
	out := Format(rows, []Alignment{AlignLeft, AlignLeft, AlignRight})
	testutil.AssertGolden(t, "table/tracks.txt", strings.Join(out, "\n")+"\n")
}

func TestFormatLimitedTruncatesCells(t *testing.T) {
	rows := [][]string{
		{"A Love Supreme, Pt. I: Acknowledgement", "1:00"},
		{"Short", "10:00"},
	}
	out := FormatLimited(rows, []Alignment{AlignLeft, AlignRight}, []int{10, 0})
	if out[0] != "A Love Su…   1:00" {
		t.Fatalf("unexpected first row %q", out[0])
	}
	if out[1] != "Short       10:00" {
		t.Fatalf("unexpected second row %q", out[1])
	}
}

func TestFormatUsesDisplayWidth(t *testing.T) {
	out := Format([][]string{{"日本", "x"}, {"abcd", "y"}}, nil)
	if out[0] != "日本  x" || out[1] != "abcd  y" {
		t.Fatalf("unexpected rows %q", out)
	}
}

func TestFormatEmpty(t *testing.T) {
	if Format(nil, nil) != nil {
		t.Fatalf("expected nil for no rows")
	}
}
