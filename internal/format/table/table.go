package table

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/truncate"
)

type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

const ellipsis = "…"

// Format returns the rows padded according to the widest entry in each column.
func Format(rows [][]string, alignments []Alignment) []string {
	return FormatLimited(rows, alignments, nil)
}

// FormatLimited behaves like Format but first truncates each cell to the
// matching entry of maxWidths. Zero or missing entries mean no limit.
func FormatLimited(rows [][]string, alignments []Alignment, maxWidths []int) []string {
	if len(rows) == 0 {
		return nil
	}
	colCount := len(rows[0])
	cells := make([][]string, len(rows))
	widths := make([]int, colCount)
	for r, row := range rows {
		cells[r] = make([]string, len(row))
		for c, cell := range row {
			if c < len(maxWidths) && maxWidths[c] > 0 {
				cell = limit(cell, maxWidths[c])
			}
			cells[r][c] = cell
			if c >= colCount {
				continue
			}
			if width := cellWidth(cell); width > widths[c] {
				widths[c] = width
			}
		}
	}
	out := make([]string, len(rows))
	for i, row := range cells {
		var b strings.Builder
		for c, cell := range row {
			if c > 0 {
				b.WriteString("  ")
			}
			width := 0
			if c < colCount {
				width = widths[c] - cellWidth(cell)
			}
			if c < len(alignments) && alignments[c] == AlignRight {
				writeSpaces(&b, width)
				b.WriteString(cell)
			} else {
				b.WriteString(cell)
				writeSpaces(&b, width)
			}
		}
		out[i] = b.String()
	}
	return out
}

func limit(cell string, max int) string {
	if cellWidth(cell) <= max {
		return cell
	}
	if max == 1 {
		return ellipsis
	}
	return truncate.StringWithTail(cell, uint(max), ellipsis)
}

func cellWidth(text string) int {
	return ansi.StringWidth(text)
}

func writeSpaces(b *strings.Builder, count int) {
	if count <= 0 {
		return
	}
	b.WriteString(strings.Repeat(" ", count))
}
