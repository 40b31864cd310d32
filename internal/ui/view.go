package ui

import (
	"fmt"
	"strings"

	"github.com/atomicstack/cli-music/internal/artwork"
	"github.com/atomicstack/cli-music/internal/event"
	"github.com/atomicstack/cli-music/internal/format/table"
	"github.com/atomicstack/cli-music/internal/music"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

const (
	defaultWidth       = 80
	defaultHeight      = 24
	hintsMinWidth      = 50
	nowPlayingMinWidth = 60
	statusRowMinHeight = 10
	artworkMinHeight   = 10
	trackInfoLines     = 3
	minMainHeight      = 4

	headerHints = "  q:quit  space:play  n/p:track  ,/.:seek  s:mode  f:fav  /:search"
	footerHelp  = "j/k move  l/enter open  h/esc back  1/2/tab panel  +/- volume"
)

type layout struct {
	width       int
	mainHeight  int
	controls    int
	bottomLine  bool
	showNowPlay bool
}

func (m *Model) layout() layout {
	width, height := m.width, m.height
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}
	l := layout{width: width, controls: 3, showNowPlay: width >= nowPlayingMinWidth}
	if height >= statusRowMinHeight {
		l.controls = 4
	}
	l.bottomLine = m.showFooter || m.currentInfo() != ""
	used := 1 + l.controls
	if l.bottomLine {
		used++
	}
	l.mainHeight = height - used
	if l.mainHeight < minMainHeight {
		l.mainHeight = minMainHeight
	}
	return l
}

func (l layout) libraryWidth() int {
	if !l.showNowPlay {
		return l.width
	}
	return l.width - l.nowPlayingWidth()
}

func (l layout) nowPlayingWidth() int {
	if !l.showNowPlay {
		return 0
	}
	pct := 45
	switch {
	case l.width >= 120:
		pct = 35
	case l.width >= 80:
		pct = 40
	}
	return l.width * pct / 100
}

// maxVisibleItems is the number of list rows inside the library panel.
func (m *Model) maxVisibleItems() int {
	rows := m.layout().mainHeight - 3 // borders + title
	if m.activeList().Searching() {
		rows--
	}
	if rows < 1 {
		return 1
	}
	return rows
}

// Render composes the full frame.
func (m *Model) Render() string {
	l := m.layout()
	sections := []string{m.renderHeader(l.width)}

	library := m.renderLibrary(l.libraryWidth(), l.mainHeight)
	if l.showNowPlay {
		nowPlaying := m.renderNowPlaying(l.nowPlayingWidth(), l.mainHeight)
		sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top, nowPlaying, library))
	} else {
		sections = append(sections, library)
	}
	sections = append(sections, m.renderControls(l.width, l.controls))
	if l.bottomLine {
		if info := m.currentInfo(); info != "" {
			sections = append(sections, styles.Info.Render(truncateText(info, l.width)))
		} else {
			sections = append(sections, styles.Hints.Render(truncateText(footerHelp, l.width)))
		}
	}
	return strings.Join(sections, "\n")
}

func (m *Model) renderHeader(width int) string {
	header := styles.Brand.Render(" ♫ cli-music ")
	if width >= hintsMinWidth {
		header += styles.Hints.Render(headerHints)
	}
	return truncateText(header, width)
}

func (m *Model) renderNowPlaying(width, height int) string {
	innerW, innerH := width-2, height-2
	body := []string{styles.PanelTitle.Render("Now Playing")}
	bodyH := innerH - 1
	status := m.status
	if !status.HasTrack() {
		body = append(body, centered(styles.Muted.Render("Nothing playing"), innerW, bodyH)...)
		return box(body, width, height, m.panel == PanelNowPlaying)
	}
	info := []string{
		styles.TrackName.Render(status.TrackName),
		styles.Artist.Render(status.Artist),
		styles.Muted.Render(fmt.Sprintf("%s  %s / %s", status.Album, formatTime(status.Position), formatTime(status.Duration))),
	}
	if innerH >= artworkMinHeight {
		artH := bodyH - trackInfoLines
		artW := min(innerW, artH*2)
		if art := m.artworkLines(artW, artH); art != nil {
			pad := strings.Repeat(" ", (innerW-artW)/2)
			for _, line := range art {
				body = append(body, pad+line)
			}
		} else {
			body = append(body, centered(styles.Muted.Render("♪"), innerW, artH)...)
		}
	}
	body = append(body, info...)
	return box(body, width, height, m.panel == PanelNowPlaying)
}

// artworkLines returns half-block art for the applied image, re-rendering
// only when the target size changes.
func (m *Model) artworkLines(width, height int) []string {
	if m.artwork.image == nil || width <= 0 || height <= 0 {
		return nil
	}
	if m.artwork.rendered == nil || m.artwork.renderedWidth != width || m.artwork.renderedHeight != height {
		m.artwork.rendered = artwork.Render(m.artwork.image, width, height)
		m.artwork.renderedWidth = width
		m.artwork.renderedHeight = height
	}
	return m.artwork.rendered
}

func (m *Model) libraryTitle() string {
	switch m.view {
	case event.ViewTracks:
		album := "Tracks"
		if len(m.tracks.Items) > 0 && m.tracks.Items[0].Album != "" {
			album = m.tracks.Items[0].Album
		}
		return fmt.Sprintf("%s — %d tracks", album, m.tracks.Len())
	case event.ViewSearchResults:
		return fmt.Sprintf("Search — %d results", m.tracks.Len())
	default:
		return fmt.Sprintf("Playlists (%d)", m.playlists.Len())
	}
}

func (m *Model) renderLibrary(width, height int) string {
	innerW, innerH := width-2, height-2
	body := []string{styles.PanelTitle.Render(m.libraryTitle())}
	bodyH := innerH - 1
	active := m.panel == PanelLibrary
	if m.loading {
		body = append(body, centered(styles.Loading.Render("Loading..."), innerW, bodyH)...)
		return box(body, width, height, active)
	}
	list := m.activeList()
	rows := m.maxVisibleItems()
	list.EnsureVisible(rows)
	var lines []string
	if m.view == event.ViewPlaylists {
		lines = m.playlistLines(rows)
	} else {
		lines = m.trackLines(rows, innerW)
	}
	if len(lines) == 0 {
		msg := "(empty)"
		if q := list.Query(); q != "" {
			msg = fmt.Sprintf("No matches for %q", q)
		}
		lines = []string{styles.Muted.Render(msg)}
	}
	for len(lines) < rows {
		lines = append(lines, "")
	}
	body = append(body, lines...)
	if list.Searching() {
		body = append(body, m.searchPrompt(list))
	}
	return box(body, width, height, active)
}

func (m *Model) playlistLines(rows int) []string {
	l := m.playlists
	end := min(l.ViewportOffset+rows, len(l.Items))
	lines := make([]string, 0, rows)
	for i := l.ViewportOffset; i < end; i++ {
		name := l.Items[i].Name
		if i == l.Selected {
			lines = append(lines, styles.SelectedItem.Render(" ▶ "+name+" ›"))
			continue
		}
		lines = append(lines, "   "+styles.Item.Render(name)+styles.ItemHint.Render(" ›"))
	}
	return lines
}

func (m *Model) trackLines(rows, width int) []string {
	l := m.tracks
	end := min(l.ViewportOffset+rows, len(l.Items))
	if l.ViewportOffset >= end {
		return nil
	}
	visible := l.Items[l.ViewportOffset:end]
	showAlbum := width > 60
	tableRows := make([][]string, len(visible))
	for i, t := range visible {
		row := []string{t.Name, t.Artist}
		if showAlbum {
			row = append(row, t.Album)
		}
		tableRows[i] = append(row, formatTime(t.Duration))
	}
	limits := []int{max(width/3, 8), 24}
	align := []table.Alignment{table.AlignLeft, table.AlignLeft}
	if showAlbum {
		limits = append(limits, 20)
		align = append(align, table.AlignLeft)
	}
	align = append(align, table.AlignRight)
	formatted := table.FormatLimited(tableRows, align, limits)

	lines := make([]string, 0, len(formatted))
	for i, text := range formatted {
		idx := l.ViewportOffset + i
		playing := m.isPlaying(visible[i])
		marker := "  "
		if playing {
			marker = "♫ "
		}
		switch {
		case idx == l.Selected:
			lines = append(lines, styles.SelectedItem.Render(" ▶ "+marker+text))
		case playing:
			lines = append(lines, "   "+styles.Playing.Render(marker+text))
		default:
			lines = append(lines, "   "+marker+styles.Item.Render(text))
		}
	}
	return lines
}

func (m *Model) isPlaying(t music.Track) bool {
	return m.status.HasTrack() && t.Name == m.status.TrackName && t.Artist == m.status.Artist
}

func (m *Model) searchPrompt(list selectable) string {
	query := []rune(list.Query())
	pos := list.QueryCursorPos()
	before := string(query[:pos])
	after := ""
	c := m.searchCursor
	if pos < len(query) {
		c.SetChar(string(query[pos]))
		after = string(query[pos+1:])
	}
	return styles.SearchPrompt.Render(" / ") +
		styles.SearchQuery.Render(before) +
		c.View() +
		styles.SearchQuery.Render(after)
}

func (m *Model) renderControls(width, height int) string {
	innerW := width - 2
	status := m.status
	label := fmt.Sprintf(" %s  %s / %s ", stateIcon(status.State), formatTime(status.Position), formatTime(status.Duration))
	ratio := 0.0
	if status.Duration > 0 {
		ratio = min(max(status.Position/status.Duration, 0), 1)
	}
	bar := m.progress
	bar.Width = max(innerW-lipgloss.Width(label), 0)
	lines := []string{label + bar.ViewAs(ratio)}
	if height >= 4 {
		lines = append(lines, statusRow(status))
	}
	return box(lines, width, height, false)
}

func statusRow(status music.PlayerStatus) string {
	sep := styles.Muted.Render(" │ ")
	shuffle := styles.Muted.Render("shuffle")
	if status.Shuffle {
		shuffle = styles.Enabled.Render("⤡ shuffle")
	}
	repeat := styles.Muted.Render("repeat")
	switch status.Repeat {
	case music.RepeatOne:
		repeat = styles.Enabled.Render("↻ one")
	case music.RepeatAll:
		repeat = styles.Enabled.Render("↻ all")
	}
	vol := min(max(status.Volume, 0), 100)
	level := (vol*10 + 50) / 100
	volume := styles.Volume.Render(fmt.Sprintf("vol %s%s %d%%", strings.Repeat("━", level), strings.Repeat("─", 10-level), vol))
	return " " + shuffle + sep + repeat + sep + volume
}

func stateIcon(s music.PlayState) string {
	switch s {
	case music.Playing:
		return "▶"
	case music.Paused:
		return "‖"
	default:
		return "■"
	}
}

func formatTime(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	s := int(seconds)
	return fmt.Sprintf("%d:%02d", s/60, s%60)
}

// box draws lines inside a rounded border of the given outer size. Lines are
// truncated and padded to fit.
func box(lines []string, width, height int, active bool) string {
	innerW, innerH := width-2, height-2
	if innerW <= 0 || innerH <= 0 {
		return ""
	}
	fitted := make([]string, innerH)
	for i := range fitted {
		if i < len(lines) {
			fitted[i] = truncateText(lines[i], innerW)
		}
	}
	style := styles.Border
	if active {
		style = styles.ActiveBorder
	}
	return style.Copy().
		Border(lipgloss.RoundedBorder()).
		Width(innerW).
		Height(innerH).
		MaxHeight(height).
		Render(strings.Join(fitted, "\n"))
}

func centered(text string, width, height int) []string {
	if height <= 0 {
		return nil
	}
	lines := make([]string, height)
	pad := (width - lipgloss.Width(text)) / 2
	if pad < 0 {
		pad = 0
	}
	lines[(height-1)/2] = strings.Repeat(" ", pad) + text
	return lines
}

// truncateText shortens text to width display columns, keeping ANSI styling
// intact.
func truncateText(text string, width int) string {
	if width <= 0 {
		return text
	}
	if lipgloss.Width(text) <= width {
		return text
	}
	if width == 1 {
		return truncate.String(text, 1)
	}
	return truncate.StringWithTail(text, uint(width), "…")
}
