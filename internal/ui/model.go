package ui

import (
	"image"
	"reflect"
	"time"

	"github.com/atomicstack/cli-music/internal/backend"
	"github.com/atomicstack/cli-music/internal/event"
	"github.com/atomicstack/cli-music/internal/music"
	"github.com/atomicstack/cli-music/internal/state"
	"github.com/atomicstack/cli-music/internal/theme"
	uistate "github.com/atomicstack/cli-music/internal/ui/state"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/progress"
)

// Panel is the panel that receives library navigation keys.
type Panel int

const (
	PanelNowPlaying Panel = iota
	PanelLibrary
)

func (p Panel) String() string {
	if p == PanelNowPlaying {
		return "now-playing"
	}
	return "library"
}

var styles = theme.Default()

type eventHandler func(event.Event)

// artworkState tracks the track whose artwork is wanted. Results are only
// accepted when both key and seq match.
type artworkState struct {
	key   string
	seq   uint64
	image image.Image

	rendered       []string
	renderedWidth  int
	renderedHeight int
}

// Options configures a Model.
type Options struct {
	Player         music.Player
	Tasks          backend.Submitter
	Cache          state.TrackStore
	Playlists      []music.Playlist
	Width          int
	Height         int
	ShowFooter     bool
	ArtworkEnabled bool
}

// Model owns every piece of application state. It is only ever touched by
// the consumer loop.
type Model struct {
	playlists *uistate.List[music.Playlist]
	tracks    *uistate.List[music.Track]
	view      event.View
	panel     Panel
	loading   bool

	status  music.PlayerStatus
	artwork artworkState

	cache  state.TrackStore
	player music.Player
	tasks  backend.Submitter

	libSeq uint64
	artSeq uint64

	shouldQuit     bool
	width          int
	height         int
	showFooter     bool
	artworkEnabled bool
	infoMsg        string
	infoExpire     time.Time

	searchCursor cursor.Model
	progress     progress.Model

	handlers map[reflect.Type]eventHandler
}

// NewModel builds the state seeded with the initial playlist list.
func NewModel(opts Options) *Model {
	cache := opts.Cache
	if cache == nil {
		cache = state.NewTrackStore(0)
	}
	m := &Model{
		playlists:      uistate.NewList(opts.Playlists, matchPlaylist),
		tracks:         uistate.NewList[music.Track](nil, matchTrack),
		view:           event.ViewPlaylists,
		panel:          PanelLibrary,
		status:         music.DefaultStatus(),
		cache:          cache,
		player:         opts.Player,
		tasks:          opts.Tasks,
		width:          opts.Width,
		height:         opts.Height,
		showFooter:     opts.ShowFooter,
		artworkEnabled: opts.ArtworkEnabled,
	}
	c := cursor.New()
	c.Style = styles.Cursor.Copy()
	c.Focus()
	c.SetMode(cursor.CursorStatic)
	c.SetChar("█")
	m.searchCursor = c
	m.progress = progress.New(
		progress.WithSolidFill(styles.ProgressFill),
		progress.WithoutPercentage(),
	)
	m.progress.EmptyColor = styles.ProgressEmpty
	m.registerHandlers()
	return m
}

func matchPlaylist(p music.Playlist, q string) bool {
	return uistate.ContainsFold(p.Name, q)
}

func matchTrack(t music.Track, q string) bool {
	return uistate.ContainsFold(t.Name, q) || uistate.ContainsFold(t.Artist, q)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]eventHandler{
		reflect.TypeOf(event.KeyPressed{}):          m.handleKeyPressed,
		reflect.TypeOf(event.Tick{}):                m.handleTick,
		reflect.TypeOf(event.PlayerStatusUpdated{}): m.handlePlayerStatusUpdated,
		reflect.TypeOf(event.TracksLoaded{}):        m.handleTracksLoaded,
		reflect.TypeOf(event.ArtworkLoaded{}):       m.handleArtworkLoaded,
	}
}

func (m *Model) handlerFor(ev event.Event) eventHandler {
	if ev == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(ev)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

// Apply processes one event. Every state transition goes through here.
func (m *Model) Apply(ev event.Event) {
	if handler := m.handlerFor(ev); handler != nil {
		handler(ev)
	}
}

// ShouldQuit reports whether a quit key has been pressed.
func (m *Model) ShouldQuit() bool {
	return m.shouldQuit
}

// SetSize records the terminal size used for layout and paging.
func (m *Model) SetSize(width, height int) {
	if width == m.width && height == m.height {
		return
	}
	m.width = width
	m.height = height
	m.syncViewport()
}

// View returns the active library view.
func (m *Model) View() event.View { return m.view }

// ActivePanel returns the focused panel.
func (m *Model) ActivePanel() Panel { return m.panel }

// Loading reports whether a playlist fetch is in flight.
func (m *Model) Loading() bool { return m.loading }

// Playlists returns the playlist list state.
func (m *Model) Playlists() *uistate.List[music.Playlist] { return m.playlists }

// Tracks returns the track list state.
func (m *Model) Tracks() *uistate.List[music.Track] { return m.tracks }

// Status returns the last polled player status.
func (m *Model) Status() music.PlayerStatus { return m.status }

// ArtworkKey returns the track name artwork is currently wanted for.
func (m *Model) ArtworkKey() string { return m.artwork.key }

// Artwork returns the applied artwork image, if any.
func (m *Model) Artwork() image.Image { return m.artwork.image }

// Searching reports whether the active list has a search session open.
func (m *Model) Searching() bool { return m.activeList().Searching() }

func (m *Model) handleTick(event.Event) {
	m.currentInfo()
}

func (m *Model) setInfo(message string) {
	m.infoMsg = message
	m.infoExpire = time.Now().Add(3 * time.Second)
}

func (m *Model) currentInfo() string {
	if m.infoMsg != "" && !m.infoExpire.IsZero() && time.Now().After(m.infoExpire) {
		m.infoMsg = ""
		m.infoExpire = time.Time{}
	}
	return m.infoMsg
}

func (m *Model) forceClearInfo() {
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}
