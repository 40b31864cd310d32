package music

import (
	"context"
	"errors"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/atomicstack/cli-music/internal/logging"
)

type fakeCommander struct {
	out []byte
	err error
	ran chan struct{}
}

func (f fakeCommander) Run() error {
	if f.ran != nil {
		f.ran <- struct{}{}
	}
	return f.err
}

func (f fakeCommander) Output() ([]byte, error) {
	return f.out, f.err
}

type recordedCall struct {
	name string
	args []string
}

func withStubExec(t *testing.T, out []byte, err error) (*[]recordedCall, chan struct{}) {
	t.Helper()
	logging.Configure(filepath.Join(t.TempDir(), "music.log"))
	prev := runExecCommand
	var mu sync.Mutex
	calls := []recordedCall{}
	ran := make(chan struct{}, 8)
	runExecCommand = func(_ context.Context, name string, args ...string) commander {
		mu.Lock()
		calls = append(calls, recordedCall{name: name, args: args})
		mu.Unlock()
		return fakeCommander{out: out, err: err, ran: ran}
	}
	t.Cleanup(func() {
		runExecCommand = prev
		logging.Configure("")
	})
	return &calls, ran
}

func TestPollPlayerStatusParsesOutput(t *testing.T) {
	out := `{"state":"playing","position":12.5,"volume":70,"shuffle":true,"repeat":"all","name":"Odyssey","artist":"X","album":"Y","duration":200}`
	calls, _ := withStubExec(t, []byte(out+"\n"), nil)

	client := NewClient("")
	status := client.PollPlayerStatus(context.Background())
	if status.TrackName != "Odyssey" || status.Artist != "X" || status.Album != "Y" {
		t.Fatalf("unexpected track fields: %+v", status)
	}
	if status.State != Playing {
		t.Fatalf("expected playing, got %v", status.State)
	}
	if status.Repeat != RepeatAll || !status.Shuffle {
		t.Fatalf("unexpected mode: shuffle=%v repeat=%v", status.Shuffle, status.Repeat)
	}
	if status.Volume != 70 || status.Position != 12.5 || status.Duration != 200 {
		t.Fatalf("unexpected numbers: %+v", status)
	}
	if len(*calls) != 1 {
		t.Fatalf("expected 1 call, got %d", len(*calls))
	}
	call := (*calls)[0]
	if call.name != "osascript" {
		t.Fatalf("expected osascript, got %q", call.name)
	}
	if len(call.args) != 4 || call.args[0] != "-l" || call.args[1] != "JavaScript" || call.args[2] != "-e" {
		t.Fatalf("unexpected args: %v", call.args)
	}
}

func TestPollPlayerStatusFallsBackToDefault(t *testing.T) {
	withStubExec(t, nil, errors.New("not running"))

	status := NewClient("osascript").PollPlayerStatus(context.Background())
	if status != DefaultStatus() {
		t.Fatalf("expected default status, got %+v", status)
	}
	if status.HasTrack() {
		t.Fatalf("default status must not carry a track")
	}
}

func TestPollPlayerStatusRejectsGarbage(t *testing.T) {
	withStubExec(t, []byte("not json"), nil)

	status := NewClient("").PollPlayerStatus(context.Background())
	if status != DefaultStatus() {
		t.Fatalf("expected default status, got %+v", status)
	}
}

func TestParseStatusNormalisesUnknownValues(t *testing.T) {
	status, err := parseStatus([]byte(`{"state":"fast forwarding","repeat":"weird","volume":140}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status.State != Stopped {
		t.Fatalf("expected stopped, got %v", status.State)
	}
	if status.Repeat != RepeatOff {
		t.Fatalf("expected repeat off, got %v", status.Repeat)
	}
	if status.Volume != 100 {
		t.Fatalf("expected volume clamped to 100, got %d", status.Volume)
	}
}

func TestFetchPlaylists(t *testing.T) {
	withStubExec(t, []byte(`[{"id":1,"name":"Library"},{"id":42,"name":"Jazz"}]`), nil)

	playlists := NewClient("").FetchPlaylists(context.Background())
	if len(playlists) != 2 {
		t.Fatalf("expected 2 playlists, got %d", len(playlists))
	}
	if playlists[1] != (Playlist{ID: 42, Name: "Jazz"}) {
		t.Fatalf("unexpected playlist: %+v", playlists[1])
	}
}

func TestFetchPlaylistsEmptyOnError(t *testing.T) {
	withStubExec(t, nil, errors.New("boom"))

	if got := NewClient("").FetchPlaylists(context.Background()); len(got) != 0 {
		t.Fatalf("expected empty list, got %v", got)
	}
}

func TestFetchTracksEscapesPlaylistName(t *testing.T) {
	calls, _ := withStubExec(t, []byte(`[{"id":7,"name":"So What","artist":"Miles Davis","album":"Kind of Blue","duration":545.1}]`), nil)

	tracks := NewClient("").FetchTracks(context.Background(), `My "Best"`)
	if len(tracks) != 1 || tracks[0].ID != 7 || tracks[0].Artist != "Miles Davis" {
		t.Fatalf("unexpected tracks: %+v", tracks)
	}
	script := (*calls)[0].args[3]
	if !strings.Contains(script, `byName("My \"Best\"")`) {
		t.Fatalf("expected escaped playlist name in script, got %s", script)
	}
	if !strings.Contains(script, "500") {
		t.Fatalf("expected track cap in script")
	}
}

func TestSearchLibraryRanksResults(t *testing.T) {
	withStubExec(t, []byte(`[
		{"id":1,"name":"Something Else","artist":"Zed"},
		{"id":2,"name":"Blue","artist":"Joni"}
	]`), nil)

	tracks := NewClient("").SearchLibrary(context.Background(), "blue")
	if len(tracks) != 2 {
		t.Fatalf("expected 2 tracks, got %d", len(tracks))
	}
	if tracks[0].ID != 2 {
		t.Fatalf("expected ranked match first, got %+v", tracks)
	}
}

func TestOutputReportsMissingBinary(t *testing.T) {
	logging.Configure(filepath.Join(t.TempDir(), "music.log"))
	t.Cleanup(func() { logging.Configure("") })
	prev := runExecCommand
	t.Cleanup(func() { runExecCommand = prev })
	runExecCommand = func(_ context.Context, name string, args ...string) commander {
		return fakeCommander{err: &exec.Error{Name: name, Err: exec.ErrNotFound}}
	}

	_, err := NewClient("").output(context.Background(), "1")
	if !errors.Is(err, ErrNotAvailable) {
		t.Fatalf("expected ErrNotAvailable, got %v", err)
	}
}

func TestCommandsRunOnWorker(t *testing.T) {
	calls, ran := withStubExec(t, nil, nil)

	client := NewClient("")
	t.Cleanup(client.Close)
	client.SetVolume(150)
	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatalf("command did not run")
	}
	script := (*calls)[0].args[3]
	if !strings.Contains(script, "soundVolume = 100") {
		t.Fatalf("expected clamped volume, got %s", script)
	}
}

func TestCommandsIgnoredAfterClose(t *testing.T) {
	calls, _ := withStubExec(t, nil, nil)

	client := NewClient("")
	client.Close()
	client.NextTrack()
	time.Sleep(20 * time.Millisecond)
	if len(*calls) != 0 {
		t.Fatalf("expected no calls after close, got %d", len(*calls))
	}
}

func TestPlayModeScriptCycles(t *testing.T) {
	cases := []struct {
		status PlayerStatus
		want   string
	}{
		{PlayerStatus{}, "shuffleEnabled = true"},
		{PlayerStatus{Shuffle: true}, "songRepeat = 'all'"},
		{PlayerStatus{Repeat: RepeatAll}, "songRepeat = 'one'"},
		{PlayerStatus{Repeat: RepeatOne}, "songRepeat = 'off'"},
	}
	for _, tc := range cases {
		if got := playModeScript(tc.status); !strings.Contains(got, tc.want) {
			t.Fatalf("status %+v: expected %q in %s", tc.status, tc.want, got)
		}
	}
}

func TestEscapeJS(t *testing.T) {
	got := escapeJS("a\\b\"c\nd\re\x00")
	want := `a\\b\"c\nd\re`
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestRankTracksKeepsUnmatchedInOrder(t *testing.T) {
	tracks := []Track{
		{ID: 1, Name: "Alpha"},
		{ID: 2, Name: "Odyssey", Artist: "Band"},
		{ID: 3, Name: "Gamma"},
	}
	ranked := RankTracks(tracks, "ody")
	if len(ranked) != 3 {
		t.Fatalf("expected 3 tracks, got %d", len(ranked))
	}
	if ranked[0].ID != 2 || ranked[1].ID != 1 || ranked[2].ID != 3 {
		t.Fatalf("unexpected order: %+v", ranked)
	}
	if tracks[0].ID != 1 {
		t.Fatalf("input slice must not be modified")
	}
}
