package music

import "fmt"

// PlayTrackByID starts playback of the library track with the given id.
func (c *Client) PlayTrackByID(id int) {
	script := fmt.Sprintf(`
(function() {
    var app = Application('Music');
    var matches = app.tracks.whose({id: %d});
    if (matches.length > 0) {
        matches[0].play();
    }
})()`, id)
	c.enqueue("play", script)
}

// TogglePlayback toggles play/pause.
func (c *Client) TogglePlayback() {
	c.enqueue("playpause", `Application('Music').playpause();`)
}

// NextTrack skips to the next track.
func (c *Client) NextTrack() {
	c.enqueue("next", `Application('Music').nextTrack();`)
}

// PreviousTrack goes back to the previous track.
func (c *Client) PreviousTrack() {
	c.enqueue("previous", `Application('Music').previousTrack();`)
}

// SetVolume sets the player volume, clamped to 0..100.
func (c *Client) SetVolume(volume int) {
	c.enqueue("volume", fmt.Sprintf(`Application('Music').soundVolume = %d;`, clampVolume(volume)))
}

// CycleShuffleRepeat advances the play mode based on the last polled status:
// normal → shuffle → repeat all → repeat one → normal.
func (c *Client) CycleShuffleRepeat(current PlayerStatus) {
	c.enqueue("playmode", playModeScript(current))
}

func playModeScript(current PlayerStatus) string {
	if current.Shuffle {
		return `
var app = Application('Music');
app.shuffleEnabled = false;
app.songRepeat = 'all';`
	}
	switch current.Repeat {
	case RepeatAll:
		return `
var app = Application('Music');
app.songRepeat = 'one';`
	case RepeatOne:
		return `
var app = Application('Music');
app.songRepeat = 'off';`
	default:
		return `
var app = Application('Music');
app.shuffleEnabled = true;`
	}
}

// SeekTo moves the playhead of the current track.
func (c *Client) SeekTo(seconds float64) {
	if seconds < 0 {
		seconds = 0
	}
	script := fmt.Sprintf(`
var app = Application('Music');
if (app.playerState() !== 'stopped') {
    app.playerPosition = %f;
}`, seconds)
	c.enqueue("seek", script)
}

// FavoriteCurrent marks the current track as a favourite.
func (c *Client) FavoriteCurrent() {
	c.enqueue("favorite", `
var app = Application('Music');
if (app.playerState() !== 'stopped') {
    app.currentTrack.favorited = true;
}`)
}
