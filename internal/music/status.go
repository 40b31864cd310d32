package music

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/atomicstack/cli-music/internal/logging"
)

// statusScript only reads what the now-playing view needs; the full
// application dictionary is far slower to fetch.
const statusScript = `
(function() {
    var app = Application('Music');
    var state = app.playerState();
    var result = {
        state:    state,
        position: 0,
        volume:   app.soundVolume(),
        shuffle:  app.shuffleEnabled(),
        repeat:   app.songRepeat(),
        name:     '',
        artist:   '',
        album:    '',
        duration: 0
    };
    if (state !== 'stopped') {
        result.position = app.playerPosition();
        var t = app.currentTrack;
        result.name     = t.name();
        result.artist   = t.artist();
        result.album    = t.album();
        result.duration = t.duration();
    }
    return JSON.stringify(result);
})()
`

type rawStatus struct {
	State    string  `json:"state"`
	Position float64 `json:"position"`
	Volume   int     `json:"volume"`
	Shuffle  bool    `json:"shuffle"`
	Repeat   string  `json:"repeat"`
	Name     string  `json:"name"`
	Artist   string  `json:"artist"`
	Album    string  `json:"album"`
	Duration float64 `json:"duration"`
}

// PollPlayerStatus queries the player. Any failure yields DefaultStatus.
func (c *Client) PollPlayerStatus(ctx context.Context) PlayerStatus {
	out, err := c.output(ctx, statusScript)
	if err != nil {
		logging.Error(fmt.Errorf("poll player status: %w", err))
		return DefaultStatus()
	}
	status, err := parseStatus(out)
	if err != nil {
		logging.Error(fmt.Errorf("parse player status: %w", err))
		return DefaultStatus()
	}
	return status
}

func parseStatus(out []byte) (PlayerStatus, error) {
	var raw rawStatus
	if err := json.Unmarshal(bytes.TrimSpace(out), &raw); err != nil {
		return PlayerStatus{}, err
	}
	return PlayerStatus{
		TrackName: raw.Name,
		Artist:    raw.Artist,
		Album:     raw.Album,
		Duration:  raw.Duration,
		Position:  raw.Position,
		State:     parsePlayState(raw.State),
		Volume:    clampVolume(raw.Volume),
		Shuffle:   raw.Shuffle,
		Repeat:    parseRepeat(raw.Repeat),
	}, nil
}

func parsePlayState(s string) PlayState {
	switch s {
	case "playing":
		return Playing
	case "paused":
		return Paused
	default:
		return Stopped
	}
}

func parseRepeat(s string) RepeatMode {
	switch s {
	case "one":
		return RepeatOne
	case "all":
		return RepeatAll
	default:
		return RepeatOff
	}
}

func clampVolume(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
