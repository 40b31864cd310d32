package music

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/atomicstack/cli-music/internal/logging"
)

const (
	maxPlaylistTracks = 500
	maxSearchResults  = 200
)

const playlistsScript = `
(function() {
    var app = Application('Music');
    var pls = app.playlists();
    var result = [];
    for (var i = 0; i < pls.length; i++) {
        result.push({ id: pls[i].id(), name: pls[i].name() });
    }
    return JSON.stringify(result);
})()
`

const tracksScriptFormat = `
(function() {
    var app = Application('Music');
    var pl = app.playlists.byName("%s");
    var tracks = pl.tracks();
    var cap = Math.min(tracks.length, %d);
    var result = [];
    for (var i = 0; i < cap; i++) {
        var t = tracks[i];
        result.push({
            id:       t.id(),
            name:     t.name(),
            artist:   t.artist(),
            album:    t.album(),
            duration: t.duration()
        });
    }
    return JSON.stringify(result);
})()
`

const searchScriptFormat = `
(function() {
    var app = Application('Music');
    var library = app.playlists.whose({name: "Library"});
    var results = library[0].search({for: "%s"});
    if (!results) return JSON.stringify([]);
    var cap = Math.min(results.length, %d);
    var out = [];
    for (var i = 0; i < cap; i++) {
        var t = results[i];
        out.push({
            id:       t.id(),
            name:     t.name(),
            artist:   t.artist(),
            album:    t.album(),
            duration: t.duration()
        });
    }
    return JSON.stringify(out);
})()
`

type rawPlaylist struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type rawTrack struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Artist   string  `json:"artist"`
	Album    string  `json:"album"`
	Duration float64 `json:"duration"`
}

// FetchPlaylists lists every playlist. Failures yield an empty list.
func (c *Client) FetchPlaylists(ctx context.Context) []Playlist {
	out, err := c.output(ctx, playlistsScript)
	if err != nil {
		logging.Error(fmt.Errorf("fetch playlists: %w", err))
		return nil
	}
	var raw []rawPlaylist
	if err := json.Unmarshal(bytes.TrimSpace(out), &raw); err != nil {
		logging.Error(fmt.Errorf("parse playlists: %w", err))
		return nil
	}
	playlists := make([]Playlist, 0, len(raw))
	for _, p := range raw {
		playlists = append(playlists, Playlist{ID: p.ID, Name: p.Name})
	}
	return playlists
}

// FetchTracks returns up to 500 tracks of the named playlist.
func (c *Client) FetchTracks(ctx context.Context, playlist string) []Track {
	script := fmt.Sprintf(tracksScriptFormat, escapeJS(playlist), maxPlaylistTracks)
	tracks, err := c.queryTracks(ctx, script)
	if err != nil {
		logging.Error(fmt.Errorf("fetch tracks for %q: %w", playlist, err))
		return nil
	}
	return tracks
}

// SearchLibrary searches the main library, capped at 200 results, and orders
// the results by relevance to the query.
func (c *Client) SearchLibrary(ctx context.Context, query string) []Track {
	script := fmt.Sprintf(searchScriptFormat, escapeJS(query), maxSearchResults)
	tracks, err := c.queryTracks(ctx, script)
	if err != nil {
		logging.Error(fmt.Errorf("search library for %q: %w", query, err))
		return nil
	}
	return RankTracks(tracks, query)
}

func (c *Client) queryTracks(ctx context.Context, script string) ([]Track, error) {
	out, err := c.output(ctx, script)
	if err != nil {
		return nil, err
	}
	return parseTracks(out)
}

func parseTracks(out []byte) ([]Track, error) {
	var raw []rawTrack
	if err := json.Unmarshal(bytes.TrimSpace(out), &raw); err != nil {
		return nil, err
	}
	tracks := make([]Track, 0, len(raw))
	for _, t := range raw {
		tracks = append(tracks, Track{
			ID:       t.ID,
			Name:     t.Name,
			Artist:   t.Artist,
			Album:    t.Album,
			Duration: t.Duration,
		})
	}
	return tracks, nil
}
