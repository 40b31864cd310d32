// Package ui owns the application state and everything derived from it.
//
// Event flow:
//   - Producers (the input watcher, the status poller and background tasks)
//     publish event.Event values on the bus.
//   - Loop is the single consumer. It receives one event at a time, applies it
//     to the Model and renders a frame to the Screen.
//   - Model.Apply routes each event through a typed handler registry so every
//     variant is handled by a focused function (keys.go for input, backend.go
//     for status, track and artwork results).
//
// State ownership:
//   - Playlist and track lists live in internal/ui/state.List, which tracks
//     selection, viewport and incremental search.
//   - Fetched playlists are cached in a state.TrackStore. Results arriving for
//     a superseded request are cached but never shown; libSeq and the artwork
//     seq identify the request that is still wanted.
//   - Slow work (playlist loads, library search, artwork) is handed to a
//     backend.Submitter and never blocks the loop.
//
// Rendering is pure with respect to state except for the artwork cache, which
// keeps half-block art for the last panel size.
package ui
