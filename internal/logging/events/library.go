package events

import "github.com/atomicstack/cli-music/internal/logging"

type LibraryTracer struct{}

type SearchTracer struct{}

type ArtworkTracer struct{}

var (
	Library = LibraryTracer{}
	Search  = SearchTracer{}
	Artwork = ArtworkTracer{}
)

func (LibraryTracer) CacheHit(playlist string, tracks int) {
	logging.Trace("library.cache.hit", map[string]interface{}{"playlist": playlist, "tracks": tracks})
}

func (LibraryTracer) Fetch(playlist string, seq uint64) {
	logging.Trace("library.fetch", map[string]interface{}{"playlist": playlist, "seq": seq})
}

func (LibraryTracer) Loaded(cacheKey string, tracks int, seq uint64, applied bool) {
	logging.Trace("library.loaded", map[string]interface{}{
		"key":     cacheKey,
		"tracks":  tracks,
		"seq":     seq,
		"applied": applied,
	})
}

func (SearchTracer) Enter(view string, items int) {
	logging.Trace("search.enter", map[string]interface{}{"view": view, "items": items})
}

func (SearchTracer) Filter(query string, matches int) {
	logging.Trace("search.filter", map[string]interface{}{"query": query, "matches": matches})
}

func (SearchTracer) Confirm(query string, matches int) {
	logging.Trace("search.confirm", map[string]interface{}{"query": query, "matches": matches})
}

func (SearchTracer) Cancel(restored int) {
	logging.Trace("search.cancel", map[string]interface{}{"restored": restored})
}

func (ArtworkTracer) Request(track string, seq uint64) {
	logging.Trace("artwork.request", map[string]interface{}{"track": track, "seq": seq})
}

func (ArtworkTracer) Applied(track string, found bool) {
	logging.Trace("artwork.applied", map[string]interface{}{"track": track, "found": found})
}

func (ArtworkTracer) Stale(track string, seq uint64) {
	logging.Trace("artwork.stale", map[string]interface{}{"track": track, "seq": seq})
}
