package events

import "github.com/atomicstack/cli-music/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) Ready(playlists int) {
	logging.Trace("app.ready", map[string]interface{}{"playlists": playlists})
}

func (AppTracer) Stop(reason string) {
	logging.Trace("app.stop", map[string]interface{}{"reason": reason})
}
