package events

import "github.com/atomicstack/cli-music/internal/logging"

type PlayerTracer struct{}

var Player = PlayerTracer{}

func (PlayerTracer) Command(name string) {
	logging.Trace("player.command", map[string]interface{}{"name": name})
}

func (PlayerTracer) CommandError(name string, err error) {
	if err == nil {
		return
	}
	logging.Trace("player.command.error", map[string]interface{}{"name": name, "error": err.Error()})
}

func (PlayerTracer) TrackChanged(previous, current string) {
	logging.Trace("player.track", map[string]interface{}{"previous": previous, "current": current})
}

func (PlayerTracer) Poll(state string, position float64) {
	logging.Trace("player.poll", map[string]interface{}{"state": state, "position": position})
}
