package events

import "github.com/atomicstack/cli-music/internal/logging"

type UITracer struct{}

type TaskTracer struct{}

var (
	UI   = UITracer{}
	Task = TaskTracer{}
)

func (UITracer) Key(key string) {
	logging.Trace("ui.key", map[string]interface{}{"key": key})
}

func (UITracer) Cursor(view string, cursor int) {
	logging.Trace("ui.cursor", map[string]interface{}{"view": view, "cursor": cursor})
}

func (UITracer) View(view string) {
	logging.Trace("ui.view", map[string]interface{}{"view": view})
}

func (UITracer) Panel(panel string) {
	logging.Trace("ui.panel", map[string]interface{}{"panel": panel})
}

func (UITracer) Quit() {
	logging.Trace("ui.quit", nil)
}

func (TaskTracer) Queue(id, kind string) {
	logging.Trace("task.queue", map[string]interface{}{"id": id, "kind": kind})
}

func (TaskTracer) Result(id, kind, eventType string) {
	logging.Trace("task.result", map[string]interface{}{"id": id, "kind": kind, "event": eventType})
}

func (TaskTracer) Dropped(id, kind string, err error) {
	payload := map[string]interface{}{"id": id, "kind": kind}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("task.dropped", payload)
}
