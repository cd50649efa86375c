// Package events exposes typed tracers so call sites never spell raw
// event names or field maps.
package events

import "github.com/scrapeworks/scrape-console/internal/logging"

type AppTracer struct{}

type UITracer struct{}

type SessionTracer struct{}

type ProgressTracer struct{}

type MonitorTracer struct{}

var (
	App      = AppTracer{}
	UI       = UITracer{}
	Session  = SessionTracer{}
	Progress = ProgressTracer{}
	Monitor  = MonitorTracer{}
)

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (UITracer) MenuEnter(menuTitle, itemKey, itemTitle string) {
	logging.Trace("menu.enter", map[string]interface{}{
		"menu":  menuTitle,
		"item":  itemKey,
		"title": itemTitle,
	})
}

func (UITracer) MenuCursor(menuTitle string, selected int) {
	logging.Trace("menu.cursor", map[string]interface{}{"menu": menuTitle, "cursor": selected})
}

func (UITracer) MenuBack(menuTitle string) {
	logging.Trace("menu.back", map[string]interface{}{"menu": menuTitle})
}

func (UITracer) InputAccepted(key string) {
	logging.Trace("input.accepted", map[string]interface{}{"key": key})
}

func (UITracer) InputRejected(key, reason string) {
	logging.Trace("input.rejected", map[string]interface{}{"key": key, "reason": reason})
}

func (UITracer) ActionError(key string, err error) {
	if err == nil {
		return
	}
	logging.Trace("action.error", map[string]interface{}{"key": key, "error": err.Error()})
}

func (SessionTracer) Start(mode string) {
	logging.Trace("session.start", map[string]interface{}{"mode": mode})
}

func (SessionTracer) StateChange(from, to string) {
	logging.Trace("session.state", map[string]interface{}{"from": from, "to": to})
}

func (SessionTracer) Signal(name string) {
	logging.Trace("session.signal", map[string]interface{}{"signal": name})
}

func (SessionTracer) Shutdown(cancelled int, interrupted bool) {
	logging.Trace("session.shutdown", map[string]interface{}{
		"cancelledTasks": cancelled,
		"interrupted":    interrupted,
	})
}

func (ProgressTracer) Start(id, title string, total int) {
	logging.Trace("progress.start", map[string]interface{}{"id": id, "title": title, "total": total})
}

func (ProgressTracer) Finish(id, status string) {
	logging.Trace("progress.finish", map[string]interface{}{"id": id, "status": status})
}

func (MonitorTracer) SampleError(err error) {
	if err == nil {
		return
	}
	logging.Trace("monitor.error", map[string]interface{}{"error": err.Error()})
}
