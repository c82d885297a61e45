package events

import "github.com/atomicstack/tasktray-quicklaunch/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) Exit(reason string) {
	logging.Trace("app.exit", map[string]interface{}{"reason": reason})
}

func (AppTracer) AlreadyRunning(name string) {
	logging.Trace("app.already-running", map[string]interface{}{"lock": name})
}

func (AppTracer) Watch(path string, err error) {
	payload := map[string]interface{}{"path": path}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("app.watch", payload)
}
