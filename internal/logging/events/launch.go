package events

import "github.com/atomicstack/tasktray-quicklaunch/internal/logging"

type LaunchTracer struct{}

type AssocTracer struct{}

type IconTracer struct{}

var (
	Launch = LaunchTracer{}
	Assoc  = AssocTracer{}
	Icon   = IconTracer{}
)

func (LaunchTracer) Open(target string) {
	logging.Trace("launch.open", map[string]interface{}{"target": target})
}

func (LaunchTracer) Failed(target string, err error) {
	logging.Trace("launch.failed", map[string]interface{}{"target": target, "error": errString(err)})
}

func (AssocTracer) Resolved(explorer, browser, chrome string) {
	logging.Trace("assoc.resolved", map[string]interface{}{
		"explorer": explorer,
		"browser":  browser,
		"chrome":   chrome,
	})
}

func (AssocTracer) Failed(err error) {
	logging.Trace("assoc.failed", map[string]interface{}{"error": errString(err)})
}

func (IconTracer) Resolve(target, kind, source string, size int) {
	logging.Trace("icon.resolve", map[string]interface{}{
		"target": target,
		"kind":   kind,
		"source": source,
		"bytes":  size,
	})
}
