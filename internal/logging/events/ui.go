package events

import "github.com/atomicstack/tasktray-quicklaunch/internal/logging"

type MenuTracer struct{}

type FilterTracer struct{}

type CommandTracer struct{}

var (
	Menu    = MenuTracer{}
	Filter  = FilterTracer{}
	Command = CommandTracer{}
)

func (MenuTracer) Open(menu string) {
	logging.Trace("menu.open", map[string]interface{}{"menu": menu})
}

func (MenuTracer) Close(menu, reason string) {
	logging.Trace("menu.close", map[string]interface{}{"menu": menu, "reason": reason})
}

func (MenuTracer) Suppressed(gesture string) {
	logging.Trace("menu.suppressed", map[string]interface{}{"gesture": gesture})
}

func (MenuTracer) Select(index int) {
	logging.Trace("menu.select", map[string]interface{}{"index": index})
}

func (MenuTracer) EditBegin(index int, mode string) {
	logging.Trace("menu.edit.begin", map[string]interface{}{"index": index, "mode": mode})
}

func (MenuTracer) EditEnd(index int, mode string, committed bool) {
	logging.Trace("menu.edit.end", map[string]interface{}{"index": index, "mode": mode, "committed": committed})
}

func (MenuTracer) EditRejected(text string) {
	logging.Trace("menu.edit.rejected", map[string]interface{}{"text": text})
}

func (FilterTracer) Cleared() {
	logging.Trace("filter.clear", nil)
}

func (FilterTracer) Append(filter string) {
	logging.Trace("filter.append", map[string]interface{}{"filter": filter})
}

func (FilterTracer) Backspace(filter string) {
	logging.Trace("filter.backspace", map[string]interface{}{"filter": filter})
}

func (CommandTracer) Queue(id, label string) {
	logging.Trace("command.queue", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Skip(id, label string) {
	logging.Trace("command.skip", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) NoOp(id, label string) {
	logging.Trace("command.noop", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Result(id, label, msgType string) {
	logging.Trace("command.result", map[string]interface{}{"id": id, "label": label, "msg": msgType})
}

func (CommandTracer) Dispatch(id string, enabled bool) {
	logging.Trace("command.dispatch", map[string]interface{}{"id": id, "enabled": enabled})
}
