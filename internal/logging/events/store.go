package events

import "github.com/atomicstack/tasktray-quicklaunch/internal/logging"

type StoreTracer struct{}

var Store = StoreTracer{}

func (StoreTracer) Load(path string, count, skipped int) {
	logging.Trace("store.load", map[string]interface{}{"path": path, "count": count, "skipped": skipped})
}

func (StoreTracer) LoadFailed(path string, err error) {
	logging.Trace("store.load.failed", map[string]interface{}{"path": path, "error": errString(err)})
}

func (StoreTracer) Save(path string, count int) {
	logging.Trace("store.save", map[string]interface{}{"path": path, "count": count})
}

func (StoreTracer) SaveFailed(path string, err error) {
	logging.Trace("store.save.failed", map[string]interface{}{"path": path, "error": errString(err)})
}

func (StoreTracer) Add(name, target string, added bool) {
	logging.Trace("store.add", map[string]interface{}{"name": name, "target": target, "added": added})
}

func (StoreTracer) Remove(target string, removed bool) {
	logging.Trace("store.remove", map[string]interface{}{"target": target, "removed": removed})
}

func (StoreTracer) Move(from, to int) {
	logging.Trace("store.move", map[string]interface{}{"from": from, "to": to})
}

func (StoreTracer) Rename(index int, name string) {
	logging.Trace("store.rename", map[string]interface{}{"index": index, "name": name})
}

func (StoreTracer) Reload(path string, changed bool) {
	logging.Trace("store.reload", map[string]interface{}{"path": path, "changed": changed})
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
