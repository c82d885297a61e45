// Package icon decides which executable's icon represents a shortcut target
// and extracts it as ICO bytes for the tray menu.
package icon

import (
	"errors"
	"fmt"

	"github.com/atomicstack/tasktray-quicklaunch/internal/assoc"
	"github.com/atomicstack/tasktray-quicklaunch/internal/logging"
	"github.com/atomicstack/tasktray-quicklaunch/internal/logging/events"
	"github.com/atomicstack/tasktray-quicklaunch/internal/target"
)

// ErrUnsupported is returned by extractors on platforms without shell icons.
var ErrUnsupported = errors.New("icon extraction unsupported on this platform")

// Extractor turns an executable or document path into encoded icon bytes.
type Extractor interface {
	Extract(path string) ([]byte, error)
}

// ExtractorFunc adapts a function to Extractor.
type ExtractorFunc func(path string) ([]byte, error)

func (f ExtractorFunc) Extract(path string) ([]byte, error) {
	return f(path)
}

// Resolver maps targets to icons. Results are cached per source path, so a
// folder list pays for the explorer icon once.
type Resolver struct {
	paths     assoc.Paths
	extractor Extractor
	cache     map[string][]byte
}

// NewResolver uses the platform extractor.
func NewResolver(paths assoc.Paths) *Resolver {
	return NewResolverWith(paths, systemExtractor{})
}

// NewResolverWith uses a caller-supplied extractor.
func NewResolverWith(paths assoc.Paths, extractor Extractor) *Resolver {
	return &Resolver{paths: paths, extractor: extractor, cache: make(map[string][]byte)}
}

// Source decides where the icon for t comes from: the file itself, the
// explorer executable for folders, the browser executable for URLs. An empty
// path means no icon.
func (r *Resolver) Source(t string) (target.Kind, string) {
	kind := target.Classify(t)
	switch kind {
	case target.KindFile:
		return kind, t
	case target.KindDir:
		return kind, r.paths.Explorer
	case target.KindURL:
		return kind, r.paths.BrowserIcon()
	default:
		return kind, ""
	}
}

// Resolve returns the icon for t, or nil when none can be produced.
func (r *Resolver) Resolve(t string) []byte {
	kind, source := r.Source(t)
	if source == "" || r.extractor == nil {
		events.Icon.Resolve(t, kind.String(), source, 0)
		return nil
	}
	if data, ok := r.cache[source]; ok {
		events.Icon.Resolve(t, kind.String(), source, len(data))
		return data
	}
	data, err := r.extractor.Extract(source)
	if err != nil {
		if !errors.Is(err, ErrUnsupported) {
			logging.Error(fmt.Errorf("extract icon for %s from %s: %w", t, source, err))
		}
		data = nil
	}
	r.cache[source] = data
	events.Icon.Resolve(t, kind.String(), source, len(data))
	return data
}
