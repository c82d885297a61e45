// Package target classifies shortcut targets and derives display names.
package target

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

// Kind is the behaviour-relevant class of a target string. It is never
// persisted; callers re-classify whenever they need it.
type Kind int

const (
	KindUnknown Kind = iota
	KindFile
	KindDir
	KindURL
)

func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindDir:
		return "dir"
	case KindURL:
		return "url"
	default:
		return "unknown"
	}
}

// statFn is swapped in tests to classify paths without touching the disk.
var statFn = os.Stat

// Classify resolves the kind of target in priority order: existing file,
// existing directory, well-formed absolute URL.
func Classify(target string) Kind {
	trimmed := strings.TrimSpace(target)
	if trimmed == "" {
		return KindUnknown
	}
	if info, err := statFn(trimmed); err == nil {
		if info.IsDir() {
			return KindDir
		}
		return KindFile
	}
	if IsURL(trimmed) {
		return KindURL
	}
	return KindUnknown
}

// IsURL reports whether s is a well-formed absolute URL. Single-letter
// schemes are rejected so drive-qualified paths such as C:\x never match.
func IsURL(s string) bool {
	if s == "" || strings.IndexFunc(s, unicode.IsSpace) >= 0 || strings.Contains(s, `\`) {
		return false
	}
	u, err := url.Parse(s)
	if err != nil || !u.IsAbs() || len(u.Scheme) < 2 {
		return false
	}
	if u.Opaque != "" {
		return true
	}
	return u.Host != ""
}

// DeriveName picks a display name for target: its last non-empty path or URL
// segment, or the whole string when segmentation yields nothing. Existing
// files drop their extension.
func DeriveName(target string) string {
	if Classify(target) == KindFile {
		return FileName(target)
	}
	return lastSegment(target)
}

// FileName is the last segment of path without its extension. Dot files
// keep their whole name.
func FileName(path string) string {
	name := lastSegment(path)
	if ext := filepath.Ext(name); ext != "" && ext != name {
		return strings.TrimSuffix(name, ext)
	}
	return name
}

func lastSegment(target string) string {
	trimmed := strings.TrimSpace(target)
	segments := strings.FieldsFunc(trimmed, func(r rune) bool {
		return r == '/' || r == '\\'
	})
	if len(segments) == 0 {
		return trimmed
	}
	return segments[len(segments)-1]
}
