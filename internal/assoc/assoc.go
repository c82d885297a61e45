// Package assoc discovers the executables the shell associates with folders
// and web links, so their icons can stand in for directory and URL shortcuts.
package assoc

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/atomicstack/tasktray-quicklaunch/internal/logging"
	"github.com/atomicstack/tasktray-quicklaunch/internal/logging/events"
)

// ErrUnsupported is returned where the platform has no association table.
var ErrUnsupported = errors.New("file-type associations unavailable on this platform")

// Paths holds the executables discovered from the association table. Any of
// them may be empty.
type Paths struct {
	Explorer string
	Browser  string
	Chrome   string
}

// BrowserIcon returns the executable whose icon represents URLs, preferring a
// detected Chrome install.
func (p Paths) BrowserIcon() string {
	if p.Chrome != "" {
		return p.Chrome
	}
	return p.Browser
}

var (
	quotedExe = regexp.MustCompile(`"([^"]+\.exe)"`)
	envToken  = regexp.MustCompile(`%([^%\s]+)%`)
)

// ftypeFn runs the association query; tests replace it.
var ftypeFn = runFtype

// Query asks the shell for its association table and parses it. Failures are
// logged and yield empty paths.
func Query(ctx context.Context) Paths {
	output, err := ftypeFn(ctx)
	if err != nil {
		if !errors.Is(err, ErrUnsupported) {
			logging.Error(fmt.Errorf("query file associations: %w", err))
		}
		events.Assoc.Failed(err)
		return Paths{}
	}
	paths := Parse(output, ExpandEnv)
	events.Assoc.Resolved(paths.Explorer, paths.Browser, paths.Chrome)
	return paths
}

// Parse reads "type=command" lines. The folder handler is taken whole; the
// Chrome and http/https handlers contribute their first quoted .exe path.
// The first match for each wins.
func Parse(output string, expand func(string) string) Paths {
	if expand == nil {
		expand = func(s string) string { return s }
	}
	var paths Paths
	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		parts := strings.Split(line, "=")
		if len(parts) != 2 {
			continue
		}
		kind := strings.ToUpper(strings.TrimSpace(parts[0]))
		command := strings.TrimSpace(parts[1])
		switch kind {
		case "FOLDER":
			if paths.Explorer == "" {
				paths.Explorer = strings.Trim(expand(command), `"`)
			}
		case "CHROMEHTML":
			if exe := quotedExecutable(command); exe != "" && paths.Chrome == "" {
				paths.Chrome = expand(exe)
			}
		case "HTTP", "HTTPS":
			if exe := quotedExecutable(command); exe != "" && paths.Browser == "" {
				paths.Browser = expand(exe)
			}
		}
	}
	return paths
}

func quotedExecutable(command string) string {
	match := quotedExe.FindStringSubmatch(command)
	if len(match) < 2 {
		return ""
	}
	return match[1]
}

// ExpandEnv replaces %NAME% tokens with environment values. Unknown names are
// left as written, as the shell does.
func ExpandEnv(s string) string {
	return expandWith(s, os.LookupEnv)
}

func expandWith(s string, lookup func(string) (string, bool)) string {
	return envToken.ReplaceAllStringFunc(s, func(token string) string {
		name := token[1 : len(token)-1]
		if value, ok := lookup(name); ok {
			return value
		}
		return token
	})
}
