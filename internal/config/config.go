package config

import (
	"fmt"
	"io"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/atomicstack/tasktray-quicklaunch/internal/app"
	"github.com/spf13/pflag"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envShortcuts   = "TTQL_SHORTCUTS"
	envFrontend    = "TTQL_FRONTEND"
	envIdleTimeout = "TTQL_IDLE_TIMEOUT"
	envSuppress    = "TTQL_SUPPRESS"
	envWidth       = "TTQL_WIDTH"
	envHeight      = "TTQL_HEIGHT"
	envShowFooter  = "TTQL_FOOTER"
	envWatch       = "TTQL_WATCH"
	envTrace       = "TTQL_TRACE"
	envLogFile     = "TTQL_LOG_FILE"
)

// DefaultShortcutsFile is created next to the working directory when no
// path is configured.
const DefaultShortcutsFile = "TaskTrayQuickLaunch.ini"

// DefaultFrontend is the tray on Windows and the terminal popup elsewhere.
func DefaultFrontend() string {
	if runtime.GOOS == "windows" {
		return app.FrontendTray
	}
	return app.FrontendPopup
}

// Flags holds the flag destinations registered by Bind.
type Flags struct {
	shortcuts   *string
	frontend    *string
	idleTimeout *time.Duration
	suppress    *time.Duration
	width       *int
	height      *int
	footer      *bool
	watch       *bool
	trace       *bool
	logFile     *string
}

// Bind registers every option on fs, seeding defaults from environ. The
// returned Flags resolve into a Config once fs has been parsed.
func Bind(fs *pflag.FlagSet, environ []string) *Flags {
	env := parseEnv(environ)
	return &Flags{
		shortcuts:   fs.String("shortcuts", envOrDefault(env, envShortcuts, DefaultShortcutsFile), "path to the shortcut file"),
		frontend:    fs.String("frontend", envOrDefault(env, envFrontend, DefaultFrontend()), "front-end to run: tray or popup"),
		idleTimeout: fs.Duration("idle-timeout", envOrDuration(env, envIdleTimeout, 10*time.Second), "close a hover-opened menu after this much inactivity"),
		suppress:    fs.Duration("suppress", envOrDuration(env, envSuppress, time.Second), "ignore hover for this long after a deliberate close"),
		width:       fs.Int("width", envOrInt(env, envWidth, 0), "desired popup width in cells (0 uses terminal width)"),
		height:      fs.Int("height", envOrInt(env, envHeight, 0), "desired popup height in rows (0 uses terminal height)"),
		footer:      fs.Bool("footer", envOrBool(env, envShowFooter, false), "enable footer hint row in the popup"),
		watch:       fs.Bool("watch", envOrBool(env, envWatch, true), "reload the shortcut file when it changes on disk"),
		trace:       fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging"),
		logFile:     fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file"),
	}
}

// Config resolves parsed flags. args is recorded for the startup trace.
func (f *Flags) Config(args []string) (Config, error) {
	if *f.width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *f.width)
	}
	if *f.height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *f.height)
	}
	cfg := Config{
		App: app.Config{
			ShortcutsPath:  *f.shortcuts,
			Frontend:       strings.ToLower(strings.TrimSpace(*f.frontend)),
			IdleTimeout:    *f.idleTimeout,
			SuppressWindow: *f.suppress,
			Width:          *f.width,
			Height:         *f.height,
			ShowFooter:     *f.footer,
			Watch:          *f.watch,
		},
		Logging: Logging{
			FilePath: *f.logFile,
			Trace:    *f.trace,
		},
		Flags: map[string]string{
			"shortcuts":   *f.shortcuts,
			"frontend":    *f.frontend,
			"idleTimeout": f.idleTimeout.String(),
			"suppress":    f.suppress.String(),
			"width":       strconv.Itoa(*f.width),
			"height":      strconv.Itoa(*f.height),
			"footer":      strconv.FormatBool(*f.footer),
			"watch":       strconv.FormatBool(*f.watch),
			"trace":       strconv.FormatBool(*f.trace),
			"logFile":     *f.logFile,
		},
		Args: append([]string(nil), args...),
	}
	return cfg, nil
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	fs := pflag.NewFlagSet("tasktray-quicklaunch", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	flags := Bind(fs, environ)
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return flags.Config(args)
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok && strings.TrimSpace(v) != "" {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrDuration(env map[string]string, key string, fallback time.Duration) time.Duration {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// Validate ensures the resolved configuration can start a front-end.
func Validate(cfg Config) error {
	switch cfg.App.Frontend {
	case app.FrontendTray, app.FrontendPopup:
	default:
		return fmt.Errorf("unknown frontend %q (want %s or %s)", cfg.App.Frontend, app.FrontendTray, app.FrontendPopup)
	}
	if strings.TrimSpace(cfg.App.ShortcutsPath) == "" {
		return fmt.Errorf("shortcuts path must not be empty")
	}
	if cfg.App.IdleTimeout <= 0 {
		return fmt.Errorf("idle-timeout must be > 0 (got %s)", cfg.App.IdleTimeout)
	}
	if cfg.App.SuppressWindow <= 0 {
		return fmt.Errorf("suppress must be > 0 (got %s)", cfg.App.SuppressWindow)
	}
	return nil
}
