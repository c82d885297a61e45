package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/atomicstack/tasktray-quicklaunch/internal/assoc"
	"github.com/atomicstack/tasktray-quicklaunch/internal/backend"
	"github.com/atomicstack/tasktray-quicklaunch/internal/data/dispatcher"
	"github.com/atomicstack/tasktray-quicklaunch/internal/icon"
	"github.com/atomicstack/tasktray-quicklaunch/internal/instance"
	"github.com/atomicstack/tasktray-quicklaunch/internal/logging"
	"github.com/atomicstack/tasktray-quicklaunch/internal/logging/events"
	"github.com/atomicstack/tasktray-quicklaunch/internal/presentation"
	"github.com/atomicstack/tasktray-quicklaunch/internal/shell"
	"github.com/atomicstack/tasktray-quicklaunch/internal/state"
	"github.com/atomicstack/tasktray-quicklaunch/internal/tray"
	"github.com/atomicstack/tasktray-quicklaunch/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
)

// Front-ends selectable through Config.Frontend.
const (
	FrontendTray  = "tray"
	FrontendPopup = "popup"
)

const assocTimeout = 5 * time.Second

// Config describes user-provided application options.
type Config struct {
	ShortcutsPath  string
	Frontend       string
	IdleTimeout    time.Duration
	SuppressWindow time.Duration
	Width          int
	Height         int
	ShowFooter     bool
	Watch          bool
}

var (
	acquireFn  = instance.Acquire
	assocFn    = assoc.Query
	runTrayFn  = tray.Run
	runPopupFn = runPopup
)

// Run owns the process lifetime: it takes the single-instance lock, loads
// the shortcut file and blocks in the chosen front-end until exit. A second
// instance returns nil without showing anything.
func Run(cfg Config, version string) error {
	lock, err := acquireFn(instance.DefaultName)
	if errors.Is(err, instance.ErrAlreadyRunning) {
		events.App.AlreadyRunning(instance.DefaultName)
		return nil
	}
	if err != nil {
		return fmt.Errorf("acquire instance lock: %w", err)
	}
	defer func() {
		if err := lock.Release(); err != nil {
			logging.Error(err)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), assocTimeout)
	paths := assocFn(ctx)
	cancel()

	store := state.NewStore(cfg.ShortcutsPath, version, icon.NewResolver(paths))
	// a failed load has already been logged and replaced with an empty file
	_ = store.Load()

	picker := shell.NewPicker()
	d := dispatcher.New(dispatcher.Options{
		Store: store,
		Machine: presentation.New(presentation.Options{
			IdleTimeout:    cfg.IdleTimeout,
			SuppressWindow: cfg.SuppressWindow,
		}),
		Launcher:  shell.NewLauncher(),
		Picker:    picker,
		Clipboard: shell.NewClipboard(),
	})

	var watcher *backend.Watcher
	if cfg.Watch {
		watcher, err = backend.NewWatcher(cfg.ShortcutsPath, backend.DefaultSettle)
		events.App.Watch(cfg.ShortcutsPath, err)
		if err != nil {
			logging.Error(err)
			watcher = nil
		} else {
			defer watcher.Stop()
		}
	}

	switch cfg.Frontend {
	case FrontendPopup:
		return runPopupFn(ui.Options{
			Dispatcher:   d,
			Watcher:      watcher,
			Width:        cfg.Width,
			Height:       cfg.Height,
			ShowFooter:   cfg.ShowFooter,
			TickInterval: tray.DefaultTickInterval,
		})
	case FrontendTray, "":
		return runTrayFn(tray.Options{
			Dispatcher:   d,
			Watcher:      watcher,
			Prompter:     picker,
			Tooltip:      state.AppName,
			TickInterval: tray.DefaultTickInterval,
		})
	}
	return fmt.Errorf("unknown frontend %q", cfg.Frontend)
}

// runPopup executes the terminal front-end as a Bubble Tea program.
func runPopup(opts ui.Options) error {
	program := tea.NewProgram(ui.NewModel(opts), tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}
