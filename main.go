package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atomicstack/tasktray-quicklaunch/internal/app"
	"github.com/atomicstack/tasktray-quicklaunch/internal/config"
	"github.com/atomicstack/tasktray-quicklaunch/internal/format/table"
	"github.com/atomicstack/tasktray-quicklaunch/internal/logging"
	"github.com/atomicstack/tasktray-quicklaunch/internal/logging/events"
	"github.com/atomicstack/tasktray-quicklaunch/internal/state"
	"github.com/atomicstack/tasktray-quicklaunch/internal/target"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// version is stamped into saved shortcut files and the Manage menu.
var version = "dev"

var (
	runAppFn       = app.Run
	traceStartupFn = traceStartup
)

func main() {
	os.Exit(execute(os.Args[1:], os.Environ(), os.Stdout, os.Stderr))
}

// configError marks failures that exit with status 2.
type configError struct{ err error }

func (e configError) Error() string { return e.err.Error() }
func (e configError) Unwrap() error { return e.err }

func execute(args, environ []string, stdout, stderr io.Writer) int {
	root := newRootCmd(args, environ)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	err := root.Execute()
	if err == nil {
		return 0
	}
	var cfgErr configError
	if errors.As(err, &cfgErr) {
		fmt.Fprintf(stderr, "Configuration error: %v\n", cfgErr.err)
		return 2
	}
	logging.Error(err)
	fmt.Fprintf(stderr, "Error: %v\n", err)
	return 1
}

// newRootCmd builds the command tree. args is what the root was invoked
// with and only feeds the startup trace.
func newRootCmd(args, environ []string) *cobra.Command {
	var flags *config.Flags
	resolve := func(cmd *cobra.Command) (config.Config, error) {
		cfg, err := flags.Config(args)
		if err == nil {
			err = config.Validate(cfg)
		}
		if err != nil {
			return config.Config{}, configError{err}
		}
		logging.Configure(cfg.Logging.FilePath)
		logging.SetTraceEnabled(cfg.Logging.Trace)
		return cfg, nil
	}

	root := &cobra.Command{
		Use:   "tasktray-quicklaunch",
		Short: "Quick-launch menu for files, folders and URLs",
		Long: `tasktray-quicklaunch keeps a short list of files, folders and URLs
behind a notification-area icon (or a terminal popup) and opens them with
the shell's default handler.

Run without a subcommand to start the menu.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolve(cmd)
			if err != nil {
				return err
			}
			traceStartupFn(cfg)
			return runAppFn(cfg.App, version)
		},
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return configError{err}
	})
	flags = config.Bind(root.PersistentFlags(), environ)

	root.AddCommand(
		newListCmd(resolve),
		newAddCmd(resolve),
		newRemoveCmd(resolve),
		newVersionCmd(),
	)
	return root
}

type resolver func(cmd *cobra.Command) (config.Config, error)

func openStore(cmd *cobra.Command, resolve resolver) (*state.Store, error) {
	cfg, err := resolve(cmd)
	if err != nil {
		return nil, err
	}
	store := state.NewStore(cfg.App.ShortcutsPath, version, nil)
	// an unreadable file is replaced with an empty one, as at startup
	_ = store.Load()
	return store, nil
}

func newListCmd(resolve resolver) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the shortcuts in menu order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(cmd, resolve)
			if err != nil {
				return err
			}
			for _, line := range listLines(store.Persisted()) {
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}
}

func listLines(entries []state.Entry) []string {
	if len(entries) == 0 {
		return []string{"(no shortcuts)"}
	}
	header := []string{"#", "NAME", "TARGET"}
	for _, entry := range entries {
		if entry.Group != "" {
			header = append(header, "GROUP")
			break
		}
	}
	rows := [][]string{header}
	for i, entry := range entries {
		row := []string{fmt.Sprint(i + 1), entry.Name, entry.Target}
		if entry.Group != "" {
			row = append(row, entry.Group)
		}
		rows = append(rows, row)
	}
	return table.Format(rows, []table.Alignment{table.AlignRight})
}

func newAddCmd(resolve resolver) *cobra.Command {
	var name, group string
	cmd := &cobra.Command{
		Use:   "add <target>",
		Short: "Append a file, folder or URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(cmd, resolve)
			if err != nil {
				return err
			}
			t := strings.TrimSpace(args[0])
			if target.Classify(t) == target.KindUnknown {
				return fmt.Errorf("%q is not an existing file, folder or URL", t)
			}
			if name == "" {
				name = target.DeriveName(t)
			}
			if strings.Contains(name, "|") || strings.Contains(group, "|") {
				return fmt.Errorf("name and group must not contain '|'")
			}
			if !store.Add(name, t, group) {
				return fmt.Errorf("%s is already in the list", t)
			}
			return store.Save()
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "display name (defaults to the last path or URL segment)")
	cmd.Flags().StringVar(&group, "group", "", "group label stored with the shortcut")
	return cmd
}

func newRemoveCmd(resolve resolver) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <target>",
		Short: "Delete the shortcut for target (case-insensitive)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(cmd, resolve)
			if err != nil {
				return err
			}
			if !store.Remove(args[0]) {
				return fmt.Errorf("%s is not in the list", args[0])
			}
			return store.Save()
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", state.AppName, version)
		},
	}
}

func traceStartup(cfg config.Config) {
	events.App.Start(startupTracePayload(cfg))
}

// startupTracePayload bundles runtime context for trace logging.
func startupTracePayload(cfg config.Config) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags))
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	flags["trace"] = cfg.Logging.Trace
	flags["logFile"] = cfg.Logging.FilePath
	payload := map[string]interface{}{
		"argv":    cfg.Args,
		"flags":   flags,
		"config":  cfg,
		"version": version,
	}
	if exe, err := os.Executable(); err == nil {
		payload["executable"] = exe
	} else {
		payload["executableError"] = err.Error()
	}
	if cwd, err := os.Getwd(); err == nil {
		payload["cwd"] = cwd
	} else {
		payload["cwdError"] = err.Error()
	}
	if cfg.App.Frontend == app.FrontendPopup {
		payload["tty"] = collectTTYDetails()
		payload["colorProfile"] = colorProfileName(termenv.EnvColorProfile())
	}
	return payload
}

type ttyDetails struct {
	Detected *ttyProbe  `json:"detected,omitempty"`
	Probes   []ttyProbe `json:"probes"`
}

type ttyProbe struct {
	Name       string `json:"name"`
	IsTerminal bool   `json:"is_terminal"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
	Error      string `json:"error,omitempty"`
}

// collectTTYDetails reports which standard descriptors are terminals and
// the size of the first one that answers.
func collectTTYDetails() ttyDetails {
	files := []*os.File{os.Stdin, os.Stdout, os.Stderr}
	names := []string{"stdin", "stdout", "stderr"}
	var details ttyDetails
	for i, f := range files {
		probe := probeTTY(names[i], int(f.Fd()))
		details.Probes = append(details.Probes, probe)
		if details.Detected == nil && probe.IsTerminal && probe.Error == "" {
			detected := probe
			details.Detected = &detected
		}
	}
	return details
}

func probeTTY(name string, fd int) ttyProbe {
	probe := ttyProbe{Name: name}
	if fd < 0 || !term.IsTerminal(fd) {
		return probe
	}
	probe.IsTerminal = true
	width, height, err := term.GetSize(fd)
	if err != nil {
		probe.Error = err.Error()
		return probe
	}
	probe.Width, probe.Height = width, height
	return probe
}

func colorProfileName(p termenv.Profile) string {
	switch p {
	case termenv.TrueColor:
		return "truecolor"
	case termenv.ANSI256:
		return "ansi256"
	case termenv.ANSI:
		return "ansi"
	default:
		return "ascii"
	}
}
