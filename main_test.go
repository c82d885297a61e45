package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/atomicstack/tasktray-quicklaunch/internal/app"
	"github.com/atomicstack/tasktray-quicklaunch/internal/config"
	"github.com/atomicstack/tasktray-quicklaunch/internal/logging"
	"github.com/atomicstack/tasktray-quicklaunch/internal/testutil"
)

type cliResult struct {
	code   int
	stdout string
	stderr string
}

func runCLI(t *testing.T, shortcuts string, args ...string) cliResult {
	t.Helper()
	var stdout, stderr bytes.Buffer
	logFile := filepath.Join(t.TempDir(), "cli.log")
	t.Cleanup(func() { logging.Configure("") })
	all := append(args, "--shortcuts", shortcuts, "--log-file", logFile, "--frontend", "popup")
	code := execute(all, nil, &stdout, &stderr)
	return cliResult{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func TestListGolden(t *testing.T) {
	path := testutil.WriteShortcutFile(t, "# TaskTrayQuickLaunch v1", "alpha|/a|", "bravo|/b|work")
	res := runCLI(t, path, "list")
	if res.code != 0 {
		t.Fatalf("list exited %d: %s", res.code, res.stderr)
	}
	testutil.AssertGolden(t, "list.golden", res.stdout)
}

func TestListEmpty(t *testing.T) {
	path := testutil.WriteShortcutFile(t)
	res := runCLI(t, path, "list")
	if strings.TrimSpace(res.stdout) != "(no shortcuts)" {
		t.Fatalf("unexpected output %q", res.stdout)
	}
}

func TestAddAndRemove(t *testing.T) {
	path := testutil.WriteShortcutFile(t, "# TaskTrayQuickLaunch v1", "alpha|/a|")
	if res := runCLI(t, path, "add", "https://example.com/docs/", "--group", "web"); res.code != 0 {
		t.Fatalf("add exited %d: %s", res.code, res.stderr)
	}
	lines := testutil.ReadLines(t, path)
	if len(lines) != 3 || lines[0] != "# TaskTrayQuickLaunch vdev" || lines[2] != "docs|https://example.com/docs/|web" {
		t.Fatalf("unexpected file after add: %v", lines)
	}
	if res := runCLI(t, path, "add", "HTTPS://EXAMPLE.COM/DOCS/"); res.code != 1 {
		t.Fatalf("expected duplicate add to fail, got %d", res.code)
	}
	if res := runCLI(t, path, "remove", "/A"); res.code != 0 {
		t.Fatalf("remove exited %d: %s", res.code, res.stderr)
	}
	lines = testutil.ReadLines(t, path)
	if len(lines) != 2 || !strings.HasPrefix(lines[1], "docs|") {
		t.Fatalf("unexpected file after remove: %v", lines)
	}
	if res := runCLI(t, path, "remove", "/missing"); res.code != 1 || !strings.Contains(res.stderr, "not in the list") {
		t.Fatalf("expected missing remove to fail, got %+v", res)
	}
}

func TestAddRejectsUnknownTarget(t *testing.T) {
	path := testutil.WriteShortcutFile(t)
	missing := filepath.Join(t.TempDir(), "nope")
	if res := runCLI(t, path, "add", missing); res.code != 1 {
		t.Fatalf("expected rejection, got %+v", res)
	}
	if res := runCLI(t, path, "add", t.TempDir(), "--name", "a|b"); res.code != 1 {
		t.Fatalf("expected name rejection, got %+v", res)
	}
}

func TestVersionCommand(t *testing.T) {
	res := runCLI(t, testutil.WriteShortcutFile(t), "version")
	if res.stdout != "TaskTrayQuickLaunch dev\n" {
		t.Fatalf("unexpected version output %q", res.stdout)
	}
}

func TestConfigErrorsExitTwo(t *testing.T) {
	path := testutil.WriteShortcutFile(t)
	if res := runCLI(t, path, "--width", "-1"); res.code != 2 || !strings.Contains(res.stderr, "Configuration error") {
		t.Fatalf("expected config error, got %+v", res)
	}
	if res := runCLI(t, path, "--no-such-flag"); res.code != 2 {
		t.Fatalf("expected unknown flag to be a config error, got %+v", res)
	}
}

func TestRootRunsApp(t *testing.T) {
	orig := runAppFn
	defer func() { runAppFn = orig }()
	var got app.Config
	var gotVersion string
	runAppFn = func(cfg app.Config, v string) error {
		got, gotVersion = cfg, v
		return nil
	}
	path := testutil.WriteShortcutFile(t)
	res := runCLI(t, path, "--footer", "--idle-timeout", "3s")
	if res.code != 0 {
		t.Fatalf("root exited %d: %s", res.code, res.stderr)
	}
	if got.ShortcutsPath != path || got.Frontend != app.FrontendPopup || !got.ShowFooter || got.IdleTimeout != 3*time.Second {
		t.Fatalf("unexpected app config %+v", got)
	}
	if gotVersion != version {
		t.Fatalf("expected version %q, got %q", version, gotVersion)
	}
}

func TestStartupTraceRecordsInvocationArgs(t *testing.T) {
	origRun, origTrace := runAppFn, traceStartupFn
	defer func() { runAppFn, traceStartupFn = origRun, origTrace }()
	runAppFn = func(app.Config, string) error { return nil }
	var got config.Config
	traceStartupFn = func(cfg config.Config) { got = cfg }

	path := testutil.WriteShortcutFile(t)
	res := runCLI(t, path, "--width", "70")
	if res.code != 0 {
		t.Fatalf("root exited %d: %s", res.code, res.stderr)
	}
	want := []string{"--width", "70", "--shortcuts", path}
	if len(got.Args) < len(want) {
		t.Fatalf("expected invocation args %v, got %v", want, got.Args)
	}
	for i, arg := range want {
		if got.Args[i] != arg {
			t.Fatalf("expected invocation args %v, got %v", want, got.Args)
		}
	}
	for _, arg := range got.Args {
		if strings.HasSuffix(arg, ".test") {
			t.Fatalf("process argv leaked into trace: %v", got.Args)
		}
	}
}

func TestCollectTTYDetailsIncludesStandardDescriptors(t *testing.T) {
	info := collectTTYDetails()
	if len(info.Probes) != 3 {
		t.Fatalf("expected 3 probe entries, got %d", len(info.Probes))
	}
	for i, name := range []string{"stdin", "stdout", "stderr"} {
		if info.Probes[i].Name != name {
			t.Fatalf("expected probe %d name %q, got %q", i, name, info.Probes[i].Name)
		}
	}
}

func TestStartupTracePayloadIncludesFlags(t *testing.T) {
	cfg := config.Config{
		App: app.Config{
			ShortcutsPath: "links.ini",
			Frontend:      app.FrontendPopup,
			Width:         80,
			ShowFooter:    true,
		},
		Logging: config.Logging{FilePath: "trace.log", Trace: true},
		Flags: map[string]string{
			"shortcuts": "links.ini",
			"width":     "80",
			"footer":    "true",
		},
		Args: []string{"--shortcuts", "links.ini"},
	}

	payload := startupTracePayload(cfg)

	flags, ok := payload["flags"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected flags map in payload")
	}
	if flags["shortcuts"] != "links.ini" || flags["width"] != "80" || flags["footer"] != "true" {
		t.Fatalf("unexpected flags %v", flags)
	}
	if flags["trace"] != true || flags["logFile"] != "trace.log" {
		t.Fatalf("expected logging flags, got %v", flags)
	}
	if _, ok := payload["tty"].(ttyDetails); !ok {
		t.Fatalf("expected tty details for the popup")
	}
	if _, ok := payload["colorProfile"].(string); !ok {
		t.Fatalf("expected color profile for the popup")
	}
	if cfgValue, ok := payload["config"].(config.Config); !ok || cfgValue.App != cfg.App {
		t.Fatalf("expected app config in payload")
	}

	cfg.App.Frontend = app.FrontendTray
	if _, ok := startupTracePayload(cfg)["tty"]; ok {
		t.Fatalf("tray startup should not probe the terminal")
	}
}
