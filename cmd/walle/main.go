package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/MakeNowJust/heredoc"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/unkn0wn-root/walle/internal/config"
	"github.com/unkn0wn-root/walle/internal/errdef"
	"github.com/unkn0wn-root/walle/internal/history"
	"github.com/unkn0wn-root/walle/internal/render"
	"github.com/unkn0wn-root/walle/internal/repl"
	"github.com/unkn0wn-root/walle/internal/session"
	"github.com/unkn0wn-root/walle/internal/telemetry"
	"github.com/unkn0wn-root/walle/internal/ui"
	"github.com/unkn0wn-root/walle/internal/watcher"
	"github.com/unkn0wn-root/walle/internal/wls"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

const (
	exitOK      = 0
	exitHost    = 1
	exitSyntax  = 30
	exitRuntime = 50
)

var usageText = heredoc.Doc(`
	Usage: walle [flags] [file]

	Runs a Wall-E script on a square canvas and prints the result.
	Diagnostics go to stderr. Exit status is 30 on syntax errors and
	50 on runtime errors.

	Modes:
	  walle draw.pw          run once and print the canvas
	  walle -watch draw.pw   re-run whenever the file changes
	  walle -tui draw.pw     interactive viewer
	  walle -repl            line-by-line editor

	Flags:
`)

type options struct {
	file        string
	size        int
	tui         bool
	repl        bool
	watch       bool
	ascii       bool
	noColor     bool
	maxSteps    int
	timeout     time.Duration
	history     bool
	diff        bool
	verbose     bool
	showVersion bool
	initConfig  bool
	otel        telemetry.Config
	set         map[string]bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	opts := options{otel: telemetry.ConfigFromEnv(os.Getenv)}

	fs := flag.NewFlagSet("walle", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, usageText)
		fs.PrintDefaults()
	}

	fs.StringVar(&opts.file, "file", "", "Path to the script to run")
	fs.IntVar(&opts.size, "size", 0, "Canvas size N for an N x N grid (default from settings)")
	fs.BoolVar(&opts.tui, "tui", false, "Open the interactive viewer")
	fs.BoolVar(&opts.repl, "repl", false, "Start the line-editing REPL")
	fs.BoolVar(&opts.watch, "watch", false, "Re-run the script whenever it changes")
	fs.BoolVar(&opts.ascii, "ascii", false, "Print the canvas as plain glyphs")
	fs.BoolVar(&opts.noColor, "no-color", false, "Disable colored output")
	fs.IntVar(&opts.maxSteps, "max-steps", 0, "Abort after N executed statements (0 = unlimited)")
	fs.DurationVar(&opts.timeout, "timeout", 0, "Abort a run after this long (0 = unlimited)")
	fs.BoolVar(&opts.history, "history", false, "Record runs in the history file")
	fs.BoolVar(&opts.diff, "diff", false, "Print a diff against the previous recorded run of the file")
	fs.BoolVar(&opts.verbose, "verbose", false, "Log run details to stderr")
	fs.BoolVar(&opts.showVersion, "version", false, "Show walle version")
	fs.BoolVar(&opts.initConfig, "init-config", false, "Write the effective settings file and exit")
	fs.StringVar(
		&opts.otel.Endpoint,
		"trace-otel-endpoint",
		opts.otel.Endpoint,
		"OTLP collector endpoint for run spans",
	)
	fs.BoolVar(
		&opts.otel.Insecure,
		"trace-otel-insecure",
		opts.otel.Insecure,
		"Disable TLS for OTLP trace export",
	)
	fs.StringVar(
		&opts.otel.ServiceName,
		"trace-otel-service",
		opts.otel.ServiceName,
		"Override service.name resource attribute for exported spans",
	)
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	opts.set = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { opts.set[f.Name] = true })
	if opts.file == "" && fs.NArg() > 0 {
		opts.file = fs.Arg(0)
	}
	opts.otel.Endpoint = strings.TrimSpace(opts.otel.Endpoint)
	opts.otel.ServiceName = strings.TrimSpace(opts.otel.ServiceName)
	opts.otel.Version = version
	return opts, nil
}

// applySettings fills anything not given on the command line from settings.
func applySettings(opts options, s config.Settings) options {
	if !opts.set["size"] || opts.size <= 0 {
		opts.size = s.Canvas.Size
	}
	opts.size = min(max(opts.size, config.CanvasSizeMin), config.CanvasSizeMax)
	if !opts.set["max-steps"] {
		opts.maxSteps = s.Canvas.MaxSteps
	}
	if !opts.set["timeout"] {
		opts.timeout = s.Canvas.TimeoutDuration()
	}
	if !opts.set["history"] {
		opts.history = s.History.Enabled
	}
	if !opts.set["ascii"] {
		opts.ascii = s.Render.ASCII
	}
	if !opts.set["no-color"] && s.Render.Color == config.ColorNever {
		opts.noColor = true
	}
	return opts
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitHost
	}

	if opts.showVersion {
		fmt.Fprintf(stdout, "walle %s\n", version)
		fmt.Fprintf(stdout, "  commit: %s\n", commit)
		fmt.Fprintf(stdout, "  built:  %s\n", date)
		return exitOK
	}

	logger := log.New(io.Discard, "", 0)
	if opts.verbose {
		logger = log.New(stderr, "walle: ", log.LstdFlags)
	}

	settings, handle, err := config.LoadSettings()
	if err != nil {
		logger.Printf("settings load error: %v", err)
		fmt.Fprintf(stderr, "settings: %v (using defaults)\n", err)
		settings = config.DefaultSettings()
		handle = config.SettingsHandle{
			Path:   filepath.Join(config.Dir(), "settings.toml"),
			Format: config.SettingsFormatTOML,
		}
	}
	if opts.initConfig {
		if err := config.SaveSettings(settings, handle); err != nil {
			fmt.Fprintf(stderr, "write settings: %v\n", err)
			return exitHost
		}
		fmt.Fprintf(stdout, "Wrote %s\n", handle.Path)
		return exitOK
	}
	opts = applySettings(opts, settings)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	inst, err := telemetry.New(opts.otel)
	if err != nil {
		if opts.otel.Enabled() {
			fmt.Fprintf(stderr, "telemetry init error: %v\n", err)
		}
		inst = telemetry.Noop()
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := inst.Shutdown(sctx); shutdownErr != nil {
			logger.Printf("telemetry shutdown: %v", shutdownErr)
		}
	}()

	sess, err := session.New(opts.size, session.Options{
		Limits:       wls.Limits{MaxSteps: opts.maxSteps, Timeout: opts.timeout},
		Logger:       logger,
		Instrumenter: inst,
		File:         opts.file,
	})
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitHost
	}

	rend := render.New(stdout, render.Options{
		NoColor:    opts.noColor || opts.ascii,
		ForceColor: settings.Render.Color == config.ColorAlways && !opts.set["no-color"],
		Cursor:     settings.Render.Cursor,
		Palette:    settings.Palette,
	})

	var store *history.Store
	if opts.history || opts.diff {
		store = history.NewStore(historyPath(settings), settings.History.MaxEntries)
		if err := store.Load(); err != nil {
			logger.Printf("history load error: %v", err)
			fmt.Fprintf(stderr, "history: %v\n", err)
			store = nil
		}
	}

	switch {
	case opts.repl:
		r := repl.New(repl.Config{
			Session:     sess,
			Renderer:    rend,
			Out:         stdout,
			Err:         stderr,
			HistoryPath: config.ReplHistoryPath(),
			Runs:        store,
		})
		if err := r.Run(ctx); err != nil {
			fmt.Fprintf(stderr, "repl: %v\n", err)
			return exitHost
		}
		return exitOK
	case opts.tui:
		return runTUI(opts, sess, rend, store, logger, stderr)
	}

	if opts.file == "" {
		fmt.Fprint(stderr, usageText)
		fmt.Fprintln(stderr, "  (run walle -h for the flag list)")
		return exitHost
	}

	src, err := readScript(opts.file)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitHost
	}

	out := printer{stdout: stdout, stderr: stderr, rend: rend, ascii: opts.ascii}
	code := runOnce(ctx, sess, src, opts, store, out)
	if !opts.watch {
		return code
	}

	w := watcher.New(watcher.Options{})
	logger.Printf("watching %s", opts.file)
	err = w.Watch(ctx, opts.file, func(evt watcher.Event) {
		if evt.Kind == watcher.EventMissing {
			fmt.Fprintf(stderr, "%s is missing; waiting for it to return\n", opts.file)
			return
		}
		fmt.Fprintf(stdout, "\n--- %s changed at %s ---\n", filepath.Base(evt.Path), time.Now().Format("15:04:05"))
		code = runOnce(ctx, sess, evt.Source, opts, store, out)
	})
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitHost
	}
	return code
}

func runOnce(
	ctx context.Context,
	sess *session.Session,
	src string,
	opts options,
	store *history.Store,
	out printer,
) int {
	res := sess.Run(ctx, src)
	out.result(res)

	if store != nil {
		entry := res.Entry(opts.file)
		if opts.diff {
			out.diff(store, entry)
		}
		if opts.history {
			if err := store.Append(entry); err != nil {
				fmt.Fprintf(out.stderr, "history: %v\n", err)
			}
		}
	}
	return exitCode(res)
}

func runTUI(
	opts options,
	sess *session.Session,
	rend *render.Renderer,
	store *history.Store,
	logger *log.Logger,
	stderr io.Writer,
) int {
	var src string
	if opts.file != "" {
		data, err := readScript(opts.file)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return exitHost
		}
		src = data
	}

	var w *watcher.Watcher
	if opts.file != "" {
		w = watcher.New(watcher.Options{})
		defer w.Stop()
	}
	var hist *history.Store
	if opts.history {
		hist = store
	}

	model := ui.New(ui.Config{
		Session:     sess,
		Renderer:    rend,
		File:        opts.file,
		Source:      src,
		DefaultSize: opts.size,
		Watcher:     w,
		History:     hist,
		Logger:      logger,
		Version:     version,
	})
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitHost
	}
	return exitOK
}

func readScript(path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", errdef.Wrap(errdef.CodeFilesystem, err, "read script %s", path)
	}
	return string(data), nil
}

func historyPath(s config.Settings) string {
	if p := strings.TrimSpace(s.History.Path); p != "" {
		return p
	}
	return config.DefaultHistoryPath()
}

func exitCode(res session.Result) int {
	switch res.Status {
	case session.StatusSyntax:
		return exitSyntax
	case session.StatusRuntime:
		return exitRuntime
	default:
		return exitOK
	}
}

type printer struct {
	stdout io.Writer
	stderr io.Writer
	rend   *render.Renderer
	ascii  bool
}

func (p printer) result(res session.Result) {
	if p.ascii {
		fmt.Fprint(p.stdout, render.ASCII(res.Grid))
	} else {
		cursor := res.Cursor
		fmt.Fprint(p.stdout, p.rend.Canvas(res.Grid, &cursor))
	}
	if len(res.Diagnostics) > 0 {
		fmt.Fprint(p.stderr, p.rend.Diagnostics(res.Diagnostics))
	}
}

func (p printer) diff(store *history.Store, cur history.Entry) {
	prev, ok := store.Latest(cur.File)
	if !ok {
		fmt.Fprintf(p.stdout, "no previous run of %s\n", cur.File)
		return
	}
	cur.ExecutedAt = time.Now()
	d := history.Diff(prev, cur)
	if d == "" {
		fmt.Fprintln(p.stdout, "canvas unchanged since previous run")
		return
	}
	fmt.Fprint(p.stdout, d)
}
