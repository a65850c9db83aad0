package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/MakeNowJust/heredoc"
	"github.com/peterh/liner"

	"github.com/unkn0wn-root/walle/internal/canvas"
	"github.com/unkn0wn-root/walle/internal/errdef"
	"github.com/unkn0wn-root/walle/internal/filesvc"
	"github.com/unkn0wn-root/walle/internal/history"
	"github.com/unkn0wn-root/walle/internal/render"
	"github.com/unkn0wn-root/walle/internal/session"
	"github.com/unkn0wn-root/walle/internal/wls"
)

const (
	promptMain  = "walle> "
	defaultSize = 32
	maxSize     = 1024
)

var helpText = heredoc.Doc(`
	Lines are appended to the program buffer. Commands:
	  :run         run the buffer on a fresh canvas
	  :show        print the buffer with line numbers
	  :clear       empty the buffer
	  :undo        drop the last buffered line
	  :size N      resize the canvas to N x N
	  :canvas      print the current canvas
	  :load FILE   replace the buffer with FILE
	  :save FILE   write the buffer to FILE
	  :ls [DIR]    list scripts in DIR (default .)
	  :vars        print variables left by the last run
	  :colors      list color names and their glyphs
	  :history     list recorded runs
	  :history show ID
	               print a recorded run
	  :history rm ID
	               delete a recorded run
	  :help        show this help
	  :quit        exit
`)

var commands = []string{":run", ":show", ":clear", ":undo", ":size", ":canvas", ":load", ":save", ":ls", ":vars", ":colors", ":history", ":help", ":quit"}

type Config struct {
	Session  *session.Session
	Renderer *render.Renderer
	Out      io.Writer
	Err      io.Writer
	// HistoryPath stores entered lines between sessions. Empty disables it.
	HistoryPath string
	// Runs records every :run when set.
	Runs *history.Store
}

type REPL struct {
	sess *session.Session
	rend *render.Renderer
	out  io.Writer
	err  io.Writer
	hist string
	runs *history.Store
	file string
	buf  []string
	last session.Result
}

func New(cfg Config) *REPL {
	out := cfg.Out
	if out == nil {
		out = os.Stdout
	}
	errOut := cfg.Err
	if errOut == nil {
		errOut = os.Stderr
	}
	sess := cfg.Session
	if sess == nil {
		sess, _ = session.New(defaultSize, session.Options{})
	}
	rend := cfg.Renderer
	if rend == nil {
		rend = render.New(out, render.Options{Cursor: true})
	}
	return &REPL{
		sess: sess,
		rend: rend,
		out:  out,
		err:  errOut,
		hist: cfg.HistoryPath,
		runs: cfg.Runs,
	}
}

// Buffer returns the program assembled so far.
func (r *REPL) Buffer() string {
	if len(r.buf) == 0 {
		return ""
	}
	return strings.Join(r.buf, "\n") + "\n"
}

// Run reads lines until :quit, EOF or ctx is done.
func (r *REPL) Run(ctx context.Context) error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)
	ln.SetCompleter(complete)

	r.loadHistory(ln)
	defer r.saveHistory(ln)

	fmt.Fprintf(r.out, "Wall-E %dx%d canvas. Type :help for commands.\n", r.sess.Size(), r.sess.Size())
	for {
		if ctx.Err() != nil {
			return nil
		}
		line, err := ln.Prompt(promptMain)
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(r.out)
			return nil
		}
		if err != nil {
			return err
		}
		if strings.TrimSpace(line) != "" {
			ln.AppendHistory(line)
		}
		if quit := r.Handle(ctx, line); quit {
			return nil
		}
	}
}

// Handle processes one input line and reports whether the REPL should exit.
func (r *REPL) Handle(ctx context.Context, line string) bool {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, ":") {
		r.buf = append(r.buf, strings.TrimRight(line, "\r\n"))
		return false
	}

	cmd, arg, _ := strings.Cut(trimmed, " ")
	arg = strings.TrimSpace(arg)
	switch strings.ToLower(cmd) {
	case ":quit", ":q", ":exit":
		return true
	case ":help", ":h":
		fmt.Fprint(r.out, helpText)
	case ":run", ":r":
		r.run(ctx)
	case ":show":
		r.show()
	case ":clear":
		r.buf = nil
		fmt.Fprintln(r.out, "buffer cleared")
	case ":undo":
		if len(r.buf) > 0 {
			r.buf = r.buf[:len(r.buf)-1]
		}
	case ":size":
		r.resize(arg)
	case ":canvas":
		fmt.Fprint(r.out, r.canvas(r.sess.Canvas()))
	case ":load":
		if err := r.load(arg); err != nil {
			fmt.Fprintln(r.err, err)
		}
	case ":save":
		if err := r.save(arg); err != nil {
			fmt.Fprintln(r.err, err)
		}
	case ":ls":
		r.list(arg)
	case ":vars":
		r.vars()
	case ":colors":
		for _, line := range render.Legend() {
			fmt.Fprintln(r.out, line)
		}
	case ":history":
		r.history(arg)
	default:
		fmt.Fprintf(r.err, "unknown command %s (try :help)\n", cmd)
	}
	return false
}

func (r *REPL) run(ctx context.Context) {
	res := r.sess.Run(ctx, r.Buffer())
	r.last = res
	if r.runs != nil {
		if err := r.runs.Append(res.Entry(r.file)); err != nil {
			fmt.Fprintf(r.err, "history: %v\n", err)
		}
	}
	fmt.Fprint(r.out, r.canvas(res.Grid))
	if len(res.Diagnostics) > 0 {
		fmt.Fprint(r.err, r.rend.Diagnostics(res.Diagnostics))
		return
	}
	fmt.Fprintf(r.out, "ok: %d statements, %d steps\n", res.Statements, res.Steps)
}

func (r *REPL) canvas(g canvas.Grid) string {
	cursor := r.sess.Cursor()
	return r.rend.Canvas(g, &cursor)
}

func (r *REPL) show() {
	if len(r.buf) == 0 {
		fmt.Fprintln(r.out, "(empty)")
		return
	}
	fmt.Fprint(r.out, r.rend.Source(strings.Join(r.buf, "\n"), 0))
}

func (r *REPL) list(dir string) {
	if dir == "" {
		dir = "."
	}
	entries, err := filesvc.ListScripts(dir, false)
	if err != nil {
		fmt.Fprintln(r.err, errdef.Wrap(errdef.CodeFilesystem, err, "list %s", dir))
		return
	}
	if len(entries) == 0 {
		fmt.Fprintln(r.out, "(no scripts)")
		return
	}
	for _, e := range entries {
		fmt.Fprintln(r.out, e.Name)
	}
}

func (r *REPL) vars() {
	if len(r.last.Vars) == 0 {
		fmt.Fprintln(r.out, "(no variables)")
		return
	}
	for _, v := range r.last.Vars {
		fmt.Fprintln(r.out, v)
	}
}

func (r *REPL) history(arg string) {
	if r.runs == nil {
		fmt.Fprintln(r.err, "history is disabled (start with -history)")
		return
	}
	sub, id, _ := strings.Cut(arg, " ")
	id = strings.TrimSpace(id)
	switch sub {
	case "":
		entries := r.runs.Entries()
		if len(entries) == 0 {
			fmt.Fprintln(r.out, "(no runs)")
			return
		}
		for _, e := range entries {
			file := e.File
			if file == "" {
				file = "<repl>"
			}
			fmt.Fprintf(r.out, "%s  %s  %-7s  %dx%d  %s\n",
				e.ID, e.ExecutedAt.Format("2006-01-02 15:04:05"), e.Status, e.Size, e.Size, file)
		}
	case "show":
		e, ok := r.runs.Get(id)
		if !ok {
			fmt.Fprintf(r.err, "no run %q\n", id)
			return
		}
		fmt.Fprint(r.out, e.Canvas)
		if len(e.Diagnostics) > 0 {
			fmt.Fprint(r.err, r.rend.Diagnostics(e.Diagnostics))
		}
	case "rm":
		ok, err := r.runs.Delete(id)
		if err != nil {
			fmt.Fprintln(r.err, err)
			return
		}
		if !ok {
			fmt.Fprintf(r.err, "no run %q\n", id)
			return
		}
		fmt.Fprintf(r.out, "deleted %s\n", id)
	default:
		fmt.Fprintln(r.err, "usage: :history [show ID | rm ID]")
	}
}

func (r *REPL) resize(arg string) {
	n, err := strconv.Atoi(arg)
	if err != nil || n <= 0 || n > maxSize {
		fmt.Fprintf(r.err, "usage: :size N (1..%d)\n", maxSize)
		return
	}
	if _, err := r.sess.Resize(n); err != nil {
		fmt.Fprintln(r.err, err)
		return
	}
	fmt.Fprintf(r.out, "canvas reset to %dx%d\n", n, n)
}

func (r *REPL) load(path string) error {
	if path == "" {
		return errdef.New(errdef.CodeScript, "usage: :load FILE")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return errdef.Wrap(errdef.CodeFilesystem, err, "load %s", path)
	}
	src := strings.ReplaceAll(string(data), "\r\n", "\n")
	src = strings.TrimSuffix(src, "\n")
	r.buf = nil
	if src != "" {
		r.buf = strings.Split(src, "\n")
	}
	r.sess.SetFile(path)
	r.file = path
	fmt.Fprintf(r.out, "loaded %d lines from %s\n", len(r.buf), filepath.Base(path))
	return nil
}

func (r *REPL) save(path string) error {
	if path == "" {
		return errdef.New(errdef.CodeScript, "usage: :save FILE")
	}
	if err := os.WriteFile(path, []byte(r.Buffer()), 0o644); err != nil {
		return errdef.Wrap(errdef.CodeFilesystem, err, "save %s", path)
	}
	fmt.Fprintf(r.out, "saved %d lines to %s\n", len(r.buf), filepath.Base(path))
	return nil
}

func (r *REPL) loadHistory(ln *liner.State) {
	if r.hist == "" {
		return
	}
	if f, err := os.Open(r.hist); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
}

func (r *REPL) saveHistory(ln *liner.State) {
	if r.hist == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(r.hist), 0o755); err != nil {
		return
	}
	if f, err := os.Create(r.hist); err == nil {
		_, _ = ln.WriteHistory(f)
		_ = f.Close()
	}
}

// complete offers commands at line start and language words elsewhere,
// matching the last word case-insensitively.
func complete(line string) []string {
	start := strings.LastIndexAny(line, " \t(,[") + 1
	prefix, word := line[:start], line[start:]
	if word == "" {
		return nil
	}

	var pool []string
	if start == 0 && strings.HasPrefix(word, ":") {
		pool = commands
	} else {
		pool = append(wls.Keywords(), wls.BuiltinNames()...)
	}

	var out []string
	lower := strings.ToLower(word)
	for _, cand := range pool {
		if strings.HasPrefix(strings.ToLower(cand), lower) {
			out = append(out, prefix+cand)
		}
	}
	return out
}
