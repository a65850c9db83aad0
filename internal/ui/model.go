package ui

import (
	"context"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/unkn0wn-root/walle/internal/canvas"
	"github.com/unkn0wn-root/walle/internal/history"
	"github.com/unkn0wn-root/walle/internal/render"
	"github.com/unkn0wn-root/walle/internal/session"
	"github.com/unkn0wn-root/walle/internal/watcher"
)

const (
	defaultResizeStep = 8
	defaultCanvasSize = 32
	maxCanvasSize     = 1024
)

type Config struct {
	Session  *session.Session
	Renderer *render.Renderer
	File     string
	Source   string
	// DefaultSize is the size the reset key returns to.
	DefaultSize int
	ResizeStep  int
	Watcher     *watcher.Watcher
	History     *history.Store
	Logger      *log.Logger
	Version     string
}

type Model struct {
	cfg      Config
	sess     *session.Session
	rend     *render.Renderer
	keys     keyMap
	viewport viewport.Model

	source  string
	result  session.Result
	hasRun  bool
	running bool
	runSeq  int
	size    int
	cancel  context.CancelFunc
	initCtx context.Context
	status  statusMsg
	stale   bool
	missing bool

	watchChan chan tea.Msg

	width  int
	height int
	ready  bool
}

func New(cfg Config) Model {
	if cfg.ResizeStep <= 0 {
		cfg.ResizeStep = defaultResizeStep
	}
	if cfg.Session == nil {
		cfg.Session, _ = session.New(defaultCanvasSize, session.Options{Logger: cfg.Logger})
	}
	if cfg.Renderer == nil {
		cfg.Renderer = render.New(io.Discard, render.Options{})
	}
	if cfg.DefaultSize <= 0 {
		cfg.DefaultSize = cfg.Session.Size()
	}
	m := Model{
		cfg:      cfg,
		sess:     cfg.Session,
		rend:     cfg.Renderer,
		keys:     defaultKeyMap(),
		viewport: viewport.New(0, 0),
		source:   cfg.Source,
		running:  true,
		size:     cfg.Session.Size(),
	}
	m.initCtx, m.cancel = context.WithCancel(context.Background())
	m.result = session.Result{Grid: cfg.Session.Canvas(), Status: session.StatusOK}
	if cfg.Watcher != nil && cfg.File != "" {
		m.watchChan = make(chan tea.Msg, 16)
	}
	return m
}

// Init runs the initial source. New already marks the model as running
// under the current sequence number and owns its cancel func, since Init
// cannot update the model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.runAt(m.initCtx, m.runSeq)}
	if cmd := m.startFileWatcher(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = typed.Width
		m.height = typed.Height
		m.ready = true
		m.applyLayout()
	case tea.KeyMsg:
		if cmd, handled := m.handleKey(typed); handled {
			return m, cmd
		}
	case runDoneMsg:
		if typed.seq != m.runSeq {
			return m, nil
		}
		if cmd := m.handleRunDone(typed.result); cmd != nil {
			cmds = append(cmds, cmd)
		}
	case fileChangedMsg:
		if cmd := m.handleFileChanged(typed); cmd != nil {
			cmds = append(cmds, cmd)
		}
		if cmd := m.nextFileWatchMsgCmd(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	case statusMsg:
		m.status = typed
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case matches(msg, m.keys.Quit):
		m.stopRun()
		return tea.Quit, true
	case matches(msg, m.keys.Run):
		m.stale = false
		return m.runCmd(), true
	case matches(msg, m.keys.Shrink):
		return m.resize(m.size - m.cfg.ResizeStep), true
	case matches(msg, m.keys.Grow):
		return m.resize(m.size + m.cfg.ResizeStep), true
	case matches(msg, m.keys.Reset):
		return m.resize(m.cfg.DefaultSize), true
	case matches(msg, m.keys.Copy):
		return m.copyCanvas(), true
	}
	return nil, false
}

// runCmd starts a run of the current source in the background. The
// previous run is canceled and its result dropped by sequence number.
func (m *Model) runCmd() tea.Cmd {
	m.stopRun()
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.runSeq++
	m.running = true
	return m.runAt(ctx, m.runSeq)
}

func (m Model) runAt(ctx context.Context, seq int) tea.Cmd {
	sess := m.sess
	src := m.source
	return func() tea.Msg {
		return runDoneMsg{seq: seq, result: sess.Run(ctx, src)}
	}
}

func (m *Model) stopRun() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
}

func (m *Model) handleRunDone(res session.Result) tea.Cmd {
	m.stopRun()
	m.running = false
	m.hasRun = true
	m.result = res
	m.applyLayout()

	switch res.Status {
	case session.StatusOK:
		m.status = statusMsg{
			text:  fmt.Sprintf("Ran %d statements in %d steps (%s)", res.Statements, res.Steps, res.Duration.Round(time.Microsecond)),
			level: statusSuccess,
		}
	case session.StatusSyntax:
		m.status = statusMsg{text: fmt.Sprintf("%d syntax error(s)", len(res.Diagnostics)), level: statusError}
	default:
		m.status = statusMsg{text: "Runtime error", level: statusError}
	}

	if m.cfg.History == nil {
		return nil
	}
	store := m.cfg.History
	entry := res.Entry(m.cfg.File)
	logger := m.cfg.Logger
	return func() tea.Msg {
		if err := store.Append(entry); err != nil {
			if logger != nil {
				logger.Printf("history: %v", err)
			}
			return statusMsg{text: fmt.Sprintf("history: %v", err), level: statusWarn}
		}
		return nil
	}
}

func (m *Model) resize(n int) tea.Cmd {
	n = min(max(n, 1), maxCanvasSize)
	if n == m.size {
		return nil
	}
	m.stopRun()
	grid, err := m.sess.Resize(n)
	if err != nil {
		m.status = statusMsg{text: err.Error(), level: statusError}
		return nil
	}
	m.size = n
	m.runSeq++
	m.running = false
	m.result = session.Result{Grid: grid, Status: session.StatusOK}
	m.hasRun = false
	m.status = statusMsg{text: fmt.Sprintf("Canvas resized to %dx%d", n, n), level: statusInfo}
	m.applyLayout()
	return nil
}

func (m *Model) handleFileChanged(msg fileChangedMsg) tea.Cmd {
	if !samePath(msg.path, m.cfg.File) {
		return nil
	}
	name := filepath.Base(msg.path)
	if msg.kind == watcher.EventMissing {
		m.missing = true
		m.status = statusMsg{text: fmt.Sprintf("%s is missing on disk", name), level: statusWarn}
		return nil
	}
	m.missing = false
	m.stale = false
	m.source = msg.source
	m.status = statusMsg{text: fmt.Sprintf("%s changed, re-running", name), level: statusInfo}
	return m.runCmd()
}

func (m *Model) startFileWatcher() tea.Cmd {
	w := m.cfg.Watcher
	if w == nil || m.watchChan == nil {
		return nil
	}
	w.TrackSource(m.cfg.File, []byte(m.source))
	w.Start()
	out := m.watchChan
	go func() {
		for evt := range w.Events() {
			out <- fileChangedMsg{path: evt.Path, kind: evt.Kind, source: evt.Source}
		}
		close(out)
	}()
	return m.nextFileWatchMsgCmd()
}

func (m *Model) nextFileWatchMsgCmd() tea.Cmd {
	ch := m.watchChan
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return msg
	}
}

func (m *Model) applyLayout() {
	w, h := m.bodySize()
	m.viewport.Width = w
	m.viewport.Height = h
	m.refreshContent()
}

// bodySize is the area left for the canvas once the header, diagnostics
// and status bar are drawn.
func (m Model) bodySize() (int, int) {
	reserved := 2 + min(len(m.result.Diagnostics), maxDiagnosticLines)
	return max(m.width, 0), max(m.height-reserved, 1)
}

func (m *Model) refreshContent() {
	cursor := m.result.Cursor
	m.viewport.SetContent(strings.TrimSuffix(m.rend.Canvas(m.result.Grid, &cursor), "\n"))
}

func (m Model) Grid() canvas.Grid { return m.result.Grid }

func (m Model) Result() session.Result { return m.result }

func samePath(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return filepath.Clean(a) == filepath.Clean(b)
}
