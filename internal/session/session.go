package session

import (
	"context"
	"errors"
	"image"
	"io"
	"log"
	"sync"
	"time"

	"github.com/unkn0wn-root/walle/internal/canvas"
	"github.com/unkn0wn-root/walle/internal/telemetry"
	"github.com/unkn0wn-root/walle/internal/wls"
)

type Status string

const (
	StatusOK      Status = "ok"
	StatusSyntax  Status = "syntax"
	StatusRuntime Status = "runtime"
)

type Options struct {
	Limits       wls.Limits
	Logger       *log.Logger
	Instrumenter telemetry.Instrumenter
	// File labels telemetry spans and log lines; it is never read.
	File string
}

type Result struct {
	Grid        canvas.Grid
	Cursor      image.Point
	Diagnostics []string
	Status      Status
	Steps       int
	Statements  int
	Duration    time.Duration
	Err         error
	// Vars lists the final variable bindings as "name = value", sorted.
	Vars []string
}

func (r Result) Failed() bool { return r.Status != StatusOK }

// Session owns the canvas for one caller. Every Run and Resize swaps in a
// fresh engine, so no state leaks from one run into the next. The lock is
// only held while swapping state, never for the length of a run.
type Session struct {
	mu   sync.Mutex
	size int
	gen  uint64
	cv   *canvas.Canvas
	opts Options
}

func New(size int, opts Options) (*Session, error) {
	cv, err := canvas.New(size)
	if err != nil {
		return nil, err
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard, "", 0)
	}
	if opts.Instrumenter == nil {
		opts.Instrumenter = telemetry.Noop()
	}
	return &Session{size: size, cv: cv, opts: opts}, nil
}

func (s *Session) SetFile(name string) {
	s.mu.Lock()
	s.opts.File = name
	s.mu.Unlock()
}

func (s *Session) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.size
}

// Canvas returns a copy of the current grid.
func (s *Session) Canvas() canvas.Grid {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cv.Snapshot()
}

func (s *Session) Cursor() image.Point {
	s.mu.Lock()
	defer s.mu.Unlock()
	x, y := s.cv.Cursor()
	return image.Pt(x, y)
}

// Resize replaces the engine with a blank one of size n. On error the
// current state is kept.
func (s *Session) Resize(n int) (canvas.Grid, error) {
	cv, err := canvas.New(n)
	if err != nil {
		return canvas.Grid{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.size = n
	s.gen++
	s.cv = cv
	s.opts.Logger.Printf("canvas resized to %dx%d", n, n)
	return cv.Snapshot(), nil
}

// Run parses and executes src on a fresh canvas. Syntax errors stop before
// execution; the first runtime error halts the run and the grid is
// returned as it stood at that point. The session keeps the canvas of the
// most recently started run; a run overtaken by a later Run or Resize
// still returns its own result.
func (s *Session) Run(ctx context.Context, src string) Result {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	size := s.size
	opts := s.opts
	s.mu.Unlock()

	cv, err := canvas.New(size)
	if err != nil {
		return Result{Status: StatusRuntime, Err: err, Diagnostics: []string{err.Error()}}
	}

	ctx, span := opts.Instrumenter.Start(ctx, telemetry.RunStart{
		File:        opts.File,
		CanvasSize:  size,
		SourceBytes: len(src),
		MaxSteps:    opts.Limits.MaxSteps,
	})

	start := time.Now()
	res := Result{Status: StatusOK}

	prog, synErrs := wls.Parse(src)
	span.RecordPhase("parse", time.Since(start))
	if prog != nil {
		res.Statements = prog.Len()
	}

	if len(synErrs) > 0 {
		res.Status = StatusSyntax
		errs := make([]error, 0, len(synErrs))
		for _, e := range synErrs {
			res.Diagnostics = append(res.Diagnostics, e.Error())
			errs = append(errs, e)
		}
		res.Err = errors.Join(errs...)
	} else {
		execStart := time.Now()
		in := wls.NewInterp(cv, wls.WithLimits(opts.Limits))
		if err := in.Run(ctx, prog); err != nil {
			res.Status = StatusRuntime
			res.Err = err
			res.Diagnostics = []string{err.Error()}
		}
		res.Steps = in.Steps()
		env := in.Env()
		for _, name := range env.Names() {
			v, _ := env.Get(name)
			res.Vars = append(res.Vars, name+" = "+v.String())
		}
		span.RecordPhase("execute", time.Since(execStart))
	}

	s.mu.Lock()
	if s.gen == gen {
		s.cv = cv
	}
	s.mu.Unlock()
	res.Grid = cv.Snapshot()
	x, y := cv.Cursor()
	res.Cursor = image.Pt(x, y)
	res.Duration = time.Since(start)

	span.End(telemetry.RunResult{
		Err:         res.Err,
		Status:      string(res.Status),
		Steps:       res.Steps,
		Statements:  res.Statements,
		Diagnostics: len(res.Diagnostics),
	})
	logResult(opts, res)
	return res
}

func logResult(opts Options, res Result) {
	name := opts.File
	if name == "" {
		name = "<source>"
	}
	opts.Logger.Printf(
		"run %s: status=%s statements=%d steps=%d diagnostics=%d in %s",
		name, res.Status, res.Statements, res.Steps, len(res.Diagnostics), res.Duration,
	)
}

// Run executes src on a fresh size×size canvas and returns the final grid
// with the ordered diagnostics.
func Run(src string, size int) (canvas.Grid, []string) {
	s, err := New(size, Options{})
	if err != nil {
		return canvas.Grid{}, []string{err.Error()}
	}
	res := s.Run(context.Background(), src)
	return res.Grid, res.Diagnostics
}
