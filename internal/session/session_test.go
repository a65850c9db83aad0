package session

import (
	"bytes"
	"context"
	"errors"
	"log"
	"strings"
	"testing"
	"time"

	"github.com/MakeNowJust/heredoc"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/unkn0wn-root/walle/internal/canvas"
	"github.com/unkn0wn-root/walle/internal/telemetry"
	"github.com/unkn0wn-root/walle/internal/wls"
)

func newSession(t *testing.T, size int, opts Options) *Session {
	t.Helper()
	s, err := New(size, opts)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	return s
}

func TestRunPaintsLine(t *testing.T) {
	grid, diags := Run(heredoc.Doc(`
		Spawn(0, 0)
		Color("Blue")
		DrawLine(1, 0, 5)
	`), 10)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics %v", diags)
	}
	if grid.Count(canvas.Blue) != 6 {
		t.Fatalf("expected 6 blue cells, got %d", grid.Count(canvas.Blue))
	}
}

func TestRunInvalidSize(t *testing.T) {
	grid, diags := Run("Spawn(0,0)", 0)
	if grid.Size != 0 || len(diags) != 1 {
		t.Fatalf("expected a single diagnostic, got %v", diags)
	}
}

func TestRunSyntaxErrorsSkipExecution(t *testing.T) {
	s := newSession(t, 5, Options{})
	res := s.Run(context.Background(), heredoc.Doc(`
		Color("Red")
		Spawn(0, 0)
		DrawLine(1, 0
	`))
	if res.Status != StatusSyntax {
		t.Fatalf("expected syntax status, got %s", res.Status)
	}
	want := []string{
		"Syntax error at line 1: Program must start with Spawn",
		"Syntax error at line 3: Expected ,",
	}
	if strings.Join(res.Diagnostics, "|") != strings.Join(want, "|") {
		t.Fatalf("expected %q, got %q", want, res.Diagnostics)
	}
	if !res.Grid.Equal(canvas.Blank(5)) {
		t.Fatalf("syntax errors must leave a blank canvas")
	}
	var se *wls.SyntaxError
	if !errors.As(res.Err, &se) {
		t.Fatalf("expected joined syntax errors, got %v", res.Err)
	}
	if res.Steps != 0 {
		t.Fatalf("expected no steps, got %d", res.Steps)
	}
}

func TestRunRuntimeErrorKeepsPartialGrid(t *testing.T) {
	s := newSession(t, 6, Options{})
	res := s.Run(context.Background(), heredoc.Doc(`
		Spawn(0, 0)
		Color("Red")
		DrawLine(1, 0, 2)
		GoTo[missing](true)
		Fill()
	`))
	if res.Status != StatusRuntime || !res.Failed() {
		t.Fatalf("expected runtime status, got %s", res.Status)
	}
	if len(res.Diagnostics) != 1 || res.Diagnostics[0] != "Error at Line:4: Label missing doesn't exist" {
		t.Fatalf("unexpected diagnostics %q", res.Diagnostics)
	}
	if res.Grid.Count(canvas.Red) != 3 {
		t.Fatalf("expected partial line of 3, got %d", res.Grid.Count(canvas.Red))
	}
	if res.Cursor.X != 2 || res.Cursor.Y != 0 {
		t.Fatalf("expected cursor (2,0), got %v", res.Cursor)
	}
	if !s.Canvas().Equal(res.Grid) {
		t.Fatalf("session canvas must match the last result")
	}
}

func TestRunStartsFromFreshCanvas(t *testing.T) {
	s := newSession(t, 4, Options{})
	first := s.Run(context.Background(), "Spawn(0,0)\nColor(\"Green\")\nFill()\n")
	if first.Grid.Count(canvas.Green) != 16 {
		t.Fatalf("expected full green canvas")
	}
	second := s.Run(context.Background(), "Spawn(3,3)\n")
	if !second.Grid.Equal(canvas.Blank(4)) {
		t.Fatalf("expected second run to start blank")
	}
}

func TestResize(t *testing.T) {
	s := newSession(t, 4, Options{})
	s.Run(context.Background(), "Spawn(1,1)\nColor(\"Black\")\nFill()\n")

	if _, err := s.Resize(0); !errors.Is(err, canvas.ErrInvalidSize) {
		t.Fatalf("expected ErrInvalidSize, got %v", err)
	}
	if s.Size() != 4 || s.Canvas().Count(canvas.Black) != 16 {
		t.Fatalf("failed resize must keep state")
	}

	g, err := s.Resize(7)
	if err != nil {
		t.Fatalf("resize: %v", err)
	}
	if !g.Equal(canvas.Blank(7)) || s.Size() != 7 {
		t.Fatalf("expected blank 7x7 grid")
	}
	if c := s.Cursor(); c.X != 0 || c.Y != 0 {
		t.Fatalf("expected cursor reset, got %v", c)
	}
}

func TestCanvasIsCopy(t *testing.T) {
	s := newSession(t, 3, Options{})
	g := s.Canvas()
	g.Cells[0] = canvas.Red
	if s.Canvas().At(0, 0) != canvas.White {
		t.Fatalf("Canvas must return a copy")
	}
}

func TestRunHonoursLimits(t *testing.T) {
	s := newSession(t, 3, Options{Limits: wls.Limits{MaxSteps: 50}})
	res := s.Run(context.Background(), heredoc.Doc(`
		Spawn(0, 0)
		loop
		GoTo[loop](true)
	`))
	if res.Status != StatusRuntime {
		t.Fatalf("expected runtime status, got %s", res.Status)
	}
	if !strings.Contains(res.Diagnostics[0], "Step limit exceeded: 50") {
		t.Fatalf("unexpected diagnostic %q", res.Diagnostics[0])
	}
}

func TestRunEmptyProgram(t *testing.T) {
	s := newSession(t, 3, Options{})
	res := s.Run(context.Background(), "\n\n")
	if res.Status != StatusOK || len(res.Diagnostics) != 0 || res.Statements != 0 {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestRunLogsAndTraces(t *testing.T) {
	var buf bytes.Buffer
	recorder := tracetest.NewSpanRecorder()
	inst, err := telemetry.New(telemetry.Config{ServiceName: "walle-test"}, telemetry.WithSpanProcessor(recorder))
	if err != nil {
		t.Fatalf("telemetry: %v", err)
	}
	t.Cleanup(func() { _ = inst.Shutdown(context.Background()) })

	s := newSession(t, 4, Options{
		Logger:       log.New(&buf, "", 0),
		Instrumenter: inst,
		File:         "demo.pw",
	})
	res := s.Run(context.Background(), "Spawn(0,0)\nSize(2)\n")
	if res.Status != StatusOK || res.Steps != 2 || res.Statements != 2 {
		t.Fatalf("unexpected result %+v", res)
	}
	if !strings.Contains(buf.String(), "run demo.pw: status=ok statements=2 steps=2") {
		t.Fatalf("unexpected log output %q", buf.String())
	}

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if spans[0].Name() != "walle.run demo.pw" {
		t.Fatalf("unexpected span name %q", spans[0].Name())
	}
	if n := len(spans[0].Events()); n != 2 {
		t.Fatalf("expected parse and execute events, got %d", n)
	}
}

func TestResultEntry(t *testing.T) {
	s := newSession(t, 2, Options{})
	res := s.Run(context.Background(), "Spawn(0,0)\nColor(\"Red\")\nDrawLine(1,0,1)\n")
	e := res.Entry("demo.pw")
	if e.File != "demo.pw" || e.Size != 2 || e.Status != "ok" || e.Steps != 3 {
		t.Fatalf("unexpected entry %+v", e)
	}
	if e.Canvas != "RR\n..\n" {
		t.Fatalf("unexpected canvas %q", e.Canvas)
	}
}

func TestRunAcceptsNamedColors(t *testing.T) {
	grid, diags := Run(heredoc.Doc(`
		Spawn(0, 0)
		Color("Gray")
		DrawLine(1, 0, 2)
		Color("hotpink")
	`), 6)
	if len(diags) != 0 {
		t.Fatalf("expected no diagnostics, got %v", diags)
	}
	if grid.Count(canvas.Gray) != 3 {
		t.Fatalf("expected 3 gray cells, got %d", grid.Count(canvas.Gray))
	}
}

func TestResizeDuringLoopingRun(t *testing.T) {
	s := newSession(t, 6, Options{})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan Result, 1)
	go func() {
		done <- s.Run(ctx, "Spawn(0, 0)\nloop\nGoTo [loop] (true)\n")
	}()

	resized := make(chan error, 1)
	go func() {
		_, err := s.Resize(10)
		resized <- err
	}()
	select {
	case err := <-resized:
		if err != nil {
			t.Fatalf("resize: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("expected resize to return while the run is looping")
	}
	if s.Size() != 10 {
		t.Fatalf("expected size 10, got %d", s.Size())
	}

	cancel()
	select {
	case res := <-done:
		if res.Status != StatusRuntime {
			t.Fatalf("expected canceled run to report runtime status, got %s", res.Status)
		}
		if res.Grid.Size != 6 {
			t.Fatalf("expected run to keep its own 6x6 grid, got %d", res.Grid.Size)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("expected run to stop after cancel")
	}
	if got := s.Canvas().Size; got != 10 {
		t.Fatalf("expected resized canvas to survive the overtaken run, got %d", got)
	}
}

func TestRunReportsVariables(t *testing.T) {
	s := newSession(t, 4, Options{})
	res := s.Run(context.Background(), "Spawn(0, 0)\nb <- 3\na <- b * 2\nDrawLine(9, 0, 1)\n")
	if res.Status != StatusRuntime {
		t.Fatalf("expected runtime status, got %s", res.Status)
	}
	if strings.Join(res.Vars, ",") != "a = 6,b = 3" {
		t.Fatalf("expected bindings up to the failing line, got %v", res.Vars)
	}
}
