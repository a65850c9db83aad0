package repl

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/unkn0wn-root/walle/internal/history"
	"github.com/unkn0wn-root/walle/internal/render"
	"github.com/unkn0wn-root/walle/internal/session"
)

func newTestREPL(t *testing.T, size int) (*REPL, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	sess, err := session.New(size, session.Options{})
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	var out, errOut bytes.Buffer
	r := New(Config{
		Session:  sess,
		Renderer: render.New(&out, render.Options{NoColor: true}),
		Out:      &out,
		Err:      &errOut,
	})
	return r, &out, &errOut
}

func feed(t *testing.T, r *REPL, lines ...string) {
	t.Helper()
	for _, line := range lines {
		if r.Handle(context.Background(), line) {
			t.Fatalf("unexpected quit on %q", line)
		}
	}
}

func TestHandleBuffersAndRuns(t *testing.T) {
	r, out, errOut := newTestREPL(t, 3)
	feed(t, r, "Spawn(0, 0)", "Color(\"Black\")", "DrawLine(0, 1, 2)", ":run")
	if errOut.Len() != 0 {
		t.Fatalf("unexpected errors %q", errOut.String())
	}
	if !strings.Contains(out.String(), "#..\n#..\n#..\n") {
		t.Fatalf("expected painted column, got %q", out.String())
	}
	if !strings.Contains(out.String(), "ok: 3 statements, 3 steps") {
		t.Fatalf("expected summary, got %q", out.String())
	}
	if r.Buffer() != "Spawn(0, 0)\nColor(\"Black\")\nDrawLine(0, 1, 2)\n" {
		t.Fatalf("unexpected buffer %q", r.Buffer())
	}
}

func TestHandleReportsDiagnostics(t *testing.T) {
	r, _, errOut := newTestREPL(t, 3)
	feed(t, r, "Fill()", ":run")
	if !strings.Contains(errOut.String(), "Syntax error at line 1: Program must start with Spawn") {
		t.Fatalf("expected syntax diagnostic, got %q", errOut.String())
	}
}

func TestHandleShowClearUndo(t *testing.T) {
	r, out, _ := newTestREPL(t, 3)
	feed(t, r, "Spawn(0,0)", "Fill()", ":undo", ":show")
	if !strings.Contains(out.String(), "1  Spawn(0,0)") || strings.Contains(out.String(), "Fill()") {
		t.Fatalf("unexpected listing %q", out.String())
	}
	feed(t, r, ":clear")
	if r.Buffer() != "" {
		t.Fatalf("expected empty buffer")
	}
	out.Reset()
	feed(t, r, ":show")
	if strings.TrimSpace(out.String()) != "(empty)" {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestHandleSize(t *testing.T) {
	r, out, errOut := newTestREPL(t, 3)
	feed(t, r, ":size 5")
	if r.sess.Size() != 5 || !strings.Contains(out.String(), "canvas reset to 5x5") {
		t.Fatalf("expected resize to 5, got %d", r.sess.Size())
	}
	feed(t, r, ":size 0", ":size abc")
	if r.sess.Size() != 5 || strings.Count(errOut.String(), "usage: :size N") != 2 {
		t.Fatalf("invalid sizes must be rejected, got %q", errOut.String())
	}
	out.Reset()
	feed(t, r, ":canvas")
	if strings.Count(out.String(), "\n") != 5 {
		t.Fatalf("expected 5 canvas rows, got %q", out.String())
	}
}

func TestHandleLoadSave(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.pw")
	if err := os.WriteFile(src, []byte("Spawn(1,1)\r\nFill()\r\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	r, _, errOut := newTestREPL(t, 3)
	feed(t, r, ":load "+src)
	if r.Buffer() != "Spawn(1,1)\nFill()\n" {
		t.Fatalf("unexpected buffer %q", r.Buffer())
	}

	dst := filepath.Join(dir, "out.pw")
	feed(t, r, ":save "+dst)
	data, err := os.ReadFile(dst)
	if err != nil || string(data) != r.Buffer() {
		t.Fatalf("unexpected saved file %q (%v)", data, err)
	}

	feed(t, r, ":load "+filepath.Join(dir, "missing.pw"))
	if !strings.Contains(errOut.String(), "load ") {
		t.Fatalf("expected load error, got %q", errOut.String())
	}
}

func TestHandleQuitAndUnknown(t *testing.T) {
	r, _, errOut := newTestREPL(t, 3)
	feed(t, r, ":bogus")
	if !strings.Contains(errOut.String(), "unknown command :bogus") {
		t.Fatalf("unexpected output %q", errOut.String())
	}
	if !r.Handle(context.Background(), ":quit") {
		t.Fatalf("expected :quit to exit")
	}
}

func TestComplete(t *testing.T) {
	got := complete(":ru")
	if len(got) != 1 || got[0] != ":run" {
		t.Fatalf("unexpected command completion %v", got)
	}
	got = complete("a <- getc")
	want := []string{"a <- GetCanvasSize", "a <- GetColorCount"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if complete("Spawn(") != nil {
		t.Fatalf("expected no completion for empty word")
	}
	got = complete("draw")
	if len(got) != 3 {
		t.Fatalf("expected three Draw keywords, got %v", got)
	}
}

func TestHandleListsScripts(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.pw", "a.gw", "readme.md"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("Spawn(0,0)\n"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	r, out, errOut := newTestREPL(t, 3)
	feed(t, r, ":ls "+dir)
	if out.String() != "a.gw\nb.pw\n" {
		t.Fatalf("unexpected listing %q", out.String())
	}

	feed(t, r, ":ls "+filepath.Join(dir, "nope"))
	if !strings.Contains(errOut.String(), "list ") {
		t.Fatalf("expected list error, got %q", errOut.String())
	}
}

func TestHandleVarsAndColors(t *testing.T) {
	r, out, _ := newTestREPL(t, 3)
	feed(t, r, ":vars")
	if out.String() != "(no variables)\n" {
		t.Fatalf("unexpected output %q", out.String())
	}

	feed(t, r, "Spawn(0, 0)", "n <- 2", "ok <- n == 2", ":run")
	out.Reset()
	feed(t, r, ":vars")
	if out.String() != "n = 2\nok = true\n" {
		t.Fatalf("unexpected variables %q", out.String())
	}

	out.Reset()
	feed(t, r, ":colors")
	if strings.Count(out.String(), "\n") != len(render.Legend()) || !strings.Contains(out.String(), " Gray\n") {
		t.Fatalf("unexpected legend %q", out.String())
	}
}

func TestHandleHistory(t *testing.T) {
	r, out, errOut := newTestREPL(t, 3)
	feed(t, r, ":history")
	if !strings.Contains(errOut.String(), "history is disabled") {
		t.Fatalf("expected disabled notice, got %q", errOut.String())
	}

	store := history.NewStore(filepath.Join(t.TempDir(), "runs.json"), 10)
	r.runs = store
	feed(t, r, "Spawn(0, 0)", "Color(\"Black\")", "DrawLine(0, 1, 2)", ":run")
	entries := store.Entries()
	if len(entries) != 1 || entries[0].Status != history.StatusOK {
		t.Fatalf("expected one recorded run, got %+v", entries)
	}
	id := entries[0].ID

	out.Reset()
	feed(t, r, ":history")
	if !strings.Contains(out.String(), id) || !strings.Contains(out.String(), "3x3  <repl>") {
		t.Fatalf("unexpected listing %q", out.String())
	}

	out.Reset()
	feed(t, r, ":history show "+id)
	if out.String() != "#..\n#..\n#..\n" {
		t.Fatalf("unexpected recorded canvas %q", out.String())
	}

	out.Reset()
	feed(t, r, ":history rm "+id)
	if !strings.Contains(out.String(), "deleted "+id) || len(store.Entries()) != 0 {
		t.Fatalf("expected run to be deleted, got %q", out.String())
	}
	errOut.Reset()
	feed(t, r, ":history show "+id, ":history rm "+id)
	if strings.Count(errOut.String(), "no run") != 2 {
		t.Fatalf("expected missing run errors, got %q", errOut.String())
	}
}
