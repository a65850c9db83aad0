package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/unkn0wn-root/walle/internal/errdef"
)

func writeScript(t *testing.T, path, src string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func nextEvent(t *testing.T, w *Watcher) Event {
	t.Helper()
	select {
	case evt := <-w.Events():
		return evt
	default:
		t.Fatalf("expected an event")
		return Event{}
	}
}

func expectNoEvent(t *testing.T, w *Watcher) {
	t.Helper()
	select {
	case evt := <-w.Events():
		t.Fatalf("unexpected event %+v", evt)
	default:
	}
}

func TestScanReportsContentChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "draw.pw")
	writeScript(t, path, "Spawn(0,0)\n")

	w := New(Options{})
	defer w.Stop()
	data, err := w.Track(path)
	if err != nil {
		t.Fatalf("track: %v", err)
	}
	if string(data) != "Spawn(0,0)\n" {
		t.Fatalf("unexpected tracked data %q", data)
	}

	w.Scan()
	expectNoEvent(t, w)

	writeScript(t, path, "Spawn(1,1)\nFill()\n")
	w.Scan()
	evt := nextEvent(t, w)
	if evt.Kind != EventChanged || evt.Source != "Spawn(1,1)\nFill()\n" {
		t.Fatalf("unexpected event %+v", evt)
	}
	if evt.Prev.Hash == evt.Curr.Hash {
		t.Fatalf("expected fingerprints to differ")
	}
}

func TestScanIgnoresTouchWithoutChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "same.pw")
	writeScript(t, path, "Spawn(0,0)\n")

	w := New(Options{})
	defer w.Stop()
	if _, err := w.Track(path); err != nil {
		t.Fatalf("track: %v", err)
	}
	later := time.Now().Add(time.Hour)
	if err := os.Chtimes(path, later, later); err != nil {
		t.Fatalf("chtimes: %v", err)
	}
	w.Scan()
	expectNoEvent(t, w)
}

func TestScanReportsMissingOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gone.pw")
	writeScript(t, path, "Spawn(0,0)\n")

	w := New(Options{})
	defer w.Stop()
	if _, err := w.Track(path); err != nil {
		t.Fatalf("track: %v", err)
	}
	if err := os.Remove(path); err != nil {
		t.Fatalf("remove: %v", err)
	}
	w.Scan()
	if evt := nextEvent(t, w); evt.Kind != EventMissing {
		t.Fatalf("expected missing event, got %v", evt.Kind)
	}
	w.Scan()
	expectNoEvent(t, w)

	writeScript(t, path, "Spawn(0,0)\n")
	w.Scan()
	if evt := nextEvent(t, w); evt.Kind != EventChanged {
		t.Fatalf("expected changed event after recreate, got %v", evt.Kind)
	}
}

func TestForgetStopsReporting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.pw")
	writeScript(t, path, "x")

	w := New(Options{})
	defer w.Stop()
	w.TrackSource(path, []byte("x"))
	w.Forget(path)
	writeScript(t, path, "y")
	w.Scan()
	expectNoEvent(t, w)
}

func TestTrackMissingFile(t *testing.T) {
	w := New(Options{})
	defer w.Stop()
	_, err := w.Track(filepath.Join(t.TempDir(), "nope.pw"))
	if errdef.CodeOf(err) != errdef.CodeFilesystem {
		t.Fatalf("expected filesystem error, got %v", err)
	}
}

func TestWatchDeliversEvents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "live.pw")
	writeScript(t, path, "Spawn(0,0)\n")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	w := New(Options{Interval: 10 * time.Millisecond})
	got := make(chan Event, 1)
	done := make(chan error, 1)
	go func() {
		done <- w.Watch(ctx, path, func(evt Event) {
			select {
			case got <- evt:
			default:
			}
			cancel()
		})
	}()

	// Wait for Track to record the initial fingerprint.
	deadline := time.Now().Add(2 * time.Second)
	for {
		w.mu.RLock()
		n := len(w.entries)
		w.mu.RUnlock()
		if n == 1 || time.Now().After(deadline) {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}
	writeScript(t, path, "Spawn(2,2)\nFill()\n")

	if err := <-done; err != nil {
		t.Fatalf("watch: %v", err)
	}
	select {
	case evt := <-got:
		if evt.Source != "Spawn(2,2)\nFill()\n" {
			t.Fatalf("unexpected source %q", evt.Source)
		}
	default:
		t.Fatalf("expected an event before cancel")
	}
}

func TestEventKindString(t *testing.T) {
	if EventChanged.String() != "changed" || EventMissing.String() != "missing" {
		t.Fatalf("unexpected kind names")
	}
}
