package watcher

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/unkn0wn-root/walle/internal/errdef"
)

type EventKind int

const (
	EventChanged EventKind = iota
	EventMissing
)

func (k EventKind) String() string {
	switch k {
	case EventChanged:
		return "changed"
	case EventMissing:
		return "missing"
	default:
		return "unknown"
	}
}

type Fingerprint struct {
	Mod  time.Time
	Size int64
	Hash string
}

// Event reports a change to a tracked script. Source holds the new
// contents for EventChanged and is empty for EventMissing.
type Event struct {
	Path   string
	Kind   EventKind
	Source string
	Prev   Fingerprint
	Curr   Fingerprint
}

type Options struct {
	Interval time.Duration
	Buffer   int
}

type entry struct {
	path    string
	fp      Fingerprint
	missing bool
}

// Watcher polls tracked scripts. Events are dropped, not queued, when the
// consumer falls behind by more than Buffer events.
type Watcher struct {
	mu       sync.RWMutex
	entries  map[string]*entry
	out      chan Event
	interval time.Duration
	stop     chan struct{}
	wg       sync.WaitGroup
	started  bool
	closed   bool
}

const (
	defaultInterval = 500 * time.Millisecond
	defaultBuffer   = 16
	hashPrefix      = "sha256:"
)

func New(opts Options) *Watcher {
	interval := opts.Interval
	if interval <= 0 {
		interval = defaultInterval
	}
	buf := opts.Buffer
	if buf <= 0 {
		buf = defaultBuffer
	}
	return &Watcher{
		entries:  make(map[string]*entry),
		out:      make(chan Event, buf),
		interval: interval,
	}
}

func (w *Watcher) Events() <-chan Event {
	return w.out
}

func (w *Watcher) Start() {
	w.mu.Lock()
	if w.started || w.closed {
		w.mu.Unlock()
		return
	}
	w.started = true
	w.stop = make(chan struct{})
	w.wg.Add(1)
	w.mu.Unlock()

	go func() {
		defer w.wg.Done()
		t := time.NewTicker(w.interval)
		defer t.Stop()
		for {
			select {
			case <-t.C:
				w.Scan()
			case <-w.stop:
				return
			}
		}
	}()
}

func (w *Watcher) Stop() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.closed = true
	if w.started && w.stop != nil {
		close(w.stop)
	}
	w.mu.Unlock()
	if w.started {
		w.wg.Wait()
	}
	close(w.out)
}

// Track reads path and starts watching it from its current contents.
func (w *Watcher) Track(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errdef.Wrap(errdef.CodeFilesystem, err, "read script %q", path)
	}
	w.TrackSource(path, data)
	return data, nil
}

// TrackSource watches path using data as the known contents.
func (w *Watcher) TrackSource(path string, data []byte) {
	clean, ok := cleanPath(path)
	if !ok {
		return
	}
	fp := buildFingerprint(clean, data)

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	w.entries[clean] = &entry{path: clean, fp: fp}
}

func (w *Watcher) Forget(path string) {
	clean, ok := cleanPath(path)
	if !ok {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.entries, clean)
}

func (w *Watcher) Scan() {
	if w.isClosed() {
		return
	}

	for _, e := range w.snapshot() {
		if evt, ok := w.check(e); ok {
			w.emit(evt)
		}
	}
}

// Watch tracks path and calls fn for every event until ctx is done. The
// watcher is stopped on return.
func (w *Watcher) Watch(ctx context.Context, path string, fn func(Event)) error {
	if _, err := w.Track(path); err != nil {
		return err
	}
	w.Start()
	defer w.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case evt, ok := <-w.out:
			if !ok {
				return nil
			}
			fn(evt)
		}
	}
}

func (w *Watcher) snapshot() []*entry {
	w.mu.RLock()
	defer w.mu.RUnlock()

	list := make([]*entry, 0, len(w.entries))
	for _, e := range w.entries {
		list = append(list, &entry{
			path:    e.path,
			fp:      e.fp,
			missing: e.missing,
		})
	}
	return list
}

func (w *Watcher) check(e *entry) (Event, bool) {
	info, err := os.Stat(e.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if e.missing {
				return Event{}, false
			}
			w.markMissing(e.path)
			return Event{Path: e.path, Kind: EventMissing, Prev: e.fp}, true
		}
		return Event{}, false
	}

	if !e.missing && metaSame(info, e.fp) {
		return Event{}, false
	}

	data, readErr := os.ReadFile(e.path)
	if readErr != nil {
		w.markMissing(e.path)
		return Event{Path: e.path, Kind: EventMissing, Prev: e.fp}, true
	}

	next := fingerprintFromStat(info, data)
	prev := e.fp
	w.updateEntry(e.path, next, false)
	// Editors often rewrite a file without changing it; only content counts.
	if !e.missing && next.Hash == prev.Hash {
		return Event{}, false
	}

	return Event{
		Path:   e.path,
		Kind:   EventChanged,
		Source: string(data),
		Prev:   prev,
		Curr:   next,
	}, true
}

func (w *Watcher) markMissing(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if e, ok := w.entries[path]; ok {
		e.missing = true
	}
}

func (w *Watcher) updateEntry(path string, fp Fingerprint, missing bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if e, ok := w.entries[path]; ok {
		e.fp = fp
		e.missing = missing
	}
}

func (w *Watcher) emit(evt Event) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.closed {
		return
	}
	select {
	case w.out <- evt:
	default:
	}
}

func (w *Watcher) isClosed() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.closed
}

func metaSame(info fs.FileInfo, fp Fingerprint) bool {
	return info.ModTime().Equal(fp.Mod) && info.Size() == fp.Size
}

func cleanPath(path string) (string, bool) {
	if path == "" {
		return "", false
	}
	clean := filepath.Clean(path)
	if clean == "." {
		return "", false
	}
	return clean, true
}

func buildFingerprint(path string, data []byte) Fingerprint {
	info, err := os.Stat(path)
	if err != nil {
		return Fingerprint{Hash: hashBytes(data), Size: int64(len(data))}
	}
	return fingerprintFromStat(info, data)
}

func fingerprintFromStat(info fs.FileInfo, data []byte) Fingerprint {
	return Fingerprint{
		Mod:  info.ModTime(),
		Size: int64(len(data)),
		Hash: hashBytes(data),
	}
}

func hashBytes(data []byte) string {
	if len(data) == 0 {
		return hashPrefix + "0"
	}
	sum := sha256.Sum256(data)
	return hashPrefix + hex.EncodeToString(sum[:])
}
