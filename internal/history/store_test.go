package history

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/unkn0wn-root/walle/internal/errdef"
)

func TestStoreByFileFiltersAndSorts(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "history.json")
	store := NewStore(path, 10)

	fileA := filepath.Join(dir, "a.pw")
	fileB := filepath.Join(dir, "b.pw")

	t1 := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	t2 := t1.Add(2 * time.Minute)

	if err := store.Append(Entry{ID: "1", ExecutedAt: t1, File: fileA}); err != nil {
		t.Fatalf("append entry 1: %v", err)
	}
	if err := store.Append(Entry{ID: "2", ExecutedAt: t2, File: fileA}); err != nil {
		t.Fatalf("append entry 2: %v", err)
	}
	if err := store.Append(Entry{ID: "3", ExecutedAt: t1, File: fileB}); err != nil {
		t.Fatalf("append entry 3: %v", err)
	}

	got := store.ByFile(filepath.Join(dir, ".", "a.pw"))
	if len(got) != 2 {
		t.Fatalf("expected 2 entries for file A, got %d", len(got))
	}
	if got[0].ID != "2" || got[1].ID != "1" {
		t.Fatalf("expected newest-first order, got %q then %q", got[0].ID, got[1].ID)
	}

	latest, ok := store.Latest(fileA)
	if !ok || latest.ID != "2" {
		t.Fatalf("expected latest entry 2, got %+v", latest)
	}

	if len(store.ByFile("")) != 0 {
		t.Fatalf("expected empty result for blank path")
	}
}

func TestStorePersistsAndReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "history.json")
	store := NewStore(path, 10)
	entry := Entry{
		File:        "draw.pw",
		Size:        8,
		Status:      StatusRuntime,
		Diagnostics: []string{"Error at Line:3: Invalid directions"},
		Steps:       3,
		Canvas:      "........\n",
	}
	if err := store.Append(entry); err != nil {
		t.Fatalf("append: %v", err)
	}

	reloaded := NewStore(path, 10)
	if err := reloaded.Load(); err != nil {
		t.Fatalf("load: %v", err)
	}
	entries := reloaded.Entries()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	got := entries[0]
	if got.ID == "" || got.ExecutedAt.IsZero() {
		t.Fatalf("expected generated id and timestamp, got %+v", got)
	}
	if got.Status != StatusRuntime || got.Size != 8 || len(got.Diagnostics) != 1 {
		t.Fatalf("unexpected entry %+v", got)
	}
	if _, ok := reloaded.Get(got.ID); !ok {
		t.Fatalf("expected Get to find %q", got.ID)
	}
}

func TestStoreTruncatesToMaxEntries(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "history.json"), 2)
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	for i := range 4 {
		if err := store.Append(Entry{ExecutedAt: base.Add(time.Duration(i) * time.Second)}); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}
	entries := store.Entries()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if !entries[0].ExecutedAt.Equal(base.Add(3 * time.Second)) {
		t.Fatalf("expected newest entry first, got %v", entries[0].ExecutedAt)
	}
}

func TestStoreDelete(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "history.json"), 10)
	if err := store.Append(Entry{ID: "a"}); err != nil {
		t.Fatalf("append: %v", err)
	}
	ok, err := store.Delete("a")
	if err != nil || !ok {
		t.Fatalf("expected delete to succeed, got %v %v", ok, err)
	}
	ok, err = store.Delete("a")
	if err != nil || ok {
		t.Fatalf("expected second delete to report missing, got %v %v", ok, err)
	}
}

func TestStoreLoadRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	err := NewStore(path, 10).Load()
	if err == nil {
		t.Fatalf("expected parse error")
	}
	if errdef.CodeOf(err) != errdef.CodeHistory {
		t.Fatalf("expected history code, got %q", errdef.CodeOf(err))
	}
}

func TestNewIDIsUnique(t *testing.T) {
	a, b := NewID(), NewID()
	if a == "" || a == b {
		t.Fatalf("expected distinct ids, got %q and %q", a, b)
	}
}

func TestDiff(t *testing.T) {
	prev := Entry{File: "a.pw", Canvas: "..\n..\n"}
	cur := Entry{File: "a.pw", Canvas: "..\nR.\n"}
	out := Diff(prev, cur)
	if !strings.Contains(out, "-..") || !strings.Contains(out, "+R.") {
		t.Fatalf("unexpected diff:\n%s", out)
	}
	if Diff(prev, Entry{Canvas: "..\n.."}) != "" {
		t.Fatalf("expected empty diff for identical canvases")
	}
}
