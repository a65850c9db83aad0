package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/MakeNowJust/heredoc"
)

func TestLoadSettingsReturnsDefaultHandleWhenMissing(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("WALLE_CONFIG_DIR", dir)

	settings, handle, err := LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings returned error: %v", err)
	}
	expectedPath := filepath.Join(dir, "settings.toml")
	if handle.Path != expectedPath {
		t.Fatalf("expected handle path %q, got %q", expectedPath, handle.Path)
	}
	if handle.Format != SettingsFormatTOML {
		t.Fatalf("expected format %q, got %q", SettingsFormatTOML, handle.Format)
	}
	if settings.Canvas.Size != CanvasSizeDefault {
		t.Fatalf("expected default size %d, got %d", CanvasSizeDefault, settings.Canvas.Size)
	}
	if settings.Render.Color != ColorAuto || !settings.Render.Cursor {
		t.Fatalf("unexpected render defaults %+v", settings.Render)
	}
}

func TestSaveAndLoadSettingsTOML(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("WALLE_CONFIG_DIR", dir)

	want := DefaultSettings()
	want.Canvas.Size = 64
	want.Canvas.Timeout = "2s"
	want.Palette = map[string]string{"Red": "#FF0000"}
	if err := SaveSettings(want, SettingsHandle{}); err != nil {
		t.Fatalf("SaveSettings failed: %v", err)
	}

	got, handle, err := LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings failed: %v", err)
	}
	if got.Canvas.Size != 64 || got.Canvas.TimeoutDuration() != 2*time.Second {
		t.Fatalf("unexpected canvas settings %+v", got.Canvas)
	}
	if got.Palette["red"] != "#ff0000" {
		t.Fatalf("expected normalised palette, got %#v", got.Palette)
	}
	if handle.Format != SettingsFormatTOML {
		t.Fatalf("expected format %q after save, got %q", SettingsFormatTOML, handle.Format)
	}
}

func TestLoadSettingsYAML(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("WALLE_CONFIG_DIR", dir)

	src := heredoc.Doc(`
		canvas:
		  size: 16
		  max_steps: 5000
		history:
		  enabled: true
		  max_entries: 10
		render:
		  color: NEVER
		palette:
		  blue: "#0000aa"
		  mauve: "#ff00ff"
	`)
	path := filepath.Join(dir, "settings.yaml")
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("write yaml settings: %v", err)
	}

	got, handle, err := LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings failed: %v", err)
	}
	if handle.Format != SettingsFormatYAML || handle.Path != path {
		t.Fatalf("unexpected handle %+v", handle)
	}
	if got.Canvas.Size != 16 || got.Canvas.MaxSteps != 5000 {
		t.Fatalf("unexpected canvas settings %+v", got.Canvas)
	}
	if !got.History.Enabled || got.History.MaxEntries != 10 {
		t.Fatalf("unexpected history settings %+v", got.History)
	}
	if got.Render.Color != ColorNever {
		t.Fatalf("expected color mode never, got %q", got.Render.Color)
	}
	if len(got.Palette) != 1 || got.Palette["blue"] != "#0000aa" {
		t.Fatalf("expected unknown palette names dropped, got %#v", got.Palette)
	}
}

func TestLoadSettingsYAMLRejectsUnknownFields(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("WALLE_CONFIG_DIR", dir)
	if err := os.WriteFile(filepath.Join(dir, "settings.yaml"), []byte("canvs:\n  size: 3\n"), 0o644); err != nil {
		t.Fatalf("write yaml settings: %v", err)
	}
	if _, _, err := LoadSettings(); err == nil {
		t.Fatalf("expected parse error for unknown field")
	}
}

func TestLoadSettingsJSON(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("WALLE_CONFIG_DIR", dir)

	payload := Settings{Canvas: CanvasSettings{Size: 5000}}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		t.Fatalf("marshal json: %v", err)
	}
	path := filepath.Join(dir, "settings.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write json settings: %v", err)
	}

	got, handle, err := LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings failed: %v", err)
	}
	if got.Canvas.Size != CanvasSizeMax {
		t.Fatalf("expected size clamped to %d, got %d", CanvasSizeMax, got.Canvas.Size)
	}
	if handle.Format != SettingsFormatJSON {
		t.Fatalf("expected json format, got %q", handle.Format)
	}
	if handle.Path != path {
		t.Fatalf("expected handle path %q, got %q", path, handle.Path)
	}
}

func TestNormaliseSettings(t *testing.T) {
	got := NormaliseSettings(Settings{
		Canvas:  CanvasSettings{Size: -4, MaxSteps: -1, Timeout: "soon"},
		History: HistorySettings{MaxEntries: 0, Path: "  /tmp/h.json "},
		Render:  RenderSettings{Color: "rainbow"},
		Palette: map[string]string{"transparent": "#000000", "green": "00ff00"},
	})
	if got.Canvas.Size != CanvasSizeMin {
		t.Fatalf("expected size %d, got %d", CanvasSizeMin, got.Canvas.Size)
	}
	if got.Canvas.MaxSteps != 0 || got.Canvas.Timeout != "" || got.Canvas.TimeoutDuration() != 0 {
		t.Fatalf("unexpected canvas limits %+v", got.Canvas)
	}
	if got.History.MaxEntries != HistoryMaxDefault || got.History.Path != "/tmp/h.json" {
		t.Fatalf("unexpected history settings %+v", got.History)
	}
	if got.Render.Color != ColorAuto {
		t.Fatalf("expected fallback color mode, got %q", got.Render.Color)
	}
	if len(got.Palette) != 0 {
		t.Fatalf("expected invalid palette entries dropped, got %#v", got.Palette)
	}
}

func TestDirHonoursEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("WALLE_CONFIG_DIR", dir)
	if Dir() != dir {
		t.Fatalf("expected %q, got %q", dir, Dir())
	}
	if DefaultHistoryPath() != filepath.Join(dir, "history.json") {
		t.Fatalf("unexpected history path %q", DefaultHistoryPath())
	}
}
