package config

import (
	"strings"
	"time"

	"github.com/unkn0wn-root/walle/internal/canvas"
)

type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

type CanvasSettings struct {
	Size     int    `json:"size"      toml:"size"      yaml:"size"`
	MaxSteps int    `json:"max_steps" toml:"max_steps" yaml:"max_steps"`
	Timeout  string `json:"timeout"   toml:"timeout"   yaml:"timeout"`
}

type HistorySettings struct {
	Enabled    bool   `json:"enabled"     toml:"enabled"     yaml:"enabled"`
	Path       string `json:"path"        toml:"path"        yaml:"path"`
	MaxEntries int    `json:"max_entries" toml:"max_entries" yaml:"max_entries"`
}

type RenderSettings struct {
	Color  ColorMode `json:"color"  toml:"color"  yaml:"color"`
	Cursor bool      `json:"cursor" toml:"cursor" yaml:"cursor"`
	ASCII  bool      `json:"ascii"  toml:"ascii"  yaml:"ascii"`
}

const (
	CanvasSizeDefault  = 32
	CanvasSizeMin      = 1
	CanvasSizeMax      = 1024
	HistoryMaxDefault  = 200
	HistoryMaxEntryCap = 10000
)

func DefaultSettings() Settings {
	return Settings{
		Canvas:  CanvasSettings{Size: CanvasSizeDefault},
		History: HistorySettings{Enabled: false, MaxEntries: HistoryMaxDefault},
		Render:  RenderSettings{Color: ColorAuto, Cursor: true},
	}
}

// NormaliseSettings fills defaults and clamps out-of-range values. Palette
// entries with an unknown color name or a malformed hex value are dropped.
func NormaliseSettings(in Settings) Settings {
	out := DefaultSettings()
	out.Canvas.Size = clampInt(in.Canvas.Size, CanvasSizeMin, CanvasSizeMax, CanvasSizeDefault)
	out.Canvas.MaxSteps = max(in.Canvas.MaxSteps, 0)
	if _, err := time.ParseDuration(strings.TrimSpace(in.Canvas.Timeout)); err == nil {
		out.Canvas.Timeout = strings.TrimSpace(in.Canvas.Timeout)
	}

	out.History.Enabled = in.History.Enabled
	out.History.Path = strings.TrimSpace(in.History.Path)
	out.History.MaxEntries = clampInt(in.History.MaxEntries, 1, HistoryMaxEntryCap, HistoryMaxDefault)

	out.Render.Color = normaliseColorMode(in.Render.Color, ColorAuto)
	out.Render.Cursor = in.Render.Cursor
	out.Render.ASCII = in.Render.ASCII

	for name, hex := range in.Palette {
		c, ok := canvas.ParseColor(strings.TrimSpace(name))
		if !ok || c == canvas.Transparent || !validHex(hex) {
			continue
		}
		if out.Palette == nil {
			out.Palette = map[string]string{}
		}
		out.Palette[strings.ToLower(c.String())] = strings.ToLower(strings.TrimSpace(hex))
	}
	return out
}

// TimeoutDuration returns the parsed timeout, or zero for none.
func (c CanvasSettings) TimeoutDuration() time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(c.Timeout))
	if err != nil || d < 0 {
		return 0
	}
	return d
}

func normaliseColorMode(in ColorMode, def ColorMode) ColorMode {
	switch strings.ToLower(strings.TrimSpace(string(in))) {
	case string(ColorAuto):
		return ColorAuto
	case string(ColorAlways):
		return ColorAlways
	case string(ColorNever):
		return ColorNever
	default:
		return def
	}
}

func validHex(s string) bool {
	s = strings.TrimSpace(s)
	if len(s) != 7 || s[0] != '#' {
		return false
	}
	for _, ch := range s[1:] {
		switch {
		case ch >= '0' && ch <= '9', ch >= 'a' && ch <= 'f', ch >= 'A' && ch <= 'F':
		default:
			return false
		}
	}
	return true
}

func clampInt[T ~int](value, min, max, fallback T) T {
	if value == 0 {
		return fallback
	}
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
