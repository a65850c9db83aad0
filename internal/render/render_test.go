package render

import (
	"bytes"
	"image"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/unkn0wn-root/walle/internal/canvas"
)

func sampleGrid() canvas.Grid {
	g := canvas.Blank(3)
	g.Cells[0] = canvas.Red
	g.Cells[4] = canvas.Black
	g.Cells[8] = canvas.Purple
	return g
}

func TestASCII(t *testing.T) {
	got := ASCII(sampleGrid())
	want := "R..\n.#.\n..P\n"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
	if ASCII(canvas.Grid{}) != "" {
		t.Fatalf("expected empty output for empty grid")
	}
}

func TestGlyphUnknownColor(t *testing.T) {
	if Glyph(canvas.Color(200)) != '?' {
		t.Fatalf("expected '?' for unknown color")
	}
	if Glyph(canvas.Transparent) != ' ' {
		t.Fatalf("expected blank glyph for transparent")
	}
}

func TestLegendSkipsTransparent(t *testing.T) {
	legend := Legend()
	if len(legend) != len(canvas.Palette())-1 {
		t.Fatalf("expected %d legend entries, got %d", len(canvas.Palette())-1, len(legend))
	}
	if legend[0] != ". White" {
		t.Fatalf("unexpected first entry %q", legend[0])
	}
}

func TestPlainCanvasMarksCursor(t *testing.T) {
	r := New(&bytes.Buffer{}, Options{NoColor: true, Cursor: true})
	if !r.Plain() {
		t.Fatalf("expected plain renderer")
	}
	got := r.Canvas(sampleGrid(), &image.Point{X: 1, Y: 0})
	if got != "R@.\n.#.\n..P\n" {
		t.Fatalf("unexpected plain canvas %q", got)
	}
	if r.Canvas(sampleGrid(), &image.Point{X: 7, Y: 7}) != ASCII(sampleGrid()) {
		t.Fatalf("out of range cursor must be ignored")
	}
	if r.Canvas(sampleGrid(), nil) != ASCII(sampleGrid()) {
		t.Fatalf("nil cursor must be ignored")
	}
}

func TestPlainCanvasWithoutCursorOption(t *testing.T) {
	r := New(&bytes.Buffer{}, Options{NoColor: true})
	if got := r.Canvas(sampleGrid(), &image.Point{}); got != ASCII(sampleGrid()) {
		t.Fatalf("expected cursor to be hidden, got %q", got)
	}
}

func TestColorCanvasEmitsEscapes(t *testing.T) {
	r := New(&bytes.Buffer{}, Options{ForceColor: true, Cursor: true})
	if r.Plain() {
		t.Fatalf("expected color renderer")
	}
	out := r.Canvas(sampleGrid(), &image.Point{X: 2, Y: 2})
	if !strings.Contains(out, "\x1b[") {
		t.Fatalf("expected ANSI escapes in %q", out)
	}
	if n := strings.Count(out, "\n"); n != 3 {
		t.Fatalf("expected 3 rows, got %d", n)
	}
	if strings.Count(out, "<>") != 1 {
		t.Fatalf("expected a single cursor marker")
	}
}

func TestPaletteOverrides(t *testing.T) {
	p := DefaultPalette().WithOverrides(map[string]string{
		"RED":         "#ff0000",
		"transparent": "#000000",
		"teal":        "#00ffff",
		"blue":        " ",
	})
	if p.Color(canvas.Red) != lipgloss.Color("#ff0000") {
		t.Fatalf("expected red override, got %q", p.Color(canvas.Red))
	}
	if p.Color(canvas.Blue) != DefaultPalette().Color(canvas.Blue) {
		t.Fatalf("blank override must keep default")
	}
	if _, ok := p[canvas.Transparent]; ok {
		t.Fatalf("transparent must not be assignable")
	}
	if DefaultPalette().Color(canvas.Red) == lipgloss.Color("#ff0000") {
		t.Fatalf("WithOverrides must not mutate the receiver")
	}
}

func TestDiagnosticsOnePerLine(t *testing.T) {
	r := New(&bytes.Buffer{}, Options{NoColor: true})
	out := r.Diagnostics([]string{"Syntax error at line 1: Expected (", "Error at Line:2: Invalid directions"})
	if strings.Count(out, "\n") != 2 || !strings.Contains(out, "Expected (") {
		t.Fatalf("unexpected diagnostics %q", out)
	}
	if r.Diagnostics(nil) != "" {
		t.Fatalf("expected empty output")
	}
}

func TestGlyphNamedColors(t *testing.T) {
	cases := map[canvas.Color]byte{
		canvas.Gray:        'g',
		canvas.Magenta:     'm',
		canvas.YellowGreen: 'y',
		canvas.Red:         'R',
	}
	for c, want := range cases {
		if got := Glyph(c); got != want {
			t.Fatalf("%s: expected %q, got %q", c, want, got)
		}
	}
}

func TestDefaultPaletteCoversEveryColor(t *testing.T) {
	p := DefaultPalette()
	for _, c := range canvas.Palette() {
		if c == canvas.Transparent {
			continue
		}
		if p.Color(c) == lipgloss.Color("") {
			t.Fatalf("missing palette entry for %s", c)
		}
	}
	if p.Color(canvas.Gray) != lipgloss.Color("#808080") {
		t.Fatalf("unexpected gray %q", p.Color(canvas.Gray))
	}
}

func TestLightNamedColors(t *testing.T) {
	if !light(canvas.Ivory) || !light(canvas.Gold) {
		t.Fatalf("expected ivory and gold to be light")
	}
	if light(canvas.Navy) || light(canvas.Black) {
		t.Fatalf("expected navy and black to be dark")
	}
}
