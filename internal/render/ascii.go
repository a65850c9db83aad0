package render

import (
	"strings"

	"github.com/unkn0wn-root/walle/internal/canvas"
)

var glyphs = [...]byte{
	canvas.Transparent: ' ',
	canvas.White:       '.',
	canvas.Black:       '#',
	canvas.Red:         'R',
	canvas.Green:       'G',
	canvas.Blue:        'B',
	canvas.Yellow:      'Y',
	canvas.Orange:      'O',
	canvas.Purple:      'P',
}

// Glyph is the single-character form of c used by the plain renderer.
// Colors past the basic eight share the lower-cased first letter of their
// name, so Gray and Gold both print as 'g'.
func Glyph(c canvas.Color) byte {
	if int(c) < len(glyphs) {
		return glyphs[c]
	}
	name := c.String()
	if name == "Unknown" {
		return '?'
	}
	return name[0] | 0x20
}

// ASCII renders g one row per line, each line ending in '\n'.
func ASCII(g canvas.Grid) string {
	if g.Size == 0 {
		return ""
	}
	var b strings.Builder
	b.Grow(g.Size * (g.Size + 1))
	for y := range g.Size {
		for x := range g.Size {
			b.WriteByte(Glyph(g.At(x, y)))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Legend lists the glyph for every paintable color, e.g. ". White".
func Legend() []string {
	var out []string
	for _, c := range canvas.Palette() {
		if c == canvas.Transparent {
			continue
		}
		out = append(out, string(Glyph(c))+" "+c.String())
	}
	return out
}
