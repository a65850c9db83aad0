package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/unkn0wn-root/walle/internal/canvas"
)

type Palette map[canvas.Color]lipgloss.Color

func DefaultPalette() Palette {
	p := Palette{
		canvas.White:  lipgloss.Color("#F5F5F5"),
		canvas.Black:  lipgloss.Color("#1C1C1C"),
		canvas.Red:    lipgloss.Color("#E5484D"),
		canvas.Green:  lipgloss.Color("#46A758"),
		canvas.Blue:   lipgloss.Color("#3E63DD"),
		canvas.Yellow: lipgloss.Color("#F5D90A"),
		canvas.Orange: lipgloss.Color("#F76808"),
		canvas.Purple: lipgloss.Color("#8E4EC6"),
	}
	for c, hex := range namedHex {
		p[c] = lipgloss.Color(hex)
	}
	return p
}

// WithOverrides returns a copy of p with colors replaced from overrides,
// keyed by palette name in any case. Unknown names are ignored.
func (p Palette) WithOverrides(overrides map[string]string) Palette {
	out := make(Palette, len(p))
	for k, v := range p {
		out[k] = v
	}
	for name, hex := range overrides {
		c, ok := canvas.ParseColor(strings.TrimSpace(name))
		if !ok || c == canvas.Transparent {
			continue
		}
		hex = strings.TrimSpace(hex)
		if hex == "" {
			continue
		}
		out[c] = lipgloss.Color(hex)
	}
	return out
}

func (p Palette) Color(c canvas.Color) lipgloss.Color {
	if col, ok := p[c]; ok {
		return col
	}
	return lipgloss.Color("")
}

// light reports whether the cursor marker needs a dark foreground on c.
func light(c canvas.Color) bool {
	switch c {
	case canvas.White, canvas.Yellow, canvas.Orange, canvas.Green:
		return true
	}
	hex, ok := namedHex[c]
	if !ok {
		return false
	}
	var r, g, b int
	if _, err := fmt.Sscanf(hex, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return false
	}
	// Rec. 601 luma.
	return 299*r+587*g+114*b > 150_000
}
