package render

import (
	"image"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/unkn0wn-root/walle/internal/canvas"
)

type Options struct {
	// NoColor forces plain glyph output. ForceColor forces true color even
	// when w is not a terminal. NoColor wins when both are set.
	NoColor    bool
	ForceColor bool
	Cursor     bool
	Palette    map[string]string
}

type Renderer struct {
	r       *lipgloss.Renderer
	theme   Theme
	palette Palette
	cursor  bool
}

func New(w io.Writer, opts Options) *Renderer {
	lr := lipgloss.NewRenderer(w)
	switch {
	case opts.NoColor:
		lr.SetColorProfile(termenv.Ascii)
	case opts.ForceColor:
		lr.SetColorProfile(termenv.TrueColor)
	}
	return &Renderer{
		r:       lr,
		theme:   NewTheme(lr),
		palette: DefaultPalette().WithOverrides(opts.Palette),
		cursor:  opts.Cursor,
	}
}

func (r *Renderer) Theme() Theme { return r.theme }

func (r *Renderer) Lipgloss() *lipgloss.Renderer { return r.r }

// Plain reports whether output carries no color, in which case Canvas falls
// back to the glyph form.
func (r *Renderer) Plain() bool {
	return r.r.ColorProfile() == termenv.Ascii
}

// Canvas renders g with two terminal columns per cell. cursor may be nil;
// it is ignored when the renderer was built without Options.Cursor.
func (r *Renderer) Canvas(g canvas.Grid, cursor *image.Point) string {
	if g.Size == 0 {
		return ""
	}
	if r.Plain() {
		return r.plain(g, cursor)
	}

	styles := make(map[canvas.Color]lipgloss.Style, len(r.palette))
	cell := func(c canvas.Color) lipgloss.Style {
		st, ok := styles[c]
		if !ok {
			st = r.r.NewStyle().Background(r.palette.Color(c))
			styles[c] = st
		}
		return st
	}

	var b strings.Builder
	for y := range g.Size {
		for x := range g.Size {
			c := g.At(x, y)
			if r.showCursor(cursor, x, y) {
				fg := lipgloss.Color("#FFFFFF")
				if light(c) {
					fg = lipgloss.Color("#000000")
				}
				b.WriteString(cell(c).Foreground(fg).Bold(true).Render("<>"))
				continue
			}
			b.WriteString(cell(c).Render("  "))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func (r *Renderer) plain(g canvas.Grid, cursor *image.Point) string {
	out := ASCII(g)
	if !r.cursor || cursor == nil || cursor.X < 0 || cursor.Y < 0 || cursor.X >= g.Size || cursor.Y >= g.Size {
		return out
	}
	buf := []byte(out)
	buf[cursor.Y*(g.Size+1)+cursor.X] = '@'
	return string(buf)
}

func (r *Renderer) showCursor(cursor *image.Point, x, y int) bool {
	return r.cursor && cursor != nil && cursor.X == x && cursor.Y == y
}

// Diagnostics renders one styled line per message.
func (r *Renderer) Diagnostics(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	var b strings.Builder
	for _, line := range lines {
		b.WriteString(r.theme.Error.Render(line))
		b.WriteByte('\n')
	}
	return b.String()
}
