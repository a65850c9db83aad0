package render

import "github.com/charmbracelet/lipgloss"

type Theme struct {
	Frame          lipgloss.Style
	Header         lipgloss.Style
	HeaderTitle    lipgloss.Style
	HeaderValue    lipgloss.Style
	StatusBar      lipgloss.Style
	StatusBarKey   lipgloss.Style
	StatusBarValue lipgloss.Style
	Error          lipgloss.Style
	Success        lipgloss.Style
	Muted          lipgloss.Style
	Cursor         lipgloss.Style
}

// NewTheme builds the default theme bound to r, so color output follows the
// renderer's profile instead of the process-wide default.
func NewTheme(r *lipgloss.Renderer) Theme {
	accent := lipgloss.Color("#7D56F4")
	base := r.NewStyle().Foreground(lipgloss.Color("#dcd7ff"))

	return Theme{
		Frame: base.BorderStyle(lipgloss.RoundedBorder()).BorderForeground(accent),
		Header: r.NewStyle().
			Foreground(lipgloss.Color("#F5F2FF")).
			Background(lipgloss.Color("#3B355D")).
			Padding(0, 1),
		HeaderTitle: r.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true),
		HeaderValue:    r.NewStyle().Foreground(lipgloss.Color("#E5E1FF")),
		StatusBar:      r.NewStyle().Foreground(lipgloss.Color("#A6A1BB")).Padding(0, 1),
		StatusBarKey:   r.NewStyle().Foreground(lipgloss.Color("#F6E3FF")).Bold(true),
		StatusBarValue: r.NewStyle().Foreground(lipgloss.Color("#E5E1FF")),
		Error:          r.NewStyle().Foreground(lipgloss.Color("#FF6E6E")),
		Success:        r.NewStyle().Foreground(lipgloss.Color("#6EF17E")),
		Muted:          r.NewStyle().Foreground(lipgloss.Color("#6E6A86")),
		Cursor: r.NewStyle().
			Foreground(lipgloss.Color("#FFD46A")).
			Bold(true),
	}
}
