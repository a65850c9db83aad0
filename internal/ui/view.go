package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const maxDiagnosticLines = 6

func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	sections := []string{m.renderHeader(), m.viewport.View()}
	if diag := m.renderDiagnostics(); diag != "" {
		sections = append(sections, diag)
	}
	sections = append(sections, m.renderStatusBar())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader() string {
	th := m.rend.Theme()
	name := "<untitled>"
	if m.cfg.File != "" {
		name = filepath.Base(m.cfg.File)
	}
	state := "idle"
	switch {
	case m.running:
		state = "running"
	case m.missing:
		state = "missing"
	case m.stale:
		state = "stale"
	case m.hasRun:
		state = string(m.result.Status)
	}
	size := m.result.Grid.Size
	parts := []string{
		th.HeaderTitle.Render("Wall-E"),
		th.HeaderValue.Render(name),
		th.HeaderValue.Render(fmt.Sprintf("%dx%d", size, size)),
		th.HeaderValue.Render(state),
	}
	if v := strings.TrimSpace(m.cfg.Version); v != "" {
		parts = append(parts, th.HeaderValue.Render(v))
	}
	return truncateToWidth(th.Header.Render(strings.Join(parts, "  ")), m.width)
}

func (m Model) renderDiagnostics() string {
	diags := m.result.Diagnostics
	if len(diags) == 0 {
		return ""
	}
	th := m.rend.Theme()
	shown := diags
	if len(shown) > maxDiagnosticLines {
		shown = shown[:maxDiagnosticLines-1]
	}
	lines := make([]string, 0, len(shown)+1)
	for _, d := range shown {
		lines = append(lines, truncateToWidth(th.Error.Render(d), m.width))
	}
	if len(shown) < len(diags) {
		more := fmt.Sprintf("... %d more", len(diags)-len(shown))
		lines = append(lines, th.Muted.Render(more))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderStatusBar() string {
	th := m.rend.Theme()
	var b strings.Builder
	if text := strings.TrimSpace(m.status.text); text != "" {
		style := th.StatusBarValue
		switch m.status.level {
		case statusError:
			style = th.Error
		case statusSuccess:
			style = th.Success
		case statusWarn:
			style = th.Cursor
		}
		b.WriteString(style.Render(text))
		b.WriteString("  ")
	}
	for i, k := range m.keys.help() {
		if i > 0 {
			b.WriteString(" ")
		}
		h := k.Help()
		b.WriteString(th.StatusBarKey.Render(h.Key))
		b.WriteString(" ")
		b.WriteString(th.StatusBar.UnsetPadding().Render(h.Desc))
	}
	return truncateToWidth(b.String(), m.width)
}

func truncateToWidth(s string, width int) string {
	if width <= 0 || ansi.StringWidth(s) <= width {
		return s
	}
	return ansi.Truncate(s, width, "…")
}
