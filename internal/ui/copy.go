package ui

import (
	"fmt"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/unkn0wn-root/walle/internal/render"
)

var writeClipboard = clipboard.WriteAll

func (m *Model) copyCanvas() tea.Cmd {
	text := render.ASCII(m.result.Grid)
	if text == "" {
		return func() tea.Msg {
			return statusMsg{text: "Nothing to copy", level: statusWarn}
		}
	}
	size := m.result.Grid.Size
	return func() tea.Msg {
		if err := writeClipboard(text); err != nil {
			return statusMsg{text: fmt.Sprintf("Clipboard unavailable: %v", err), level: statusError}
		}
		return statusMsg{text: fmt.Sprintf("Copied %dx%d canvas", size, size), level: statusSuccess}
	}
}
